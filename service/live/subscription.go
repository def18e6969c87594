package live

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/ably/ably-go/ably"
)

// Handler receives one channel message: the event name and its raw JSON payload
type Handler func(event string, data []byte)

// Realtime is the slice of the socket client the subscription manager needs.
// The production implementation wraps an Ably realtime connection, tests use a fake
type Realtime interface {
	SubscribeAll(ctx context.Context, channel string, handler Handler) (unsubscribe func(), err error)
}

type subscription struct {
	handlers    map[int]Handler
	next        int
	unsubscribe func()
}

// SubscriptionManager deduplicates channel subscriptions across views. Each channel
// is attached on the transport exactly once no matter how many views subscribe, and
// detached when the last view cancels. This replaces the module-level
// "already subscribed" guard flags the screens used to carry
type SubscriptionManager struct {
	mu       sync.Mutex
	realtime Realtime
	subs     map[string]*subscription
}

// Constructor for the subscription manager
func NewSubscriptionManager(realtime Realtime) *SubscriptionManager {
	return &SubscriptionManager{
		realtime: realtime,
		subs:     make(map[string]*subscription),
	}
}

// Subscribe registers a handler on a channel, attaching the channel on the
// transport only for the first subscriber. The returned cancel func removes the
// handler and detaches the channel once no handlers remain; calling it twice is
// harmless
func (manager *SubscriptionManager) Subscribe(ctx context.Context, channel string, handler Handler) (func(), error) {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	sub, ok := manager.subs[channel]
	if !ok {
		sub = &subscription{handlers: make(map[int]Handler)}

		unsubscribe, err := manager.realtime.SubscribeAll(ctx, channel, func(event string, data []byte) {
			manager.dispatch(channel, event, data)
		})
		if err != nil {
			return nil, err
		}

		sub.unsubscribe = unsubscribe
		manager.subs[channel] = sub
	}

	id := sub.next
	sub.next++
	sub.handlers[id] = handler

	canceled := false
	cancel := func() {
		manager.mu.Lock()
		defer manager.mu.Unlock()

		if canceled {
			return
		}
		canceled = true

		delete(sub.handlers, id)
		if len(sub.handlers) == 0 {
			sub.unsubscribe()
			delete(manager.subs, channel)
		}
	}

	return cancel, nil
}

// Count reports how many channels are currently attached on the transport
func (manager *SubscriptionManager) Count() int {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	return len(manager.subs)
}

// Fan one message out to every handler registered on the channel. Handlers run on
// the transport's delivery goroutine, so per-channel receipt order is preserved
func (manager *SubscriptionManager) dispatch(channel, event string, data []byte) {
	manager.mu.Lock()
	sub, ok := manager.subs[channel]
	if !ok {
		manager.mu.Unlock()
		return
	}

	handlers := make([]Handler, 0, len(sub.handlers))
	for _, handler := range sub.handlers {
		handlers = append(handlers, handler)
	}
	manager.mu.Unlock()

	for _, handler := range handlers {
		handler(event, data)
	}
}

// Ably-backed Realtime implementation
type AblyRealtime struct {
	client *ably.Realtime
}

// Constructor for the Ably realtime connection
func NewAblyRealtime(apiKey string) (*AblyRealtime, error) {
	client, err := ably.NewRealtime(ably.WithKey(apiKey))
	if err != nil {
		return nil, err
	}

	return &AblyRealtime{client: client}, nil
}

func (realtime *AblyRealtime) SubscribeAll(ctx context.Context, channel string, handler Handler) (func(), error) {
	unsubscribe, err := realtime.client.Channels.Get(channel).SubscribeAll(ctx, func(message *ably.Message) {
		handler(message.Name, rawData(message.Data))
	})
	if err != nil {
		return nil, err
	}

	return func() { unsubscribe() }, nil
}

// Close the underlying connection
func (realtime *AblyRealtime) Close() {
	realtime.client.Close()
}

// Ably hands payloads back as string, []byte or an already-decoded value depending
// on how they were published. Normalize everything to raw JSON
func rawData(data any) []byte {
	switch value := data.(type) {
	case []byte:
		return value
	case string:
		return []byte(value)
	default:
		raw, err := json.Marshal(value)
		if err != nil {
			return nil
		}
		return raw
	}
}
