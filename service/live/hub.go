// Package live keeps per-event order collections in sync with the core API's push
// channels. Each open view folds updates into its collection in receipt order,
// re-runs the aggregation over the merged collection, caches the fresh summary and
// republishes it for dashboard clients. There is no delta aggregation: a full
// recompute per update is cheap at single-event order volumes.
package live

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/Futura-Tickets/monorepo-futuratickets-sub000/core"
	"github.com/Futura-Tickets/monorepo-futuratickets-sub000/service/notify"
	"github.com/Futura-Tickets/monorepo-futuratickets-sub000/stats"
	"github.com/Futura-Tickets/monorepo-futuratickets-sub000/util"
)

// How long a cached summary stays around. A view that is still open keeps
// refreshing it on every update
const summaryTTL = 10 * time.Minute

// StatsCacheKey is the redis key holding the cached summary JSON of one event
func StatsCacheKey(eventID string) string {
	return "stats:event:" + eventID
}

// Fetcher resolves push events that carry only an order id
type Fetcher interface {
	GetOrder(ctx context.Context, id string) (core.Order, error)
}

// Publisher pushes recomputed summaries out to dashboard clients
type Publisher interface {
	Publish(ctx context.Context, channel, event string, data any) error
}

// Cache stores summary snapshots. Satisfied by db.Queries, may be nil in tests
type Cache interface {
	SetCache(ctx context.Context, key, val string, expired time.Duration)
}

// Wire shape of the core API's order channel messages: either a full order (or a
// single sale plus its parent order id), or a bare id the hub must resolve itself
type orderMessage struct {
	Order   *core.Order `json:"order,omitempty"`
	Sale    *core.Sale  `json:"sale,omitempty"`
	OrderID string      `json:"id,omitempty"`
}

// One open event view: the ordered order collection and its current summary.
// The mutex serializes update application so same-order updates land in receipt
// order and never overwrite each other with stale state
type view struct {
	mu      sync.Mutex
	eventID string
	orders  []core.Order
	summary stats.Summary
	cancel  func()
}

// Hub owns every open event view and their channel subscriptions
type Hub struct {
	mu        sync.Mutex
	views     map[string]*view
	subs      *SubscriptionManager
	fetcher   Fetcher
	publisher Publisher
	cache     Cache
	policy    stats.Policy
}

// Constructor for the hub
func NewHub(subs *SubscriptionManager, fetcher Fetcher, publisher Publisher, cache Cache, policy stats.Policy) *Hub {
	return &Hub{
		views:     make(map[string]*view),
		subs:      subs,
		fetcher:   fetcher,
		publisher: publisher,
		cache:     cache,
		policy:    policy,
	}
}

// Open starts tracking an event: seed the view with a fetched snapshot of its
// orders, aggregate once, and subscribe to its push channel. Opening an already
// open event is a no-op
func (hub *Hub) Open(ctx context.Context, eventID string, orders []core.Order) error {
	hub.mu.Lock()
	defer hub.mu.Unlock()

	if _, ok := hub.views[eventID]; ok {
		return nil
	}

	v := &view{
		eventID: eventID,
		orders:  orders,
		summary: stats.Aggregate(orders, hub.policy),
	}

	// The view outlives the opening caller (often an HTTP request), so updates
	// run on the view's own context, canceled only when the view closes
	viewCtx, stop := context.WithCancel(context.Background())

	cancel, err := hub.subs.Subscribe(ctx, notify.EventChannel(eventID), func(event string, data []byte) {
		hub.handle(viewCtx, v, event, data)
	})
	if err != nil {
		stop()
		return err
	}

	v.cancel = func() {
		cancel()
		stop()
	}
	hub.views[eventID] = v

	hub.store(viewCtx, v)
	return nil
}

// Close stops tracking an event and drops its channel subscription
func (hub *Hub) Close(eventID string) {
	hub.mu.Lock()
	defer hub.mu.Unlock()

	v, ok := hub.views[eventID]
	if !ok {
		return
	}

	v.cancel()
	delete(hub.views, eventID)
}

// Summary returns the current summary of an open view
func (hub *Hub) Summary(eventID string) (stats.Summary, bool) {
	hub.mu.Lock()
	v, ok := hub.views[eventID]
	hub.mu.Unlock()

	if !ok {
		return stats.Summary{}, false
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	return v.summary, true
}

// Apply one push message to a view
func (hub *Hub) handle(ctx context.Context, v *view, event string, data []byte) {
	switch event {
	case notify.OrderCreated, notify.TicketMinted, notify.TicketResale, notify.TransferCreated:
	default:
		return
	}

	var message orderMessage
	if err := json.Unmarshal(data, &message); err != nil {
		util.LOGGER.Warn("dropping malformed push message", "event", event, "error", err)
		return
	}

	v.mu.Lock()
	switch {
	case message.Sale != nil && message.OrderID != "":
		v.orders = stats.MergeSale(v.orders, message.OrderID, *message.Sale)

	case message.Order != nil:
		v.orders = stats.MergeOrder(v.orders, *message.Order)

	case message.OrderID != "":
		// Id-only payload: resolve the full order before merging
		order, err := hub.fetcher.GetOrder(ctx, message.OrderID)
		if err != nil {
			v.mu.Unlock()
			util.LOGGER.Error("failed to resolve pushed order", "event", event, "order_id", message.OrderID, "error", err)
			return
		}
		v.orders = stats.MergeOrder(v.orders, order)

	default:
		v.mu.Unlock()
		return
	}

	v.summary = stats.Aggregate(v.orders, hub.policy)
	v.mu.Unlock()

	hub.store(ctx, v)
}

// Cache the view's summary and republish it on the stats channel
func (hub *Hub) store(ctx context.Context, v *view) {
	v.mu.Lock()
	summary := v.summary
	v.mu.Unlock()

	if hub.cache != nil {
		if data, err := json.Marshal(summary); err == nil {
			hub.cache.SetCache(ctx, StatsCacheKey(v.eventID), string(data), summaryTTL)
		}
	}

	if hub.publisher != nil {
		if err := hub.publisher.Publish(ctx, notify.StatsChannel(v.eventID), notify.StatsUpdated, summary); err != nil {
			util.LOGGER.Warn("failed to publish refreshed stats", "event_id", v.eventID, "error", err)
		}
	}
}
