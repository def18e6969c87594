package live

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/Futura-Tickets/monorepo-futuratickets-sub000/core"
	"github.com/Futura-Tickets/monorepo-futuratickets-sub000/service/notify"
	"github.com/Futura-Tickets/monorepo-futuratickets-sub000/stats"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	orders map[string]core.Order
}

func (fake *fakeFetcher) GetOrder(ctx context.Context, id string) (core.Order, error) {
	order, ok := fake.orders[id]
	if !ok {
		return core.Order{}, fmt.Errorf("order %s not found", id)
	}
	return order, nil
}

type fakePublisher struct {
	mu        sync.Mutex
	published []string
	ctxErrs   []error
}

func (fake *fakePublisher) Publish(ctx context.Context, channel, event string, data any) error {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	fake.published = append(fake.published, channel+"/"+event)
	fake.ctxErrs = append(fake.ctxErrs, ctx.Err())
	return nil
}

func openTestHub(t *testing.T, orders []core.Order) (*Hub, *fakeRealtime, *fakePublisher) {
	t.Helper()

	realtime := newFakeRealtime()
	publisher := &fakePublisher{}
	fetcher := &fakeFetcher{orders: map[string]core.Order{
		"order-9": {
			ID:    "order-9",
			Sales: []core.Sale{{ID: "sale-9", Status: core.SaleOpen, Price: 30}},
		},
	}}

	hub := NewHub(NewSubscriptionManager(realtime), fetcher, publisher, nil, stats.Policy{})
	require.NoError(t, hub.Open(context.Background(), "e1", orders))

	return hub, realtime, publisher
}

func TestHubMergesFullOrderPayload(t *testing.T) {
	hub, realtime, publisher := openTestHub(t, []core.Order{{
		ID:    "order-1",
		Sales: []core.Sale{{ID: "sale-1", Status: core.SalePending, Price: 20}},
	}})

	summary, ok := hub.Summary("e1")
	require.True(t, ok)
	require.Equal(t, 0.0, summary.TotalRevenue)
	require.Equal(t, 1, summary.PendingTickets)

	update := orderMessage{Order: &core.Order{
		ID:    "order-1",
		Sales: []core.Sale{{ID: "sale-1", Status: core.SaleOpen, Price: 20}},
	}}
	data, err := json.Marshal(update)
	require.NoError(t, err)

	realtime.deliver(notify.EventChannel("e1"), notify.TicketMinted, data)

	summary, _ = hub.Summary("e1")
	require.Equal(t, 20.0, summary.TotalRevenue)
	require.Equal(t, 1, summary.TicketsSold)
	require.Equal(t, 0, summary.PendingTickets)

	// Initial open plus one update published on the stats channel
	require.Equal(t, []string{"stats:e1/stats-updated", "stats:e1/stats-updated"}, publisher.published)
}

func TestHubResolvesIdOnlyPayload(t *testing.T) {
	hub, realtime, _ := openTestHub(t, nil)

	realtime.deliver(notify.EventChannel("e1"), notify.OrderCreated, []byte(`{"id":"order-9"}`))

	summary, _ := hub.Summary("e1")
	require.Equal(t, 30.0, summary.TotalRevenue)
	require.Equal(t, 1, summary.TicketsSold)
}

func TestHubMergesSingleSale(t *testing.T) {
	hub, realtime, _ := openTestHub(t, []core.Order{{
		ID: "order-1",
		Sales: []core.Sale{
			{ID: "sale-1", Status: core.SaleOpen, Price: 10},
			{ID: "sale-2", Status: core.SalePending, Price: 15},
		},
	}})

	message := orderMessage{
		OrderID: "order-1",
		Sale:    &core.Sale{ID: "sale-2", Status: core.SaleOnSale, Price: 15},
	}
	data, err := json.Marshal(message)
	require.NoError(t, err)

	realtime.deliver(notify.EventChannel("e1"), notify.TicketResale, data)

	summary, _ := hub.Summary("e1")
	require.Equal(t, 25.0, summary.TotalRevenue)
	require.Equal(t, 0, summary.PendingTickets)
}

func TestHubIgnoresUnknownEventsAndGarbage(t *testing.T) {
	hub, realtime, _ := openTestHub(t, nil)

	realtime.deliver(notify.EventChannel("e1"), "presence-enter", []byte(`{"id":"order-9"}`))
	realtime.deliver(notify.EventChannel("e1"), notify.OrderCreated, []byte(`not json`))

	summary, _ := hub.Summary("e1")
	require.Equal(t, 0.0, summary.TotalRevenue)
}

func TestHubUpdatesOutliveOpeningContext(t *testing.T) {
	realtime := newFakeRealtime()
	publisher := &fakePublisher{}
	hub := NewHub(NewSubscriptionManager(realtime), &fakeFetcher{}, publisher, nil, stats.Policy{})

	// Open from a short-lived caller context, the way a request handler does
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, hub.Open(ctx, "e1", nil))
	cancel()

	update := orderMessage{Order: &core.Order{
		ID:    "order-1",
		Sales: []core.Sale{{ID: "sale-1", Status: core.SaleOpen, Price: 20}},
	}}
	data, err := json.Marshal(update)
	require.NoError(t, err)

	realtime.deliver(notify.EventChannel("e1"), notify.OrderCreated, data)

	summary, _ := hub.Summary("e1")
	require.Equal(t, 20.0, summary.TotalRevenue)

	// The post-update publish must not run on the dead caller context
	require.Len(t, publisher.ctxErrs, 2)
	for _, err := range publisher.ctxErrs {
		require.NoError(t, err)
	}

	// Closing the view is what tears its context down
	hub.Close("e1")
}

func TestHubOpenIdempotentAndClose(t *testing.T) {
	hub, realtime, _ := openTestHub(t, nil)

	require.NoError(t, hub.Open(context.Background(), "e1", nil))
	require.Len(t, realtime.attached, 1)

	hub.Close("e1")
	require.Empty(t, realtime.attached)

	_, ok := hub.Summary("e1")
	require.False(t, ok)
}
