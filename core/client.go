package core

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Futura-Tickets/monorepo-futuratickets-sub000/db"
	"github.com/Futura-Tickets/monorepo-futuratickets-sub000/util"
)

// How long fetched snapshots stay valid in the cache. Push updates refresh the
// relevant keys well before this expires, the TTL only bounds staleness after
// a missed update
const snapshotTTL = 30 * time.Second

// API is the REST fetch layer over the core ticketing service. All reads go through
// here; this service never creates, mutates or deletes core entities
type API struct {
	addr    string
	token   string
	queries *db.Queries // redis-backed snapshot cache, may be nil in tests
}

// Constructor for the core API client
func NewAPI(addr, token string, queries *db.Queries) *API {
	return &API{
		addr:    addr,
		token:   token,
		queries: queries,
	}
}

// Fetch all events visible to the configured promoter token
func (api *API) GetEvents(ctx context.Context) ([]Event, error) {
	var events []Event
	url := fmt.Sprintf("%s/events", api.addr)
	if _, err := util.MakeRequest("GET", url, nil, api.token, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// Fetch a single event with its orders and nested sales
func (api *API) GetEvent(ctx context.Context, id string) (*Event, error) {
	var event Event
	if ok := api.fromCache(ctx, cacheKey("event", id), &event); ok {
		return &event, nil
	}

	url := fmt.Sprintf("%s/events/%s", api.addr, id)
	if _, err := util.MakeRequest("GET", url, nil, api.token, &event); err != nil {
		return nil, err
	}

	api.toCache(ctx, cacheKey("event", id), event)
	return &event, nil
}

// Fetch all client accounts
func (api *API) GetClients(ctx context.Context) ([]Account, error) {
	var accounts []Account
	url := fmt.Sprintf("%s/accounts", api.addr)
	if _, err := util.MakeRequest("GET", url, nil, api.token, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// Fetch a single client account with its orders
func (api *API) GetClient(ctx context.Context, id string) (*Account, error) {
	var account Account
	if ok := api.fromCache(ctx, cacheKey("account", id), &account); ok {
		return &account, nil
	}

	url := fmt.Sprintf("%s/accounts/%s", api.addr, id)
	if _, err := util.MakeRequest("GET", url, nil, api.token, &account); err != nil {
		return nil, err
	}

	api.toCache(ctx, cacheKey("account", id), account)
	return &account, nil
}

// Fetch a single order. Used both for the order detail screen and to resolve push
// events that carry only an order id
func (api *API) GetOrder(ctx context.Context, id string) (Order, error) {
	var order Order
	url := fmt.Sprintf("%s/orders/%s", api.addr, id)
	if _, err := util.MakeRequest("GET", url, nil, api.token, &order); err != nil {
		return Order{}, err
	}
	return order, nil
}

func cacheKey(kind, id string) string {
	return "core:" + kind + ":" + id
}

func (api *API) fromCache(ctx context.Context, key string, result any) bool {
	if api.queries == nil {
		return false
	}

	val, err := api.queries.GetCache(ctx, key)
	if err != nil {
		return false
	}

	return json.Unmarshal([]byte(val), result) == nil
}

func (api *API) toCache(ctx context.Context, key string, value any) {
	if api.queries == nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		util.LOGGER.Warn("failed to marshal snapshot for caching", "key", key, "error", err)
		return
	}

	api.queries.SetCache(ctx, key, string(data), snapshotTTL)
}
