package core

import (
	"time"
)

// Entities owned by the core ticketing API. This service only ever reads snapshots
// of them (REST) or receives full-object push updates (Ably), so every field is a
// plain wire mapping: `_id` string identifiers, camelCase keys, optional fields
// tolerated as zero values

// Enum defined
type SaleStatus string

type ActivityKind string

type OrderStatus string

type EventStatus string

// Constant defined
const (
	// Sale (ticket) lifecycle status
	SalePending    SaleStatus = "PENDING"
	SaleProcessing SaleStatus = "PROCESSING"
	SaleOpen       SaleStatus = "OPEN"
	SaleOnSale     SaleStatus = "SALE"
	SaleSold       SaleStatus = "SOLD"
	SaleClosed     SaleStatus = "CLOSED"
	SaleExpired    SaleStatus = "EXPIRED"
	SaleTransfered SaleStatus = "TRANSFERED"

	// Activity kinds recorded in a sale's history
	ActivityPending     ActivityKind = "PENDING"
	ActivityProcessing  ActivityKind = "PROCESSING"
	ActivityProcessed   ActivityKind = "PROCESSED"
	ActivityGranted     ActivityKind = "GRANTED"
	ActivityDenied      ActivityKind = "DENIED"
	ActivityTransfering ActivityKind = "TRANSFERING"
	ActivityTransfered  ActivityKind = "TRANSFERED"

	// Order status
	OrderPending   OrderStatus = "PENDING"
	OrderSucceeded OrderStatus = "SUCCEEDED"

	// Event status
	EventHold     EventStatus = "HOLD"
	EventCreated  EventStatus = "CREATED"
	EventLaunched EventStatus = "LAUNCHED"
	EventLive     EventStatus = "LIVE"
	EventClosed   EventStatus = "CLOSED"
)

// AllSaleStatuses lists every sale status in display order. Distributions and chart
// tables iterate this so that zero-count statuses still show up
var AllSaleStatuses = []SaleStatus{
	SalePending,
	SaleProcessing,
	SaleOpen,
	SaleOnSale,
	SaleSold,
	SaleClosed,
	SaleExpired,
	SaleTransfered,
}

// Embedded event reference carried by each sale
type EventRef struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// The ticket owner's contact details. Birthdate arrives as a loose date string and
// may be missing entirely
type Client struct {
	Name      string `json:"name"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Birthdate string `json:"birthdate,omitempty"`
}

// Layouts the core API has been seen using for birthdates
var birthdateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"02/01/2006",
}

// BirthdateTime resolves the client's birthdate. The second return is false when the
// field is missing or unparseable, in which case the client stays out of every
// age-dependent bucket
func (client Client) BirthdateTime() (time.Time, bool) {
	if client.Birthdate == "" {
		return time.Time{}, false
	}

	for _, layout := range birthdateLayouts {
		if t, err := time.Parse(layout, client.Birthdate); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// Secondary-market re-listing of an already issued ticket
type Resale struct {
	Price     float64   `json:"resalePrice"`
	CreatedAt time.Time `json:"createdAt"`
}

// One entry of a sale's activity history
type Activity struct {
	Kind      ActivityKind `json:"activity"`
	CreatedAt time.Time    `json:"createdAt"`
	Status    SaleStatus   `json:"status"`
}

// Sale: one ticket instance within an order, carrying its own lifecycle status
type Sale struct {
	ID           string     `json:"_id"`
	Order        string     `json:"order"`
	Event        EventRef   `json:"event"`
	Client       Client     `json:"client"`
	Price        float64    `json:"price"` // EUR
	Type         string     `json:"type"`
	Status       SaleStatus `json:"status"`
	CreatedAt    time.Time  `json:"createdAt"`
	Resale       *Resale    `json:"resale,omitempty"`
	IsResale     bool       `json:"isResale,omitempty"`
	IsTransfer   bool       `json:"isTransfer,omitempty"`
	IsInvitation bool       `json:"isInvitation,omitempty"`
	History      []Activity `json:"history,omitempty"`
}

// Order: a purchase transaction grouping one or more sales under one contact/account
type Order struct {
	ID            string      `json:"_id"`
	Account       string      `json:"account"`
	Event         string      `json:"event"`
	Sales         []Sale      `json:"sales"`
	ContactName   string      `json:"name"`
	ContactLast   string      `json:"lastName"`
	ContactEmail  string      `json:"email"`
	Status        OrderStatus `json:"status"`
	PaymentIntent string      `json:"paymentId,omitempty"` // Stripe payment intent, set once checkout succeeded
	CreatedAt     time.Time   `json:"createdAt"`
}

// Event date/time window. Launch is optional (events on HOLD have no launch date yet)
type DateTime struct {
	Launch *time.Time `json:"launchDate,omitempty"`
	Start  time.Time  `json:"startDate"`
	End    time.Time  `json:"endDate"`
}

// Resale policy of an event
type ResalePolicy struct {
	IsResale bool    `json:"isResale"`
	IsActive bool    `json:"isActive"`
	MinPrice float64 `json:"minPrice"`
	MaxPrice float64 `json:"maxPrice"`
	Royalty  float64 `json:"royalty"` // percentage kept by the promoter on each resale
}

// One ticket type definition: how many tickets of this type exist and at what price
type TicketType struct {
	Type   string  `json:"type"`
	Amount int     `json:"amount"`
	Price  float64 `json:"price"`
}

// Tiered release of ticket types ("lots"): the next lot opens when the previous sells out
type TicketLot struct {
	Name  string       `json:"name"`
	Types []TicketType `json:"types"`
}

// Event: a ticketed happening with a date/time window, capacity and ticket type catalog
type Event struct {
	ID       string       `json:"_id"`
	Name     string       `json:"name"`
	Location string       `json:"location"`
	Capacity int          `json:"capacity"`
	Genres   []string     `json:"genres,omitempty"`
	Artists  []string     `json:"artists,omitempty"`
	DateTime DateTime     `json:"dateTime"`
	Status   EventStatus  `json:"status"`
	Orders   []Order      `json:"orders"`
	Resale   ResalePolicy `json:"resale"`
	Tickets  []TicketType `json:"tickets,omitempty"`
	Lots     []TicketLot  `json:"lots,omitempty"`
}

// Account: a client account as returned by the clients listing, with the orders it owns
type Account struct {
	ID        string  `json:"_id"`
	Name      string  `json:"name"`
	LastName  string  `json:"lastName"`
	Email     string  `json:"email"`
	Birthdate string  `json:"birthdate,omitempty"`
	Orders    []Order `json:"orders"`
}
