package notify

import (
	"context"

	"github.com/ably/ably-go/ably"
)

// Channel naming shared with the core API and the console frontend.
// The core API publishes order/sale updates on the event channels; this service
// publishes recomputed stats and promoter notifications on the other two
func EventChannel(eventID string) string { return "event:" + eventID }

func StatsChannel(eventID string) string { return "stats:" + eventID }

func PromoterChannel(promoterID string) string { return "promoter:" + promoterID }

// Event names the core API uses on its order channels
const (
	OrderCreated    = "order-created"
	TicketMinted    = "ticket-minted"
	TicketResale    = "ticket-resale"
	TransferCreated = "transfer-created"

	// Published by this service after each recompute
	StatsUpdated = "stats-updated"
)

// Ably implementation
type AblyService struct {
	client *ably.REST
}

// Ably constructor
func NewAblyService(apiKey string) (*AblyService, error) {
	client, err := ably.NewREST(ably.WithKey(apiKey))
	if err != nil {
		return nil, err
	}

	return &AblyService{client: client}, nil
}

// Publish message to a channel.
// channelName is the name of the channel to send the message to. It must be correct, or else the other side couldn't get it
// eventName is the name of the event that fire this notification.
// data can be anything, but it should be a structured data contains the notification's title and body
func (service *AblyService) Publish(ctx context.Context, channelName, eventName string, data any) error {
	// Get channel
	channel := service.client.Channels.Get(channelName)

	// Publish message
	return channel.Publish(ctx, eventName, data)
}
