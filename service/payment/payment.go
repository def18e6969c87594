package payment

import (
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
	"github.com/stripe/stripe-go/v82/refund"
)

// Refund reasons accepted by Stripe
type RefundReason string

const (
	RequestedByCustomer RefundReason = "requested_by_customer"
	Duplicate           RefundReason = "duplicate"
	Fraudulent          RefundReason = "fraudulent"
)

// Set the Stripe secret key for the whole process. Call once at boot
func InitStripe(secretKey string) {
	stripe.Key = secretKey
}

// Fetch a payment intent, used to enrich the order detail screen with the
// payment's live status and method
func GetPaymentIntent(id string) (*stripe.PaymentIntent, error) {
	return paymentintent.Get(id, nil)
}

// Create a refund against a payment intent. amount = 0 means a full refund
func CreateRefund(paymentIntentID string, reason RefundReason, amount int64) (*stripe.Refund, error) {
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(paymentIntentID),
		Reason:        stripe.String(string(reason)),
	}
	if amount > 0 {
		params.Amount = stripe.Int64(amount)
	}

	return refund.New(params)
}
