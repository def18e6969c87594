// Package stats computes the dashboard statistics for the admin console: revenue,
// conversion, monthly series and the categorical breakdowns behind the pie charts.
// Every screen (dashboard, events, event stats, clients, order detail) calls the
// same Aggregate instead of re-deriving the numbers itself.
//
// Aggregation is pure: input collections are treated as read-only, outputs are
// newly allocated, and malformed or partial entities never cause a panic. Missing
// numeric fields count as zero and records without a resolvable date or birthdate
// simply stay out of the date- and age-dependent buckets.
package stats

import (
	"math"
	"time"

	"github.com/Futura-Tickets/monorepo-futuratickets-sub000/core"
)

// Policy is the single revenue-counting rule shared by every call site. A sale
// counts toward revenue and tickets sold when its status is OPEN, SALE or CLOSED;
// whether EXPIRED sales count as well has never been settled by product, so it is
// a named switch here rather than a per-screen decision
type Policy struct {
	CountExpired bool

	// Reference date for age buckets. Zero means time.Now(), tests inject a fixed one
	Now time.Time
}

func (policy Policy) countsRevenue(status core.SaleStatus) bool {
	switch status {
	case core.SaleOpen, core.SaleOnSale, core.SaleClosed:
		return true
	case core.SaleExpired:
		return policy.CountExpired
	default:
		return false
	}
}

// Count of sales falling into one band of an ordered distribution
type BandCount struct {
	Band  string `json:"band"`
	Count int    `json:"count"`
}

// Count of sales of one ticket type, in first-seen order
type TypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// Summary holds every statistic the dashboard cards and charts render
type Summary struct {
	TotalRevenue       float64                 `json:"totalRevenue"`
	TicketsSold        int                     `json:"ticketsSold"`
	PendingTickets     int                     `json:"pendingTickets"`
	ConversionRate     float64                 `json:"conversionRate"`     // percentage, 1 decimal
	AverageTicketPrice float64                 `json:"averageTicketPrice"` // EUR, 2 decimals
	TotalClients       int                     `json:"totalClients"`
	MonthlyRevenue     [12]float64             `json:"monthlyRevenue"` // indexed by calendar month of the sale's createdAt
	StatusDistribution map[core.SaleStatus]int `json:"statusDistribution"`
	PriceDistribution  []BandCount             `json:"priceDistribution"`
	AgeDistribution    []BandCount             `json:"ageDistribution"`
	TypeDistribution   []TypeCount             `json:"typeDistribution"`
}

// Price bands in ascending order. A sale falls into the first band whose upper
// bound it does not exceed
var priceBands = []struct {
	label string
	max   float64
}{
	{"0-10", 10},
	{"10-25", 25},
	{"25-50", 50},
	{"50-100", 100},
	{"100+", math.Inf(1)},
}

// Age bands. Clients younger than 18 or without a resolvable birthdate are excluded
// from the distribution entirely, there is no "unknown" bucket
var ageBands = []struct {
	label string
	min   int
	max   int
}{
	{"18-24", 18, 24},
	{"25-34", 25, 34},
	{"35-44", 35, 44},
	{"45-54", 45, 54},
	{"55+", 55, math.MaxInt},
}

// Aggregate computes the summary statistics over an ordered collection of orders,
// optionally pre-filtered by the caller to a single event or client
func Aggregate(orders []core.Order, policy Policy) Summary {
	now := policy.Now
	if now.IsZero() {
		now = time.Now()
	}

	summary := Summary{
		StatusDistribution: make(map[core.SaleStatus]int, len(core.AllSaleStatuses)),
		PriceDistribution:  make([]BandCount, len(priceBands)),
		AgeDistribution:    make([]BandCount, len(ageBands)),
		TypeDistribution:   []TypeCount{},
	}

	// Every enumerated status is present even at zero, the pie chart renders them all
	for _, status := range core.AllSaleStatuses {
		summary.StatusDistribution[status] = 0
	}
	for i, band := range priceBands {
		summary.PriceDistribution[i].Band = band.label
	}
	for i, band := range ageBands {
		summary.AgeDistribution[i].Band = band.label
	}

	accounts := make(map[string]struct{})

	for _, order := range orders {
		if order.Account != "" {
			accounts[order.Account] = struct{}{}
		}

		for _, sale := range order.Sales {
			summary.StatusDistribution[sale.Status]++

			if sale.Status == core.SalePending {
				summary.PendingTickets++
			}

			if policy.countsRevenue(sale.Status) {
				summary.TotalRevenue += sale.Price
				summary.TicketsSold++

				// Sales without a creation timestamp stay out of the monthly series
				if !sale.CreatedAt.IsZero() {
					summary.MonthlyRevenue[int(sale.CreatedAt.Month())-1] += sale.Price
				}
			}

			for i, band := range priceBands {
				if sale.Price <= band.max {
					summary.PriceDistribution[i].Count++
					break
				}
			}

			if birthdate, ok := sale.Client.BirthdateTime(); ok {
				age := ageAt(birthdate, now)
				for i, band := range ageBands {
					if age >= band.min && age <= band.max {
						summary.AgeDistribution[i].Count++
						break
					}
				}
			}

			if sale.Type != "" {
				summary.TypeDistribution = countType(summary.TypeDistribution, sale.Type)
			}
		}
	}

	summary.TotalClients = len(accounts)

	// Guard both rates against a zero denominator so the UI never renders NaN
	if attempted := summary.TicketsSold + summary.PendingTickets; attempted > 0 {
		summary.ConversionRate = round1(float64(summary.TicketsSold) / float64(attempted) * 100)
	}
	if summary.TicketsSold > 0 {
		summary.AverageTicketPrice = round2(summary.TotalRevenue / float64(summary.TicketsSold))
	}

	return summary
}

// Increment the count of a ticket type, appending it the first time it is seen so
// the chart legend keeps first-seen order
func countType(types []TypeCount, ticketType string) []TypeCount {
	for i := range types {
		if types[i].Type == ticketType {
			types[i].Count++
			return types
		}
	}
	return append(types, TypeCount{Type: ticketType, Count: 1})
}

// Full years between birthdate and now, minus one when this year's birthday hasn't
// happened yet
func ageAt(birthdate, now time.Time) int {
	age := now.Year() - birthdate.Year()
	if now.Month() < birthdate.Month() ||
		(now.Month() == birthdate.Month() && now.Day() < birthdate.Day()) {
		age--
	}
	return age
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
