package stats

import (
	"time"

	"testing"

	"github.com/Futura-Tickets/monorepo-futuratickets-sub000/core"
	"github.com/stretchr/testify/require"
)

// Fixed reference date so age buckets are deterministic
var testNow = time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)

func sale(status core.SaleStatus, price float64) core.Sale {
	return core.Sale{
		ID:        "sale-" + string(status),
		Price:     price,
		Status:    status,
		CreatedAt: testNow,
	}
}

func TestAggregateBasics(t *testing.T) {
	// One order, one OPEN sale at 20 and one PENDING at 15
	orders := []core.Order{
		{
			ID:      "order-1",
			Account: "account-1",
			Sales: []core.Sale{
				sale(core.SaleOpen, 20),
				sale(core.SalePending, 15),
			},
		},
	}

	summary := Aggregate(orders, Policy{Now: testNow})

	require.Equal(t, 20.0, summary.TotalRevenue)
	require.Equal(t, 1, summary.TicketsSold)
	require.Equal(t, 1, summary.PendingTickets)
	require.Equal(t, 50.0, summary.ConversionRate)
	require.Equal(t, 20.0, summary.AverageTicketPrice)
	require.Equal(t, 1, summary.TotalClients)
}

func TestAggregateEmpty(t *testing.T) {
	summary := Aggregate(nil, Policy{Now: testNow})

	require.Equal(t, 0.0, summary.TotalRevenue)
	require.Equal(t, 0, summary.TicketsSold)
	require.Equal(t, 0.0, summary.ConversionRate)
	require.Equal(t, 0.0, summary.AverageTicketPrice)

	// All distributions present with every enumerated key, zeroed
	require.Len(t, summary.StatusDistribution, len(core.AllSaleStatuses))
	for _, status := range core.AllSaleStatuses {
		require.Contains(t, summary.StatusDistribution, status)
		require.Zero(t, summary.StatusDistribution[status])
	}

	require.Len(t, summary.PriceDistribution, 5)
	require.Len(t, summary.AgeDistribution, 5)
	for _, band := range summary.PriceDistribution {
		require.Zero(t, band.Count)
	}
	for _, band := range summary.AgeDistribution {
		require.Zero(t, band.Count)
	}

	require.Empty(t, summary.TypeDistribution)
	for _, revenue := range summary.MonthlyRevenue {
		require.Zero(t, revenue)
	}
}

func TestRevenueCountsOnlySoldStatuses(t *testing.T) {
	orders := []core.Order{{
		ID: "order-1",
		Sales: []core.Sale{
			sale(core.SaleOpen, 10),
			sale(core.SaleOnSale, 20),
			sale(core.SaleClosed, 30),
			sale(core.SalePending, 40),
			sale(core.SaleProcessing, 50),
			sale(core.SaleSold, 60),
			sale(core.SaleExpired, 70),
			sale(core.SaleTransfered, 80),
		},
	}}

	summary := Aggregate(orders, Policy{Now: testNow})

	require.Equal(t, 60.0, summary.TotalRevenue)
	require.Equal(t, 3, summary.TicketsSold)
	require.Equal(t, 1, summary.PendingTickets)

	// Every status got counted in the distribution regardless of the revenue rule
	for _, status := range core.AllSaleStatuses {
		require.Equal(t, 1, summary.StatusDistribution[status], string(status))
	}
}

func TestExpiredPolicy(t *testing.T) {
	orders := []core.Order{{
		ID: "order-1",
		Sales: []core.Sale{
			sale(core.SaleOpen, 20),
			sale(core.SaleExpired, 35),
		},
	}}

	excluded := Aggregate(orders, Policy{Now: testNow})
	require.Equal(t, 20.0, excluded.TotalRevenue)
	require.Equal(t, 1, excluded.TicketsSold)

	included := Aggregate(orders, Policy{CountExpired: true, Now: testNow})
	require.Equal(t, 55.0, included.TotalRevenue)
	require.Equal(t, 2, included.TicketsSold)
}

func TestConversionRateBounds(t *testing.T) {
	cases := []struct {
		name    string
		sold    int
		pending int
		want    float64
	}{
		{"no sales at all", 0, 0, 0},
		{"only pending", 0, 3, 0},
		{"only sold", 4, 0, 100},
		{"one of three", 1, 2, 33.3},
		{"two of three", 2, 1, 66.7},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var sales []core.Sale
			for range tc.sold {
				sales = append(sales, sale(core.SaleOpen, 10))
			}
			for range tc.pending {
				sales = append(sales, sale(core.SalePending, 10))
			}

			summary := Aggregate([]core.Order{{ID: "order-1", Sales: sales}}, Policy{Now: testNow})
			require.Equal(t, tc.want, summary.ConversionRate)
			require.GreaterOrEqual(t, summary.ConversionRate, 0.0)
			require.LessOrEqual(t, summary.ConversionRate, 100.0)
		})
	}
}

func TestPriceBands(t *testing.T) {
	orders := []core.Order{{
		ID: "order-1",
		Sales: []core.Sale{
			sale(core.SaleOpen, 0),
			sale(core.SaleOpen, 10),    // boundary: stays in the first band
			sale(core.SaleOpen, 10.01), // just over: second band
			sale(core.SaleOpen, 25),
			sale(core.SaleOpen, 50),
			sale(core.SaleOpen, 100),
			sale(core.SaleOpen, 100.01),
			sale(core.SaleOpen, 2500),
		},
	}}

	summary := Aggregate(orders, Policy{Now: testNow})

	require.Equal(t, []BandCount{
		{"0-10", 2},
		{"10-25", 2},
		{"25-50", 1},
		{"50-100", 1},
		{"100+", 2},
	}, summary.PriceDistribution)

	// Exhaustive and exclusive: band counts sum to the number of sales
	total := 0
	for _, band := range summary.PriceDistribution {
		total += band.Count
	}
	require.Equal(t, 8, total)
}

func TestAgeBands(t *testing.T) {
	withBirthdate := func(birthdate string) core.Sale {
		s := sale(core.SaleOpen, 10)
		s.Client = core.Client{Name: "Jo", Birthdate: birthdate}
		return s
	}

	orders := []core.Order{{
		ID: "order-1",
		Sales: []core.Sale{
			withBirthdate("2008-06-15"), // turns exactly 18 today
			withBirthdate("2008-06-16"), // 18 tomorrow: excluded, no younger band exists
			withBirthdate("1996-01-10"), // 30
			withBirthdate("1985-12-31"), // 40
			withBirthdate("1975-06-14"), // 51, birthday just passed
			withBirthdate("1950-03-01"), // 76
			withBirthdate(""),           // missing: excluded entirely
			withBirthdate("not-a-date"), // unresolvable: excluded entirely
		},
	}}

	summary := Aggregate(orders, Policy{Now: testNow})

	require.Equal(t, []BandCount{
		{"18-24", 1},
		{"25-34", 1},
		{"35-44", 1},
		{"45-54", 1},
		{"55+", 1},
	}, summary.AgeDistribution)
}

func TestMonthlyRevenue(t *testing.T) {
	at := func(month time.Month, price float64) core.Sale {
		s := sale(core.SaleOpen, price)
		s.CreatedAt = time.Date(2026, month, 3, 0, 0, 0, 0, time.UTC)
		return s
	}

	noDate := sale(core.SaleOpen, 99)
	noDate.CreatedAt = time.Time{}

	orders := []core.Order{{
		ID: "order-1",
		Sales: []core.Sale{
			at(time.January, 10),
			at(time.January, 15),
			at(time.December, 40),
			noDate, // counts toward revenue but not toward any month
		},
	}}

	summary := Aggregate(orders, Policy{Now: testNow})

	require.Equal(t, 25.0, summary.MonthlyRevenue[0])
	require.Equal(t, 40.0, summary.MonthlyRevenue[11])
	require.Equal(t, 164.0, summary.TotalRevenue)
}

func TestTypeDistributionKeepsFirstSeenOrder(t *testing.T) {
	typed := func(ticketType string) core.Sale {
		s := sale(core.SaleOpen, 10)
		s.ID = "sale-" + ticketType
		s.Type = ticketType
		return s
	}

	orders := []core.Order{{
		ID: "order-1",
		Sales: []core.Sale{
			typed("General"),
			typed("VIP"),
			typed("General"),
			typed("Backstage"),
			typed("VIP"),
			sale(core.SaleOpen, 5), // untyped, not grouped
		},
	}}

	summary := Aggregate(orders, Policy{Now: testNow})

	require.Equal(t, []TypeCount{
		{"General", 2},
		{"VIP", 2},
		{"Backstage", 1},
	}, summary.TypeDistribution)
}

func TestTotalClientsDedup(t *testing.T) {
	orders := []core.Order{
		{ID: "order-1", Account: "account-1"},
		{ID: "order-2", Account: "account-2"},
		{ID: "order-3", Account: "account-1"},
		{ID: "order-4"}, // no account reference
	}

	summary := Aggregate(orders, Policy{Now: testNow})
	require.Equal(t, 2, summary.TotalClients)
}

func TestAverageTicketPriceRounding(t *testing.T) {
	orders := []core.Order{{
		ID: "order-1",
		Sales: []core.Sale{
			sale(core.SaleOpen, 10),
			sale(core.SaleOpen, 10),
			sale(core.SaleOpen, 11),
		},
	}}

	summary := Aggregate(orders, Policy{Now: testNow})
	require.Equal(t, 10.33, summary.AverageTicketPrice)
}
