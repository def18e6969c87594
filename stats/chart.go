package stats

import (
	"github.com/Futura-Tickets/monorepo-futuratickets-sub000/core"
)

// Table is the tabular shape the chart renderer consumes: the first row is a header
// of string labels, every following row is a [label, value] tuple
type Table [][]any

var monthLabels = [12]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// StatusTable renders the status distribution in enum order
func (summary Summary) StatusTable() Table {
	table := Table{{"Status", "Tickets"}}
	for _, status := range core.AllSaleStatuses {
		table = append(table, []any{string(status), summary.StatusDistribution[status]})
	}
	return table
}

// PriceTable renders the price band distribution
func (summary Summary) PriceTable() Table {
	table := Table{{"Price", "Tickets"}}
	for _, band := range summary.PriceDistribution {
		table = append(table, []any{band.Band, band.Count})
	}
	return table
}

// AgeTable renders the age band distribution
func (summary Summary) AgeTable() Table {
	table := Table{{"Age", "Tickets"}}
	for _, band := range summary.AgeDistribution {
		table = append(table, []any{band.Band, band.Count})
	}
	return table
}

// TypeTable renders the ticket type distribution in first-seen order
func (summary Summary) TypeTable() Table {
	table := Table{{"Type", "Tickets"}}
	for _, entry := range summary.TypeDistribution {
		table = append(table, []any{entry.Type, entry.Count})
	}
	return table
}

// MonthlyRevenueTable renders the per-month revenue series
func (summary Summary) MonthlyRevenueTable() Table {
	table := Table{{"Month", "Revenue"}}
	for i, revenue := range summary.MonthlyRevenue {
		table = append(table, []any{monthLabels[i], revenue})
	}
	return table
}

// Tables bundles every chart table for a single response payload
func (summary Summary) Tables() map[string]Table {
	return map[string]Table{
		"status":  summary.StatusTable(),
		"price":   summary.PriceTable(),
		"age":     summary.AgeTable(),
		"type":    summary.TypeTable(),
		"monthly": summary.MonthlyRevenueTable(),
	}
}
