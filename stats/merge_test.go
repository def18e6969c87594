package stats

import (
	"testing"

	"github.com/Futura-Tickets/monorepo-futuratickets-sub000/core"
	"github.com/stretchr/testify/require"
)

func orderWithSales(id string, saleIDs ...string) core.Order {
	order := core.Order{ID: id, Status: core.OrderPending}
	for _, saleID := range saleIDs {
		order.Sales = append(order.Sales, core.Sale{ID: saleID, Status: core.SalePending})
	}
	return order
}

func TestMergeOrderReplacesInPlace(t *testing.T) {
	orders := []core.Order{
		orderWithSales("order-1", "sale-a"),
		orderWithSales("order-2", "sale-b"),
		orderWithSales("order-3", "sale-c"),
	}

	update := orderWithSales("order-2", "sale-b")
	update.Status = core.OrderSucceeded
	update.Sales[0].Status = core.SaleOpen

	merged := MergeOrder(orders, update)

	require.Len(t, merged, 3)
	require.Equal(t, "order-1", merged[0].ID)
	require.Equal(t, "order-2", merged[1].ID)
	require.Equal(t, "order-3", merged[2].ID)
	require.Equal(t, core.OrderSucceeded, merged[1].Status)
	require.Equal(t, core.SaleOpen, merged[1].Sales[0].Status)
}

func TestMergeOrderPrependsUnknown(t *testing.T) {
	orders := []core.Order{
		orderWithSales("order-1", "sale-a"),
		orderWithSales("order-2", "sale-b"),
	}

	update := orderWithSales("order-9", "sale-z")
	merged := MergeOrder(orders, update)

	require.Len(t, merged, 3)
	require.Equal(t, "order-9", merged[0].ID)
	require.Equal(t, "order-1", merged[1].ID)
	require.Equal(t, "order-2", merged[2].ID)
}

func TestMergeOrderNoDeletionByOmission(t *testing.T) {
	// The existing order knows three sales, the update only carries one of them
	// plus a brand new one. The two absent sales must survive
	existing := orderWithSales("order-1", "sale-a", "sale-b", "sale-c")

	update := core.Order{
		ID:     "order-1",
		Status: core.OrderSucceeded,
		Sales: []core.Sale{
			{ID: "sale-b", Status: core.SaleOpen},
			{ID: "sale-d", Status: core.SalePending},
		},
	}

	merged := MergeOrder([]core.Order{existing}, update)

	require.Len(t, merged, 1)
	sales := merged[0].Sales
	require.Len(t, sales, 4)
	require.Equal(t, "sale-a", sales[0].ID)
	require.Equal(t, "sale-b", sales[1].ID)
	require.Equal(t, core.SaleOpen, sales[1].Status)
	require.Equal(t, "sale-c", sales[2].ID)
	require.Equal(t, "sale-d", sales[3].ID)
}

func TestMergeOrderIdempotent(t *testing.T) {
	orders := []core.Order{
		orderWithSales("order-1", "sale-a", "sale-b"),
		orderWithSales("order-2", "sale-c"),
	}

	update := core.Order{
		ID:     "order-1",
		Status: core.OrderSucceeded,
		Sales:  []core.Sale{{ID: "sale-b", Status: core.SaleClosed}, {ID: "sale-x", Status: core.SaleOpen}},
	}

	once := MergeOrder(orders, update)
	twice := MergeOrder(once, update)

	require.Equal(t, once, twice)
}

func TestMergeOrderInputsUntouched(t *testing.T) {
	original := []core.Order{
		orderWithSales("order-1", "sale-a"),
	}

	update := core.Order{
		ID:    "order-1",
		Sales: []core.Sale{{ID: "sale-a", Status: core.SaleClosed}},
	}

	MergeOrder(original, update)

	require.Equal(t, core.SalePending, original[0].Sales[0].Status)
	require.Len(t, original, 1)
}

func TestMergeSale(t *testing.T) {
	orders := []core.Order{
		orderWithSales("order-1", "sale-a", "sale-b"),
		orderWithSales("order-2", "sale-c"),
	}

	update := core.Sale{ID: "sale-b", Status: core.SaleTransfered}
	merged := MergeSale(orders, "order-1", update)

	require.Equal(t, core.SaleTransfered, merged[0].Sales[1].Status)
	// Sibling sale and the other order untouched
	require.Equal(t, core.SalePending, merged[0].Sales[0].Status)
	require.Equal(t, core.SalePending, merged[1].Sales[0].Status)
	// Original still pending
	require.Equal(t, core.SalePending, orders[0].Sales[1].Status)
}

func TestMergeSaleAppendsUnknown(t *testing.T) {
	orders := []core.Order{orderWithSales("order-1", "sale-a")}

	merged := MergeSale(orders, "order-1", core.Sale{ID: "sale-new", Status: core.SaleOpen})

	require.Len(t, merged[0].Sales, 2)
	require.Equal(t, "sale-new", merged[0].Sales[1].ID)
	require.Len(t, orders[0].Sales, 1)
}

func TestMergeSaleUnknownOrder(t *testing.T) {
	orders := []core.Order{orderWithSales("order-1", "sale-a")}

	merged := MergeSale(orders, "order-404", core.Sale{ID: "sale-z"})

	require.Equal(t, orders, merged)
}
