package stats

import (
	"github.com/Futura-Tickets/monorepo-futuratickets-sub000/core"
)

// Incremental merge of push-delivered updates into an in-memory order collection.
// There is no delta aggregation: after any merge the caller re-runs Aggregate over
// the merged collection, which is plenty at single-event order volumes.
//
// Both functions return newly allocated slices and never modify their inputs.

// MergeOrder folds an updated order into the collection. A matching order is
// replaced in place (other orders keep their positions) with its sales merged
// entry-by-entry: sales present in the update replace or extend the existing list,
// sales only present in the old version survive. An unknown order is prepended
func MergeOrder(orders []core.Order, update core.Order) []core.Order {
	merged := make([]core.Order, 0, len(orders)+1)
	found := false

	for _, existing := range orders {
		if !found && existing.ID == update.ID {
			merged = append(merged, mergeSales(existing, update))
			found = true
			continue
		}
		merged = append(merged, existing)
	}

	if !found {
		return append([]core.Order{update}, merged...)
	}

	return merged
}

// MergeSale replaces a single sale by id within the matching order, leaving sibling
// sales untouched. A sale the order doesn't know yet is appended. When no order
// matches, the collection is returned unchanged (a copy): the caller is expected to
// resolve the full order and use MergeOrder instead
func MergeSale(orders []core.Order, orderID string, update core.Sale) []core.Order {
	merged := make([]core.Order, len(orders))
	copy(merged, orders)

	for i := range merged {
		if merged[i].ID != orderID {
			continue
		}

		sales := make([]core.Sale, len(merged[i].Sales))
		copy(sales, merged[i].Sales)

		replaced := false
		for j := range sales {
			if sales[j].ID == update.ID {
				sales[j] = update
				replaced = true
				break
			}
		}
		if !replaced {
			sales = append(sales, update)
		}

		merged[i].Sales = sales
		break
	}

	return merged
}

// The update's order-level fields win, its sales are merged over the existing list
func mergeSales(existing, update core.Order) core.Order {
	merged := update

	sales := make([]core.Sale, len(existing.Sales))
	copy(sales, existing.Sales)

	for _, sale := range update.Sales {
		replaced := false
		for i := range sales {
			if sales[i].ID == sale.ID {
				sales[i] = sale
				replaced = true
				break
			}
		}
		if !replaced {
			sales = append(sales, sale)
		}
	}

	merged.Sales = sales
	return merged
}
