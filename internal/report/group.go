package report

import "errors"

var (
	// ErrNoItems reports a report request for a day with nothing on its list
	ErrNoItems = errors.New("no items in today's list")
	// ErrNoMatchingSupplier reports a supplier filter that matches no items
	ErrNoMatchingSupplier = errors.New("no items found for selected suppliers")
)

// Supplier is the resolved supplier view a report row carries
type Supplier struct {
	ID    uint
	Name  string
	Phone string
}

// Item is one requirement list entry prepared for reporting. An empty
// MedicineName or a nil Supplier marks a reference that could not be
// resolved; such rows are skipped, not errors.
type Item struct {
	MedicineName string
	Supplier     *Supplier
}

// Group is one supplier's section of the report, medicines in list order
type Group struct {
	Supplier  Supplier
	Medicines []string
}

// BuildGroups sanitizes the items, groups them by supplier preserving
// first-seen supplier order and item insertion order, and applies the
// supplier filter. An empty filter means all suppliers.
func BuildGroups(items []Item, supplierIDs []uint) ([]Group, error) {
	if len(items) == 0 {
		return nil, ErrNoItems
	}

	selected := make(map[uint]bool, len(supplierIDs))
	for _, id := range supplierIDs {
		selected[id] = true
	}

	var groups []Group
	index := make(map[uint]int)
	for _, item := range items {
		if item.MedicineName == "" || item.Supplier == nil {
			continue
		}
		if len(selected) > 0 && !selected[item.Supplier.ID] {
			continue
		}
		i, ok := index[item.Supplier.ID]
		if !ok {
			i = len(groups)
			index[item.Supplier.ID] = i
			groups = append(groups, Group{Supplier: *item.Supplier})
		}
		groups[i].Medicines = append(groups[i].Medicines, item.MedicineName)
	}

	if len(groups) == 0 {
		return nil, ErrNoMatchingSupplier
	}
	return groups, nil
}
