package report

import (
	"testing"
)

var (
	supOne = &Supplier{ID: 1, Name: "Gulf Pharma", Phone: "050-1234567"}
	supTwo = &Supplier{ID: 2, Name: "Al Noor Medical"}
)

func TestBuildGroupsEmptyItems(t *testing.T) {
	if _, err := BuildGroups(nil, nil); err != ErrNoItems {
		t.Fatalf("expected ErrNoItems, got %v", err)
	}
}

func TestBuildGroupsFilterSelectsSuppliers(t *testing.T) {
	items := []Item{
		{MedicineName: "Paracetamol", Supplier: supOne},
		{MedicineName: "Aspirin", Supplier: supTwo},
		{MedicineName: "Ibuprofen", Supplier: supOne},
	}

	tests := []struct {
		name      string
		filter    []uint
		wantNames [][]string
	}{
		{"single supplier", []uint{1}, [][]string{{"Paracetamol", "Ibuprofen"}}},
		{"both suppliers", []uint{1, 2}, [][]string{{"Paracetamol", "Ibuprofen"}, {"Aspirin"}}},
		{"empty filter includes all", nil, [][]string{{"Paracetamol", "Ibuprofen"}, {"Aspirin"}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			groups, err := BuildGroups(items, tc.filter)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(groups) != len(tc.wantNames) {
				t.Fatalf("expected %d groups, got %d", len(tc.wantNames), len(groups))
			}
			for gi, want := range tc.wantNames {
				got := groups[gi].Medicines
				if len(got) != len(want) {
					t.Fatalf("group %d: expected %v, got %v", gi, want, got)
				}
				for i := range want {
					if got[i] != want[i] {
						t.Errorf("group %d item %d: expected %q, got %q", gi, i, want[i], got[i])
					}
				}
			}
		})
	}
}

func TestBuildGroupsPreservesFirstSeenSupplierOrder(t *testing.T) {
	items := []Item{
		{MedicineName: "A", Supplier: supTwo},
		{MedicineName: "B", Supplier: supOne},
		{MedicineName: "C", Supplier: supTwo},
	}
	groups, err := BuildGroups(items, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if groups[0].Supplier.ID != 2 || groups[1].Supplier.ID != 1 {
		t.Errorf("expected supplier order [2 1], got [%d %d]", groups[0].Supplier.ID, groups[1].Supplier.ID)
	}
}

func TestBuildGroupsSkipsUnresolvableRows(t *testing.T) {
	items := []Item{
		{MedicineName: "", Supplier: supOne},       // deleted medicine
		{MedicineName: "Orphan", Supplier: nil},    // deleted supplier
		{MedicineName: "Aspirin", Supplier: supTwo},
	}
	groups, err := BuildGroups(items, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(groups) != 1 || len(groups[0].Medicines) != 1 || groups[0].Medicines[0] != "Aspirin" {
		t.Errorf("expected only the resolvable row, got %+v", groups)
	}
}

func TestBuildGroupsNoMatchingSupplier(t *testing.T) {
	items := []Item{{MedicineName: "Aspirin", Supplier: supTwo}}

	if _, err := BuildGroups(items, []uint{99}); err != ErrNoMatchingSupplier {
		t.Fatalf("expected ErrNoMatchingSupplier for absent supplier, got %v", err)
	}

	// Every row unresolvable counts as no match as well
	broken := []Item{{MedicineName: "", Supplier: nil}}
	if _, err := BuildGroups(broken, nil); err != ErrNoMatchingSupplier {
		t.Fatalf("expected ErrNoMatchingSupplier for unresolvable rows, got %v", err)
	}
}
