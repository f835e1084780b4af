package audit

import (
	"testing"

	"github.com/rogerio-castellano/inventory-audit/internal/models"
)

func item(id, qty int, price float64) models.InventoryItem {
	return models.InventoryItem{ID: id, Name: "Widget", Quantity: qty, Price: price}
}

func TestOnCreate(t *testing.T) {
	entries := OnCreate(item(1, 3, 10.00), 42)

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	q := entries[0]
	if q.FieldChanged != models.FieldQuantity || q.ChangeType != models.ChangeRestock {
		t.Errorf("expected quantity restock first, got %s/%s", q.FieldChanged, q.ChangeType)
	}
	if q.OldValue != 0 || q.NewValue != 3 {
		t.Errorf("expected 0→3, got %v→%v", q.OldValue, q.NewValue)
	}
	if q.QuantityChanged == nil || *q.QuantityChanged != 3 {
		t.Errorf("expected delta +3, got %v", q.QuantityChanged)
	}

	p := entries[1]
	if p.FieldChanged != models.FieldPrice || p.ChangeType != models.ChangeIncrease {
		t.Errorf("expected price increase second, got %s/%s", p.FieldChanged, p.ChangeType)
	}
	if p.OldValue != 0 || p.NewValue != 10.00 {
		t.Errorf("expected 0→10.00, got %v→%v", p.OldValue, p.NewValue)
	}
	if p.QuantityChanged != nil {
		t.Errorf("price entry must not carry a delta, got %v", *p.QuantityChanged)
	}
}

func TestOnCreate_ZeroItem(t *testing.T) {
	if entries := OnCreate(item(1, 0, 0), 42); len(entries) != 0 {
		t.Fatalf("expected no entries for empty item, got %d", len(entries))
	}
}

func TestOnUpdate(t *testing.T) {
	delta := func(d int) *int { return &d }

	tests := []struct {
		name    string
		old     models.InventoryItem
		updated models.InventoryItem
		want    []models.ChangeLog
	}{
		{
			name:    "quantity drop is a sale",
			old:     item(1, 10, 5.00),
			updated: item(1, 4, 5.00),
			want: []models.ChangeLog{
				{FieldChanged: models.FieldQuantity, ChangeType: models.ChangeSale, OldValue: 10, NewValue: 4, QuantityChanged: delta(-6)},
			},
		},
		{
			name:    "quantity rise is a restock",
			old:     item(1, 2, 5.00),
			updated: item(1, 9, 5.00),
			want: []models.ChangeLog{
				{FieldChanged: models.FieldQuantity, ChangeType: models.ChangeRestock, OldValue: 2, NewValue: 9, QuantityChanged: delta(7)},
			},
		},
		{
			name:    "price rise is an increase",
			old:     item(1, 5, 5.00),
			updated: item(1, 5, 7.50),
			want: []models.ChangeLog{
				{FieldChanged: models.FieldPrice, ChangeType: models.ChangeIncrease, OldValue: 5.00, NewValue: 7.50},
			},
		},
		{
			name:    "price drop is a decrease",
			old:     item(1, 5, 7.50),
			updated: item(1, 5, 5.00),
			want: []models.ChangeLog{
				{FieldChanged: models.FieldPrice, ChangeType: models.ChangeDecrease, OldValue: 7.50, NewValue: 5.00},
			},
		},
		{
			name:    "no-op write emits nothing",
			old:     item(1, 5, 5.00),
			updated: item(1, 5, 5.00),
			want:    nil,
		},
		{
			name:    "both fields change, quantity entry first",
			old:     item(1, 5, 20.00),
			updated: item(1, 8, 15.00),
			want: []models.ChangeLog{
				{FieldChanged: models.FieldQuantity, ChangeType: models.ChangeRestock, OldValue: 5, NewValue: 8, QuantityChanged: delta(3)},
				{FieldChanged: models.FieldPrice, ChangeType: models.ChangeDecrease, OldValue: 20.00, NewValue: 15.00},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OnUpdate(tt.old, tt.updated, 42)

			if len(got) != len(tt.want) {
				t.Fatalf("expected %d entries, got %d", len(tt.want), len(got))
			}
			for i, want := range tt.want {
				e := got[i]
				if e.FieldChanged != want.FieldChanged || e.ChangeType != want.ChangeType {
					t.Errorf("entry %d: expected %s/%s, got %s/%s", i, want.FieldChanged, want.ChangeType, e.FieldChanged, e.ChangeType)
				}
				if e.OldValue != want.OldValue || e.NewValue != want.NewValue {
					t.Errorf("entry %d: expected %v→%v, got %v→%v", i, want.OldValue, want.NewValue, e.OldValue, e.NewValue)
				}
				if want.QuantityChanged == nil {
					if e.QuantityChanged != nil {
						t.Errorf("entry %d: unexpected delta %d", i, *e.QuantityChanged)
					}
				} else if e.QuantityChanged == nil || *e.QuantityChanged != *want.QuantityChanged {
					t.Errorf("entry %d: expected delta %d, got %v", i, *want.QuantityChanged, e.QuantityChanged)
				}
				if e.UserID != 42 {
					t.Errorf("entry %d: expected acting user 42, got %d", i, e.UserID)
				}
			}
		})
	}
}

func TestOnUpdate_SubCentPriceWriteIsNoop(t *testing.T) {
	got := OnUpdate(item(1, 5, 5.004), item(1, 5, 5.001), 42)
	if len(got) != 0 {
		t.Fatalf("expected sub-cent price change to emit nothing, got %d entries", len(got))
	}
}

func TestOnDelete(t *testing.T) {
	entries := OnDelete(item(7, 7, 12.50), 42)

	if len(entries) != 2 {
		t.Fatalf("expected 2 terminal entries, got %d", len(entries))
	}

	q := entries[0]
	if q.ChangeType != models.ChangeDelete || q.OldValue != 7 || q.NewValue != 0 {
		t.Errorf("expected quantity delete 7→0, got %s %v→%v", q.ChangeType, q.OldValue, q.NewValue)
	}
	if q.QuantityChanged == nil || *q.QuantityChanged != -7 {
		t.Errorf("expected delta -7, got %v", q.QuantityChanged)
	}

	p := entries[1]
	if p.ChangeType != models.ChangeDelete || p.OldValue != 12.50 || p.NewValue != 0 {
		t.Errorf("expected price delete 12.50→0, got %s %v→%v", p.ChangeType, p.OldValue, p.NewValue)
	}
}

func TestOnDelete_EmptyItem(t *testing.T) {
	if entries := OnDelete(item(7, 0, 0), 42); len(entries) != 0 {
		t.Fatalf("expected no terminal entries for empty item, got %d", len(entries))
	}
}
