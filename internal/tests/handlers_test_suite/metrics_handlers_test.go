package handlers_test_suite

import (
	"encoding/json"
	"net/http"
	"testing"

	api "github.com/rogerio-castellano/inventory-audit/internal/http"
	handler "github.com/rogerio-castellano/inventory-audit/internal/http/handlers"
	"github.com/rogerio-castellano/inventory-audit/internal/repo"
)

func TestGetDashboardMetricsHandler(t *testing.T) {
	t.Cleanup(clearAllItems)
	r := api.NewRouter()

	hot := createItemID(r, aliceToken, handler.ItemRequest{Name: "Hot item", Quantity: 2, Price: 1.0})
	createItemID(r, bobToken, handler.ItemRequest{Name: "Quiet item", Quantity: 50, Price: 3.0})
	updateItem(r, aliceToken, hot, handler.ItemUpdateRequest{Quantity: intPtr(20)})
	updateItem(r, aliceToken, hot, handler.ItemUpdateRequest{Price: floatPtr(2.0)})

	w := doJSON(r, http.MethodGet, "/metrics/dashboard", adminToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var m repo.Metrics
	if err := json.NewDecoder(w.Body).Decode(&m); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}

	if m.TotalItems != 2 {
		t.Errorf("expected 2 items, got %d", m.TotalItems)
	}
	// Hot item: 2 creation entries + restock + price increase; quiet item: 2.
	if m.TotalChanges != 6 {
		t.Errorf("expected 6 change entries, got %d", m.TotalChanges)
	}
	if m.LowStockCount != 0 {
		t.Errorf("expected no low-stock items after restock, got %d", m.LowStockCount)
	}
	if m.MostChangedItem.Name != "Hot item" || m.MostChangedItem.ChangeCount != 4 {
		t.Errorf("expected 'Hot item' with 4 changes, got %+v", m.MostChangedItem)
	}
}

func TestGetDashboardMetricsHandler_AdminOnly(t *testing.T) {
	r := api.NewRouter()

	if w := doJSON(r, http.MethodGet, "/metrics/dashboard", aliceToken, nil); w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for non-admin, got %d", w.Code)
	}
}
