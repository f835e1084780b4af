package handlers_test_suite

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	api "github.com/rogerio-castellano/inventory-audit/internal/http"
	handler "github.com/rogerio-castellano/inventory-audit/internal/http/handlers"
	"github.com/rogerio-castellano/inventory-audit/internal/models"
)

func TestGetChangeLogsHandler_OwnerScoped(t *testing.T) {
	t.Cleanup(clearAllItems)
	r := api.NewRouter()

	createItemID(r, aliceToken, handler.ItemRequest{Name: "Alice's widget", Quantity: 3, Price: 2.0})
	createItemID(r, bobToken, handler.ItemRequest{Name: "Bob's widget", Quantity: 4, Price: 3.0})

	w := doJSON(r, http.MethodGet, "/changes", aliceToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp handler.ChangeLogsSearchResult
	json.NewDecoder(w.Body).Decode(&resp)
	for _, entry := range resp.Data {
		if entry.ItemName != "Alice's widget" {
			t.Errorf("alice must not see entry for %q", entry.ItemName)
		}
	}
	if len(resp.Data) != 2 {
		t.Errorf("expected 2 entries for alice, got %d", len(resp.Data))
	}

	// Admins see the whole log.
	w = doJSON(r, http.MethodGet, "/changes", adminToken, nil)
	json.NewDecoder(w.Body).Decode(&resp)
	if len(resp.Data) != 4 {
		t.Errorf("expected 4 entries for admin, got %d", len(resp.Data))
	}
}

func TestGetChangeLogsHandler_Filters(t *testing.T) {
	t.Cleanup(clearAllItems)
	r := api.NewRouter()

	id := createItemID(r, aliceToken, handler.ItemRequest{Name: "Widget", Quantity: 10, Price: 5.0})
	updateItem(r, aliceToken, id, handler.ItemUpdateRequest{Quantity: intPtr(4)})

	w := doJSON(r, http.MethodGet, "/changes?type=sale", aliceToken, nil)
	var resp handler.ChangeLogsSearchResult
	json.NewDecoder(w.Body).Decode(&resp)
	if len(resp.Data) != 1 || resp.Data[0].ChangeType != models.ChangeSale {
		t.Fatalf("expected exactly the sale entry, got %+v", resp.Data)
	}

	w = doJSON(r, http.MethodGet, "/changes?field=price", aliceToken, nil)
	json.NewDecoder(w.Body).Decode(&resp)
	if len(resp.Data) != 1 || resp.Data[0].FieldChanged != models.FieldPrice {
		t.Fatalf("expected exactly the price entry, got %+v", resp.Data)
	}

	w = doJSON(r, http.MethodGet, "/changes?limit=1", aliceToken, nil)
	json.NewDecoder(w.Body).Decode(&resp)
	if len(resp.Data) != 1 {
		t.Errorf("expected 1 entry with limit=1, got %d", len(resp.Data))
	}
	if resp.Meta.TotalCount != 3 {
		t.Errorf("expected total_count 3, got %d", resp.Meta.TotalCount)
	}
}

func TestChangeLogs_SurviveItemDeletionForOwner(t *testing.T) {
	t.Cleanup(clearAllItems)
	r := api.NewRouter()

	id := createItemID(r, aliceToken, handler.ItemRequest{Name: "Doomed", Quantity: 2, Price: 1.0})
	doJSON(r, http.MethodDelete, fmt.Sprintf("/items/%d", id), aliceToken, nil)

	// Terminal entries stay visible to their former owner, invisible to others.
	w := doJSON(r, http.MethodGet, "/changes", aliceToken, nil)
	var resp handler.ChangeLogsSearchResult
	json.NewDecoder(w.Body).Decode(&resp)
	if len(resp.Data) != 2 {
		t.Fatalf("expected alice to keep her 2 terminal entries, got %d", len(resp.Data))
	}

	w = doJSON(r, http.MethodGet, "/changes", bobToken, nil)
	json.NewDecoder(w.Body).Decode(&resp)
	if len(resp.Data) != 0 {
		t.Errorf("expected bob to see no entries, got %d", len(resp.Data))
	}
}

func TestAuditHandler(t *testing.T) {
	t.Cleanup(clearAllItems)
	r := api.NewRouter()

	id := createItemID(r, aliceToken, handler.ItemRequest{Name: "Widget", Quantity: 1, Price: 1.0})
	updateItem(r, aliceToken, id, handler.ItemUpdateRequest{Quantity: intPtr(6)})

	w := doJSON(r, http.MethodGet, "/items/audit?limit=2", aliceToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var logs []handler.ChangeLogResponse
	json.NewDecoder(w.Body).Decode(&logs)
	if len(logs) != 2 {
		t.Fatalf("expected 2 entries with limit=2, got %d", len(logs))
	}
	if logs[0].ChangeType != models.ChangeRestock {
		t.Errorf("expected the newest entry first, got %s", logs[0].ChangeType)
	}
}

func TestAuditHandler_ReturnsAllVisibleEntries(t *testing.T) {
	t.Cleanup(clearAllItems)
	r := api.NewRouter()

	// 2 creation entries plus 28 quantity changes.
	id := createItemID(r, aliceToken, handler.ItemRequest{Name: "Widget", Quantity: 1, Price: 1.0})
	for qty := 2; qty <= 29; qty++ {
		if w := updateItem(r, aliceToken, id, handler.ItemUpdateRequest{Quantity: intPtr(qty)}); w.Code != http.StatusOK {
			t.Fatalf("expected 200 on update to %d, got %d", qty, w.Code)
		}
	}

	w := doJSON(r, http.MethodGet, "/items/audit", aliceToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var logs []handler.ChangeLogResponse
	json.NewDecoder(w.Body).Decode(&logs)
	if len(logs) != 30 {
		t.Fatalf("expected all 30 entries without a limit, got %d", len(logs))
	}
	for i := 1; i < len(logs); i++ {
		if logs[i].ID > logs[i-1].ID {
			t.Fatalf("entries out of order at %d: %d after %d", i, logs[i].ID, logs[i-1].ID)
		}
	}
}

func TestExportChangeLogsHandler_CSV(t *testing.T) {
	t.Cleanup(clearAllItems)
	r := api.NewRouter()

	createItemID(r, aliceToken, handler.ItemRequest{Name: "Widget", Quantity: 3, Price: 2.5})

	w := doJSON(r, http.MethodGet, "/changes/export", aliceToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("expected text/csv, got %q", ct)
	}

	records, err := csv.NewReader(w.Body).ReadAll()
	if err != nil {
		t.Fatalf("error parsing CSV: %v", err)
	}
	if len(records) != 3 { // header + 2 entries
		t.Fatalf("expected header plus 2 rows, got %d rows", len(records))
	}
	if records[0][0] != "id" || records[0][5] != "change_type" {
		t.Errorf("unexpected header: %v", records[0])
	}
}

func TestExportChangeLogsHandler_JSON(t *testing.T) {
	t.Cleanup(clearAllItems)
	r := api.NewRouter()

	createItemID(r, aliceToken, handler.ItemRequest{Name: "Widget", Quantity: 3, Price: 2.5})

	w := doJSON(r, http.MethodGet, "/changes/export?format=json", aliceToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var logs []handler.ChangeLogResponse
	if err := json.NewDecoder(w.Body).Decode(&logs); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if len(logs) != 2 {
		t.Errorf("expected 2 entries, got %d", len(logs))
	}
}
