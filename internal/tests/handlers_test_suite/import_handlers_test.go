package handlers_test_suite

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	api "github.com/rogerio-castellano/inventory-audit/internal/http"
	handler "github.com/rogerio-castellano/inventory-audit/internal/http/handlers"
)

func importCSV(r http.Handler, token, csvData string) *httptest.ResponseRecorder {
	buf, contentType := multipartCSV(csvData, "items.csv")
	req := httptest.NewRequest(http.MethodPost, "/items/import", buf)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestImportItemsHandler(t *testing.T) {
	r := api.NewRouter()

	t.Run("File with valid items", func(t *testing.T) {
		t.Cleanup(clearAllItems)
		csvData := `name,description,quantity,price,category_id
Mouse,Wireless mouse,10,25.99,
Keyboard,,5,45.00,`

		w := importCSV(r, aliceToken, csvData)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 OK, got %d", w.Code)
		}

		var resp handler.ImportItemsResult
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}

		if resp.ImportedItemsCount != 2 {
			t.Errorf("expected 2 imported items, got %d", resp.ImportedItemsCount)
		}
		if len(resp.Errors) != 0 {
			t.Errorf("expected no errors, got %v", resp.Errors)
		}

		// Imported rows belong to the caller and carry creation history.
		list := doJSON(r, http.MethodGet, "/items", aliceToken, nil)
		var items handler.ItemsSearchResult
		json.NewDecoder(list.Body).Decode(&items)
		if len(items.Data) != 2 {
			t.Fatalf("expected 2 items for alice, got %d", len(items.Data))
		}
		logs, _ := itemHistory(r, aliceToken, items.Data[0].Id)
		if len(logs) != 2 {
			t.Errorf("expected 2 creation entries, got %d", len(logs))
		}
	})

	t.Run("File with one invalid row", func(t *testing.T) {
		t.Cleanup(clearAllItems)
		csvData := `name,description,quantity,price,category_id
Mouse,,10,25.99,
,,3,1.00,
Keyboard,,5,45.00,`

		w := importCSV(r, aliceToken, csvData)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 OK, got %d", w.Code)
		}

		var resp handler.ImportItemsResult
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}

		if resp.ImportedItemsCount != 2 {
			t.Errorf("expected 2 imported items, got %d", resp.ImportedItemsCount)
		}
		if len(resp.Errors) != 1 {
			t.Fatalf("expected 1 error, got %d: %v", len(resp.Errors), resp.Errors)
		}
		if !strings.Contains(resp.Errors[0].Field, "line 3") {
			t.Errorf("expected error for line 3, got %v", resp.Errors[0])
		}
	})

	t.Run("Row with non-numeric quantity", func(t *testing.T) {
		t.Cleanup(clearAllItems)
		csvData := `name,description,quantity,price,category_id
Mouse,,many,25.99,`

		w := importCSV(r, aliceToken, csvData)
		var resp handler.ImportItemsResult
		json.NewDecoder(w.Body).Decode(&resp)

		if resp.ImportedItemsCount != 0 {
			t.Errorf("expected 0 imported items, got %d", resp.ImportedItemsCount)
		}
		if len(resp.Errors) != 1 || !strings.Contains(resp.Errors[0].Description, "quantity") {
			t.Errorf("expected a quantity error, got %v", resp.Errors)
		}
	})

	t.Run("Row referencing a missing category", func(t *testing.T) {
		t.Cleanup(clearAllItems)
		csvData := `name,description,quantity,price,category_id
Mouse,,10,25.99,9999`

		w := importCSV(r, aliceToken, csvData)
		var resp handler.ImportItemsResult
		json.NewDecoder(w.Body).Decode(&resp)

		if resp.ImportedItemsCount != 0 {
			t.Errorf("expected 0 imported items, got %d", resp.ImportedItemsCount)
		}
		if len(resp.Errors) != 1 || !strings.Contains(resp.Errors[0].Description, "category") {
			t.Errorf("expected a category error, got %v", resp.Errors)
		}
	})

	t.Run("Empty file", func(t *testing.T) {
		w := importCSV(r, aliceToken, "")
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400 for an empty file, got %d", w.Code)
		}
	})
}
