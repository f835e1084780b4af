package handlers_test_suite

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	api "github.com/rogerio-castellano/inventory-audit/internal/http"
	handler "github.com/rogerio-castellano/inventory-audit/internal/http/handlers"
)

func createCategory(t *testing.T, r http.Handler, name string) handler.CategoryResponse {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/categories", adminToken, handler.CategoryRequest{Name: name})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating category, got %d: %s", w.Code, w.Body.String())
	}
	var resp handler.CategoryResponse
	json.NewDecoder(w.Body).Decode(&resp)
	return resp
}

func TestCategoryHandlers_AdminGatedWrites(t *testing.T) {
	t.Cleanup(clearAllCategories)
	r := api.NewRouter()

	// Non-admins can read but not write.
	if w := doJSON(r, http.MethodPost, "/categories", aliceToken, handler.CategoryRequest{Name: "Tools"}); w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for non-admin create, got %d", w.Code)
	}

	cat := createCategory(t, r, "Tools")

	if w := doJSON(r, http.MethodGet, "/categories", aliceToken, nil); w.Code != http.StatusOK {
		t.Errorf("expected 200 listing categories as non-admin, got %d", w.Code)
	}

	if w := doJSON(r, http.MethodPut, fmt.Sprintf("/categories/%d", cat.Id), bobToken, handler.CategoryRequest{Name: "Hardware"}); w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for non-admin update, got %d", w.Code)
	}
	if w := doJSON(r, http.MethodDelete, fmt.Sprintf("/categories/%d", cat.Id), bobToken, nil); w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for non-admin delete, got %d", w.Code)
	}

	w := doJSON(r, http.MethodPut, fmt.Sprintf("/categories/%d", cat.Id), adminToken, handler.CategoryRequest{Name: "Hardware"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin update, got %d", w.Code)
	}
	var updated handler.CategoryResponse
	json.NewDecoder(w.Body).Decode(&updated)
	if updated.Name != "Hardware" {
		t.Errorf("expected renamed category, got %q", updated.Name)
	}
}

func TestCategoryHandlers_DuplicateName(t *testing.T) {
	t.Cleanup(clearAllCategories)
	r := api.NewRouter()

	createCategory(t, r, "Tools")
	if w := doJSON(r, http.MethodPost, "/categories", adminToken, handler.CategoryRequest{Name: "Tools"}); w.Code != http.StatusConflict {
		t.Errorf("expected 409 for duplicate category name, got %d", w.Code)
	}

	// Renaming onto an existing name collides too.
	office := createCategory(t, r, "Office")
	if w := doJSON(r, http.MethodPut, fmt.Sprintf("/categories/%d", office.Id), adminToken, handler.CategoryRequest{Name: "Tools"}); w.Code != http.StatusConflict {
		t.Errorf("expected 409 renaming onto an existing name, got %d", w.Code)
	}

	// Renaming a category to its own current name is not a collision.
	if w := doJSON(r, http.MethodPut, fmt.Sprintf("/categories/%d", office.Id), adminToken, handler.CategoryRequest{Name: "Office"}); w.Code != http.StatusOK {
		t.Errorf("expected 200 keeping the same name, got %d", w.Code)
	}
}

func TestDeleteCategory_DetachesItems(t *testing.T) {
	t.Cleanup(clearAllItems)
	t.Cleanup(clearAllCategories)
	r := api.NewRouter()

	cat := createCategory(t, r, "Tools")
	id := createItemID(r, aliceToken, handler.ItemRequest{Name: "Hammer", Quantity: 9, Price: 15.0, CategoryID: &cat.Id})

	if w := doJSON(r, http.MethodDelete, fmt.Sprintf("/categories/%d", cat.Id), adminToken, nil); w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}

	// The item survives with its category reference cleared.
	w := doJSON(r, http.MethodGet, fmt.Sprintf("/items/%d", id), aliceToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var item handler.ItemResponse
	json.NewDecoder(w.Body).Decode(&item)
	if item.CategoryID != nil {
		t.Errorf("expected category reference cleared, got %v", *item.CategoryID)
	}
}

func TestCreateItem_UnknownCategoryRejected(t *testing.T) {
	t.Cleanup(clearAllItems)
	r := api.NewRouter()

	missing := 9999
	w := createItem(r, aliceToken, handler.ItemRequest{Name: "Hammer", Quantity: 1, Price: 1.0, CategoryID: &missing})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown category, got %d", w.Code)
	}
}

func TestGetItemsHandler_CategoryFilter(t *testing.T) {
	t.Cleanup(clearAllItems)
	t.Cleanup(clearAllCategories)
	r := api.NewRouter()

	tools := createCategory(t, r, "Tools")
	office := createCategory(t, r, "Office")
	createItemID(r, aliceToken, handler.ItemRequest{Name: "Hammer", Quantity: 9, Price: 15.0, CategoryID: &tools.Id})
	createItemID(r, aliceToken, handler.ItemRequest{Name: "Stapler", Quantity: 9, Price: 8.0, CategoryID: &office.Id})

	w := doJSON(r, http.MethodGet, fmt.Sprintf("/items?category=%d", tools.Id), aliceToken, nil)
	var resp handler.ItemsSearchResult
	json.NewDecoder(w.Body).Decode(&resp)
	if len(resp.Data) != 1 || resp.Data[0].Name != "Hammer" {
		t.Errorf("expected only the tool, got %+v", resp.Data)
	}

	// Search matches category names as well as item names.
	w = doJSON(r, http.MethodGet, "/items?search=office", aliceToken, nil)
	json.NewDecoder(w.Body).Decode(&resp)
	if len(resp.Data) != 1 || resp.Data[0].Name != "Stapler" {
		t.Errorf("expected the stapler from category search, got %+v", resp.Data)
	}
}
