package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rogerio-castellano/inventory-audit/internal/access"
	"github.com/rogerio-castellano/inventory-audit/internal/alert"
	"github.com/rogerio-castellano/inventory-audit/internal/audit"
	models "github.com/rogerio-castellano/inventory-audit/internal/models"
	repo "github.com/rogerio-castellano/inventory-audit/internal/repo"
)

func toItemResponse(it models.InventoryItem) ItemResponse {
	return ItemResponse{
		Id:          it.ID,
		UserID:      it.UserID,
		Name:        it.Name,
		Description: it.Description,
		Quantity:    it.Quantity,
		Price:       it.Price,
		CategoryID:  it.CategoryID,
		DateAdded:   it.DateAdded.Format(time.RFC3339),
		LastUpdated: it.LastUpdated.Format(time.RFC3339),
		LowStock:    it.Quantity < DefaultLowStockThreshold,
	}
}

// visibleItem loads an item and applies the read policy. A foreign item
// resolves to ErrItemNotFound so existence never leaks through the error.
func visibleItem(id int, caller access.Identity) (models.InventoryItem, error) {
	it, err := itemRepo.GetByID(id)
	if err != nil {
		return models.InventoryItem{}, err
	}
	if !access.CanReadItem(caller, it.UserID) {
		return models.InventoryItem{}, repo.ErrItemNotFound
	}
	return it, nil
}

// writableItem is visibleItem under the write policy. Denials still read as
// not-found.
func writableItem(id int, caller access.Identity) (models.InventoryItem, error) {
	it, err := itemRepo.GetByID(id)
	if err != nil {
		return models.InventoryItem{}, err
	}
	if !access.CanWriteItem(caller, it.UserID) {
		return models.InventoryItem{}, repo.ErrItemNotFound
	}
	return it, nil
}

// CreateItemHandler godoc
// @Summary Create a new inventory item
// @Description Adds an item owned by the caller; initial quantity and price are recorded in the change log
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param item body ItemRequest true "Item to add"
// @Success 201 {object} ItemResponse
// @Failure 400 {object} []ItemValidationError
// @Router /items [post]
func CreateItemHandler(w http.ResponseWriter, r *http.Request) {
	caller, err := callerIdentity(r)
	if err != nil {
		http.Error(w, "missing or invalid token", http.StatusUnauthorized)
		return
	}

	var req ItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors := validateItem(req.Name, req.Quantity, req.Price)
	if len(validationErrors) > 0 {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(validationErrors)
		return
	}

	if req.CategoryID != nil {
		if _, err := categoryRepo.GetByID(*req.CategoryID); err != nil {
			http.Error(w, "category not found", http.StatusBadRequest)
			return
		}
	}

	item := models.InventoryItem{
		UserID:      caller.UserID,
		Name:        req.Name,
		Description: req.Description,
		Quantity:    req.Quantity,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
	}

	logs := audit.OnCreate(item, caller.UserID)
	created, err := itemRepo.CreateWithLogs(item, logs)
	if err != nil {
		if errors.Is(err, repo.ErrNegativeQuantity) {
			http.Error(w, "quantity cannot be negative", http.StatusBadRequest)
			return
		}
		http.Error(w, "could not create item", http.StatusInternalServerError)
		return
	}

	if created.Quantity < DefaultLowStockThreshold {
		alert.LowStock(created, DefaultLowStockThreshold)
	}

	writeJSON(w, http.StatusCreated, toItemResponse(created))
}

// GetItemsHandler godoc
// @Summary List inventory items visible to the caller
// @Tags items
// @Produce json
// @Security BearerAuth
// @Param category query int false "Filter by category ID (exact)"
// @Param search query string false "Search by item or category name"
// @Param minPrice query number false "Minimum price"
// @Param maxPrice query number false "Maximum price"
// @Param minQty query int false "Minimum quantity"
// @Param maxQty query int false "Maximum quantity"
// @Param addedSince query string false "Items added at or after this timestamp (RFC3339)"
// @Param addedUntil query string false "Items added at or before this timestamp (RFC3339)"
// @Param orderBy query string false "Order by name, quantity, price or date_added"
// @Param desc query bool false "Descending order"
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination"
// @Success 200 {object} ItemsSearchResult
// @Failure 400 {string} string "Invalid query"
// @Router /items [get]
func GetItemsHandler(w http.ResponseWriter, r *http.Request) {
	caller, err := callerIdentity(r)
	if err != nil {
		http.Error(w, "missing or invalid token", http.StatusUnauthorized)
		return
	}

	q := r.URL.Query()
	filter := repo.ItemFilter{
		OwnerID:    access.OwnerScope(caller),
		CategoryID: parseIntPtr(q.Get("category")),
		Search:     q.Get("search"),
		MinPrice:   parseFloatPtr(q.Get("minPrice")),
		MaxPrice:   parseFloatPtr(q.Get("maxPrice")),
		MinQty:     parseIntPtr(q.Get("minQty")),
		MaxQty:     parseIntPtr(q.Get("maxQty")),
		OrderBy:    q.Get("orderBy"),
		Descending: q.Get("desc") == "true",
		Offset:     parseIntPtr(q.Get("offset")),
		Limit:      parseIntPtr(q.Get("limit")),
	}

	if ts, ok, err := parseTimePtr(q.Get("addedSince")); err != nil {
		http.Error(w, "invalid addedSince date format", http.StatusBadRequest)
		return
	} else if ok {
		filter.AddedSince = ts
	}
	if ts, ok, err := parseTimePtr(q.Get("addedUntil")); err != nil {
		http.Error(w, "invalid addedUntil date format", http.StatusBadRequest)
		return
	} else if ok {
		filter.AddedUntil = ts
	}

	if filter.Limit != nil && *filter.Limit <= 0 {
		http.Error(w, "limit must be greater than zero", http.StatusBadRequest)
		return
	}
	if filter.Offset != nil && *filter.Offset < 0 {
		http.Error(w, "offset must be zero or positive", http.StatusBadRequest)
		return
	}

	items, total, err := itemRepo.Filter(filter)
	if err != nil {
		http.Error(w, "could not fetch items", http.StatusInternalServerError)
		return
	}

	resp := ItemsSearchResult{
		Data: make([]ItemResponse, len(items)),
		Meta: Meta{TotalCount: total},
	}
	for i, it := range items {
		resp.Data[i] = toItemResponse(it)
	}

	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// GetItemByIDHandler godoc
// @Summary Get an item by ID
// @Tags items
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Success 200 {object} ItemResponse
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Router /items/{id} [get]
func GetItemByIDHandler(w http.ResponseWriter, r *http.Request) {
	caller, err := callerIdentity(r)
	if err != nil {
		http.Error(w, "missing or invalid token", http.StatusUnauthorized)
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid item ID", http.StatusBadRequest)
		return
	}

	item, err := visibleItem(id, caller)
	if err != nil {
		if errors.Is(err, repo.ErrItemNotFound) {
			http.Error(w, "item not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch item", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, toItemResponse(item))
}

// UpdateItemHandler godoc
// @Summary Update an item
// @Description Full or partial update; quantity and price changes are recorded in the change log
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Param item body ItemUpdateRequest true "Fields to update"
// @Success 200 {object} ItemResponse
// @Failure 400 {object} []ItemValidationError
// @Failure 404 {string} string "Not found"
// @Router /items/{id} [put]
func UpdateItemHandler(w http.ResponseWriter, r *http.Request) {
	caller, err := callerIdentity(r)
	if err != nil {
		http.Error(w, "missing or invalid token", http.StatusUnauthorized)
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid item ID", http.StatusBadRequest)
		return
	}

	var req ItemUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	before, err := writableItem(id, caller)
	if err != nil {
		if errors.Is(err, repo.ErrItemNotFound) {
			http.Error(w, "item not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch item", http.StatusInternalServerError)
		return
	}

	updated := before
	if req.Name != nil {
		updated.Name = *req.Name
	}
	if req.Description != nil {
		updated.Description = *req.Description
	}
	if req.Quantity != nil {
		updated.Quantity = *req.Quantity
	}
	if req.Price != nil {
		updated.Price = *req.Price
	}
	if req.CategoryID != nil {
		if _, err := categoryRepo.GetByID(*req.CategoryID); err != nil {
			http.Error(w, "category not found", http.StatusBadRequest)
			return
		}
		updated.CategoryID = req.CategoryID
	}

	validationErrors := validateItem(updated.Name, updated.Quantity, updated.Price)
	if len(validationErrors) > 0 {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(validationErrors)
		return
	}

	logs := audit.OnUpdate(before, updated, caller.UserID)
	saved, err := itemRepo.UpdateWithLogs(updated, logs)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrItemNotFound):
			http.Error(w, "item not found", http.StatusNotFound)
		case errors.Is(err, repo.ErrNegativeQuantity):
			http.Error(w, "quantity cannot be negative", http.StatusBadRequest)
		default:
			http.Error(w, "could not update item", http.StatusInternalServerError)
		}
		return
	}

	if saved.Quantity < DefaultLowStockThreshold && saved.Quantity < before.Quantity {
		alert.LowStock(saved, DefaultLowStockThreshold)
	}

	writeJSON(w, http.StatusOK, toItemResponse(saved))
}

// DeleteItemHandler godoc
// @Summary Delete an item
// @Description Records terminal change-log entries for the item's remaining quantity and price, then removes it
// @Tags items
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Success 204 "Deleted successfully"
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Router /items/{id} [delete]
func DeleteItemHandler(w http.ResponseWriter, r *http.Request) {
	caller, err := callerIdentity(r)
	if err != nil {
		http.Error(w, "missing or invalid token", http.StatusUnauthorized)
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid item ID", http.StatusBadRequest)
		return
	}

	item, err := writableItem(id, caller)
	if err != nil {
		if errors.Is(err, repo.ErrItemNotFound) {
			http.Error(w, "item not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch item", http.StatusInternalServerError)
		return
	}

	logs := audit.OnDelete(item, caller.UserID)
	if err := itemRepo.DeleteWithLogs(id, logs); err != nil {
		if errors.Is(err, repo.ErrItemNotFound) {
			http.Error(w, "item not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not delete item", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// LowStockHandler godoc
// @Summary List visible items below a stock threshold
// @Tags items
// @Produce json
// @Security BearerAuth
// @Param threshold query int false "Quantity cutoff (exclusive), default 5"
// @Success 200 {array} ItemResponse
// @Failure 400 {string} string "Invalid threshold"
// @Router /items/low_stock [get]
func LowStockHandler(w http.ResponseWriter, r *http.Request) {
	caller, err := callerIdentity(r)
	if err != nil {
		http.Error(w, "missing or invalid token", http.StatusUnauthorized)
		return
	}

	threshold := DefaultLowStockThreshold
	if raw := r.URL.Query().Get("threshold"); raw != "" {
		threshold, err = strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "invalid threshold", http.StatusBadRequest)
			return
		}
	}

	items, err := itemRepo.LowStock(access.OwnerScope(caller), threshold)
	if err != nil {
		http.Error(w, "could not fetch items", http.StatusInternalServerError)
		return
	}

	resp := make([]ItemResponse, len(items))
	for i, it := range items {
		resp[i] = toItemResponse(it)
	}
	writeJSON(w, http.StatusOK, resp)
}

func parseFloatPtr(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseIntPtr(s string) *int {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}

func parseTimePtr(s string) (*time.Time, bool, error) {
	if s == "" {
		return nil, false, nil
	}
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, false, err
	}
	return &ts, true, nil
}
