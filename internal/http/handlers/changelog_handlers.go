package handlers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rogerio-castellano/inventory-audit/internal/access"
	"github.com/rogerio-castellano/inventory-audit/internal/models"
	repo "github.com/rogerio-castellano/inventory-audit/internal/repo"
)

// exportLimit is the explicit limit passed for full-dump reads (audit view,
// exports); it overrides the repository's default page cap.
const exportLimit = 1_000_000

func toChangeLogResponse(c models.ChangeLog) ChangeLogResponse {
	return ChangeLogResponse{
		ID:              c.ID,
		ItemID:          c.ItemID,
		ItemName:        c.ItemName,
		UserID:          c.UserID,
		FieldChanged:    c.FieldChanged,
		ChangeType:      c.ChangeType,
		OldValue:        c.OldValue,
		NewValue:        c.NewValue,
		QuantityChanged: c.QuantityChanged,
		CreatedAt:       c.CreatedAt.Format(time.RFC3339),
	}
}

func changeLogFilterFromQuery(r *http.Request, caller access.Identity) repo.ChangeLogFilter {
	q := r.URL.Query()
	return repo.ChangeLogFilter{
		OwnerID:      access.OwnerScope(caller),
		ItemID:       parseIntPtr(q.Get("item")),
		FieldChanged: q.Get("field"),
		ChangeType:   q.Get("type"),
		Search:       q.Get("search"),
		OrderBy:      q.Get("orderBy"),
		Descending:   q.Get("desc") != "false",
		Offset:       parseIntPtr(q.Get("offset")),
		Limit:        parseIntPtr(q.Get("limit")),
	}
}

// GetChangeLogsHandler godoc
// @Summary List change-log entries visible to the caller
// @Description Newest first by default; entries for deleted items remain visible to their former owner. Without an explicit limit the page is capped at 100 rows; Meta.TotalCount always carries the full match count.
// @Tags changes
// @Produce json
// @Security BearerAuth
// @Param item query int false "Filter by item ID"
// @Param field query string false "Filter by changed field (quantity or price)"
// @Param type query string false "Filter by change type (restock, sale, increase, decrease, delete)"
// @Param search query string false "Search by item name"
// @Param orderBy query string false "Order by created_at or item_name"
// @Param desc query bool false "Descending order (default true)"
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination"
// @Success 200 {object} ChangeLogsSearchResult
// @Router /changes [get]
func GetChangeLogsHandler(w http.ResponseWriter, r *http.Request) {
	caller, err := callerIdentity(r)
	if err != nil {
		http.Error(w, "missing or invalid token", http.StatusUnauthorized)
		return
	}

	logs, total, err := changeRepo.Filter(changeLogFilterFromQuery(r, caller))
	if err != nil {
		http.Error(w, "could not fetch change logs", http.StatusInternalServerError)
		return
	}

	resp := ChangeLogsSearchResult{
		Data: make([]ChangeLogResponse, len(logs)),
		Meta: Meta{TotalCount: total},
	}
	for i, c := range logs {
		resp.Data[i] = toChangeLogResponse(c)
	}
	writeJSON(w, http.StatusOK, resp)
}

// ExportChangeLogsHandler godoc
// @Summary Export change-log entries as CSV or JSON
// @Tags changes
// @Produce text/csv
// @Security BearerAuth
// @Param format query string false "csv (default) or json"
// @Success 200 {string} string "Exported data"
// @Router /changes/export [get]
func ExportChangeLogsHandler(w http.ResponseWriter, r *http.Request) {
	caller, err := callerIdentity(r)
	if err != nil {
		http.Error(w, "missing or invalid token", http.StatusUnauthorized)
		return
	}

	filter := changeLogFilterFromQuery(r, caller)
	// Exports are full dumps unless the caller paginates explicitly.
	if filter.Limit == nil {
		noLimit := exportLimit
		filter.Limit = &noLimit
	}

	logs, _, err := changeRepo.Filter(filter)
	if err != nil {
		http.Error(w, "could not fetch change logs", http.StatusInternalServerError)
		return
	}

	if r.URL.Query().Get("format") == "json" {
		resp := make([]ChangeLogResponse, len(logs))
		for i, c := range logs {
			resp[i] = toChangeLogResponse(c)
		}
		w.Header().Set("Content-Disposition", `attachment; filename="change_logs.json"`)
		writeJSON(w, http.StatusOK, resp)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="change_logs.csv"`)

	cw := csv.NewWriter(w)
	cw.Write([]string{"id", "item_id", "item_name", "user_id", "field_changed", "change_type", "old_value", "new_value", "quantity_changed", "created_at"})
	for _, c := range logs {
		itemID := ""
		if c.ItemID != nil {
			itemID = strconv.Itoa(*c.ItemID)
		}
		qty := ""
		if c.QuantityChanged != nil {
			qty = strconv.Itoa(*c.QuantityChanged)
		}
		cw.Write([]string{
			strconv.Itoa(c.ID),
			itemID,
			c.ItemName,
			strconv.Itoa(c.UserID),
			c.FieldChanged,
			c.ChangeType,
			fmt.Sprintf("%.2f", c.OldValue),
			fmt.Sprintf("%.2f", c.NewValue),
			qty,
			c.CreatedAt.Format(time.RFC3339),
		})
	}
	cw.Flush()
}

// ItemHistoryHandler godoc
// @Summary Change history for one item, newest first
// @Tags items
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Success 200 {array} ChangeLogResponse
// @Failure 404 {string} string "Not found"
// @Router /items/{id}/history [get]
func ItemHistoryHandler(w http.ResponseWriter, r *http.Request) {
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

	if _, err := visibleItem(id, caller); err != nil {
		if errors.Is(err, repo.ErrItemNotFound) {
			http.Error(w, "item not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch item", http.StatusInternalServerError)
		return
	}

	logs, _, err := changeRepo.Filter(repo.ChangeLogFilter{
		OwnerID:    access.OwnerScope(caller),
		ItemID:     &id,
		Descending: true,
	})
	if err != nil {
		http.Error(w, "could not fetch change logs", http.StatusInternalServerError)
		return
	}

	resp := make([]ChangeLogResponse, len(logs))
	for i, c := range logs {
		resp[i] = toChangeLogResponse(c)
	}
	writeJSON(w, http.StatusOK, resp)
}

// AuditHandler godoc
// @Summary Change activity across the caller's inventory
// @Description All visible change-log entries, newest first; pass limit to truncate
// @Tags items
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum entries; all by default"
// @Success 200 {array} ChangeLogResponse
// @Router /items/audit [get]
func AuditHandler(w http.ResponseWriter, r *http.Request) {
	caller, err := callerIdentity(r)
	if err != nil {
		http.Error(w, "missing or invalid token", http.StatusUnauthorized)
		return
	}

	// The audit view is a full dump by default, unlike the paginated /changes
	// listing.
	limit := exportLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
	}

	logs, _, err := changeRepo.Filter(repo.ChangeLogFilter{
		OwnerID:    access.OwnerScope(caller),
		Descending: true,
		Limit:      &limit,
	})
	if err != nil {
		http.Error(w, "could not fetch change logs", http.StatusInternalServerError)
		return
	}

	resp := make([]ChangeLogResponse, len(logs))
	for i, c := range logs {
		resp[i] = toChangeLogResponse(c)
	}
	writeJSON(w, http.StatusOK, resp)
}
