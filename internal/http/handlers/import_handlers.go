package handlers

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/rogerio-castellano/inventory-audit/internal/audit"
	"github.com/rogerio-castellano/inventory-audit/internal/models"
)

// importColumns is the expected CSV header for bulk item import.
var importColumns = []string{"name", "description", "quantity", "price", "category_id"}

// ImportItemsHandler godoc
// @Summary Bulk-import items from a CSV file
// @Description Rows import independently: valid rows are created (with creation change-log entries), invalid rows are reported back. All imported items belong to the caller.
// @Tags items
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "CSV with columns name, description, quantity, price, category_id"
// @Success 200 {object} ImportItemsResult
// @Failure 400 {string} string "Malformed CSV"
// @Router /items/import [post]
func ImportItemsHandler(w http.ResponseWriter, r *http.Request) {
	caller, err := callerIdentity(r)
	if err != nil {
		http.Error(w, "missing or invalid token", http.StatusUnauthorized)
		return
	}

	var src io.Reader = r.Body
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		file, _, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "missing file field", http.StatusBadRequest)
			return
		}
		defer file.Close()
		src = file
	}

	reader := csv.NewReader(src)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		http.Error(w, "could not read CSV header", http.StatusBadRequest)
		return
	}
	if len(header) < len(importColumns) {
		http.Error(w, fmt.Sprintf("expected columns: %s", strings.Join(importColumns, ", ")), http.StatusBadRequest)
		return
	}

	result := ImportItemsResult{Errors: []ItemValidationError{}}
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Errors = append(result.Errors, ItemValidationError{
				Field:       fmt.Sprintf("line %d", line),
				Description: "malformed row",
			})
			continue
		}

		quantity, err := strconv.Atoi(strings.TrimSpace(record[2]))
		if err != nil {
			result.Errors = append(result.Errors, ItemValidationError{
				Field:       fmt.Sprintf("line %d", line),
				Description: "quantity must be an integer",
			})
			continue
		}
		price, err := strconv.ParseFloat(strings.TrimSpace(record[3]), 64)
		if err != nil {
			result.Errors = append(result.Errors, ItemValidationError{
				Field:       fmt.Sprintf("line %d", line),
				Description: "price must be a number",
			})
			continue
		}

		var categoryID *int
		if raw := strings.TrimSpace(record[4]); raw != "" {
			id, err := strconv.Atoi(raw)
			if err != nil {
				result.Errors = append(result.Errors, ItemValidationError{
					Field:       fmt.Sprintf("line %d", line),
					Description: "category_id must be an integer",
				})
				continue
			}
			if _, err := categoryRepo.GetByID(id); err != nil {
				result.Errors = append(result.Errors, ItemValidationError{
					Field:       fmt.Sprintf("line %d", line),
					Description: "category not found",
				})
				continue
			}
			categoryID = &id
		}

		name := strings.TrimSpace(record[0])
		if rowErrs := validateItem(name, quantity, price); len(rowErrs) > 0 {
			for _, e := range rowErrs {
				result.Errors = append(result.Errors, ItemValidationError{
					Field:       fmt.Sprintf("line %d: %s", line, e.Field),
					Description: e.Description,
				})
			}
			continue
		}

		item := models.InventoryItem{
			UserID:      caller.UserID,
			Name:        name,
			Description: strings.TrimSpace(record[1]),
			Quantity:    quantity,
			Price:       price,
			CategoryID:  categoryID,
		}
		if _, err := itemRepo.CreateWithLogs(item, audit.OnCreate(item, caller.UserID)); err != nil {
			result.Errors = append(result.Errors, ItemValidationError{
				Field:       fmt.Sprintf("line %d", line),
				Description: "could not store item",
			})
			continue
		}
		result.ImportedItemsCount++
	}

	writeJSON(w, http.StatusOK, result)
}
