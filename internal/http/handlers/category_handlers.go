package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rogerio-castellano/inventory-audit/internal/access"
	"github.com/rogerio-castellano/inventory-audit/internal/models"
	repo "github.com/rogerio-castellano/inventory-audit/internal/repo"
)

func toCategoryResponse(c models.Category) CategoryResponse {
	return CategoryResponse{Id: c.ID, Name: c.Name, Description: c.Description}
}

// GetCategoriesHandler godoc
// @Summary List categories
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Success 200 {array} CategoryResponse
// @Router /categories [get]
func GetCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	categories, err := categoryRepo.GetAll()
	if err != nil {
		http.Error(w, "could not fetch categories", http.StatusInternalServerError)
		return
	}

	resp := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		resp[i] = toCategoryResponse(c)
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetCategoryByIDHandler godoc
// @Summary Get a category by ID
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Success 200 {object} CategoryResponse
// @Failure 404 {string} string "Not found"
// @Router /categories/{id} [get]
func GetCategoryByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid category ID", http.StatusBadRequest)
		return
	}

	category, err := categoryRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrCategoryNotFound) {
			http.Error(w, "category not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch category", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, toCategoryResponse(category))
}

// CreateCategoryHandler godoc
// @Summary Create a category
// @Description Admin only
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param category body CategoryRequest true "Category to add"
// @Success 201 {object} CategoryResponse
// @Failure 403 {string} string "Admin required"
// @Failure 409 {string} string "Name taken"
// @Router /categories [post]
func CreateCategoryHandler(w http.ResponseWriter, r *http.Request) {
	caller, err := callerIdentity(r)
	if err != nil {
		http.Error(w, "missing or invalid token", http.StatusUnauthorized)
		return
	}
	if !access.CanWriteCategory(caller) {
		http.Error(w, "admin privileges required", http.StatusForbidden)
		return
	}

	var req CategoryRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors := validateCategory(req)
	if len(validationErrors) > 0 {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(validationErrors)
		return
	}

	category, err := categoryRepo.Create(models.Category{Name: req.Name, Description: req.Description})
	if err != nil {
		if errors.Is(err, repo.ErrDuplicatedValueUnique) {
			http.Error(w, "category name already exists", http.StatusConflict)
			return
		}
		http.Error(w, "could not create category", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, toCategoryResponse(category))
}

// UpdateCategoryHandler godoc
// @Summary Update a category
// @Description Admin only
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Param category body CategoryRequest true "New values"
// @Success 200 {object} CategoryResponse
// @Failure 403 {string} string "Admin required"
// @Failure 404 {string} string "Not found"
// @Router /categories/{id} [put]
func UpdateCategoryHandler(w http.ResponseWriter, r *http.Request) {
	caller, err := callerIdentity(r)
	if err != nil {
		http.Error(w, "missing or invalid token", http.StatusUnauthorized)
		return
	}
	if !access.CanWriteCategory(caller) {
		http.Error(w, "admin privileges required", http.StatusForbidden)
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid category ID", http.StatusBadRequest)
		return
	}

	var req CategoryRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors := validateCategory(req)
	if len(validationErrors) > 0 {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(validationErrors)
		return
	}

	category, err := categoryRepo.Update(models.Category{ID: id, Name: req.Name, Description: req.Description})
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrCategoryNotFound):
			http.Error(w, "category not found", http.StatusNotFound)
		case errors.Is(err, repo.ErrDuplicatedValueUnique):
			http.Error(w, "category name already exists", http.StatusConflict)
		default:
			http.Error(w, "could not update category", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, toCategoryResponse(category))
}

// DeleteCategoryHandler godoc
// @Summary Delete a category
// @Description Admin only; items referencing the category are detached, not deleted
// @Tags categories
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Success 204 "Deleted successfully"
// @Failure 403 {string} string "Admin required"
// @Failure 404 {string} string "Not found"
// @Router /categories/{id} [delete]
func DeleteCategoryHandler(w http.ResponseWriter, r *http.Request) {
	caller, err := callerIdentity(r)
	if err != nil {
		http.Error(w, "missing or invalid token", http.StatusUnauthorized)
		return
	}
	if !access.CanWriteCategory(caller) {
		http.Error(w, "admin privileges required", http.StatusForbidden)
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid category ID", http.StatusBadRequest)
		return
	}

	if err := categoryRepo.Delete(id); err != nil {
		if errors.Is(err, repo.ErrCategoryNotFound) {
			http.Error(w, "category not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not delete category", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
