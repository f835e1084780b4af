package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rogerio-castellano/inventory-audit/internal/access"
	"github.com/rogerio-castellano/inventory-audit/internal/models"
	repo "github.com/rogerio-castellano/inventory-audit/internal/repo"
)

func toUserResponse(u models.User) UserResponse {
	return UserResponse{Id: u.ID, Username: u.Username, Email: u.Email, IsAdmin: u.IsAdmin}
}

// GetUsersHandler godoc
// @Summary List users
// @Description Open to any authenticated caller; only writes are admin-gated
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} UserResponse
// @Router /users [get]
func GetUsersHandler(w http.ResponseWriter, r *http.Request) {
	if _, err := callerIdentity(r); err != nil {
		http.Error(w, "missing or invalid token", http.StatusUnauthorized)
		return
	}

	users, err := userRepo.GetAll()
	if err != nil {
		http.Error(w, "could not fetch users", http.StatusInternalServerError)
		return
	}

	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = toUserResponse(u)
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetUserByIDHandler godoc
// @Summary Get a user by ID
// @Description Open to any authenticated caller
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} UserResponse
// @Failure 404 {string} string "Not found"
// @Router /users/{id} [get]
func GetUserByIDHandler(w http.ResponseWriter, r *http.Request) {
	if _, err := callerIdentity(r); err != nil {
		http.Error(w, "missing or invalid token", http.StatusUnauthorized)
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid user ID", http.StatusBadRequest)
		return
	}

	user, err := userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch user", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

// DeleteUserHandler godoc
// @Summary Delete a user account
// @Description Admin only; the account's items are removed with it, recorded change history stays
// @Tags users
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 204 "Deleted successfully"
// @Failure 403 {string} string "Admin required"
// @Failure 404 {string} string "Not found"
// @Router /users/{id} [delete]
func DeleteUserHandler(w http.ResponseWriter, r *http.Request) {
	caller, err := callerIdentity(r)
	if err != nil {
		http.Error(w, "missing or invalid token", http.StatusUnauthorized)
		return
	}
	if !access.CanWriteUser(caller) {
		http.Error(w, "admin privileges required", http.StatusForbidden)
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid user ID", http.StatusBadRequest)
		return
	}
	if id == caller.UserID {
		http.Error(w, "cannot delete your own account", http.StatusBadRequest)
		return
	}

	if err := userRepo.DeleteUser(id); err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not delete user", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
