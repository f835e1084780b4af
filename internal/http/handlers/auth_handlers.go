package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/rogerio-castellano/inventory-audit/internal/access"
	"github.com/rogerio-castellano/inventory-audit/internal/auth"
	"github.com/rogerio-castellano/inventory-audit/internal/models"
	repo "github.com/rogerio-castellano/inventory-audit/internal/repo"
	"golang.org/x/crypto/bcrypt"
)

// tokenPair issues an access token plus, when a refresh store is wired, a
// single-use refresh token.
func tokenPair(r *http.Request, user models.User) (TokenPairResult, error) {
	token, err := auth.GenerateToken(user)
	if err != nil {
		return TokenPairResult{}, err
	}

	pair := TokenPairResult{Token: token}
	if refreshStore != nil {
		refresh, err := refreshStore.Issue(r.Context(), user.ID)
		if err != nil {
			return TokenPairResult{}, err
		}
		pair.RefreshToken = refresh
	}
	return pair, nil
}

// RegisterHandler godoc
// @Summary Register a new user
// @Description Creates a non-admin account and signs it in
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body CredentialsRequest true "Username and password"
// @Success 201 {object} RegisterResult
// @Failure 400 {string} string "Invalid input"
// @Failure 409 {string} string "Username taken"
// @Router /register [post]
func RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if req.Username == "" || req.Password == "" {
		http.Error(w, "username and password are required", http.StatusBadRequest)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "could not register user", http.StatusInternalServerError)
		return
	}

	user, err := userRepo.CreateUser(models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, repo.ErrDuplicatedValueUnique) {
			http.Error(w, "username already exists", http.StatusConflict)
			return
		}
		http.Error(w, "could not register user", http.StatusInternalServerError)
		return
	}

	pair, err := tokenPair(r, user)
	if err != nil {
		log.Printf("issuing tokens for %q: %v", user.Username, err)
		http.Error(w, "could not issue token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, RegisterResult{
		Message:      "User registered successfully",
		Token:        pair.Token,
		RefreshToken: pair.RefreshToken,
	})
}

// RegisterAsAdminHandler godoc
// @Summary Create a user account, optionally with admin rights
// @Description Admin only
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user body RegisterAsAdminRequest true "Account to create"
// @Success 201 {object} UserResponse
// @Failure 403 {string} string "Admin required"
// @Failure 409 {string} string "Username taken"
// @Router /admin/users [post]
func RegisterAsAdminHandler(w http.ResponseWriter, r *http.Request) {
	caller, err := callerIdentity(r)
	if err != nil {
		http.Error(w, "missing or invalid token", http.StatusUnauthorized)
		return
	}
	if !access.CanWriteUser(caller) {
		http.Error(w, "admin privileges required", http.StatusForbidden)
		return
	}

	var req RegisterAsAdminRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if req.Username == "" || req.Password == "" {
		http.Error(w, "username and password are required", http.StatusBadRequest)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "could not create user", http.StatusInternalServerError)
		return
	}

	user, err := userRepo.CreateUser(models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		IsAdmin:      req.IsAdmin,
	})
	if err != nil {
		if errors.Is(err, repo.ErrDuplicatedValueUnique) {
			http.Error(w, "username already exists", http.StatusConflict)
			return
		}
		http.Error(w, "could not create user", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, UserResponse{
		Id:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		IsAdmin:  user.IsAdmin,
	})
}

// LoginHandler godoc
// @Summary Exchange credentials for a token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body CredentialsRequest true "Username and password"
// @Success 200 {object} TokenPairResult
// @Failure 401 {string} string "Invalid credentials"
// @Router /auth/token [post]
func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	user, err := userRepo.GetByUsername(req.Username)
	if err != nil {
		// Burn a comparison anyway so a missing user costs the same as a
		// wrong password.
		bcrypt.CompareHashAndPassword([]byte("$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5B0xZ5P1r1gVf1Yo0uK3mJH0eWm4W"), []byte(req.Password))
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	pair, err := tokenPair(r, user)
	if err != nil {
		log.Printf("issuing tokens for %q: %v", user.Username, err)
		http.Error(w, "could not issue token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, pair)
}

// RefreshTokenHandler godoc
// @Summary Rotate a refresh token into a new token pair
// @Description The presented refresh token is consumed; reuse fails
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh body RefreshRequest true "Refresh token"
// @Success 200 {object} TokenPairResult
// @Failure 401 {string} string "Invalid or expired refresh token"
// @Router /auth/token/refresh [post]
func RefreshTokenHandler(w http.ResponseWriter, r *http.Request) {
	if refreshStore == nil {
		http.Error(w, "refresh tokens not enabled", http.StatusNotImplemented)
		return
	}

	var req RefreshRequest
	if err := readJSON(w, r, &req); err != nil || req.RefreshToken == "" {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	userID, err := refreshStore.Redeem(r.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrRefreshTokenInvalid) {
			http.Error(w, "invalid or expired refresh token", http.StatusUnauthorized)
			return
		}
		http.Error(w, "could not refresh token", http.StatusInternalServerError)
		return
	}

	user, err := userRepo.GetByID(userID)
	if err != nil {
		http.Error(w, "invalid or expired refresh token", http.StatusUnauthorized)
		return
	}

	pair, err := tokenPair(r, user)
	if err != nil {
		log.Printf("issuing tokens for %q: %v", user.Username, err)
		http.Error(w, "could not issue token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, pair)
}
