package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"

	"github.com/rogerio-castellano/inventory-audit/internal/auth"
	api "github.com/rogerio-castellano/inventory-audit/internal/http"
	handler "github.com/rogerio-castellano/inventory-audit/internal/http/handlers"
	rl "github.com/rogerio-castellano/inventory-audit/internal/http/rate_limiter"
	"github.com/rogerio-castellano/inventory-audit/internal/models"
	"github.com/rogerio-castellano/inventory-audit/internal/repo"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"
)

var (
	adminToken string
	aliceToken string
	bobToken   string

	itemRepo     *repo.InMemoryItemRepository
	changeRepo   *repo.InMemoryChangeLogRepository
	categoryRepo *repo.InMemoryCategoryRepository
	userRepo     *repo.InMemoryUserRepository
)

func init() {
	auth.Configure("test-secret", 0)
	// The suite hammers the public endpoints far faster than a human would.
	rl.SetRate(rate.Inf, 1)
	rl.CleanupAllVisitors()
	setupTestRepos("secret")
	r := api.NewRouter()

	var err error
	if adminToken, err = generateToken(r, "admin", "secret"); err != nil {
		panic(fmt.Sprintf("error generating admin token: %v", err))
	}
	if aliceToken, err = generateToken(r, "alice", "secret"); err != nil {
		panic(fmt.Sprintf("error generating alice token: %v", err))
	}
	if bobToken, err = generateToken(r, "bob", "secret"); err != nil {
		panic(fmt.Sprintf("error generating bob token: %v", err))
	}
}

func setupTestRepos(password string) {
	changeRepo = repo.NewInMemoryChangeLogRepository()
	handler.SetChangeLogRepo(changeRepo)

	itemRepo = repo.NewInMemoryItemRepository(changeRepo)
	handler.SetItemRepo(itemRepo)

	categoryRepo = repo.NewInMemoryCategoryRepository()
	categoryRepo.SetItemRepository(itemRepo)
	itemRepo.SetCategoryRepository(categoryRepo)
	handler.SetCategoryRepo(categoryRepo)

	userRepo = repo.NewInMemoryUserRepository()
	handler.SetUserRepo(userRepo)

	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	userRepo.CreateUser(models.User{Username: "admin", PasswordHash: string(hash), IsAdmin: true})
	userRepo.CreateUser(models.User{Username: "alice", PasswordHash: string(hash)})
	userRepo.CreateUser(models.User{Username: "bob", PasswordHash: string(hash)})

	metricsRepo := repo.NewInMemoryMetricsRepository()
	metricsRepo.SetRepositories(itemRepo, changeRepo)
	handler.SetMetricsRepo(metricsRepo)
}

func clearAllItems() {
	itemRepo.Clear()
	changeRepo.Clear()
}

func clearAllCategories() {
	categoryRepo.Clear()
}

func generateToken(r http.Handler, username, password string) (string, error) {
	payload := handler.CredentialsRequest{Username: username, Password: password}
	body, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/auth/token", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp handler.TokenPairResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		return "", fmt.Errorf("token decoding failed: %v", err)
	}
	return resp.Token, nil
}

func doJSON(r http.Handler, method, path, token string, payload any) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		json.NewEncoder(&body).Encode(payload)
	}
	req := httptest.NewRequest(method, path, &body)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createItem(r http.Handler, token string, item handler.ItemRequest) *httptest.ResponseRecorder {
	return doJSON(r, http.MethodPost, "/items", token, item)
}

func createItemID(r http.Handler, token string, item handler.ItemRequest) int {
	w := createItem(r, token, item)
	if w.Code != http.StatusCreated {
		panic(fmt.Sprintf("createItemID: expected 201, got %d: %s", w.Code, w.Body.String()))
	}
	var resp handler.ItemResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		panic(fmt.Sprintf("createItemID: decoding response: %v", err))
	}
	return resp.Id
}

func updateItem(r http.Handler, token string, id int, upd handler.ItemUpdateRequest) *httptest.ResponseRecorder {
	return doJSON(r, http.MethodPut, fmt.Sprintf("/items/%d", id), token, upd)
}

func itemHistory(r http.Handler, token string, id int) ([]handler.ChangeLogResponse, *httptest.ResponseRecorder) {
	w := doJSON(r, http.MethodGet, fmt.Sprintf("/items/%d/history", id), token, nil)
	var logs []handler.ChangeLogResponse
	json.NewDecoder(w.Body).Decode(&logs)
	return logs, w
}

func multipartCSV(csvContent string, filename string) (*bytes.Buffer, string) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, _ := writer.CreateFormFile("file", filename)
	part.Write([]byte(csvContent))

	writer.Close()
	return &buf, writer.FormDataContentType()
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func strPtr(v string) *string { return &v }
