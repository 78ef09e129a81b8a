package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/blog-platform-api/internal/api"
	"github.com/blog-platform-api/internal/config"
	"github.com/blog-platform-api/internal/mocks"
	"github.com/blog-platform-api/internal/models"
	"github.com/blog-platform-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func setupTestRouter() (*gin.Engine, *mocks.MockAuthService, *mocks.MockPostService, *mocks.MockCommentService) {
	gin.SetMode(gin.TestMode)

	mockAuth := mocks.NewMockAuthService()
	mockPost := mocks.NewMockPostService()
	mockComment := mocks.NewMockCommentService()

	mockAuth.Tokens["user-token"] = &service.Identity{UserID: "user-1", Email: "user@example.com", Role: models.RoleUser}
	mockAuth.Tokens["admin-token"] = &service.Identity{UserID: "admin-1", Email: "admin@example.com", Role: models.RoleAdmin}

	services := &service.Services{
		Auth:    mockAuth,
		Post:    mockPost,
		Comment: mockComment,
	}

	cfg := &config.Config{
		Server: config.ServerConfig{Port: "8080"},
	}

	router := api.NewRouter(services, cfg, zerolog.Nop())
	return router, mockAuth, mockPost, mockComment
}

func doRequest(router *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	router, _, _, _ := setupTestRouter()

	w := doRequest(router, "GET", "/health", "", "")
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)

	if response["status"] != "healthy" {
		t.Errorf("Expected status 'healthy', got %v", response["status"])
	}
	if response["service"] != "blog-platform-api" {
		t.Errorf("Expected service name, got %v", response["service"])
	}
}

func TestListPostsIsPublic(t *testing.T) {
	router, _, mockPost, _ := setupTestRouter()

	var captured models.PostFilter
	mockPost.ListFunc = func(ctx context.Context, filter models.PostFilter) (*service.PostListResult, error) {
		captured = filter
		return &service.PostListResult{
			Data:       []models.Post{},
			Pagination: models.Pagination{Page: filter.Page, Limit: filter.Limit},
		}, nil
	}

	w := doRequest(router, "GET", "/posts?tags=go,web&isFeatured=true&page=2&limit=5", "", "")
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	if len(captured.Tags) != 2 || captured.Tags[0] != "go" || captured.Tags[1] != "web" {
		t.Errorf("Expected tags [go web], got %v", captured.Tags)
	}
	if captured.IsFeatured == nil || !*captured.IsFeatured {
		t.Error("Expected isFeatured=true to be parsed")
	}
	if captured.Page != 2 || captured.Limit != 5 {
		t.Errorf("Expected page 2 limit 5, got page %d limit %d", captured.Page, captured.Limit)
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	if _, ok := response["data"]; !ok {
		t.Error("Expected a data field in the listing response")
	}
	if _, ok := response["pagination"]; !ok {
		t.Error("Expected a pagination field in the listing response")
	}
}

func TestCreatePostRequiresAuth(t *testing.T) {
	router, _, _, _ := setupTestRouter()

	w := doRequest(router, "POST", "/posts", "", `{"title":"Hello","content":"Body"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	if response["error"] != "authentication required" {
		t.Errorf("Expected 'authentication required', got %v", response["error"])
	}
}

func TestInvalidTokenIsRejected(t *testing.T) {
	router, _, _, _ := setupTestRouter()

	// Even public routes reject a present but invalid token
	w := doRequest(router, "GET", "/posts", "bogus-token", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	if response["message"] != "Authentication failed" {
		t.Errorf("Expected 'Authentication failed', got %v", response["message"])
	}
}

func TestCreatePostAsUser(t *testing.T) {
	router, _, mockPost, _ := setupTestRouter()

	var gotAuthor string
	mockPost.CreateFunc = func(ctx context.Context, req service.CreatePostRequest, authorID string) (*models.Post, error) {
		gotAuthor = authorID
		return &models.Post{ID: "p-1", Title: req.Title, AuthorID: authorID}, nil
	}

	w := doRequest(router, "POST", "/posts", "user-token", `{"title":"Hello","content":"Body","tags":["go"]}`)
	if w.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", w.Code)
	}
	if gotAuthor != "user-1" {
		t.Errorf("Expected author user-1, got %q", gotAuthor)
	}
}

func TestAdminCannotCreatePosts(t *testing.T) {
	router, _, _, _ := setupTestRouter()

	w := doRequest(router, "POST", "/posts", "admin-token", `{"title":"Hello","content":"Body"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestStatsIsAdminOnly(t *testing.T) {
	router, _, mockPost, _ := setupTestRouter()
	mockPost.StatsFunc = func(ctx context.Context) (*models.PostStats, error) {
		return &models.PostStats{TotalPosts: 7}, nil
	}

	w := doRequest(router, "GET", "/posts/stats", "user-token", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for plain user, got %d", w.Code)
	}

	w = doRequest(router, "GET", "/posts/stats", "admin-token", "")
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200 for admin, got %d", w.Code)
	}

	var stats models.PostStats
	json.Unmarshal(w.Body.Bytes(), &stats)
	if stats.TotalPosts != 7 {
		t.Errorf("Expected 7 total posts, got %d", stats.TotalPosts)
	}
}

func TestMyPostsRequiresAuth(t *testing.T) {
	router, _, _, _ := setupTestRouter()

	w := doRequest(router, "GET", "/posts/my-posts", "", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}

	w = doRequest(router, "GET", "/posts/my-posts", "user-token", "")
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
}

func TestCreateCommentRequiresAuth(t *testing.T) {
	router, _, _, _ := setupTestRouter()
	body := `{"content":"Nice","postId":"5e0bf1aa-8c67-43b6-9b75-8e3f2f9dca84"}`

	w := doRequest(router, "POST", "/comments", "", body)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}

	w = doRequest(router, "POST", "/comments", "user-token", body)
	if w.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", w.Code)
	}
}

func TestModerationRouteAdmitsUsersOnly(t *testing.T) {
	router, _, _, mockComment := setupTestRouter()

	var gotStatus models.CommentStatus
	mockComment.ModerateFunc = func(ctx context.Context, commentID string, status models.CommentStatus) (*models.Comment, error) {
		gotStatus = status
		return &models.Comment{ID: commentID, Status: status}, nil
	}

	w := doRequest(router, "PATCH", "/comments/moderate/c-1", "user-token", `{"status":"APPROVED"}`)
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200 for user, got %d", w.Code)
	}
	if gotStatus != models.CommentStatusApproved {
		t.Errorf("Expected status APPROVED, got %s", gotStatus)
	}

	w = doRequest(router, "PATCH", "/comments/moderate/c-1", "admin-token", `{"status":"APPROVED"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for admin, got %d", w.Code)
	}
}

func TestGetCommentIsPublic(t *testing.T) {
	router, _, _, _ := setupTestRouter()

	w := doRequest(router, "GET", "/comments/c-1", "", "")
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
}

func TestGoogleRedirectSetsStateCookie(t *testing.T) {
	router, _, _, _ := setupTestRouter()

	w := doRequest(router, "GET", "/auth/google", "", "")
	if w.Code != http.StatusTemporaryRedirect {
		t.Errorf("Expected status 307, got %d", w.Code)
	}
	if w.Header().Get("Location") == "" {
		t.Error("Expected a redirect location")
	}

	found := false
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "oauth_state" && cookie.Value != "" {
			found = true
		}
	}
	if !found {
		t.Error("Expected an oauth_state cookie to be set")
	}
}

func TestGoogleCallbackRejectsMissingState(t *testing.T) {
	router, _, _, _ := setupTestRouter()

	w := doRequest(router, "GET", "/auth/google/callback?state=whatever&code=abc", "", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestUnknownRoute(t *testing.T) {
	router, _, _, _ := setupTestRouter()

	w := doRequest(router, "GET", "/nope", "", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	if response["error"] != "route not found" {
		t.Errorf("Expected 'route not found', got %v", response["error"])
	}
}
