package mocks

import (
	"context"

	"github.com/blog-platform-api/internal/apperr"
	"github.com/blog-platform-api/internal/models"
	"github.com/blog-platform-api/internal/service"
)

// MockAuthService is a mock implementation of service.AuthService.
// Tokens maps bearer token strings to canned identities.
type MockAuthService struct {
	Tokens         map[string]*service.Identity
	RegisterFunc   func(ctx context.Context, req service.RegisterRequest) (*models.User, error)
	LoginFunc      func(ctx context.Context, email, password string) (*service.LoginResponse, error)
	VerifyFunc     func(ctx context.Context, token string) (*service.LoginResponse, error)
	GoogleAuthFunc func(state string) (string, error)
	GoogleCbFunc   func(ctx context.Context, code string) (*service.LoginResponse, error)
}

func NewMockAuthService() *MockAuthService {
	return &MockAuthService{Tokens: make(map[string]*service.Identity)}
}

func (m *MockAuthService) Register(ctx context.Context, req service.RegisterRequest) (*models.User, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, req)
	}
	return &models.User{Email: req.Email, Name: req.Name, Role: models.RoleUser}, nil
}

func (m *MockAuthService) VerifyEmail(ctx context.Context, token string) (*service.LoginResponse, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, token)
	}
	return &service.LoginResponse{Token: "verified"}, nil
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*service.LoginResponse, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return &service.LoginResponse{Token: "session"}, nil
}

func (m *MockAuthService) GoogleAuthURL(state string) (string, error) {
	if m.GoogleAuthFunc != nil {
		return m.GoogleAuthFunc(state)
	}
	return "https://accounts.google.com/o/oauth2/auth?state=" + state, nil
}

func (m *MockAuthService) GoogleCallback(ctx context.Context, code string) (*service.LoginResponse, error) {
	if m.GoogleCbFunc != nil {
		return m.GoogleCbFunc(ctx, code)
	}
	return &service.LoginResponse{Token: "session"}, nil
}

func (m *MockAuthService) ParseToken(token string) (*service.Identity, error) {
	ident, ok := m.Tokens[token]
	if !ok {
		return nil, apperr.Unauthorized("invalid or expired token")
	}
	return ident, nil
}

// MockPostService is a mock implementation of service.PostService
type MockPostService struct {
	CreateFunc  func(ctx context.Context, req service.CreatePostRequest, authorID string) (*models.Post, error)
	ListFunc    func(ctx context.Context, filter models.PostFilter) (*service.PostListResult, error)
	GetByIDFunc func(ctx context.Context, id string) (*models.Post, error)
	MyPostsFunc func(ctx context.Context, authorID string) (*service.MyPostsResult, error)
	UpdateFunc  func(ctx context.Context, postID string, upd models.PostUpdate, requesterID string, isAdmin bool) (*models.Post, error)
	DeleteFunc  func(ctx context.Context, postID, requesterID string, isAdmin bool) (*models.Post, error)
	StatsFunc   func(ctx context.Context) (*models.PostStats, error)
}

func NewMockPostService() *MockPostService { return &MockPostService{} }

func (m *MockPostService) Create(ctx context.Context, req service.CreatePostRequest, authorID string) (*models.Post, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, req, authorID)
	}
	return &models.Post{Title: req.Title, Content: req.Content, AuthorID: authorID}, nil
}

func (m *MockPostService) List(ctx context.Context, filter models.PostFilter) (*service.PostListResult, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return &service.PostListResult{
		Data:       []models.Post{},
		Pagination: models.Pagination{Page: filter.Page, Limit: filter.Limit},
	}, nil
}

func (m *MockPostService) GetByID(ctx context.Context, id string) (*models.Post, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return &models.Post{ID: id}, nil
}

func (m *MockPostService) MyPosts(ctx context.Context, authorID string) (*service.MyPostsResult, error) {
	if m.MyPostsFunc != nil {
		return m.MyPostsFunc(ctx, authorID)
	}
	return &service.MyPostsResult{Data: []models.Post{}}, nil
}

func (m *MockPostService) Update(ctx context.Context, postID string, upd models.PostUpdate, requesterID string, isAdmin bool) (*models.Post, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, postID, upd, requesterID, isAdmin)
	}
	return &models.Post{ID: postID}, nil
}

func (m *MockPostService) Delete(ctx context.Context, postID, requesterID string, isAdmin bool) (*models.Post, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, postID, requesterID, isAdmin)
	}
	return &models.Post{ID: postID}, nil
}

func (m *MockPostService) Stats(ctx context.Context) (*models.PostStats, error) {
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx)
	}
	return &models.PostStats{}, nil
}

// MockCommentService is a mock implementation of service.CommentService
type MockCommentService struct {
	CreateFunc       func(ctx context.Context, req service.CreateCommentRequest, authorID string) (*models.Comment, error)
	GetByIDFunc      func(ctx context.Context, id string) (*models.Comment, error)
	ListByAuthorFunc func(ctx context.Context, authorID string) ([]models.Comment, error)
	UpdateFunc       func(ctx context.Context, commentID string, upd models.CommentUpdate, requesterID string) (*models.Comment, error)
	DeleteFunc       func(ctx context.Context, commentID, requesterID string) (*models.Comment, error)
	ModerateFunc     func(ctx context.Context, commentID string, status models.CommentStatus) (*models.Comment, error)
}

func NewMockCommentService() *MockCommentService { return &MockCommentService{} }

func (m *MockCommentService) Create(ctx context.Context, req service.CreateCommentRequest, authorID string) (*models.Comment, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, req, authorID)
	}
	return &models.Comment{Content: req.Content, PostID: req.PostID, AuthorID: authorID}, nil
}

func (m *MockCommentService) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return &models.Comment{ID: id}, nil
}

func (m *MockCommentService) ListByAuthor(ctx context.Context, authorID string) ([]models.Comment, error) {
	if m.ListByAuthorFunc != nil {
		return m.ListByAuthorFunc(ctx, authorID)
	}
	return []models.Comment{}, nil
}

func (m *MockCommentService) Update(ctx context.Context, commentID string, upd models.CommentUpdate, requesterID string) (*models.Comment, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, commentID, upd, requesterID)
	}
	return &models.Comment{ID: commentID}, nil
}

func (m *MockCommentService) Delete(ctx context.Context, commentID, requesterID string) (*models.Comment, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, commentID, requesterID)
	}
	return &models.Comment{ID: commentID}, nil
}

func (m *MockCommentService) Moderate(ctx context.Context, commentID string, status models.CommentStatus) (*models.Comment, error) {
	if m.ModerateFunc != nil {
		return m.ModerateFunc(ctx, commentID, status)
	}
	return &models.Comment{ID: commentID, Status: status}, nil
}

// MockMailer records verification mail instead of sending it
type MockMailer struct {
	Sent []SentMail
	Err  error
}

// SentMail is one recorded delivery
type SentMail struct {
	To        string
	VerifyURL string
}

func NewMockMailer() *MockMailer { return &MockMailer{} }

func (m *MockMailer) SendVerificationEmail(ctx context.Context, to, verifyURL string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Sent = append(m.Sent, SentMail{To: to, VerifyURL: verifyURL})
	return nil
}
