package service

import (
	"context"

	"github.com/blog-platform-api/internal/config"
	"github.com/blog-platform-api/internal/mailer"
	"github.com/blog-platform-api/internal/models"
	"github.com/blog-platform-api/internal/repository"
	"github.com/rs/zerolog"
)

// Identity is the authenticated caller resolved from a session token
type Identity struct {
	UserID string
	Email  string
	Role   models.Role
}

// IsAdmin reports whether the identity carries the admin role
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == models.RoleAdmin
}

// RegisterRequest is an email/password signup payload
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries a freshly issued session token
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt int64        `json:"expiresAt"`
	User      *models.User `json:"user"`
}

// AuthService defines the interface for authentication operations
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*models.User, error)
	VerifyEmail(ctx context.Context, token string) (*LoginResponse, error)
	Login(ctx context.Context, email, password string) (*LoginResponse, error)
	GoogleAuthURL(state string) (string, error)
	GoogleCallback(ctx context.Context, code string) (*LoginResponse, error)
	ParseToken(token string) (*Identity, error)
}

// CreatePostRequest is a post creation payload
type CreatePostRequest struct {
	Title     string            `json:"title" binding:"required"`
	Content   string            `json:"content" binding:"required"`
	Thumbnail string            `json:"thumbnail"`
	Tags      []string          `json:"tags"`
	Status    models.PostStatus `json:"status"`
}

// PostListResult is one page of posts plus its pagination window
type PostListResult struct {
	Data       []models.Post     `json:"data"`
	Pagination models.Pagination `json:"pagination"`
}

// MyPostsResult is the caller's posts plus their total count
type MyPostsResult struct {
	Data  []models.Post `json:"data"`
	Total int64         `json:"total"`
}

// PostService defines the interface for post operations
type PostService interface {
	Create(ctx context.Context, req CreatePostRequest, authorID string) (*models.Post, error)
	List(ctx context.Context, filter models.PostFilter) (*PostListResult, error)
	GetByID(ctx context.Context, id string) (*models.Post, error)
	MyPosts(ctx context.Context, authorID string) (*MyPostsResult, error)
	Update(ctx context.Context, postID string, upd models.PostUpdate, requesterID string, isAdmin bool) (*models.Post, error)
	Delete(ctx context.Context, postID, requesterID string, isAdmin bool) (*models.Post, error)
	Stats(ctx context.Context) (*models.PostStats, error)
}

// CreateCommentRequest is a comment creation payload. The author is
// always the authenticated caller, never part of the payload.
type CreateCommentRequest struct {
	Content  string  `json:"content" binding:"required"`
	PostID   string  `json:"postId" binding:"required"`
	ParentID *string `json:"parentId"`
}

// CommentService defines the interface for comment operations
type CommentService interface {
	Create(ctx context.Context, req CreateCommentRequest, authorID string) (*models.Comment, error)
	GetByID(ctx context.Context, id string) (*models.Comment, error)
	ListByAuthor(ctx context.Context, authorID string) ([]models.Comment, error)
	Update(ctx context.Context, commentID string, upd models.CommentUpdate, requesterID string) (*models.Comment, error)
	Delete(ctx context.Context, commentID, requesterID string) (*models.Comment, error)
	Moderate(ctx context.Context, commentID string, status models.CommentStatus) (*models.Comment, error)
}

// Services holds all service interfaces
type Services struct {
	Auth    AuthService
	Post    PostService
	Comment CommentService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, cfg *config.Config, log zerolog.Logger, mail mailer.Mailer) *Services {
	return &Services{
		Auth:    newAuthService(repos.User, &cfg.Auth, mail, log),
		Post:    newPostService(repos.Post, repos.User, log),
		Comment: newCommentService(repos.Comment, repos.Post, log),
	}
}
