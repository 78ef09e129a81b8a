package repository

import (
	"context"

	"github.com/blog-platform-api/internal/database"
	"github.com/blog-platform-api/internal/models"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetActiveByID(ctx context.Context, id string) (*models.User, error)
	MarkEmailVerified(ctx context.Context, id string) error
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	List(ctx context.Context, filter models.PostFilter) ([]models.Post, *models.Pagination, error)
	ListByAuthor(ctx context.Context, authorID string) ([]models.Post, int64, error)
	// GetWithComments increments the view counter and reads the post
	// with its approved comment tree in one transaction.
	GetWithComments(ctx context.Context, id string) (*models.Post, error)
	GetOwner(ctx context.Context, id string) (string, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) (*models.Post, error)
	Delete(ctx context.Context, id string) (*models.Post, error)
	// Stats computes all aggregate counts inside one transaction so the
	// figures describe a single snapshot.
	Stats(ctx context.Context) (*models.PostStats, error)
}

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id string) (*models.Comment, error)
	GetByIDAndAuthor(ctx context.Context, id, authorID string) (*models.Comment, error)
	ListByAuthor(ctx context.Context, authorID string) ([]models.Comment, error)
	Exists(ctx context.Context, id string) (bool, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) (*models.Comment, error)
	UpdateStatus(ctx context.Context, id string, status models.CommentStatus) (*models.Comment, error)
	Delete(ctx context.Context, id string) (*models.Comment, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	User    UserRepository
	Post    PostRepository
	Comment CommentRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		User:    NewUserRepo(db),
		Post:    NewPostRepo(db),
		Comment: NewCommentRepo(db),
	}
}
