package repository

import (
	"context"
	"errors"

	"github.com/blog-platform-api/internal/database"
	"github.com/blog-platform-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// commentRepo is the concrete implementation of CommentRepository
type commentRepo struct {
	db *database.DB
}

// NewCommentRepo creates a new comment repository
func NewCommentRepo(db *database.DB) CommentRepository {
	return &commentRepo{db: db}
}

// Create inserts a new comment, assigning an ID when none is set
func (r *commentRepo) Create(ctx context.Context, comment *models.Comment) error {
	if comment.ID == "" {
		comment.ID = uuid.NewString()
	}
	if comment.Status == "" {
		comment.Status = models.CommentStatusPending
	}
	return r.db.WithContext(ctx).Create(comment).Error
}

// GetByID retrieves a comment with its post summary attached.
// Returns (nil, nil) when no row matches.
func (r *commentRepo) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).
		Preload("Post").
		First(&comment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetByIDAndAuthor retrieves a comment filtered by both id and author.
// A miss does not reveal whether the comment exists at all.
func (r *commentRepo) GetByIDAndAuthor(ctx context.Context, id, authorID string) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).
		Where("id = ? AND author_id = ?", id, authorID).
		First(&comment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByAuthor returns an author's comments newest first, each with its
// post summary.
func (r *commentRepo) ListByAuthor(ctx context.Context, authorID string) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Preload("Post").
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// Exists checks if a comment with the given ID exists
func (r *commentRepo) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

// Update applies the given column values and returns the updated row.
// Returns (nil, nil) when the comment does not exist.
func (r *commentRepo) Update(ctx context.Context, id string, fields map[string]interface{}) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Comment{}).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.First(&comment, "id = ?", id).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// UpdateStatus transitions a comment's moderation status
func (r *commentRepo) UpdateStatus(ctx context.Context, id string, status models.CommentStatus) (*models.Comment, error) {
	return r.Update(ctx, id, map[string]interface{}{"status": status})
}

// Delete removes a comment and returns the deleted row. Returns
// (nil, nil) when the comment does not exist.
func (r *commentRepo) Delete(ctx context.Context, id string) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&comment, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Comment{}, "id = ?", id).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}
