package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/blog-platform-api/internal/database"
	"github.com/blog-platform-api/internal/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// postRepo is the concrete implementation of PostRepository
type postRepo struct {
	db *database.DB
}

// NewPostRepo creates a new post repository
func NewPostRepo(db *database.DB) PostRepository {
	return &postRepo{db: db}
}

// Create inserts a new post, assigning an ID when none is set
func (r *postRepo) Create(ctx context.Context, post *models.Post) error {
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	if post.Tags == nil {
		post.Tags = pq.StringArray{}
	}
	return r.db.WithContext(ctx).Create(post).Error
}

// applyFilter translates a PostFilter into a conjunction of predicates.
// Each predicate is added only when its input is present; search is an
// OR across title, content and exact tag membership, and a tag list
// requires the post's tags to be a superset of the requested set.
func applyFilter(db *gorm.DB, f models.PostFilter) *gorm.DB {
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		db = db.Where("title ILIKE ? OR content ILIKE ? OR ? = ANY(tags)", pattern, pattern, f.Search)
	}
	if len(f.Tags) > 0 {
		db = db.Where("tags @> ?", pq.Array(f.Tags))
	}
	if f.IsFeatured != nil {
		db = db.Where("is_featured = ?", *f.IsFeatured)
	}
	if f.Status != "" {
		db = db.Where("status = ?", f.Status)
	}
	if f.AuthorID != "" {
		db = db.Where("author_id = ?", f.AuthorID)
	}
	return db
}

// orderClause resolves the requested sort into a safe ORDER BY clause
func orderClause(sortBy, sortOrder string) string {
	column, ok := models.PostSortColumns[sortBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if sortOrder == "asc" {
		direction = "ASC"
	}
	return fmt.Sprintf("%s %s", column, direction)
}

// commentCountSubquery counts the comments belonging to the outer post row
func (r *postRepo) commentCountSubquery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Select("count(*)").
		Where("comments.post_id = posts.id")
}

// List returns one page of posts matching the filter, each annotated
// with its comment count, plus pagination info computed over the same
// predicate set.
func (r *postRepo) List(ctx context.Context, f models.PostFilter) ([]models.Post, *models.Pagination, error) {
	var total int64
	if err := applyFilter(r.db.WithContext(ctx).Model(&models.Post{}), f).Count(&total).Error; err != nil {
		return nil, nil, err
	}

	var posts []models.Post
	err := applyFilter(r.db.WithContext(ctx).Model(&models.Post{}), f).
		Select("posts.*, (?) AS comment_count", r.commentCountSubquery(ctx)).
		Order(orderClause(f.SortBy, f.SortOrder)).
		Limit(f.Limit).
		Offset(f.Offset()).
		Find(&posts).Error
	if err != nil {
		return nil, nil, err
	}

	pagination := &models.Pagination{
		Total:     total,
		Page:      f.Page,
		Limit:     f.Limit,
		TotalPage: (total + int64(f.Limit) - 1) / int64(f.Limit),
	}
	return posts, pagination, nil
}

// ListByAuthor returns all posts of one author, newest first, with
// comment counts and the author's total.
func (r *postRepo) ListByAuthor(ctx context.Context, authorID string) ([]models.Post, int64, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Select("posts.*, (?) AS comment_count", r.commentCountSubquery(ctx)).
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Post{}).Where("author_id = ?", authorID).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// GetWithComments bumps the view counter and reads the post with its
// approved comment tree. Both steps run in one transaction so a read
// never observes a stale counter. Top-level comments come newest first;
// replies come oldest first; both levels are restricted to APPROVED.
// Returns (nil, nil) when the post does not exist.
func (r *postRepo) GetWithComments(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Post{}).
			Where("id = ?", id).
			UpdateColumn("views", gorm.Expr("views + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		countSub := tx.Model(&models.Comment{}).
			Select("count(*)").
			Where("comments.post_id = posts.id")

		return tx.Model(&models.Post{}).
			Select("posts.*, (?) AS comment_count", countSub).
			Preload("Comments", func(db *gorm.DB) *gorm.DB {
				return db.
					Where("parent_id IS NULL AND status = ?", models.CommentStatusApproved).
					Order("created_at DESC")
			}).
			Preload("Comments.Replies", func(db *gorm.DB) *gorm.DB {
				return db.
					Where("status = ?", models.CommentStatusApproved).
					Order("created_at ASC")
			}).
			First(&post, "id = ?", id).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// GetOwner returns the author ID of a post
func (r *postRepo) GetOwner(ctx context.Context, id string) (string, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Select("id", "author_id").
		First(&post, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return post.AuthorID, nil
}

// Update applies the given column values and returns the updated row.
// Returns (nil, nil) when the post does not exist.
func (r *postRepo) Update(ctx context.Context, id string, fields map[string]interface{}) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Post{}).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.First(&post, "id = ?", id).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Delete removes a post and returns the deleted row. Comments are
// removed by the ON DELETE CASCADE constraint. Returns (nil, nil) when
// the post does not exist.
func (r *postRepo) Delete(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&post, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, "id = ?", id).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Stats computes the aggregate snapshot inside one transaction so
// related figures cannot drift apart.
func (r *postRepo) Stats(ctx context.Context) (*models.PostStats, error) {
	var stats models.PostStats
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		counts := []struct {
			dest  *int64
			query *gorm.DB
		}{
			{&stats.TotalPosts, tx.Model(&models.Post{})},
			{&stats.PublishedPosts, tx.Model(&models.Post{}).Where("status = ?", models.PostStatusPublished)},
			{&stats.DraftPosts, tx.Model(&models.Post{}).Where("status = ?", models.PostStatusDraft)},
			{&stats.FeaturedPosts, tx.Model(&models.Post{}).Where("is_featured = ?", true)},
			{&stats.TotalComments, tx.Model(&models.Comment{})},
			{&stats.ApprovedComments, tx.Model(&models.Comment{}).Where("status = ?", models.CommentStatusApproved)},
			{&stats.TotalUsers, tx.Model(&models.User{})},
			{&stats.AdminCount, tx.Model(&models.User{}).Where("role = ?", models.RoleAdmin)},
			{&stats.UserCount, tx.Model(&models.User{}).Where("role = ?", models.RoleUser)},
		}
		for _, c := range counts {
			if err := c.query.Count(c.dest).Error; err != nil {
				return err
			}
		}
		return tx.Model(&models.Post{}).
			Select("COALESCE(SUM(views), 0)").
			Scan(&stats.TotalViews).Error
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
