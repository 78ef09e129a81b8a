package models

import (
	"time"

	"github.com/lib/pq"
)

// PostStatus is a post's publication status
type PostStatus string

const (
	PostStatusDraft     PostStatus = "DRAFT"
	PostStatusPublished PostStatus = "PUBLISHED"
	PostStatusArchived  PostStatus = "ARCHIVED"
)

// ValidPostStatuses defines allowed post statuses
var ValidPostStatuses = map[PostStatus]bool{
	PostStatusDraft:     true,
	PostStatusPublished: true,
	PostStatusArchived:  true,
}

// Post represents a blog post. CommentCount is computed at query time
// and never persisted.
type Post struct {
	ID         string         `json:"id" gorm:"type:uuid;primaryKey"`
	Title      string         `json:"title" gorm:"type:varchar(255);not null"`
	Content    string         `json:"content" gorm:"type:text;not null"`
	Thumbnail  string         `json:"thumbnail,omitempty" gorm:"type:text"`
	Tags       pq.StringArray `json:"tags" gorm:"type:text[]"`
	IsFeatured bool           `json:"isFeatured" gorm:"not null;default:false"`
	Status     PostStatus     `json:"status" gorm:"type:varchar(16);not null;default:'DRAFT';index"`
	AuthorID   string         `json:"authorId" gorm:"type:uuid;not null;index"`
	Views      int64          `json:"views" gorm:"not null;default:0"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`

	Comments     []Comment `json:"comments,omitempty" gorm:"foreignKey:PostID"`
	CommentCount int64     `json:"commentCount" gorm:"->;-:migration"`
}

// PostSortColumns maps API sort field names to database columns. Any
// field outside this map falls back to created_at.
var PostSortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"title":     "title",
	"views":     "views",
	"status":    "status",
}

// PostFilter holds the query parameters for listing posts. Each zero
// field contributes no predicate; set fields combine conjunctively.
type PostFilter struct {
	Search     string
	Tags       []string
	IsFeatured *bool
	Status     PostStatus
	AuthorID   string
	Page       int
	Limit      int
	SortBy     string
	SortOrder  string
}

// Offset returns the number of rows to skip for the requested page.
func (f PostFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// PostUpdate holds the mutable post fields for a partial update. Nil
// fields are left untouched.
type PostUpdate struct {
	Title      *string     `json:"title,omitempty"`
	Content    *string     `json:"content,omitempty"`
	Thumbnail  *string     `json:"thumbnail,omitempty"`
	Tags       []string    `json:"tags,omitempty"`
	IsFeatured *bool       `json:"isFeatured,omitempty"`
	Status     *PostStatus `json:"status,omitempty"`
}

// Fields flattens the set fields into column values for a partial
// update. An empty map means there is nothing to apply.
func (u PostUpdate) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if u.Title != nil {
		fields["title"] = *u.Title
	}
	if u.Content != nil {
		fields["content"] = *u.Content
	}
	if u.Thumbnail != nil {
		fields["thumbnail"] = *u.Thumbnail
	}
	if u.Tags != nil {
		fields["tags"] = pq.StringArray(u.Tags)
	}
	if u.IsFeatured != nil {
		fields["is_featured"] = *u.IsFeatured
	}
	if u.Status != nil {
		fields["status"] = *u.Status
	}
	return fields
}

// Pagination describes the window of a post listing
type Pagination struct {
	Total     int64 `json:"total"`
	Page      int   `json:"page"`
	Limit     int   `json:"limit"`
	TotalPage int64 `json:"totalPage"`
}

// PostStats is an aggregate snapshot over posts, comments and users
type PostStats struct {
	TotalPosts       int64 `json:"totalPosts"`
	PublishedPosts   int64 `json:"publishedPosts"`
	DraftPosts       int64 `json:"draftPosts"`
	FeaturedPosts    int64 `json:"featuredPosts"`
	TotalComments    int64 `json:"totalComments"`
	ApprovedComments int64 `json:"approvedComments"`
	TotalUsers       int64 `json:"totalUsers"`
	AdminCount       int64 `json:"adminCount"`
	UserCount        int64 `json:"userCount"`
	TotalViews       int64 `json:"totalViews"`
}
