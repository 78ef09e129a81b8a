package models

import (
	"time"
)

// CommentStatus is a comment's moderation status
type CommentStatus string

const (
	CommentStatusPending  CommentStatus = "PENDING"
	CommentStatusApproved CommentStatus = "APPROVED"
	CommentStatusRejected CommentStatus = "REJECTED"
)

// ValidCommentStatuses defines allowed comment statuses
var ValidCommentStatuses = map[CommentStatus]bool{
	CommentStatusPending:  true,
	CommentStatusApproved: true,
	CommentStatusRejected: true,
}

// Comment represents a comment on a post. A non-nil ParentID makes it
// a reply to another comment on the same post.
type Comment struct {
	ID        string        `json:"id" gorm:"type:uuid;primaryKey"`
	Content   string        `json:"content" gorm:"type:text;not null"`
	AuthorID  string        `json:"authorId" gorm:"type:uuid;not null;index"`
	PostID    string        `json:"postId" gorm:"type:uuid;not null;index"`
	ParentID  *string       `json:"parentId,omitempty" gorm:"type:uuid;index"`
	Status    CommentStatus `json:"status" gorm:"type:varchar(16);not null;default:'PENDING';index"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`

	Replies []Comment    `json:"replies,omitempty" gorm:"foreignKey:ParentID"`
	Post    *PostSummary `json:"post,omitempty" gorm:"foreignKey:PostID;references:ID"`
}

// PostSummary is the slim post projection attached to comment reads.
// It maps onto the posts table so it can be preloaded directly.
type PostSummary struct {
	ID    string `json:"id" gorm:"type:uuid;primaryKey"`
	Title string `json:"title"`
	Views int64  `json:"views"`
}

// TableName maps PostSummary onto the posts table
func (PostSummary) TableName() string { return "posts" }

// CommentUpdate holds the mutable comment fields for a partial update.
// Status is deliberately absent; status changes go through moderation.
type CommentUpdate struct {
	Content *string `json:"content,omitempty"`
}

// Fields flattens the set fields into column values for a partial update
func (u CommentUpdate) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if u.Content != nil {
		fields["content"] = *u.Content
	}
	return fields
}
