package service

import (
	"context"
	"fmt"

	"github.com/blog-platform-api/internal/apperr"
	"github.com/blog-platform-api/internal/models"
	"github.com/blog-platform-api/internal/repository"
	"github.com/blog-platform-api/internal/validation"
	"github.com/rs/zerolog"
)

// commentService is the concrete implementation of CommentService
type commentService struct {
	comments repository.CommentRepository
	posts    repository.PostRepository
	log      zerolog.Logger
}

func newCommentService(comments repository.CommentRepository, posts repository.PostRepository, log zerolog.Logger) CommentService {
	return &commentService{
		comments: comments,
		posts:    posts,
		log:      log.With().Str("service", "comment").Logger(),
	}
}

// Create stores a new comment. The referenced post must exist, and so
// must the parent comment when the payload marks this as a reply.
// Comments start in PENDING until a moderator approves them.
func (s *commentService) Create(ctx context.Context, req CreateCommentRequest, authorID string) (*models.Comment, error) {
	if err := validation.ValidateCreateComment(req.Content, req.PostID, req.ParentID); err != nil {
		return nil, apperr.Validation(err.Error())
	}

	owner, err := s.posts.GetOwner(ctx, req.PostID)
	if err != nil {
		return nil, fmt.Errorf("failed to load post: %w", err)
	}
	if owner == "" {
		return nil, apperr.NotFound("post not found")
	}

	if req.ParentID != nil {
		exists, err := s.comments.Exists(ctx, *req.ParentID)
		if err != nil {
			return nil, fmt.Errorf("failed to check parent comment: %w", err)
		}
		if !exists {
			return nil, apperr.NotFound("parent comment not found")
		}
	}

	comment := &models.Comment{
		Content:  req.Content,
		AuthorID: authorID,
		PostID:   req.PostID,
		ParentID: req.ParentID,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	s.log.Info().Str("comment_id", comment.ID).Str("post_id", req.PostID).Msg("Comment created")
	return comment, nil
}

// GetByID returns a comment with its post summary
func (s *commentService) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch comment: %w", err)
	}
	if comment == nil {
		return nil, apperr.NotFound("comment not found")
	}
	return comment, nil
}

// ListByAuthor returns an author's comments, newest first
func (s *commentService) ListByAuthor(ctx context.Context, authorID string) ([]models.Comment, error) {
	comments, err := s.comments.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	if comments == nil {
		comments = []models.Comment{}
	}
	return comments, nil
}

// Update edits a comment's content. The lookup filters by both id and
// requester so a miss never reveals whether the comment exists.
func (s *commentService) Update(ctx context.Context, commentID string, upd models.CommentUpdate, requesterID string) (*models.Comment, error) {
	existing, err := s.comments.GetByIDAndAuthor(ctx, commentID, requesterID)
	if err != nil {
		return nil, fmt.Errorf("failed to load comment: %w", err)
	}
	if existing == nil {
		return nil, apperr.NotFound("comment not found or you are not authorized to update this comment")
	}

	fields := upd.Fields()
	if len(fields) == 0 {
		return nil, apperr.Validation("no fields to update")
	}

	comment, err := s.comments.Update(ctx, existing.ID, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}
	if comment == nil {
		return nil, apperr.NotFound("comment not found or you are not authorized to update this comment")
	}

	s.log.Info().Str("comment_id", commentID).Msg("Comment updated")
	return comment, nil
}

// Delete removes a comment under the same conflated owner guard as Update
func (s *commentService) Delete(ctx context.Context, commentID, requesterID string) (*models.Comment, error) {
	existing, err := s.comments.GetByIDAndAuthor(ctx, commentID, requesterID)
	if err != nil {
		return nil, fmt.Errorf("failed to load comment: %w", err)
	}
	if existing == nil {
		return nil, apperr.NotFound("comment not found or you are not authorized to delete this comment")
	}

	comment, err := s.comments.Delete(ctx, existing.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete comment: %w", err)
	}
	if comment == nil {
		return nil, apperr.NotFound("comment not found or you are not authorized to delete this comment")
	}

	s.log.Info().Str("comment_id", commentID).Msg("Comment deleted")
	return comment, nil
}

// Moderate transitions a comment's status. Unlike Update it targets the
// comment by id alone, and a transition to the current status is an
// error rather than a silent no-op.
func (s *commentService) Moderate(ctx context.Context, commentID string, status models.CommentStatus) (*models.Comment, error) {
	if err := validation.ValidateCommentStatus(status); err != nil {
		return nil, apperr.Validation(err.Error())
	}

	existing, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load comment: %w", err)
	}
	if existing == nil {
		return nil, apperr.NotFound("comment not found")
	}
	if existing.Status == status {
		return nil, apperr.Conflict("comment is already in the desired status")
	}

	comment, err := s.comments.UpdateStatus(ctx, commentID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to moderate comment: %w", err)
	}
	if comment == nil {
		return nil, apperr.NotFound("comment not found")
	}

	s.log.Info().
		Str("comment_id", commentID).
		Str("from", string(existing.Status)).
		Str("to", string(status)).
		Msg("Comment moderated")
	return comment, nil
}
