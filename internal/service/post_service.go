package service

import (
	"context"
	"fmt"

	"github.com/blog-platform-api/internal/apperr"
	"github.com/blog-platform-api/internal/models"
	"github.com/blog-platform-api/internal/repository"
	"github.com/blog-platform-api/internal/validation"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// postService is the concrete implementation of PostService
type postService struct {
	posts repository.PostRepository
	users repository.UserRepository
	log   zerolog.Logger
}

func newPostService(posts repository.PostRepository, users repository.UserRepository, log zerolog.Logger) PostService {
	return &postService{
		posts: posts,
		users: users,
		log:   log.With().Str("service", "post").Logger(),
	}
}

// Create stores a new post owned by the caller. A featured flag in the
// payload is ignored; featuring is an admin-only update operation.
func (s *postService) Create(ctx context.Context, req CreatePostRequest, authorID string) (*models.Post, error) {
	if err := validation.ValidateCreatePost(req.Title, req.Content, req.Status); err != nil {
		return nil, apperr.Validation(err.Error())
	}

	status := req.Status
	if status == "" {
		status = models.PostStatusDraft
	}

	post := &models.Post{
		Title:     req.Title,
		Content:   req.Content,
		Thumbnail: req.Thumbnail,
		Tags:      pq.StringArray(req.Tags),
		Status:    status,
		AuthorID:  authorID,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	s.log.Info().Str("post_id", post.ID).Str("author_id", authorID).Msg("Post created")
	return post, nil
}

// List returns one page of posts matching the filter. Page and limit
// are normalized here so the repository always sees a sane window.
func (s *postService) List(ctx context.Context, filter models.PostFilter) (*PostListResult, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}

	posts, pagination, err := s.posts.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	if posts == nil {
		posts = []models.Post{}
	}
	return &PostListResult{Data: posts, Pagination: *pagination}, nil
}

// GetByID reads a post with its approved comment tree, bumping the view
// counter as a side effect of the same transaction.
func (s *postService) GetByID(ctx context.Context, id string) (*models.Post, error) {
	post, err := s.posts.GetWithComments(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch post: %w", err)
	}
	if post == nil {
		return nil, apperr.NotFound("post not found")
	}
	return post, nil
}

// MyPosts returns the caller's posts. The caller must still be an
// active user; a blocked account cannot list its posts.
func (s *postService) MyPosts(ctx context.Context, authorID string) (*MyPostsResult, error) {
	user, err := s.users.GetActiveByID(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, apperr.NotFound("user not found or inactive")
	}

	posts, total, err := s.posts.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	if posts == nil {
		posts = []models.Post{}
	}
	return &MyPostsResult{Data: posts, Total: total}, nil
}

// Update applies a partial update. Only the owner or an admin may
// update a post, and only an admin may change the featured flag: for
// everyone else it is stripped from the payload before it is applied.
func (s *postService) Update(ctx context.Context, postID string, upd models.PostUpdate, requesterID string, isAdmin bool) (*models.Post, error) {
	if err := validation.ValidatePostUpdate(upd); err != nil {
		return nil, apperr.Validation(err.Error())
	}

	if err := s.authorizeMutation(ctx, postID, requesterID, isAdmin, "update"); err != nil {
		return nil, err
	}

	if !isAdmin {
		upd.IsFeatured = nil
	}
	fields := upd.Fields()
	if len(fields) == 0 {
		return nil, apperr.Validation("no fields to update")
	}

	post, err := s.posts.Update(ctx, postID, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	if post == nil {
		return nil, apperr.NotFound("post not found")
	}

	s.log.Info().Str("post_id", postID).Str("requester_id", requesterID).Msg("Post updated")
	return post, nil
}

// Delete removes a post. Only the owner or an admin may delete it.
func (s *postService) Delete(ctx context.Context, postID, requesterID string, isAdmin bool) (*models.Post, error) {
	if err := s.authorizeMutation(ctx, postID, requesterID, isAdmin, "delete"); err != nil {
		return nil, err
	}

	post, err := s.posts.Delete(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete post: %w", err)
	}
	if post == nil {
		return nil, apperr.NotFound("post not found")
	}

	s.log.Info().Str("post_id", postID).Str("requester_id", requesterID).Msg("Post deleted")
	return post, nil
}

// Stats returns the aggregate snapshot
func (s *postService) Stats(ctx context.Context) (*models.PostStats, error) {
	stats, err := s.posts.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute stats: %w", err)
	}
	return stats, nil
}

// authorizeMutation loads the post owner and rejects requesters that
// are neither admin nor owner.
func (s *postService) authorizeMutation(ctx context.Context, postID, requesterID string, isAdmin bool, action string) error {
	owner, err := s.posts.GetOwner(ctx, postID)
	if err != nil {
		return fmt.Errorf("failed to load post: %w", err)
	}
	if owner == "" {
		return apperr.NotFound("post not found")
	}
	if !isAdmin && owner != requesterID {
		return apperr.Unauthorized(fmt.Sprintf("you are not authorized to %s this post", action))
	}
	return nil
}
