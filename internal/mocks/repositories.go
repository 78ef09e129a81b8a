package mocks

import (
	"context"
	"sort"
	"strings"

	"github.com/blog-platform-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MockUserRepository is a mock implementation of repository.UserRepository
type MockUserRepository struct {
	Users       map[string]*models.User
	EmailToUser map[string]*models.User
	Err         error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users:       make(map[string]*models.User),
		EmailToUser: make(map[string]*models.User),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	if m.Err != nil {
		return m.Err
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	if user.Status == "" {
		user.Status = models.UserStatusActive
	}
	m.Users[user.ID] = user
	m.EmailToUser[user.Email] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Users[id], nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.EmailToUser[email], nil
}

func (m *MockUserRepository) GetActiveByID(ctx context.Context, id string) (*models.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	user := m.Users[id]
	if user == nil || user.Status != models.UserStatusActive {
		return nil, nil
	}
	return user, nil
}

func (m *MockUserRepository) MarkEmailVerified(ctx context.Context, id string) error {
	if m.Err != nil {
		return m.Err
	}
	user := m.Users[id]
	if user == nil {
		return gorm.ErrRecordNotFound
	}
	user.EmailVerified = true
	return nil
}

// MockPostRepository is a mock implementation of repository.PostRepository.
// List reproduces the real filter semantics in memory so pagination and
// tag-matching properties can be tested without a database.
type MockPostRepository struct {
	Posts          map[string]*models.Post
	CommentsByPost map[string][]models.Comment
	StatsResult    *models.PostStats
	Err            error
}

func NewMockPostRepository() *MockPostRepository {
	return &MockPostRepository{
		Posts:          make(map[string]*models.Post),
		CommentsByPost: make(map[string][]models.Comment),
	}
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) error {
	if m.Err != nil {
		return m.Err
	}
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	m.Posts[post.ID] = post
	return nil
}

func matchesFilter(post *models.Post, f models.PostFilter) bool {
	if f.Search != "" {
		search := strings.ToLower(f.Search)
		hasTag := false
		for _, tag := range post.Tags {
			if tag == f.Search {
				hasTag = true
				break
			}
		}
		if !strings.Contains(strings.ToLower(post.Title), search) &&
			!strings.Contains(strings.ToLower(post.Content), search) &&
			!hasTag {
			return false
		}
	}
	for _, want := range f.Tags {
		found := false
		for _, tag := range post.Tags {
			if tag == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.IsFeatured != nil && post.IsFeatured != *f.IsFeatured {
		return false
	}
	if f.Status != "" && post.Status != f.Status {
		return false
	}
	if f.AuthorID != "" && post.AuthorID != f.AuthorID {
		return false
	}
	return true
}

func (m *MockPostRepository) matching(f models.PostFilter) []models.Post {
	var matched []models.Post
	for _, post := range m.Posts {
		if matchesFilter(post, f) {
			p := *post
			p.CommentCount = int64(len(m.CommentsByPost[p.ID]))
			matched = append(matched, p)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		var less bool
		switch f.SortBy {
		case "title":
			less = a.Title < b.Title
		case "views":
			less = a.Views < b.Views
		default:
			less = a.CreatedAt.Before(b.CreatedAt)
		}
		if f.SortOrder == "asc" {
			return less
		}
		return !less
	})
	return matched
}

func (m *MockPostRepository) List(ctx context.Context, f models.PostFilter) ([]models.Post, *models.Pagination, error) {
	if m.Err != nil {
		return nil, nil, m.Err
	}
	matched := m.matching(f)
	total := int64(len(matched))

	start := f.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + f.Limit
	if end > len(matched) {
		end = len(matched)
	}

	pagination := &models.Pagination{
		Total:     total,
		Page:      f.Page,
		Limit:     f.Limit,
		TotalPage: (total + int64(f.Limit) - 1) / int64(f.Limit),
	}
	return matched[start:end], pagination, nil
}

func (m *MockPostRepository) ListByAuthor(ctx context.Context, authorID string) ([]models.Post, int64, error) {
	if m.Err != nil {
		return nil, 0, m.Err
	}
	matched := m.matching(models.PostFilter{AuthorID: authorID})
	return matched, int64(len(matched)), nil
}

// GetWithComments applies the same two-level visibility policy as the
// real repository: APPROVED top-level comments newest first, each with
// its APPROVED replies oldest first. The count covers all comments.
func (m *MockPostRepository) GetWithComments(ctx context.Context, id string) (*models.Post, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	post := m.Posts[id]
	if post == nil {
		return nil, nil
	}
	post.Views++
	p := *post

	all := m.CommentsByPost[id]
	p.CommentCount = int64(len(all))

	var top []models.Comment
	for _, c := range all {
		if c.ParentID != nil || c.Status != models.CommentStatusApproved {
			continue
		}
		c.Replies = nil
		for _, r := range all {
			if r.ParentID != nil && *r.ParentID == c.ID && r.Status == models.CommentStatusApproved {
				c.Replies = append(c.Replies, r)
			}
		}
		sort.Slice(c.Replies, func(i, j int) bool {
			return c.Replies[i].CreatedAt.Before(c.Replies[j].CreatedAt)
		})
		top = append(top, c)
	}
	sort.Slice(top, func(i, j int) bool {
		return top[i].CreatedAt.After(top[j].CreatedAt)
	})
	p.Comments = top
	return &p, nil
}

func (m *MockPostRepository) GetOwner(ctx context.Context, id string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	post := m.Posts[id]
	if post == nil {
		return "", nil
	}
	return post.AuthorID, nil
}

func (m *MockPostRepository) Update(ctx context.Context, id string, fields map[string]interface{}) (*models.Post, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	post := m.Posts[id]
	if post == nil {
		return nil, nil
	}
	for column, value := range fields {
		switch column {
		case "title":
			post.Title = value.(string)
		case "content":
			post.Content = value.(string)
		case "thumbnail":
			post.Thumbnail = value.(string)
		case "is_featured":
			post.IsFeatured = value.(bool)
		case "status":
			post.Status = value.(models.PostStatus)
		}
	}
	return post, nil
}

func (m *MockPostRepository) Delete(ctx context.Context, id string) (*models.Post, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	post := m.Posts[id]
	if post == nil {
		return nil, nil
	}
	delete(m.Posts, id)
	return post, nil
}

func (m *MockPostRepository) Stats(ctx context.Context) (*models.PostStats, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.StatsResult != nil {
		return m.StatsResult, nil
	}
	stats := &models.PostStats{}
	for _, post := range m.Posts {
		stats.TotalPosts++
		stats.TotalViews += post.Views
		switch post.Status {
		case models.PostStatusPublished:
			stats.PublishedPosts++
		case models.PostStatusDraft:
			stats.DraftPosts++
		}
		if post.IsFeatured {
			stats.FeaturedPosts++
		}
	}
	return stats, nil
}

// MockCommentRepository is a mock implementation of repository.CommentRepository
type MockCommentRepository struct {
	Comments map[string]*models.Comment
	Err      error
}

func NewMockCommentRepository() *MockCommentRepository {
	return &MockCommentRepository{Comments: make(map[string]*models.Comment)}
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if m.Err != nil {
		return m.Err
	}
	if comment.ID == "" {
		comment.ID = uuid.NewString()
	}
	if comment.Status == "" {
		comment.Status = models.CommentStatusPending
	}
	m.Comments[comment.ID] = comment
	return nil
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Comments[id], nil
}

func (m *MockCommentRepository) GetByIDAndAuthor(ctx context.Context, id, authorID string) (*models.Comment, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	comment := m.Comments[id]
	if comment == nil || comment.AuthorID != authorID {
		return nil, nil
	}
	return comment, nil
}

func (m *MockCommentRepository) ListByAuthor(ctx context.Context, authorID string) ([]models.Comment, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var comments []models.Comment
	for _, comment := range m.Comments {
		if comment.AuthorID == authorID {
			comments = append(comments, *comment)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].CreatedAt.After(comments[j].CreatedAt)
	})
	return comments, nil
}

func (m *MockCommentRepository) Exists(ctx context.Context, id string) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	_, ok := m.Comments[id]
	return ok, nil
}

func (m *MockCommentRepository) Update(ctx context.Context, id string, fields map[string]interface{}) (*models.Comment, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	comment := m.Comments[id]
	if comment == nil {
		return nil, nil
	}
	for column, value := range fields {
		switch column {
		case "content":
			comment.Content = value.(string)
		case "status":
			comment.Status = value.(models.CommentStatus)
		}
	}
	return comment, nil
}

func (m *MockCommentRepository) UpdateStatus(ctx context.Context, id string, status models.CommentStatus) (*models.Comment, error) {
	return m.Update(ctx, id, map[string]interface{}{"status": status})
}

func (m *MockCommentRepository) Delete(ctx context.Context, id string) (*models.Comment, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	comment := m.Comments[id]
	if comment == nil {
		return nil, nil
	}
	delete(m.Comments, id)
	return comment, nil
}
