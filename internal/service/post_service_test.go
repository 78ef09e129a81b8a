package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/blog-platform-api/internal/apperr"
	"github.com/blog-platform-api/internal/models"
	"github.com/blog-platform-api/internal/service"
)

func TestCreatePostDefaultsToDraft(t *testing.T) {
	env := setupServices()
	ctx := context.Background()

	post, err := env.services.Post.Create(ctx, service.CreatePostRequest{
		Title:   "Hello",
		Content: "First post",
		Tags:    []string{"go", "web"},
	}, "author-1")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if post.Status != models.PostStatusDraft {
		t.Errorf("Expected status DRAFT, got %s", post.Status)
	}
	if post.AuthorID != "author-1" {
		t.Errorf("Expected author author-1, got %s", post.AuthorID)
	}
	if env.posts.Posts[post.ID] == nil {
		t.Error("Post was not stored")
	}
}

func TestCreatePostRejectsUnknownStatus(t *testing.T) {
	env := setupServices()

	_, err := env.services.Post.Create(context.Background(), service.CreatePostRequest{
		Title:   "Hello",
		Content: "First post",
		Status:  "LIVE",
	}, "author-1")
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("Expected validation error, got %v", err)
	}
}

func TestListNormalizesPaging(t *testing.T) {
	env := setupServices()
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		env.posts.Create(ctx, &models.Post{
			Title:    "Post",
			Content:  "Body",
			Status:   models.PostStatusPublished,
			AuthorID: "author-1",
		})
	}

	result, err := env.services.Post.List(ctx, models.PostFilter{Page: 0, Limit: 0})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if result.Pagination.Page != 1 || result.Pagination.Limit != 10 {
		t.Errorf("Expected page 1 limit 10, got page %d limit %d",
			result.Pagination.Page, result.Pagination.Limit)
	}
	if len(result.Data) != 10 {
		t.Errorf("Expected 10 posts, got %d", len(result.Data))
	}
	if result.Pagination.Total != 25 {
		t.Errorf("Expected total 25, got %d", result.Pagination.Total)
	}
	if result.Pagination.TotalPage != 3 {
		t.Errorf("Expected 3 pages, got %d", result.Pagination.TotalPage)
	}
}

func TestListTagFilterIsSupersetMatch(t *testing.T) {
	env := setupServices()
	ctx := context.Background()

	p1 := &models.Post{Title: "P1", Content: "x", Tags: []string{"a", "b"}, Status: models.PostStatusPublished}
	p2 := &models.Post{Title: "P2", Content: "x", Tags: []string{"a"}, Status: models.PostStatusDraft}
	env.posts.Create(ctx, p1)
	env.posts.Create(ctx, p2)

	// All requested tags must be present, not any
	result, err := env.services.Post.List(ctx, models.PostFilter{Tags: []string{"a", "b"}, Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(result.Data) != 1 || result.Data[0].Title != "P1" {
		t.Errorf("Expected only P1 for tags=a,b, got %d posts", len(result.Data))
	}

	result, _ = env.services.Post.List(ctx, models.PostFilter{Tags: []string{"a"}, Page: 1, Limit: 10})
	if len(result.Data) != 2 {
		t.Errorf("Expected both posts for tags=a, got %d", len(result.Data))
	}
}

func TestListSearchMatchesTitleContentOrTag(t *testing.T) {
	env := setupServices()
	ctx := context.Background()

	env.posts.Create(ctx, &models.Post{Title: "Intro to Golang", Content: "basics"})
	env.posts.Create(ctx, &models.Post{Title: "Databases", Content: "indexing in golang apps"})
	env.posts.Create(ctx, &models.Post{Title: "Misc", Content: "other", Tags: []string{"golang"}})
	env.posts.Create(ctx, &models.Post{Title: "Cooking", Content: "pasta"})

	result, err := env.services.Post.List(ctx, models.PostFilter{Search: "golang", Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(result.Data) != 3 {
		t.Errorf("Expected 3 matches across title, content and tags, got %d", len(result.Data))
	}
}

func TestListEmptyResultIsNotNil(t *testing.T) {
	env := setupServices()

	result, err := env.services.Post.List(context.Background(), models.PostFilter{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if result.Data == nil {
		t.Error("Data should be an empty slice, not nil")
	}
}

func TestGetByIDIncrementsViews(t *testing.T) {
	env := setupServices()
	ctx := context.Background()

	post := &models.Post{Title: "Hello", Content: "Body", AuthorID: "author-1"}
	env.posts.Create(ctx, post)

	first, err := env.services.Post.GetByID(ctx, post.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if first.Views != 1 {
		t.Errorf("Expected 1 view after first read, got %d", first.Views)
	}

	second, _ := env.services.Post.GetByID(ctx, post.ID)
	if second.Views != 2 {
		t.Errorf("Expected 2 views after second read, got %d", second.Views)
	}
}

func TestGetByIDReturnsApprovedCommentTree(t *testing.T) {
	env := setupServices()
	ctx := context.Background()

	post := &models.Post{Title: "Hello", Content: "Body", AuthorID: "author-1"}
	env.posts.Create(ctx, post)

	base := time.Now()
	at := func(minutes int) time.Time { return base.Add(time.Duration(minutes) * time.Minute) }

	older := models.Comment{ID: "top-older", Status: models.CommentStatusApproved, CreatedAt: at(1)}
	newer := models.Comment{ID: "top-newer", Status: models.CommentStatusApproved, CreatedAt: at(2)}
	env.posts.CommentsByPost[post.ID] = []models.Comment{
		older,
		newer,
		{ID: "top-pending", Status: models.CommentStatusPending, CreatedAt: at(3)},
		{ID: "top-rejected", Status: models.CommentStatusRejected, CreatedAt: at(4)},
		{ID: "reply-late", ParentID: &older.ID, Status: models.CommentStatusApproved, CreatedAt: at(6)},
		{ID: "reply-early", ParentID: &older.ID, Status: models.CommentStatusApproved, CreatedAt: at(5)},
		{ID: "reply-pending", ParentID: &older.ID, Status: models.CommentStatusPending, CreatedAt: at(7)},
	}

	got, err := env.services.Post.GetByID(ctx, post.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}

	if len(got.Comments) != 2 {
		t.Fatalf("Expected 2 approved top-level comments, got %d", len(got.Comments))
	}
	if got.Comments[0].ID != "top-newer" || got.Comments[1].ID != "top-older" {
		t.Errorf("Expected top-level comments newest first, got [%s %s]",
			got.Comments[0].ID, got.Comments[1].ID)
	}

	replies := got.Comments[1].Replies
	if len(replies) != 2 {
		t.Fatalf("Expected 2 approved replies, got %d", len(replies))
	}
	if replies[0].ID != "reply-early" || replies[1].ID != "reply-late" {
		t.Errorf("Expected replies oldest first, got [%s %s]", replies[0].ID, replies[1].ID)
	}

	// The count covers every comment on the post, not just visible ones
	if got.CommentCount != 7 {
		t.Errorf("Expected comment count 7, got %d", got.CommentCount)
	}
}

func TestGetByIDUnknownPost(t *testing.T) {
	env := setupServices()

	_, err := env.services.Post.GetByID(context.Background(), "missing")
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("Expected not found, got %v", err)
	}
}

func TestUpdateRequiresOwnership(t *testing.T) {
	env := setupServices()
	ctx := context.Background()

	post := &models.Post{Title: "Hello", Content: "Body", AuthorID: "owner"}
	env.posts.Create(ctx, post)

	title := "Updated"
	upd := models.PostUpdate{Title: &title}

	// A stranger is rejected
	_, err := env.services.Post.Update(ctx, post.ID, upd, "stranger", false)
	if apperr.KindOf(err) != apperr.KindUnauthorized {
		t.Errorf("Expected unauthorized for non-owner, got %v", err)
	}

	// The owner succeeds
	updated, err := env.services.Post.Update(ctx, post.ID, upd, "owner", false)
	if err != nil {
		t.Fatalf("Owner update failed: %v", err)
	}
	if updated.Title != "Updated" {
		t.Errorf("Expected title 'Updated', got %q", updated.Title)
	}

	// An admin succeeds regardless of ownership
	other := "Admin edit"
	if _, err := env.services.Post.Update(ctx, post.ID, models.PostUpdate{Title: &other}, "someone-else", true); err != nil {
		t.Errorf("Admin update failed: %v", err)
	}
}

func TestUpdateStripsFeaturedForNonAdmin(t *testing.T) {
	env := setupServices()
	ctx := context.Background()

	post := &models.Post{Title: "Hello", Content: "Body", AuthorID: "owner"}
	env.posts.Create(ctx, post)

	featured := true
	upd := models.PostUpdate{IsFeatured: &featured}

	// With the flag stripped, nothing remains to apply
	_, err := env.services.Post.Update(ctx, post.ID, upd, "owner", false)
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("Expected validation error for owner featuring own post, got %v", err)
	}
	if env.posts.Posts[post.ID].IsFeatured {
		t.Error("Owner must not be able to feature a post")
	}

	updated, err := env.services.Post.Update(ctx, post.ID, upd, "admin", true)
	if err != nil {
		t.Fatalf("Admin update failed: %v", err)
	}
	if !updated.IsFeatured {
		t.Error("Admin should be able to feature a post")
	}
}

func TestDeleteRequiresOwnership(t *testing.T) {
	env := setupServices()
	ctx := context.Background()

	post := &models.Post{Title: "Hello", Content: "Body", AuthorID: "owner"}
	env.posts.Create(ctx, post)

	_, err := env.services.Post.Delete(ctx, post.ID, "stranger", false)
	if apperr.KindOf(err) != apperr.KindUnauthorized {
		t.Errorf("Expected unauthorized for non-owner, got %v", err)
	}

	deleted, err := env.services.Post.Delete(ctx, post.ID, "owner", false)
	if err != nil {
		t.Fatalf("Owner delete failed: %v", err)
	}
	if deleted.ID != post.ID {
		t.Errorf("Expected deleted post %s, got %s", post.ID, deleted.ID)
	}
	if env.posts.Posts[post.ID] != nil {
		t.Error("Post should be gone after delete")
	}
}

func TestDeleteUnknownPost(t *testing.T) {
	env := setupServices()

	_, err := env.services.Post.Delete(context.Background(), "missing", "owner", true)
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("Expected not found, got %v", err)
	}
}

func TestMyPostsRequiresActiveUser(t *testing.T) {
	env := setupServices()
	ctx := context.Background()

	env.users.Create(ctx, &models.User{ID: "active-user", Email: "a@example.com", Name: "A"})
	env.users.Create(ctx, &models.User{ID: "blocked-user", Email: "b@example.com", Name: "B", Status: models.UserStatusBlocked})

	env.posts.Create(ctx, &models.Post{Title: "Mine", Content: "Body", AuthorID: "active-user"})
	env.posts.Create(ctx, &models.Post{Title: "Other", Content: "Body", AuthorID: "someone-else"})

	result, err := env.services.Post.MyPosts(ctx, "active-user")
	if err != nil {
		t.Fatalf("MyPosts failed: %v", err)
	}
	if result.Total != 1 || len(result.Data) != 1 {
		t.Errorf("Expected 1 post, got total %d len %d", result.Total, len(result.Data))
	}

	_, err = env.services.Post.MyPosts(ctx, "blocked-user")
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("Expected not found for blocked user, got %v", err)
	}
}

func TestStatsAggregates(t *testing.T) {
	env := setupServices()
	ctx := context.Background()

	env.posts.Create(ctx, &models.Post{Title: "A", Content: "x", Status: models.PostStatusPublished, Views: 10, IsFeatured: true})
	env.posts.Create(ctx, &models.Post{Title: "B", Content: "x", Status: models.PostStatusPublished, Views: 5})
	env.posts.Create(ctx, &models.Post{Title: "C", Content: "x", Status: models.PostStatusDraft})

	stats, err := env.services.Post.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.TotalPosts != 3 {
		t.Errorf("Expected 3 posts, got %d", stats.TotalPosts)
	}
	if stats.PublishedPosts != 2 {
		t.Errorf("Expected 2 published, got %d", stats.PublishedPosts)
	}
	if stats.DraftPosts != 1 {
		t.Errorf("Expected 1 draft, got %d", stats.DraftPosts)
	}
	if stats.FeaturedPosts != 1 {
		t.Errorf("Expected 1 featured, got %d", stats.FeaturedPosts)
	}
	if stats.TotalViews != 15 {
		t.Errorf("Expected 15 views, got %d", stats.TotalViews)
	}
}
