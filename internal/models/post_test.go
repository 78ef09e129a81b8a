package models_test

import (
	"testing"

	"github.com/blog-platform-api/internal/models"
	"github.com/lib/pq"
)

func TestPostUpdateFields(t *testing.T) {
	if got := (models.PostUpdate{}).Fields(); len(got) != 0 {
		t.Errorf("Expected no fields for empty update, got %v", got)
	}

	title := "New title"
	featured := true
	status := models.PostStatusArchived
	upd := models.PostUpdate{
		Title:      &title,
		Tags:       []string{"go", "web"},
		IsFeatured: &featured,
		Status:     &status,
	}

	fields := upd.Fields()
	if len(fields) != 4 {
		t.Fatalf("Expected 4 fields, got %v", fields)
	}
	if fields["title"] != "New title" {
		t.Errorf("Expected title column, got %v", fields["title"])
	}
	if fields["is_featured"] != true {
		t.Errorf("Expected is_featured column, got %v", fields["is_featured"])
	}
	if fields["status"] != models.PostStatusArchived {
		t.Errorf("Expected status column, got %v", fields["status"])
	}
	tags, ok := fields["tags"].(pq.StringArray)
	if !ok || len(tags) != 2 {
		t.Errorf("Expected tags as pq.StringArray, got %T %v", fields["tags"], fields["tags"])
	}
}

func TestPostUpdateEmptyTagsClearTags(t *testing.T) {
	fields := (models.PostUpdate{Tags: []string{}}).Fields()
	tags, ok := fields["tags"].(pq.StringArray)
	if !ok {
		t.Fatalf("Expected tags field, got %v", fields)
	}
	if len(tags) != 0 {
		t.Errorf("Expected empty tag list, got %v", tags)
	}
}

func TestCommentUpdateFields(t *testing.T) {
	if got := (models.CommentUpdate{}).Fields(); len(got) != 0 {
		t.Errorf("Expected no fields for empty update, got %v", got)
	}

	content := "Edited"
	fields := (models.CommentUpdate{Content: &content}).Fields()
	if len(fields) != 1 || fields["content"] != "Edited" {
		t.Errorf("Expected only the content column, got %v", fields)
	}
}

func TestPostFilterOffset(t *testing.T) {
	cases := []struct {
		page, limit, want int
	}{
		{1, 10, 0},
		{2, 10, 10},
		{3, 25, 50},
	}
	for _, tc := range cases {
		f := models.PostFilter{Page: tc.page, Limit: tc.limit}
		if got := f.Offset(); got != tc.want {
			t.Errorf("Offset(page=%d, limit=%d) = %d, want %d", tc.page, tc.limit, got, tc.want)
		}
	}
}
