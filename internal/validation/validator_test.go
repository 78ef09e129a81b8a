package validation_test

import (
	"testing"

	"github.com/blog-platform-api/internal/models"
	"github.com/blog-platform-api/internal/validation"
	"github.com/stretchr/testify/assert"
)

func TestValidateRegistration(t *testing.T) {
	cases := []struct {
		name     string
		userName string
		email    string
		password string
		wantErr  bool
	}{
		{"valid", "Alice", "alice@example.com", "supersecret", false},
		{"missing name", "", "alice@example.com", "supersecret", true},
		{"missing email", "Alice", "", "supersecret", true},
		{"bad email", "Alice", "not-an-email", "supersecret", true},
		{"short password", "Alice", "alice@example.com", "short", true},
		{"everything wrong", "", "nope", "", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validation.ValidateRegistration(tc.userName, tc.email, tc.password)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateRegistrationCollectsAllErrors(t *testing.T) {
	err := validation.ValidateRegistration("", "nope", "x")
	assert.Error(t, err)

	errs, ok := err.(validation.Errors)
	assert.True(t, ok, "error should be a validation.Errors")
	assert.Len(t, errs, 3)
}

func TestValidateCreatePost(t *testing.T) {
	assert.NoError(t, validation.ValidateCreatePost("Title", "Content", ""))
	assert.NoError(t, validation.ValidateCreatePost("Title", "Content", models.PostStatusPublished))

	assert.Error(t, validation.ValidateCreatePost("", "Content", ""))
	assert.Error(t, validation.ValidateCreatePost("Title", "", ""))
	assert.Error(t, validation.ValidateCreatePost("Title", "Content", "LIVE"))
}

func TestValidatePostUpdate(t *testing.T) {
	empty := ""
	title := "New title"
	bad := models.PostStatus("LIVE")
	good := models.PostStatusArchived

	// Nil fields are untouched, not invalid
	assert.NoError(t, validation.ValidatePostUpdate(models.PostUpdate{}))
	assert.NoError(t, validation.ValidatePostUpdate(models.PostUpdate{Title: &title, Status: &good}))

	assert.Error(t, validation.ValidatePostUpdate(models.PostUpdate{Title: &empty}))
	assert.Error(t, validation.ValidatePostUpdate(models.PostUpdate{Content: &empty}))
	assert.Error(t, validation.ValidatePostUpdate(models.PostUpdate{Status: &bad}))
}

func TestValidateCreateComment(t *testing.T) {
	postID := "5e0bf1aa-8c67-43b6-9b75-8e3f2f9dca84"
	parentID := "0d4e0b27-2b1c-4a80-b0fd-59f0832cdfd7"
	badParent := "not-a-uuid"

	assert.NoError(t, validation.ValidateCreateComment("Nice post", postID, nil))
	assert.NoError(t, validation.ValidateCreateComment("Nice post", postID, &parentID))

	assert.Error(t, validation.ValidateCreateComment("", postID, nil))
	assert.Error(t, validation.ValidateCreateComment("Nice post", "", nil))
	assert.Error(t, validation.ValidateCreateComment("Nice post", "not-a-uuid", nil))
	assert.Error(t, validation.ValidateCreateComment("Nice post", postID, &badParent))
}

func TestValidateCommentStatus(t *testing.T) {
	assert.NoError(t, validation.ValidateCommentStatus(models.CommentStatusPending))
	assert.NoError(t, validation.ValidateCommentStatus(models.CommentStatusApproved))
	assert.NoError(t, validation.ValidateCommentStatus(models.CommentStatusRejected))

	assert.Error(t, validation.ValidateCommentStatus(""))
	assert.Error(t, validation.ValidateCommentStatus("SHADOWBANNED"))
	assert.Error(t, validation.ValidateCommentStatus("approved"))
}
