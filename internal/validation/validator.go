package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/blog-platform-api/internal/models"
	"github.com/google/uuid"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// MinPasswordLength is the minimum accepted password length
const MinPasswordLength = 8

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Errors collects field errors for one payload
type Errors []ValidationError

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, ve := range e {
		msgs[i] = ve.Error()
	}
	return strings.Join(msgs, "; ")
}

// OrNil returns the collected errors, or nil when there are none
func (e Errors) OrNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// ValidateRegistration validates a signup payload
func ValidateRegistration(name, email, password string) error {
	var errs Errors

	if name == "" {
		errs = append(errs, ValidationError{Field: "name", Message: "name is required"})
	}

	if email == "" {
		errs = append(errs, ValidationError{Field: "email", Message: "email is required"})
	} else if !emailRegex.MatchString(email) {
		errs = append(errs, ValidationError{Field: "email", Message: "invalid email format", Value: email})
	}

	if len(password) < MinPasswordLength {
		errs = append(errs, ValidationError{Field: "password", Message: fmt.Sprintf("password must be at least %d characters", MinPasswordLength)})
	}

	return errs.OrNil()
}

// ValidateCreatePost validates a post creation payload
func ValidateCreatePost(title, content string, status models.PostStatus) error {
	var errs Errors

	if title == "" {
		errs = append(errs, ValidationError{Field: "title", Message: "title is required"})
	}
	if content == "" {
		errs = append(errs, ValidationError{Field: "content", Message: "content is required"})
	}
	if status != "" && !models.ValidPostStatuses[status] {
		errs = append(errs, ValidationError{
			Field:   "status",
			Message: "invalid status, must be one of: DRAFT, PUBLISHED, ARCHIVED",
			Value:   status,
		})
	}

	return errs.OrNil()
}

// ValidatePostUpdate validates a partial post update payload
func ValidatePostUpdate(upd models.PostUpdate) error {
	var errs Errors

	if upd.Title != nil && *upd.Title == "" {
		errs = append(errs, ValidationError{Field: "title", Message: "title cannot be empty"})
	}
	if upd.Content != nil && *upd.Content == "" {
		errs = append(errs, ValidationError{Field: "content", Message: "content cannot be empty"})
	}
	if upd.Status != nil && !models.ValidPostStatuses[*upd.Status] {
		errs = append(errs, ValidationError{
			Field:   "status",
			Message: "invalid status, must be one of: DRAFT, PUBLISHED, ARCHIVED",
			Value:   *upd.Status,
		})
	}

	return errs.OrNil()
}

// ValidateCreateComment validates a comment creation payload
func ValidateCreateComment(content, postID string, parentID *string) error {
	var errs Errors

	if content == "" {
		errs = append(errs, ValidationError{Field: "content", Message: "content is required"})
	}
	if postID == "" {
		errs = append(errs, ValidationError{Field: "postId", Message: "postId is required"})
	} else if !isValidUUID(postID) {
		errs = append(errs, ValidationError{Field: "postId", Message: "invalid UUID format", Value: postID})
	}
	if parentID != nil && !isValidUUID(*parentID) {
		errs = append(errs, ValidationError{Field: "parentId", Message: "invalid UUID format", Value: *parentID})
	}

	return errs.OrNil()
}

// ValidateCommentStatus validates a moderation target status
func ValidateCommentStatus(status models.CommentStatus) error {
	if !models.ValidCommentStatuses[status] {
		return Errors{{
			Field:   "status",
			Message: "invalid status, must be one of: PENDING, APPROVED, REJECTED",
			Value:   status,
		}}
	}
	return nil
}

// isValidUUID checks if a string is a valid UUID
func isValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
