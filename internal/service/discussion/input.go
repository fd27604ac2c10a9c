package discussion

import (
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/community-engine/internal/domain"
)

const (
	maxTitleLength   = 200
	maxContentLength = 20000
)

// CreateDiscussionInput holds the parameters for creating a discussion.
type CreateDiscussionInput struct {
	Title    string
	Category domain.Category
	Content  string
	Author   string
}

// Validate checks all fields and collects all errors.
func (i CreateDiscussionInput) Validate() error {
	var errs []domain.FieldError

	title := strings.TrimSpace(i.Title)
	if title == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	}
	if len(title) > maxTitleLength {
		errs = append(errs, domain.FieldError{Field: "title", Message: "max 200 characters"})
	}

	if i.Category == "" {
		errs = append(errs, domain.FieldError{Field: "category", Message: "required"})
	} else if !i.Category.IsValid() {
		errs = append(errs, domain.FieldError{Field: "category", Message: "must be one of Technical, General, Tutorial, Feature Request"})
	}

	content := strings.TrimSpace(i.Content)
	if content == "" {
		errs = append(errs, domain.FieldError{Field: "content", Message: "required"})
	}
	if len(content) > maxContentLength {
		errs = append(errs, domain.FieldError{Field: "content", Message: "max 20000 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// AddCommentInput holds the parameters for commenting on a discussion.
// ParentID set means a reply to an existing comment of the same discussion.
type AddCommentInput struct {
	DiscussionID uuid.UUID
	ParentID     *uuid.UUID
	Author       string
	Content      string
}

// Validate checks all fields and collects all errors.
func (i AddCommentInput) Validate() error {
	var errs []domain.FieldError

	if i.DiscussionID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "discussion_id", Message: "required"})
	}
	if i.ParentID != nil && *i.ParentID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "parent_id", Message: "invalid"})
	}

	content := strings.TrimSpace(i.Content)
	if content == "" {
		errs = append(errs, domain.FieldError{Field: "content", Message: "required"})
	}
	if len(content) > maxContentLength {
		errs = append(errs, domain.FieldError{Field: "content", Message: "max 20000 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// MarkSolvedInput holds the parameters for accepting a solution.
type MarkSolvedInput struct {
	DiscussionID uuid.UUID
	Solver       string
}

// Validate checks all fields and collects all errors.
func (i MarkSolvedInput) Validate() error {
	var errs []domain.FieldError

	if i.DiscussionID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "discussion_id", Message: "required"})
	}
	if strings.TrimSpace(i.Solver) == "" {
		errs = append(errs, domain.FieldError{Field: "solver", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
