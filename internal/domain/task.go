package domain

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

// Field limits, counted in characters after trimming.
const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 500
)

// Task-specific validation errors
var (
	// ErrEmptyTitle is returned when a title is empty or only whitespace.
	ErrEmptyTitle = errors.New("title cannot be empty or only whitespace")

	// ErrTitleTooLong is returned when a trimmed title exceeds MaxTitleLength.
	ErrTitleTooLong = errors.New("title is too long")

	// ErrEmptyDescription is returned when a description is present but blank.
	ErrEmptyDescription = errors.New("description cannot be empty or only whitespace")

	// ErrDescriptionTooLong is returned when a trimmed description exceeds
	// MaxDescriptionLength.
	ErrDescriptionTooLong = errors.New("description is too long")
)

// Task is a single tracked item of work.
type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
}

// Clone returns a copy of the task that shares no memory with the receiver.
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	c := *t
	if t.Description != nil {
		d := *t.Description
		c.Description = &d
	}
	return &c
}

// TaskDraft holds the caller-supplied fields for creating or replacing a
// task, before the store assigns or checks the ID.
type TaskDraft struct {
	ID          *int64
	Title       string
	Description *string
	Completed   bool
}

// Normalize trims the draft's text fields and validates them. It returns the
// normalized copy; the receiver is left untouched.
//
// Trimming happens before the emptiness and length checks, so "  a  " is a
// valid one-character title.
func (d TaskDraft) Normalize() (TaskDraft, error) {
	out := TaskDraft{Completed: d.Completed}

	if d.ID != nil {
		if *d.ID <= 0 {
			return TaskDraft{}, NewValidationError("id", "must be greater than 0", ErrInvalidID)
		}
		id := *d.ID
		out.ID = &id
	}

	title := strings.TrimSpace(d.Title)
	switch {
	case title == "":
		return TaskDraft{}, NewValidationError("title", "cannot be empty or only whitespace", ErrEmptyTitle)
	case utf8.RuneCountInString(title) > MaxTitleLength:
		return TaskDraft{}, NewValidationError("title", "must be at most 100 characters", ErrTitleTooLong)
	}
	out.Title = title

	if d.Description != nil {
		desc := strings.TrimSpace(*d.Description)
		switch {
		case desc == "":
			return TaskDraft{}, NewValidationError(
				"description", "cannot be empty or only whitespace", ErrEmptyDescription)
		case utf8.RuneCountInString(desc) > MaxDescriptionLength:
			return TaskDraft{}, NewValidationError(
				"description", "must be at most 500 characters", ErrDescriptionTooLong)
		}
		out.Description = &desc
	}

	return out, nil
}

// Matches reports whether the task's title or description contains needle,
// ignoring case. An empty needle matches everything.
func (t *Task) Matches(needle string) bool {
	if needle == "" {
		return true
	}
	needle = strings.ToLower(needle)
	if strings.Contains(strings.ToLower(t.Title), needle) {
		return true
	}
	return t.Description != nil && strings.Contains(strings.ToLower(*t.Description), needle)
}
