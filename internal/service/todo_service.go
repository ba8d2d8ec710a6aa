package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	dom "github.com/kbimsara/todo-infrastructure/internal/domain"
	"github.com/kbimsara/todo-infrastructure/internal/repo"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound means no todo matches the given id. A malformed id is folded
// into it: callers cannot tell an unparseable id from an absent one.
var ErrNotFound = errors.New("todo not found")

const (
	maxTitleLen       = 200
	maxDescriptionLen = 1000
)

// ValidationError reports a field that violates its constraint. It is always
// raised before any write is attempted, so failed operations change nothing.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// TodoService validates input and translates store results. It holds no
// state between calls beyond the injected repo.
type TodoService struct {
	repo repo.TodoRepo
}

// NewTodoService returns a new TodoService.
func NewTodoService(r repo.TodoRepo) *TodoService {
	return &TodoService{repo: r}
}

// Create validates and inserts a new todo. The store assigns id, createdAt
// and updatedAt; completed defaults to false when nil.
func (s *TodoService) Create(ctx context.Context, title, description string, completed *bool) (dom.Todo, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)

	if title == "" {
		return dom.Todo{}, &ValidationError{Field: "title", Message: "is required"}
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return dom.Todo{}, &ValidationError{Field: "title", Message: fmt.Sprintf("must be at most %d characters", maxTitleLen)}
	}
	if utf8.RuneCountInString(description) > maxDescriptionLen {
		return dom.Todo{}, &ValidationError{Field: "description", Message: fmt.Sprintf("must be at most %d characters", maxDescriptionLen)}
	}

	done := false
	if completed != nil {
		done = *completed
	}

	return s.repo.Create(ctx, dom.Todo{
		Title:       title,
		Description: description,
		Completed:   done,
	})
}

// List returns all todos, most recently created first.
func (s *TodoService) List(ctx context.Context) ([]dom.Todo, error) {
	return s.repo.List(ctx)
}

// GetByID returns one todo by id.
func (s *TodoService) GetByID(ctx context.Context, id string) (dom.Todo, error) {
	oid, err := parseID(id)
	if err != nil {
		return dom.Todo{}, err
	}
	t, err := s.repo.GetByID(ctx, oid)
	if errors.Is(err, repo.ErrNotFound) {
		return dom.Todo{}, ErrNotFound
	}
	return t, err
}

// Update validates supplied fields, then applies them in one store call.
// Unsupplied fields keep their prior values; updatedAt always refreshes,
// even for an empty patch.
func (s *TodoService) Update(ctx context.Context, id string, patch dom.TodoPatch) (dom.Todo, error) {
	oid, err := parseID(id)
	if err != nil {
		return dom.Todo{}, err
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return dom.Todo{}, &ValidationError{Field: "title", Message: "is required"}
		}
		if utf8.RuneCountInString(title) > maxTitleLen {
			return dom.Todo{}, &ValidationError{Field: "title", Message: fmt.Sprintf("must be at most %d characters", maxTitleLen)}
		}
		patch.Title = &title
	}
	if patch.Description != nil {
		description := strings.TrimSpace(*patch.Description)
		if utf8.RuneCountInString(description) > maxDescriptionLen {
			return dom.Todo{}, &ValidationError{Field: "description", Message: fmt.Sprintf("must be at most %d characters", maxDescriptionLen)}
		}
		patch.Description = &description
	}

	t, err := s.repo.Update(ctx, oid, patch)
	if errors.Is(err, repo.ErrNotFound) {
		return dom.Todo{}, ErrNotFound
	}
	return t, err
}

// Delete removes one todo by id.
func (s *TodoService) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	err = s.repo.Delete(ctx, oid)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return primitive.NilObjectID, ErrNotFound
	}
	return oid, nil
}
