package repo

import (
	"context"
	"sort"
	"sync"
	"time"

	dom "github.com/kbimsara/todo-infrastructure/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryTodoRepo implements TodoRepo with an in-process map. It mirrors the
// Mongo repo's semantics (id/timestamp stamping, createdAt-desc listing,
// ErrNotFound) and backs the test suites.
type MemoryTodoRepo struct {
	mu    sync.RWMutex
	todos map[primitive.ObjectID]dom.Todo
}

// NewMemoryTodoRepo returns an empty in-memory repo.
func NewMemoryTodoRepo() *MemoryTodoRepo {
	return &MemoryTodoRepo{todos: make(map[primitive.ObjectID]dom.Todo)}
}

func (r *MemoryTodoRepo) Create(ctx context.Context, t dom.Todo) (dom.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	t.ID = primitive.NewObjectID()
	t.CreatedAt = now
	t.UpdatedAt = now
	r.todos[t.ID] = t
	return t, nil
}

func (r *MemoryTodoRepo) GetByID(ctx context.Context, id primitive.ObjectID) (dom.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.todos[id]
	if !ok {
		return dom.Todo{}, ErrNotFound
	}
	return t, nil
}

func (r *MemoryTodoRepo) List(ctx context.Context) ([]dom.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]dom.Todo, 0, len(r.todos))
	for _, t := range r.todos {
		list = append(list, t)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

func (r *MemoryTodoRepo) Update(ctx context.Context, id primitive.ObjectID, patch dom.TodoPatch) (dom.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.todos[id]
	if !ok {
		return dom.Todo{}, ErrNotFound
	}
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Completed != nil {
		t.Completed = *patch.Completed
	}
	t.UpdatedAt = time.Now().UTC()
	r.todos[id] = t
	return t, nil
}

func (r *MemoryTodoRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.todos[id]; !ok {
		return ErrNotFound
	}
	delete(r.todos, id)
	return nil
}
