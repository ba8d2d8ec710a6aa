package dto

import (
	"time"

	dom "github.com/kbimsara/todo-infrastructure/internal/domain"
)

// Envelope wraps every /todos response body. On success the payload sits
// under data; on failure the message sits under error.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// OK builds a success envelope around data.
func OK(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

// Fail builds a failure envelope with an error message.
func Fail(msg string) Envelope {
	return Envelope{Success: false, Error: msg}
}

// CreateTodoRequest is the JSON body for POST /todos.
type CreateTodoRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description" binding:"max=1000"`
	Completed   *bool  `json:"completed"` // optional, defaults to false
}

// UpdateTodoRequest is the JSON body for PUT /todos/{id}.
// All fields are optional; nil means "leave unchanged".
type UpdateTodoRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=200"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	Completed   *bool   `json:"completed"`
}

// Patch converts the request into a domain patch.
func (r UpdateTodoRequest) Patch() dom.TodoPatch {
	return dom.TodoPatch{
		Title:       r.Title,
		Description: r.Description,
		Completed:   r.Completed,
	}
}

// TodoResponse is the wire shape of a single todo.
type TodoResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// HealthResponse is the liveness payload consumed by the load balancer.
// It deliberately carries no dependency state.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
}

// FromDomain maps a domain todo to its wire shape.
func FromDomain(t dom.Todo) TodoResponse {
	return TodoResponse{
		ID:          t.ID.Hex(),
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// FromDomainList maps a slice of domain todos, preserving order.
func FromDomainList(list []dom.Todo) []TodoResponse {
	out := make([]TodoResponse, len(list))
	for i := range list {
		out[i] = FromDomain(list[i])
	}
	return out
}
