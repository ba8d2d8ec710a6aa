package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kbimsara/todo-infrastructure/internal/app"
	"github.com/kbimsara/todo-infrastructure/internal/config"
	dom "github.com/kbimsara/todo-infrastructure/internal/domain"
	"github.com/kbimsara/todo-infrastructure/internal/dto"
	"github.com/kbimsara/todo-infrastructure/internal/repo"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestRouter wires the real route setup against an in-memory repo.
func newTestRouter(todoRepo repo.TodoRepo) *gin.Engine {
	r := gin.New()
	app.Setup(r, config.Config{}, todoRepo)
	return r
}

type todoEnvelope struct {
	Success bool             `json:"success"`
	Data    dto.TodoResponse `json:"data"`
	Error   string           `json:"error"`
}

type listEnvelope struct {
	Success bool               `json:"success"`
	Data    []dto.TodoResponse `json:"data"`
	Error   string             `json:"error"`
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestTodoLifecycleScenario(t *testing.T) {
	r := newTestRouter(repo.NewMemoryTodoRepo())

	// POST /todos {"title":"Buy milk"} -> 201, completed defaults to false
	w := doJSON(t, r, http.MethodPost, "/todos", `{"title":"Buy milk"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var created todoEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.True(t, created.Success)
	assert.Equal(t, "Buy milk", created.Data.Title)
	assert.False(t, created.Data.Completed)
	assert.NotEmpty(t, created.Data.ID)
	assert.Equal(t, created.Data.CreatedAt, created.Data.UpdatedAt)

	id := created.Data.ID

	// PUT /todos/{id} {"completed":true} -> 200, title unchanged
	w = doJSON(t, r, http.MethodPut, "/todos/"+id, `{"completed":true}`)
	require.Equal(t, http.StatusOK, w.Code)

	var updated todoEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.True(t, updated.Success)
	assert.True(t, updated.Data.Completed)
	assert.Equal(t, "Buy milk", updated.Data.Title)

	// DELETE /todos/{id} -> 200 with empty data object
	w = doJSON(t, r, http.MethodDelete, "/todos/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":{}}`, w.Body.String())

	// GET /todos/{id} -> 404
	w = doJSON(t, r, http.MethodGet, "/todos/"+id, "")
	require.Equal(t, http.StatusNotFound, w.Code)

	var env todoEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.False(t, env.Success)
	assert.NotEmpty(t, env.Error)
}

func TestCreateValidationRejected(t *testing.T) {
	memRepo := repo.NewMemoryTodoRepo()
	r := newTestRouter(memRepo)

	cases := []struct {
		name string
		body string
	}{
		{"missing title", `{}`},
		{"empty title", `{"title":""}`},
		{"whitespace title", `{"title":"   "}`},
		{"title too long", `{"title":"` + strings.Repeat("a", 201) + `"}`},
		{"description too long", `{"title":"ok","description":"` + strings.Repeat("b", 1001) + `"}`},
		{"malformed json", `{"title":`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/todos", tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var env todoEnvelope
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
			assert.False(t, env.Success)
			assert.NotEmpty(t, env.Error)
		})
	}

	// nothing was inserted by any rejected request
	w := doJSON(t, r, http.MethodGet, "/todos", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list listEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Empty(t, list.Data)
}

func TestUpdateValidationRejected(t *testing.T) {
	r := newTestRouter(repo.NewMemoryTodoRepo())

	w := doJSON(t, r, http.MethodPost, "/todos", `{"title":"Buy milk"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var created todoEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(t, r, http.MethodPut, "/todos/"+created.Data.ID, `{"title":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// prior state intact
	w = doJSON(t, r, http.MethodGet, "/todos/"+created.Data.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	var got todoEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Buy milk", got.Data.Title)
}

func TestNotFoundResponses(t *testing.T) {
	r := newTestRouter(repo.NewMemoryTodoRepo())
	absent := primitive.NewObjectID().Hex()

	for _, tc := range []struct{ method, path, body string }{
		{http.MethodGet, "/todos/" + absent, ""},
		{http.MethodPut, "/todos/" + absent, `{"completed":true}`},
		{http.MethodDelete, "/todos/" + absent, ""},
		{http.MethodGet, "/todos/not-a-valid-id", ""},
	} {
		w := doJSON(t, r, tc.method, tc.path, tc.body)
		assert.Equal(t, http.StatusNotFound, w.Code, "%s %s", tc.method, tc.path)

		var env todoEnvelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.False(t, env.Success)
	}
}

func TestListOrderingOverHTTP(t *testing.T) {
	r := newTestRouter(repo.NewMemoryTodoRepo())

	for _, title := range []string{"first", "second", "third"} {
		w := doJSON(t, r, http.MethodPost, "/todos", `{"title":"`+title+`"}`)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doJSON(t, r, http.MethodGet, "/todos", "")
	require.Equal(t, http.StatusOK, w.Code)

	var list listEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Data, 3)
	for i := 1; i < len(list.Data); i++ {
		assert.False(t, list.Data[i-1].CreatedAt.Before(list.Data[i].CreatedAt))
	}
}

func TestListEmptyReturnsArray(t *testing.T) {
	r := newTestRouter(repo.NewMemoryTodoRepo())

	w := doJSON(t, r, http.MethodGet, "/todos", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":[]}`, w.Body.String())
}

func TestStoreFailureMapsTo500(t *testing.T) {
	r := newTestRouter(unreachableRepo{})

	w := doJSON(t, r, http.MethodGet, "/todos", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var env todoEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.False(t, env.Success)
	assert.NotEmpty(t, env.Error)

	w = doJSON(t, r, http.MethodPost, "/todos", `{"title":"Buy milk"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

// unreachableRepo simulates a store that cannot be reached.
type unreachableRepo struct{}

var errUnreachable = errors.New("server selection timeout")

func (unreachableRepo) Create(ctx context.Context, t dom.Todo) (dom.Todo, error) {
	return dom.Todo{}, errUnreachable
}
func (unreachableRepo) GetByID(ctx context.Context, id primitive.ObjectID) (dom.Todo, error) {
	return dom.Todo{}, errUnreachable
}
func (unreachableRepo) List(ctx context.Context) ([]dom.Todo, error) { return nil, errUnreachable }
func (unreachableRepo) Update(ctx context.Context, id primitive.ObjectID, patch dom.TodoPatch) (dom.Todo, error) {
	return dom.Todo{}, errUnreachable
}
func (unreachableRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	return errUnreachable
}
