package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tasklist/internal/kv"
	"github.com/roach88/tasklist/internal/record"
	"github.com/roach88/tasklist/internal/testutil"
	"github.com/roach88/tasklist/internal/todo"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type taskResponse struct {
	Data record.Task `json:"data"`
}

type listResponse struct {
	Data   []record.Task `json:"data"`
	Filter string        `json:"filter"`
	Sort   string        `json:"sort"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func newTestServer(t *testing.T, store kv.Store) *Server {
	t.Helper()
	clock := testutil.NewDeterministicClock(time.UnixMilli(1_700_000_000_000), time.Millisecond)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := todo.New(store,
		todo.WithLogger(logger),
		todo.WithFactory(&record.Factory{Now: clock.Now, IDs: testutil.NewSequentialIDs("")}),
	)
	c.Load(context.Background())
	return NewServer(c, logger)
}

func do(t *testing.T, s *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestCreateAndList(t *testing.T) {
	s := newTestServer(t, kv.NewMemory())

	w := do(t, s, http.MethodPost, "/tasks", map[string]interface{}{"text": "  Buy milk  ", "priority": "high", "tags": []string{"home"}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[taskResponse](t, w).Data
	assert.Equal(t, "task-1", created.ID)
	assert.Equal(t, "Buy milk", created.Text)
	assert.Equal(t, record.PriorityHigh, created.Priority)
	assert.Equal(t, []string{"home"}, created.Tags)

	w = do(t, s, http.MethodPost, "/tasks", map[string]interface{}{"text": "Apples"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(t, s, http.MethodGet, "/tasks", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[listResponse](t, w)
	require.Len(t, list.Data, 2)
	assert.Equal(t, "Apples", list.Data[0].Text, "newest first by default")
	assert.Equal(t, "all", list.Filter)
	assert.Equal(t, "date", list.Sort)

	w = do(t, s, http.MethodGet, "/tasks?sort=alphabetical", nil)
	list = decode[listResponse](t, w)
	assert.Equal(t, "Apples", list.Data[0].Text)
	assert.Equal(t, "Buy milk", list.Data[1].Text)

	// view mode sticks for later requests
	w = do(t, s, http.MethodGet, "/tasks", nil)
	assert.Equal(t, "alphabetical", decode[listResponse](t, w).Sort)
}

func TestCreate_ValidationFailures(t *testing.T) {
	tests := []struct {
		name string
		body interface{}
		code string
	}{
		{"not a string", map[string]interface{}{"text": 42}, "NOT_TEXT"},
		{"missing text", map[string]interface{}{}, "NOT_TEXT"},
		{"blank", map[string]interface{}{"text": "   "}, "EMPTY_TEXT"},
		{"too long", map[string]interface{}{"text": string(bytes.Repeat([]byte("a"), 201))}, "TOO_LONG"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, kv.NewMemory())
			w := do(t, s, http.MethodPost, "/tasks", tt.body)
			assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
			assert.Equal(t, tt.code, decode[errorResponse](t, w).Code)
			assert.Equal(t, 0, s.todos.Len())
		})
	}
}

func TestCreate_BadRequests(t *testing.T) {
	s := newTestServer(t, kv.NewMemory())

	req := httptest.NewRequest(http.MethodPost, "/tasks", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, s, http.MethodPost, "/tasks", map[string]interface{}{"text": "x", "priority": "urgent"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "BAD_REQUEST", decode[errorResponse](t, w).Code)
}

func TestToggleAndFilter(t *testing.T) {
	s := newTestServer(t, kv.NewMemory())
	do(t, s, http.MethodPost, "/tasks", map[string]string{"text": "A"})
	do(t, s, http.MethodPost, "/tasks", map[string]string{"text": "B"})

	w := do(t, s, http.MethodPost, "/tasks/task-1/toggle", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[taskResponse](t, w).Data.Completed)

	w = do(t, s, http.MethodGet, "/tasks?filter=completed", nil)
	list := decode[listResponse](t, w)
	require.Len(t, list.Data, 1)
	assert.Equal(t, "A", list.Data[0].Text)

	w = do(t, s, http.MethodGet, "/tasks?filter=done", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, s, http.MethodPost, "/tasks/nope/toggle", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", decode[errorResponse](t, w).Code)
}

func TestUpdate(t *testing.T) {
	s := newTestServer(t, kv.NewMemory())
	do(t, s, http.MethodPost, "/tasks", map[string]interface{}{"text": "Draft", "dueDate": "2026-01-01"})

	w := do(t, s, http.MethodPatch, "/tasks/task-1", map[string]interface{}{"text": " Final ", "priority": "medium", "dueDate": ""})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	task := decode[taskResponse](t, w).Data
	assert.Equal(t, "Final", task.Text)
	assert.Equal(t, record.PriorityMedium, task.Priority)
	assert.Nil(t, task.DueDate)

	w = do(t, s, http.MethodPatch, "/tasks/task-1", map[string]interface{}{"id": "other"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "IMMUTABLE_ID", decode[errorResponse](t, w).Code)

	w = do(t, s, http.MethodPatch, "/tasks/task-1", map[string]interface{}{"text": ""})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(t, s, http.MethodPatch, "/tasks/missing", map[string]interface{}{"text": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, s, http.MethodGet, "/tasks/task-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Final", decode[taskResponse](t, w).Data.Text)
}

func TestDeleteAndClear(t *testing.T) {
	store := kv.NewMemory()
	s := newTestServer(t, store)
	for _, text := range []string{"A", "B", "C"} {
		do(t, s, http.MethodPost, "/tasks", map[string]string{"text": text})
	}
	do(t, s, http.MethodPost, "/tasks/task-2/toggle", nil)

	w := do(t, s, http.MethodDelete, "/tasks/task-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "A", decode[taskResponse](t, w).Data.Text)

	w = do(t, s, http.MethodDelete, "/tasks/task-1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, s, http.MethodPost, "/tasks/clear-completed", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":{"removed":1}}`, w.Body.String())

	w = do(t, s, http.MethodDelete, "/tasks", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":{"removed":1}}`, w.Body.String())
	assert.Equal(t, 0, store.Len())
}

func TestDeleteLastTaskRemovesSnapshot(t *testing.T) {
	store := kv.NewMemory()
	s := newTestServer(t, store)
	do(t, s, http.MethodPost, "/tasks", map[string]string{"text": "only"})
	require.Equal(t, 1, store.Len())

	w := do(t, s, http.MethodDelete, "/tasks/task-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, store.Len())

	restarted := newTestServer(t, store)
	assert.Equal(t, 0, restarted.todos.Len())
}

func TestStats(t *testing.T) {
	s := newTestServer(t, kv.NewMemory())
	for _, text := range []string{"A", "B", "C"} {
		do(t, s, http.MethodPost, "/tasks", map[string]string{"text": text})
	}
	do(t, s, http.MethodPost, "/tasks/task-1/toggle", nil)
	do(t, s, http.MethodPost, "/tasks/task-2/toggle", nil)

	w := do(t, s, http.MethodGet, "/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":{"total":3,"completed":2,"active":1,"completionRate":67}}`, w.Body.String())
}

type brokenStore struct{ *kv.Memory }

func (brokenStore) Set(context.Context, string, []byte) error {
	return errors.New("disk full")
}

func TestStorageFailure(t *testing.T) {
	s := newTestServer(t, brokenStore{kv.NewMemory()})

	w := do(t, s, http.MethodPost, "/tasks", map[string]string{"text": "A"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "STORAGE", decode[errorResponse](t, w).Code)
}

func TestListenAndServe_StopsOnCancel(t *testing.T) {
	s := newTestServer(t, kv.NewMemory())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, "127.0.0.1:0") }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
