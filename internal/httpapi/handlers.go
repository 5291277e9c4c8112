package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/roach88/tasklist/internal/record"
)

// Error codes in response bodies. Validation failures use the
// record.ValidationErrorCode values.
const (
	codeBadRequest = "BAD_REQUEST"
	codeNotFound   = "NOT_FOUND"
	codeStorage    = "STORAGE"
)

type createRequest struct {
	Text     interface{}     `json:"text"`
	Priority record.Priority `json:"priority"`
	DueDate  string          `json:"dueDate"`
	Tags     []string        `json:"tags"`
}

// updateRequest mirrors record.Patch. An empty dueDate removes the due date.
type updateRequest struct {
	ID        *string          `json:"id"`
	Text      *string          `json:"text"`
	Completed *bool            `json:"completed"`
	Priority  *record.Priority `json:"priority"`
	DueDate   *string          `json:"dueDate"`
	Tags      *[]string        `json:"tags"`
}

func (r updateRequest) patch() record.Patch {
	return record.Patch{
		ID:        r.ID,
		Text:      r.Text,
		Completed: r.Completed,
		Priority:  r.Priority,
		DueDate:   r.DueDate,
		Tags:      r.Tags,
	}
}

func (s *Server) handleList(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v := c.Query("filter"); v != "" {
		f, ok := record.ParseFilter(v)
		if !ok {
			abort(c, http.StatusBadRequest, codeBadRequest, "unknown filter: "+v)
			return
		}
		s.todos.SetFilter(f)
	}
	if v := c.Query("sort"); v != "" {
		m, ok := record.ParseSortMode(v)
		if !ok {
			abort(c, http.StatusBadRequest, codeBadRequest, "unknown sort: "+v)
			return
		}
		s.todos.SetSort(m)
	}

	c.JSON(http.StatusOK, gin.H{
		"data":   s.todos.View(),
		"filter": s.todos.Filter(),
		"sort":   s.todos.Sort(),
	})
}

func (s *Server) handleCreate(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}

	// Non-string text is rejected here; Add only accepts strings.
	if _, err := record.ValidateText(req.Text); err != nil {
		s.fail(c, err)
		return
	}
	if req.Priority != "" && !req.Priority.Valid() {
		abort(c, http.StatusBadRequest, codeBadRequest, "unknown priority: "+string(req.Priority))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task, err := s.todos.Add(c.Request.Context(), req.Text.(string), record.Options{
		Priority: req.Priority,
		DueDate:  req.DueDate,
		Tags:     req.Tags,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": task})
}

func (s *Server) handleGet(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := c.Param("id")
	task, ok := s.todos.Get(id)
	if !ok {
		notFound(c, id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": task})
}

func (s *Server) handleUpdate(c *gin.Context) {
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}
	if req.Priority != nil && !req.Priority.Valid() {
		abort(c, http.StatusBadRequest, codeBadRequest, "unknown priority: "+string(*req.Priority))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := c.Param("id")
	found, err := s.todos.Update(c.Request.Context(), id, req.patch())
	if !found {
		notFound(c, id)
		return
	}
	if err != nil {
		s.fail(c, err)
		return
	}
	task, _ := s.todos.Get(id)
	c.JSON(http.StatusOK, gin.H{"data": task})
}

func (s *Server) handleToggle(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := c.Param("id")
	found, err := s.todos.Toggle(c.Request.Context(), id)
	if !found {
		notFound(c, id)
		return
	}
	if err != nil {
		s.fail(c, err)
		return
	}
	task, _ := s.todos.Get(id)
	c.JSON(http.StatusOK, gin.H{"data": task})
}

func (s *Server) handleDelete(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := c.Param("id")
	task, ok := s.todos.Get(id)
	if !ok {
		notFound(c, id)
		return
	}
	if _, err := s.todos.Delete(c.Request.Context(), id); err != nil {
		s.fail(c, err)
		return
	}
	if err := s.dropIfEmpty(c.Request.Context()); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": task})
}

func (s *Server) handleClearCompleted(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed, err := s.todos.ClearCompleted(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	if err := s.dropIfEmpty(c.Request.Context()); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"removed": removed}})
}

func (s *Server) handleClearAll(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := s.todos.Len()
	if err := s.todos.ClearAll(c.Request.Context()); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"removed": removed}})
}

func (s *Server) handleStats(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"data": s.todos.Stats()})
}

// dropIfEmpty removes the stored snapshot once the list is empty, so a
// restarted server does not load tasks that were deleted.
func (s *Server) dropIfEmpty(ctx context.Context) error {
	if s.todos.Len() > 0 {
		return nil
	}
	return s.todos.ClearAll(ctx)
}

// fail maps a controller error to a response. Rejected text is 422 with the
// validation code; anything else is a storage failure.
func (s *Server) fail(c *gin.Context, err error) {
	var verr *record.ValidationError
	if errors.As(err, &verr) {
		abort(c, http.StatusUnprocessableEntity, string(verr.Code), verr.Message)
		return
	}
	s.logger.Error("request failed", "path", c.Request.URL.Path, "error", err)
	abort(c, http.StatusInternalServerError, codeStorage, err.Error())
}

func notFound(c *gin.Context, id string) {
	abort(c, http.StatusNotFound, codeNotFound, "task not found: "+id)
}

func abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{"code": code, "message": message})
}
