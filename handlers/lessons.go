package handlers

import (
	"net/http"
	"strconv"

	"lawpath_backend/db"
	"lawpath_backend/models"

	"github.com/gin-gonic/gin"
)

// LessonHandler serves the read-only lesson surface. Only active
// lessons are visible here.
type LessonHandler struct {
	store *db.LessonStore
}

func NewLessonHandler(store *db.LessonStore) *LessonHandler {
	return &LessonHandler{store: store}
}

// List handles GET /audio-lessons with pagination, category filter and
// free-text search.
func (h *LessonHandler) List(c *gin.Context) {
	active := true
	opts := db.ListOptions{
		Page:     queryInt(c, "page", 1),
		Limit:    queryInt(c, "limit", 12),
		Category: c.Query("category"),
		Search:   c.Query("search"),
		IsActive: &active,
	}

	result, err := h.store.List(c.Request.Context(), opts)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Search handles GET /audio-lessons/search?q=. An empty query returns
// an empty page rather than everything.
func (h *LessonHandler) Search(c *gin.Context) {
	query := c.Query("q")
	limit := queryInt(c, "limit", 12)
	if query == "" {
		c.JSON(http.StatusOK, db.ListResult{
			Items: []*models.Lesson{}, Total: 0, Page: 1, Limit: limit, TotalPages: 0,
		})
		return
	}

	active := true
	result, err := h.store.List(c.Request.Context(), db.ListOptions{
		Page:     queryInt(c, "page", 1),
		Limit:    limit,
		Search:   query,
		IsActive: &active,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetByCategory handles GET /audio-lessons/category/:category.
func (h *LessonHandler) GetByCategory(c *gin.Context) {
	active := true
	result, err := h.store.List(c.Request.Context(), db.ListOptions{
		Page:     queryInt(c, "page", 1),
		Limit:    queryInt(c, "limit", 12),
		Category: c.Param("category"),
		IsActive: &active,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetByID handles GET /audio-lessons/:id.
func (h *LessonHandler) GetByID(c *gin.Context) {
	lesson, err := h.store.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lesson)
}

func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
