package handlers

import (
	"net/http"

	"lawpath_backend/categories"
	"lawpath_backend/db"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	store    *db.LessonStore
	registry *categories.Registry
}

func NewCategoryHandler(store *db.LessonStore, registry *categories.Registry) *CategoryHandler {
	return &CategoryHandler{store: store, registry: registry}
}

// GetCategoriesWithCount returns the full registry annotated with how
// many active lessons use each category. Unused categories report 0.
func (h *CategoryHandler) GetCategoriesWithCount(c *gin.Context) {
	counts, err := h.store.CategoryCounts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.registry.WithCounts(counts))
}

// GetAllCategories returns the raw registry table.
func (h *CategoryHandler) GetAllCategories(c *gin.Context) {
	c.JSON(http.StatusOK, h.registry.All())
}
