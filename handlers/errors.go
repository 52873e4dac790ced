package handlers

import (
	"errors"
	"log"
	"net/http"

	"lawpath_backend/db"
	"lawpath_backend/ingest"
	"lawpath_backend/models"
	"lawpath_backend/storage"

	"github.com/gin-gonic/gin"
)

// respondError maps domain errors onto HTTP statuses. Anything not in
// the client-error taxonomy is logged and reported as a 500 without
// leaking internals.
func respondError(c *gin.Context, err error) {
	var validationErr *models.ValidationError
	var fetchErr *storage.UpstreamFetchError

	switch {
	case errors.Is(err, ingest.ErrMalformedPayload):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
	case errors.As(err, &fetchErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": fetchErr.Error()})
	case errors.Is(err, db.ErrLessonNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Audio lesson not found"})
	default:
		log.Printf("Internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
