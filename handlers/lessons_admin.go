package handlers

import (
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"lawpath_backend/db"
	"lawpath_backend/ingest"
	"lawpath_backend/models"
	"lawpath_backend/storage"

	"github.com/gin-gonic/gin"
)

// AdminLessonHandler owns the multipart ingestion surface: a lesson
// arrives as one JSON-encoded section tree plus an unordered bag of
// audio file parts whose field names say where each file belongs.
type AdminLessonHandler struct {
	store *db.LessonStore
	files *storage.AudioStore
}

func NewAdminLessonHandler(store *db.LessonStore, files *storage.AudioStore) *AdminLessonHandler {
	return &AdminLessonHandler{store: store, files: files}
}

// Create handles POST /admin/audio-lessons. Pipeline: decode the
// section tree and the file field names, persist uploads, resolve files
// onto tree slots, reconcile legacy flat fields, validate and store.
func (h *AdminLessonHandler) Create(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart form"})
		return
	}

	lesson := &models.Lesson{
		Title:       formValue(form, "title"),
		HeadTitle:   formValue(form, "headTitle"),
		Description: formValue(form, "description"),
		Category:    formValue(form, "category"),
		Tags:        []string{},
		Sections:    []models.AudioSection{},
		IsActive:    true,
	}
	applyTranscriptions(lesson, form)
	if v := formValue(form, "isActive"); v != "" {
		lesson.IsActive = v == "true"
	}
	if userID := c.GetInt("userID"); userID > 0 {
		lesson.UploadedBy = &userID
	}

	if raw := formValue(form, "tags"); raw != "" {
		tags, err := ingest.DecodeTags(raw)
		if err != nil {
			respondError(c, err)
			return
		}
		lesson.Tags = tags
	}

	sections := []models.AudioSection{}
	if raw := formValue(form, "sections"); raw != "" {
		if sections, err = ingest.DecodeSections(raw); err != nil {
			respondError(c, err)
			return
		}
	}

	atts, err := h.storeUploads(form)
	if err != nil {
		respondError(c, err)
		return
	}
	atts, err = h.fetchRootURLs(c, form, atts)
	if err != nil {
		respondError(c, err)
		return
	}

	if len(atts) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least one audio file or URL is required"})
		return
	}

	lesson.Sections = ingest.Resolve(sections, atts)
	for _, att := range atts {
		ingest.ApplyRoot(lesson, att)
	}
	ingest.ApplyLegacy(lesson, legacyFromForm(form))

	if err := h.store.Create(c.Request.Context(), lesson); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, lesson)
}

// Update handles PUT /admin/audio-lessons/:id. Submitted fields replace
// stored ones; audio slots are re-resolved against any newly uploaded
// files, over the newly submitted tree when one is present or the
// stored tree otherwise.
func (h *AdminLessonHandler) Update(c *gin.Context) {
	lesson, err := h.store.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart form"})
		return
	}

	if v := formValue(form, "title"); v != "" {
		lesson.Title = v
	}
	if v := formValue(form, "headTitle"); v != "" {
		lesson.HeadTitle = v
	}
	if v := formValue(form, "description"); v != "" {
		lesson.Description = v
	}
	if v := formValue(form, "category"); v != "" {
		lesson.Category = v
	}
	if v := formValue(form, "isActive"); v != "" {
		lesson.IsActive = v == "true"
	}
	applyTranscriptions(lesson, form)

	if raw := formValue(form, "tags"); raw != "" {
		tags, err := ingest.DecodeTags(raw)
		if err != nil {
			respondError(c, err)
			return
		}
		lesson.Tags = tags
	}

	sections := lesson.Sections
	if raw := formValue(form, "sections"); raw != "" {
		if sections, err = ingest.DecodeSections(raw); err != nil {
			respondError(c, err)
			return
		}
	}

	atts, err := h.storeUploads(form)
	if err != nil {
		respondError(c, err)
		return
	}
	atts, err = h.fetchRootURLs(c, form, atts)
	if err != nil {
		respondError(c, err)
		return
	}

	lesson.Sections = ingest.Resolve(sections, atts)
	for _, att := range atts {
		ingest.ApplyRoot(lesson, att)
	}
	ingest.ApplyLegacy(lesson, legacyFromForm(form))

	if err := h.store.Update(c.Request.Context(), c.Param("id"), lesson); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lesson)
}

// UpdateSections handles PUT /admin/audio-lessons/:id/sections — a
// JSON-only replacement of the section tree, no file handling.
func (h *AdminLessonHandler) UpdateSections(c *gin.Context) {
	var body struct {
		Sections []models.AudioSection `json:"sections" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sections payload"})
		return
	}

	lesson, err := h.store.UpdateSections(c.Request.Context(), c.Param("id"), body.Sections)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lesson)
}

// Delete handles DELETE /admin/audio-lessons/:id. The database record
// removal is authoritative; physical file cleanup is best effort.
func (h *AdminLessonHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Audio lesson deleted successfully", "id": id})
}

// List handles GET /admin/audio-lessons. Unlike the public listing,
// inactive lessons are visible and filterable.
func (h *AdminLessonHandler) List(c *gin.Context) {
	opts := db.ListOptions{
		Page:     queryInt(c, "page", 1),
		Limit:    queryInt(c, "limit", 10),
		Category: c.Query("category"),
	}
	if raw := c.Query("isActive"); raw != "" {
		active := raw == "true"
		opts.IsActive = &active
	}

	result, err := h.store.List(c.Request.Context(), opts)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetByID handles GET /admin/audio-lessons/:id.
func (h *AdminLessonHandler) GetByID(c *gin.Context) {
	lesson, err := h.store.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lesson)
}

// storeUploads persists every recognized file part and pairs it with
// its decoded locator. Unrecognized field names are skipped without
// error so client-side drift between tree shape and upload set never
// fails a submission. Parts sharing a field name keep their submission
// order, which is what makes the resolver's last-wins deterministic.
func (h *AdminLessonHandler) storeUploads(form *multipart.Form) ([]ingest.Attachment, error) {
	var atts []ingest.Attachment
	for field, headers := range form.File {
		loc, ok := ingest.ParseFieldName(field)
		if !ok {
			continue
		}
		for _, fh := range headers {
			variant, err := h.files.SaveUpload(fh, loc.FilePrefix())
			if err != nil {
				return nil, err
			}
			atts = append(atts, ingest.Attachment{Locator: loc, File: variant})
		}
	}
	return atts, nil
}

// fetchRootURLs downloads remote audio for the root language slots when
// the client passed a URL instead of an upload. A direct upload for the
// same slot in the same request takes precedence.
func (h *AdminLessonHandler) fetchRootURLs(c *gin.Context, form *multipart.Form, atts []ingest.Attachment) ([]ingest.Attachment, error) {
	covered := make(map[ingest.Slot]bool)
	for _, att := range atts {
		if att.Locator.Kind == ingest.LocatorLesson {
			covered[att.Locator.Slot] = true
		}
	}

	for _, src := range []struct {
		field string
		slot  ingest.Slot
	}{
		{"englishAudioUrl", ingest.SlotEnglish},
		{"hindiAudioUrl", ingest.SlotHindi},
	} {
		rawURL := formValue(form, src.field)
		if rawURL == "" || covered[src.slot] {
			continue
		}
		loc := ingest.Locator{Kind: ingest.LocatorLesson, Slot: src.slot}
		variant, err := h.files.FetchURL(c.Request.Context(), rawURL, loc.FilePrefix())
		if err != nil {
			return nil, err
		}
		atts = append(atts, ingest.Attachment{Locator: loc, File: variant})
	}
	return atts, nil
}

func applyTranscriptions(lesson *models.Lesson, form *multipart.Form) {
	if v := formValue(form, "englishTranscription"); v != "" {
		lesson.EnglishTranscription = v
	}
	if v := formValue(form, "hindiTranscription"); v != "" {
		lesson.HindiTranscription = v
	}
	if v := formValue(form, "easyEnglishTranscription"); v != "" {
		lesson.EasyEnglishTranscription = v
	}
	if v := formValue(form, "easyHindiTranscription"); v != "" {
		lesson.EasyHindiTranscription = v
	}
}

// legacyFromForm reads the flat pre-tree scalar fields still accepted
// for backward compatibility.
func legacyFromForm(form *multipart.Form) ingest.LegacyFields {
	f := ingest.LegacyFields{
		AudioURL:   formValue(form, "audioUrl"),
		FileName:   formValue(form, "fileName"),
		Transcript: formValue(form, "transcript"),
		Language:   formValue(form, "language"),
	}
	if raw := formValue(form, "fileSize"); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil && n > 0 {
			f.FileSize = n
		}
	}
	if raw := formValue(form, "duration"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			f.Duration = n
		}
	}
	return f
}

func formValue(form *multipart.Form, key string) string {
	if values := form.Value[key]; len(values) > 0 {
		return strings.TrimSpace(values[0])
	}
	return ""
}
