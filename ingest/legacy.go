package ingest

import (
	"lawpath_backend/models"
)

// LegacyFields carries the flat pre-tree audio fields a submission may
// still include. Zero values mean "not submitted".
type LegacyFields struct {
	AudioURL   string
	FileName   string
	FileSize   int64
	Duration   int
	Transcript string
	Language   string
}

// ApplyLegacy copies submitted legacy fields onto the lesson. It is a
// presence-copy only: fields absent from the submission keep whatever
// the lesson already holds, and tree-based audio is never touched, so
// mixed-era records stay intact.
func ApplyLegacy(lesson *models.Lesson, f LegacyFields) {
	if f.AudioURL != "" {
		lesson.AudioURL = f.AudioURL
	}
	if f.FileName != "" {
		lesson.FileName = f.FileName
	}
	if f.FileSize > 0 {
		lesson.FileSize = f.FileSize
	}
	if f.Duration > 0 {
		lesson.Duration = f.Duration
	}
	if f.Transcript != "" {
		lesson.Transcript = f.Transcript
	}
	if f.Language != "" {
		lesson.Language = f.Language
	}
}
