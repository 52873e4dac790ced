package ingest

import (
	"testing"

	"lawpath_backend/models"
)

func TestApplyLegacyPresenceCopy(t *testing.T) {
	lesson := &models.Lesson{Title: "L"}

	ApplyLegacy(lesson, LegacyFields{
		AudioURL:   "/uploads/audio/old.mp3",
		FileName:   "old.mp3",
		FileSize:   1024,
		Duration:   90,
		Transcript: "text",
		Language:   "hindi",
	})

	if lesson.AudioURL != "/uploads/audio/old.mp3" || lesson.FileName != "old.mp3" || lesson.FileSize != 1024 {
		t.Errorf("legacy audio fields = %q %q %d", lesson.AudioURL, lesson.FileName, lesson.FileSize)
	}
	if lesson.Duration != 90 || lesson.Transcript != "text" || lesson.Language != "hindi" {
		t.Errorf("legacy scalar fields = %d %q %q", lesson.Duration, lesson.Transcript, lesson.Language)
	}
}

func TestApplyLegacyKeepsAbsentFields(t *testing.T) {
	lesson := &models.Lesson{
		Title:      "L",
		AudioURL:   "/uploads/audio/existing.mp3",
		FileName:   "existing.mp3",
		FileSize:   10,
		Transcript: "existing transcript",
	}

	ApplyLegacy(lesson, LegacyFields{Language: "english"})

	if lesson.AudioURL != "/uploads/audio/existing.mp3" || lesson.FileName != "existing.mp3" || lesson.FileSize != 10 {
		t.Errorf("absent legacy fields overwrote existing values: %q %q %d", lesson.AudioURL, lesson.FileName, lesson.FileSize)
	}
	if lesson.Transcript != "existing transcript" {
		t.Errorf("transcript overwritten: %q", lesson.Transcript)
	}
	if lesson.Language != "english" {
		t.Errorf("submitted language not applied: %q", lesson.Language)
	}
}

func TestApplyLegacyCoexistsWithTreeAudio(t *testing.T) {
	lesson := &models.Lesson{
		Title: "L",
		Sections: []models.AudioSection{
			{Title: "S", EnglishAudio: &models.AudioVariant{URL: "/uploads/audio/tree.mp3", FileName: "t.mp3", FileSize: 5}},
		},
	}

	ApplyLegacy(lesson, LegacyFields{AudioURL: "/uploads/audio/flat.mp3", FileName: "f.mp3", FileSize: 7})

	if lesson.AudioURL != "/uploads/audio/flat.mp3" {
		t.Errorf("legacy audioUrl = %q", lesson.AudioURL)
	}
	if lesson.Sections[0].EnglishAudio == nil || lesson.Sections[0].EnglishAudio.URL != "/uploads/audio/tree.mp3" {
		t.Errorf("tree audio disturbed by legacy copy: %+v", lesson.Sections[0].EnglishAudio)
	}
}
