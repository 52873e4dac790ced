package models

import (
	"errors"
	"testing"
)

func validLesson() *Lesson {
	return &Lesson{
		Title:    "Article 21",
		Category: "constitution",
		Sections: []AudioSection{
			{
				Title:        "Overview",
				EnglishAudio: &AudioVariant{URL: "/uploads/audio/english-a.mp3", FileName: "a.mp3", FileSize: 100},
				Subsections: []AudioSubsection{
					{
						Title:      "Scope",
						HindiAudio: &AudioVariant{URL: "/uploads/audio/hindi-b.mp3", FileName: "b.mp3", FileSize: 200},
					},
				},
			},
		},
		EnglishAudio: &AudioVariant{URL: "/uploads/audio/english-root.mp3", FileName: "root.mp3", FileSize: 300},
	}
}

func assertValidationField(t *testing.T, err error, field string) {
	t.Helper()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("got %v, want *ValidationError", err)
	}
	if verr.Field != field {
		t.Errorf("validation field = %q, want %q", verr.Field, field)
	}
}

func TestLessonValidate(t *testing.T) {
	if err := validLesson().Validate(); err != nil {
		t.Fatalf("valid lesson rejected: %v", err)
	}
}

func TestLessonValidateMissingTitle(t *testing.T) {
	l := validLesson()
	l.Title = ""
	assertValidationField(t, l.Validate(), "title")
}

func TestLessonValidateMissingSectionTitle(t *testing.T) {
	l := validLesson()
	l.Sections = append(l.Sections, AudioSection{})
	assertValidationField(t, l.Validate(), "sections[1].title")
}

func TestLessonValidateMissingSubsectionTitle(t *testing.T) {
	l := validLesson()
	l.Sections[0].Subsections[0].Title = ""
	assertValidationField(t, l.Validate(), "sections[0].subsections[0].title")
}

func TestLessonValidatePartialVariant(t *testing.T) {
	l := validLesson()
	l.Sections[0].Subsections[0].HindiAudio = &AudioVariant{URL: "/uploads/audio/x.mp3"}
	assertValidationField(t, l.Validate(), "sections[0].subsections[0].hindiAudio")
}

func TestLessonValidatePartialRootVariant(t *testing.T) {
	l := validLesson()
	l.EnglishAudio = &AudioVariant{FileName: "root.mp3", FileSize: 300}
	assertValidationField(t, l.Validate(), "englishAudio")
}

func TestLessonValidateNegativeFileSize(t *testing.T) {
	l := validLesson()
	l.Sections[0].EnglishAudio.FileSize = -1
	assertValidationField(t, l.Validate(), "sections[0].englishAudio")
}

func TestValidateSectionsStandalone(t *testing.T) {
	sections := []AudioSection{{Title: "S"}}
	if err := ValidateSections(sections); err != nil {
		t.Fatalf("bare titled section rejected: %v", err)
	}

	sections[0].EasyHindiAudio = &AudioVariant{FileName: "only-name.mp3"}
	assertValidationField(t, ValidateSections(sections), "sections[0].easyHindiAudio")
}

func TestCollectAudioURLs(t *testing.T) {
	l := validLesson()
	l.AudioURL = "/uploads/audio/legacy.mp3"

	urls := l.CollectAudioURLs()
	want := map[string]bool{
		"/uploads/audio/legacy.mp3":       true,
		"/uploads/audio/english-root.mp3": true,
		"/uploads/audio/english-a.mp3":    true,
		"/uploads/audio/hindi-b.mp3":      true,
	}
	if len(urls) != len(want) {
		t.Fatalf("CollectAudioURLs returned %d urls, want %d: %v", len(urls), len(want), urls)
	}
	for _, u := range urls {
		if !want[u] {
			t.Errorf("unexpected url %q", u)
		}
	}
}

func TestCollectAudioURLsEmpty(t *testing.T) {
	l := &Lesson{Title: "T"}
	if urls := l.CollectAudioURLs(); len(urls) != 0 {
		t.Errorf("empty lesson collected urls: %v", urls)
	}
}
