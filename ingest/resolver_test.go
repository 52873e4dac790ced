package ingest

import (
	"reflect"
	"testing"

	"lawpath_backend/models"
)

func sampleTree() []models.AudioSection {
	return []models.AudioSection{
		{Title: "Intro", Subsections: []models.AudioSubsection{
			{Title: "Part A"},
			{Title: "Part B"},
		}},
		{Title: "Offenses"},
		{Title: "Punishments"},
	}
}

func variant(url string) models.AudioVariant {
	return models.AudioVariant{URL: url, FileName: url + ".orig", FileSize: int64(len(url))}
}

func mustLocator(t *testing.T, field string) Locator {
	t.Helper()
	loc, ok := ParseFieldName(field)
	if !ok {
		t.Fatalf("field %q not recognized", field)
	}
	return loc
}

func TestResolveFillsTargetedSections(t *testing.T) {
	atts := []Attachment{
		{Locator: mustLocator(t, "section_0_englishAudio"), File: variant("/uploads/audio/e0.mp3")},
		{Locator: mustLocator(t, "section_2_englishAudio"), File: variant("/uploads/audio/e2.mp3")},
		{Locator: mustLocator(t, "section_1_easyHindiAudio"), File: variant("/uploads/audio/h1.mp3")},
	}

	out := Resolve(sampleTree(), atts)

	if out[0].EnglishAudio == nil || out[0].EnglishAudio.URL != "/uploads/audio/e0.mp3" {
		t.Errorf("sections[0].englishAudio = %+v", out[0].EnglishAudio)
	}
	if got := out[0].EnglishAudio; got.FileName != "/uploads/audio/e0.mp3.orig" || got.FileSize != int64(len("/uploads/audio/e0.mp3")) {
		t.Errorf("sections[0].englishAudio metadata = %+v", got)
	}
	if out[2].EnglishAudio == nil || out[2].EnglishAudio.URL != "/uploads/audio/e2.mp3" {
		t.Errorf("sections[2].englishAudio = %+v", out[2].EnglishAudio)
	}
	if out[1].EasyHindiAudio == nil || out[1].EasyHindiAudio.URL != "/uploads/audio/h1.mp3" {
		t.Errorf("sections[1].easyHindiAudio = %+v", out[1].EasyHindiAudio)
	}
	if out[1].EnglishAudio != nil {
		t.Errorf("untargeted slot populated: %+v", out[1].EnglishAudio)
	}
}

func TestResolveSubsectionSlot(t *testing.T) {
	tree := []models.AudioSection{
		{Title: "Intro", Subsections: []models.AudioSubsection{{Title: "Part A"}}},
	}
	atts := []Attachment{
		{Locator: mustLocator(t, "section_0_subsection_0_hindiAudio"), File: variant("/uploads/audio/h.mp3")},
	}

	out := Resolve(tree, atts)

	sub := out[0].Subsections[0]
	if sub.HindiAudio == nil || sub.HindiAudio.URL != "/uploads/audio/h.mp3" {
		t.Errorf("subsection hindiAudio = %+v", sub.HindiAudio)
	}
	if sub.EnglishAudio != nil {
		t.Errorf("subsection englishAudio should be absent, got %+v", sub.EnglishAudio)
	}
}

func TestResolveOutOfRangeDropped(t *testing.T) {
	tree := sampleTree()
	oob := []Attachment{
		{Locator: mustLocator(t, "section_3_englishAudio"), File: variant("/uploads/audio/x.mp3")},
		{Locator: mustLocator(t, "section_99_hindiAudio"), File: variant("/uploads/audio/y.mp3")},
		{Locator: mustLocator(t, "section_1_subsection_0_englishAudio"), File: variant("/uploads/audio/z.mp3")},
		{Locator: mustLocator(t, "section_0_subsection_2_englishAudio"), File: variant("/uploads/audio/w.mp3")},
	}

	got := Resolve(tree, oob)
	want := Resolve(tree, nil)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("out-of-range attachments changed the tree:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestResolveLastWins(t *testing.T) {
	atts := []Attachment{
		{Locator: mustLocator(t, "section_0_englishAudio"), File: variant("/uploads/audio/first.mp3")},
		{Locator: mustLocator(t, "section_0_englishAudio"), File: variant("/uploads/audio/second.mp3")},
	}

	out := Resolve(sampleTree(), atts)

	if out[0].EnglishAudio == nil || out[0].EnglishAudio.URL != "/uploads/audio/second.mp3" {
		t.Errorf("expected last attachment to win, got %+v", out[0].EnglishAudio)
	}
}

func TestResolveDoesNotMutateInput(t *testing.T) {
	tree := sampleTree()
	atts := []Attachment{
		{Locator: mustLocator(t, "section_0_englishAudio"), File: variant("/uploads/audio/e.mp3")},
		{Locator: mustLocator(t, "section_0_subsection_0_hindiAudio"), File: variant("/uploads/audio/h.mp3")},
	}

	Resolve(tree, atts)

	if tree[0].EnglishAudio != nil {
		t.Errorf("input tree mutated: sections[0].englishAudio = %+v", tree[0].EnglishAudio)
	}
	if tree[0].Subsections[0].HindiAudio != nil {
		t.Errorf("input tree mutated: subsection hindiAudio = %+v", tree[0].Subsections[0].HindiAudio)
	}
}

func TestApplyRoot(t *testing.T) {
	lesson := &models.Lesson{Title: "L"}

	ApplyRoot(lesson, Attachment{Locator: mustLocator(t, "englishAudio"), File: variant("/uploads/audio/en.mp3")})
	ApplyRoot(lesson, Attachment{Locator: mustLocator(t, "hindiAudio"), File: variant("/uploads/audio/hi.mp3")})

	if lesson.EnglishAudio == nil || lesson.EnglishAudio.URL != "/uploads/audio/en.mp3" {
		t.Errorf("englishAudio = %+v", lesson.EnglishAudio)
	}
	if lesson.HindiAudio == nil || lesson.HindiAudio.URL != "/uploads/audio/hi.mp3" {
		t.Errorf("hindiAudio = %+v", lesson.HindiAudio)
	}
	if lesson.AudioURL != "" {
		t.Errorf("root slots must not touch legacy fields, audioUrl = %q", lesson.AudioURL)
	}
}

func TestApplyRootLegacyFile(t *testing.T) {
	lesson := &models.Lesson{Title: "L"}
	file := models.AudioVariant{URL: "/uploads/audio/a.mp3", FileName: "lecture.mp3", FileSize: 42}

	ApplyRoot(lesson, Attachment{Locator: mustLocator(t, "file"), File: file})

	if lesson.AudioURL != "/uploads/audio/a.mp3" || lesson.FileName != "lecture.mp3" || lesson.FileSize != 42 {
		t.Errorf("legacy fields = %q %q %d", lesson.AudioURL, lesson.FileName, lesson.FileSize)
	}
	if lesson.EnglishAudio != nil || lesson.HindiAudio != nil {
		t.Errorf("legacy file must not populate root variants")
	}
}
