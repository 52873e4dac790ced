package ingest

import (
	"errors"
	"testing"
)

func TestDecodeSections(t *testing.T) {
	raw := `[
		{"title": "Intro", "englishText": "hello", "subsections": [
			{"title": "Part A", "hindiText": "text"},
			{"title": "Part B"}
		]},
		{"title": "Section 2"}
	]`

	sections, err := DecodeSections(raw)
	if err != nil {
		t.Fatalf("DecodeSections failed: %v", err)
	}
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	if sections[0].Title != "Intro" || sections[1].Title != "Section 2" {
		t.Errorf("section order not preserved: %q, %q", sections[0].Title, sections[1].Title)
	}
	if sections[0].EnglishText != "hello" {
		t.Errorf("expected englishText 'hello', got %q", sections[0].EnglishText)
	}
	if len(sections[0].Subsections) != 2 {
		t.Fatalf("expected 2 subsections, got %d", len(sections[0].Subsections))
	}
	if sections[0].Subsections[0].Title != "Part A" || sections[0].Subsections[1].Title != "Part B" {
		t.Errorf("subsection order not preserved")
	}
	if sections[0].EnglishAudio != nil || sections[0].Subsections[0].HindiAudio != nil {
		t.Errorf("decoded shells must have empty audio slots")
	}
}

func TestDecodeSectionsKeepsEchoedAudio(t *testing.T) {
	raw := `[{"title": "S", "englishAudio": {"url": "/uploads/audio/a.mp3", "fileName": "a.mp3", "fileSize": 10}}]`

	sections, err := DecodeSections(raw)
	if err != nil {
		t.Fatalf("DecodeSections failed: %v", err)
	}
	if sections[0].EnglishAudio == nil || sections[0].EnglishAudio.URL != "/uploads/audio/a.mp3" {
		t.Errorf("echoed audio variant lost in decode")
	}
}

func TestDecodeSectionsMalformed(t *testing.T) {
	cases := []string{
		"not json",
		"{",
		`{"title": "object, not array"}`,
		`[{"title": "ok"}] trailing`,
		`[{"title": "ok", "startTime": 3}]`, // unknown key rejected at the boundary
	}

	for _, raw := range cases {
		if _, err := DecodeSections(raw); !errors.Is(err, ErrMalformedPayload) {
			t.Errorf("DecodeSections(%q) error = %v, want ErrMalformedPayload", raw, err)
		}
	}
}

func TestDecodeSectionsNull(t *testing.T) {
	sections, err := DecodeSections("null")
	if err != nil {
		t.Fatalf("DecodeSections(null) failed: %v", err)
	}
	if sections == nil || len(sections) != 0 {
		t.Errorf("expected empty non-nil sections, got %#v", sections)
	}
}

func TestDecodeTags(t *testing.T) {
	tags, err := DecodeTags(`["ipc", "exam prep"]`)
	if err != nil {
		t.Fatalf("DecodeTags failed: %v", err)
	}
	if len(tags) != 2 || tags[0] != "ipc" || tags[1] != "exam prep" {
		t.Errorf("unexpected tags: %#v", tags)
	}

	if _, err := DecodeTags("not json"); !errors.Is(err, ErrMalformedPayload) {
		t.Errorf("expected ErrMalformedPayload for invalid tags, got %v", err)
	}
	if _, err := DecodeTags(`{"a": 1}`); !errors.Is(err, ErrMalformedPayload) {
		t.Errorf("expected ErrMalformedPayload for non-array tags, got %v", err)
	}
}
