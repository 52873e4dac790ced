package models

import (
	"fmt"
	"time"
)

// AudioVariant is one stored audio asset. A variant is either fully
// present or the slot is nil, never partially filled.
type AudioVariant struct {
	URL      string `json:"url"`
	FileName string `json:"fileName"`
	FileSize int64  `json:"fileSize"`
}

// AudioSubsection is the deepest node of the content tree. Subsections
// do not nest further.
type AudioSubsection struct {
	Title            string        `json:"title"`
	EnglishText      string        `json:"englishText,omitempty"`
	HindiText        string        `json:"hindiText,omitempty"`
	EasyEnglishText  string        `json:"easyEnglishText,omitempty"`
	EasyHindiText    string        `json:"easyHindiText,omitempty"`
	EnglishAudio     *AudioVariant `json:"englishAudio,omitempty"`
	HindiAudio       *AudioVariant `json:"hindiAudio,omitempty"`
	EasyEnglishAudio *AudioVariant `json:"easyEnglishAudio,omitempty"`
	EasyHindiAudio   *AudioVariant `json:"easyHindiAudio,omitempty"`
}

// AudioSection is one ordered section of a lesson. Array index is
// display order.
type AudioSection struct {
	Title            string            `json:"title"`
	TotalSubsections int               `json:"totalSubsections,omitempty"`
	EnglishText      string            `json:"englishText,omitempty"`
	HindiText        string            `json:"hindiText,omitempty"`
	EasyEnglishText  string            `json:"easyEnglishText,omitempty"`
	EasyHindiText    string            `json:"easyHindiText,omitempty"`
	EnglishAudio     *AudioVariant     `json:"englishAudio,omitempty"`
	HindiAudio       *AudioVariant     `json:"hindiAudio,omitempty"`
	EasyEnglishAudio *AudioVariant     `json:"easyEnglishAudio,omitempty"`
	EasyHindiAudio   *AudioVariant     `json:"easyHindiAudio,omitempty"`
	Subsections      []AudioSubsection `json:"subsections,omitempty"`
}

// Lesson is the root aggregate for one audio lesson. Legacy flat fields
// (AudioURL, FileName, FileSize, Duration, Transcript, Language) carry
// records created before the section tree existed and may coexist with
// tree audio.
type Lesson struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	HeadTitle   string `json:"headTitle,omitempty"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`

	Tags     []string       `json:"tags"`
	Sections []AudioSection `json:"sections"`

	EnglishAudio *AudioVariant `json:"englishAudio,omitempty"`
	HindiAudio   *AudioVariant `json:"hindiAudio,omitempty"`

	EnglishTranscription     string `json:"englishTranscription,omitempty"`
	HindiTranscription       string `json:"hindiTranscription,omitempty"`
	EasyEnglishTranscription string `json:"easyEnglishTranscription,omitempty"`
	EasyHindiTranscription   string `json:"easyHindiTranscription,omitempty"`

	UploadedBy *int      `json:"uploadedBy,omitempty"`
	IsActive   bool      `json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	// Legacy flat fields
	AudioURL   string `json:"audioUrl,omitempty"`
	FileName   string `json:"fileName,omitempty"`
	FileSize   int64  `json:"fileSize,omitempty"`
	Duration   int    `json:"duration,omitempty"`
	Transcript string `json:"transcript,omitempty"`
	Language   string `json:"language,omitempty"`
}

// ValidationError reports a client-caused constraint violation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

func (v *AudioVariant) validate(field string) error {
	if v == nil {
		return nil
	}
	if v.URL == "" || v.FileName == "" {
		return &ValidationError{Field: field, Message: "audio variant must have url, fileName and fileSize"}
	}
	if v.FileSize < 0 {
		return &ValidationError{Field: field, Message: "audio variant fileSize must not be negative"}
	}
	return nil
}

func validateNodeVariants(prefix string, english, hindi, easyEnglish, easyHindi *AudioVariant) error {
	for _, v := range []struct {
		field   string
		variant *AudioVariant
	}{
		{prefix + "englishAudio", english},
		{prefix + "hindiAudio", hindi},
		{prefix + "easyEnglishAudio", easyEnglish},
		{prefix + "easyHindiAudio", easyHindi},
	} {
		if err := v.variant.validate(v.field); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks the structural invariants of the lesson tree: titles
// are non-empty at every node and every present audio variant is
// complete. Category membership is checked by the store against the
// injected registry.
func (l *Lesson) Validate() error {
	if l.Title == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}
	if err := l.EnglishAudio.validate("englishAudio"); err != nil {
		return err
	}
	if err := l.HindiAudio.validate("hindiAudio"); err != nil {
		return err
	}
	return ValidateSections(l.Sections)
}

// ValidateSections checks the section tree on its own, for the
// sections-only update path.
func ValidateSections(sections []AudioSection) error {
	for i, sec := range sections {
		if sec.Title == "" {
			return &ValidationError{
				Field:   fmt.Sprintf("sections[%d].title", i),
				Message: "section title is required",
			}
		}
		prefix := fmt.Sprintf("sections[%d].", i)
		if err := validateNodeVariants(prefix, sec.EnglishAudio, sec.HindiAudio, sec.EasyEnglishAudio, sec.EasyHindiAudio); err != nil {
			return err
		}
		for j, sub := range sec.Subsections {
			if sub.Title == "" {
				return &ValidationError{
					Field:   fmt.Sprintf("sections[%d].subsections[%d].title", i, j),
					Message: "subsection title is required",
				}
			}
			subPrefix := fmt.Sprintf("sections[%d].subsections[%d].", i, j)
			if err := validateNodeVariants(subPrefix, sub.EnglishAudio, sub.HindiAudio, sub.EasyEnglishAudio, sub.EasyHindiAudio); err != nil {
				return err
			}
		}
	}
	return nil
}

// CollectAudioURLs walks the full lesson tree and returns the URL of
// every stored audio asset: the legacy lesson audio, the root language
// variants, and every slot of every section and subsection. Delete uses
// this to clean up physical files.
func (l *Lesson) CollectAudioURLs() []string {
	var urls []string
	add := func(v *AudioVariant) {
		if v != nil && v.URL != "" {
			urls = append(urls, v.URL)
		}
	}
	if l.AudioURL != "" {
		urls = append(urls, l.AudioURL)
	}
	add(l.EnglishAudio)
	add(l.HindiAudio)
	for i := range l.Sections {
		sec := &l.Sections[i]
		add(sec.EnglishAudio)
		add(sec.HindiAudio)
		add(sec.EasyEnglishAudio)
		add(sec.EasyHindiAudio)
		for j := range sec.Subsections {
			sub := &sec.Subsections[j]
			add(sub.EnglishAudio)
			add(sub.HindiAudio)
			add(sub.EasyEnglishAudio)
			add(sub.EasyHindiAudio)
		}
	}
	return urls
}
