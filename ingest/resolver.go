package ingest

import (
	"lawpath_backend/models"
)

// Attachment pairs a stored audio file with the locator decoded from
// its field name. By the time an attachment exists the file is already
// on disk; resolving is pure bookkeeping.
type Attachment struct {
	Locator Locator
	File    models.AudioVariant
}

// Resolve returns a new tree with every resolvable attachment applied
// to its slot. The input tree is never mutated, so a parsed payload can
// be reused across calls without aliasing surprises.
//
// Attachments whose section or subsection index falls outside the tree
// are dropped: the resulting tree is identical to resolving without
// them. When several attachments target the same slot the last one in
// slice order wins — slice order is the transport's submission order,
// and clients of the original system depend on that tie-break.
func Resolve(sections []models.AudioSection, atts []Attachment) []models.AudioSection {
	out := cloneSections(sections)
	for _, att := range atts {
		switch att.Locator.Kind {
		case LocatorSection:
			if att.Locator.Section < 0 || att.Locator.Section >= len(out) {
				continue
			}
			setSectionSlot(&out[att.Locator.Section], att.Locator.Slot, att.File)
		case LocatorSubsection:
			if att.Locator.Section < 0 || att.Locator.Section >= len(out) {
				continue
			}
			subs := out[att.Locator.Section].Subsections
			if att.Locator.Subsection < 0 || att.Locator.Subsection >= len(subs) {
				continue
			}
			setSubsectionSlot(&subs[att.Locator.Subsection], att.Locator.Slot, att.File)
		}
	}
	return out
}

// ApplyRoot attaches a lesson-root attachment to the aggregate itself:
// the two root language slots, or the legacy flat fields for the
// pre-tree `file` upload.
func ApplyRoot(lesson *models.Lesson, att Attachment) {
	switch att.Locator.Kind {
	case LocatorLesson:
		variant := att.File
		switch att.Locator.Slot {
		case SlotEnglish:
			lesson.EnglishAudio = &variant
		case SlotHindi:
			lesson.HindiAudio = &variant
		}
	case LocatorLegacy:
		lesson.AudioURL = att.File.URL
		lesson.FileName = att.File.FileName
		lesson.FileSize = att.File.FileSize
	}
}

func setSectionSlot(sec *models.AudioSection, slot Slot, file models.AudioVariant) {
	variant := file
	switch slot {
	case SlotEnglish:
		sec.EnglishAudio = &variant
	case SlotHindi:
		sec.HindiAudio = &variant
	case SlotEasyEnglish:
		sec.EasyEnglishAudio = &variant
	case SlotEasyHindi:
		sec.EasyHindiAudio = &variant
	}
}

func setSubsectionSlot(sub *models.AudioSubsection, slot Slot, file models.AudioVariant) {
	variant := file
	switch slot {
	case SlotEnglish:
		sub.EnglishAudio = &variant
	case SlotHindi:
		sub.HindiAudio = &variant
	case SlotEasyEnglish:
		sub.EasyEnglishAudio = &variant
	case SlotEasyHindi:
		sub.EasyHindiAudio = &variant
	}
}

func cloneVariant(v *models.AudioVariant) *models.AudioVariant {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneSections(sections []models.AudioSection) []models.AudioSection {
	out := make([]models.AudioSection, len(sections))
	for i, sec := range sections {
		c := sec
		c.EnglishAudio = cloneVariant(sec.EnglishAudio)
		c.HindiAudio = cloneVariant(sec.HindiAudio)
		c.EasyEnglishAudio = cloneVariant(sec.EasyEnglishAudio)
		c.EasyHindiAudio = cloneVariant(sec.EasyHindiAudio)
		c.Subsections = make([]models.AudioSubsection, len(sec.Subsections))
		for j, sub := range sec.Subsections {
			s := sub
			s.EnglishAudio = cloneVariant(sub.EnglishAudio)
			s.HindiAudio = cloneVariant(sub.HindiAudio)
			s.EasyEnglishAudio = cloneVariant(sub.EasyEnglishAudio)
			s.EasyHindiAudio = cloneVariant(sub.EasyHindiAudio)
			c.Subsections[j] = s
		}
		if len(c.Subsections) == 0 {
			c.Subsections = nil
		}
		out[i] = c
	}
	return out
}
