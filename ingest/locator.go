package ingest

import (
	"strconv"
	"strings"
)

// Slot names one of the four language/register audio variants a tree
// node can carry.
type Slot string

const (
	SlotEnglish     Slot = "englishAudio"
	SlotHindi       Slot = "hindiAudio"
	SlotEasyEnglish Slot = "easyEnglishAudio"
	SlotEasyHindi   Slot = "easyHindiAudio"
)

var slotNames = map[string]Slot{
	"englishAudio":     SlotEnglish,
	"hindiAudio":       SlotHindi,
	"easyEnglishAudio": SlotEasyEnglish,
	"easyHindiAudio":   SlotEasyHindi,
}

// LocatorKind says which node of the lesson a file targets.
type LocatorKind int

const (
	// LocatorLesson targets a root-level language slot of the lesson.
	LocatorLesson LocatorKind = iota
	// LocatorLegacy targets the flat pre-tree audio fields.
	LocatorLegacy
	// LocatorSection targets sections[Section].
	LocatorSection
	// LocatorSubsection targets sections[Section].subsections[Subsection].
	LocatorSubsection
)

// Locator is the decoded address of an uploaded file, built once from
// its multipart field name at the ingestion boundary. Everything past
// that boundary works with locators, never raw field names.
type Locator struct {
	Kind       LocatorKind
	Section    int
	Subsection int
	Slot       Slot
}

// ParseFieldName decodes a multipart field name into a Locator.
// Recognized grammars:
//
//	englishAudio | hindiAudio                      root language slot
//	file                                           legacy single audio
//	section_<i>_<slot>                             section slot
//	section_<i>_subsection_<j>_<slot>              subsection slot
//
// Indices are zero-based decimal integers. Anything else returns
// ok=false: unrecognized names are skipped by callers, never treated
// as errors, so stale client payloads cannot fail a whole submission.
func ParseFieldName(name string) (Locator, bool) {
	switch name {
	case "englishAudio":
		return Locator{Kind: LocatorLesson, Slot: SlotEnglish}, true
	case "hindiAudio":
		return Locator{Kind: LocatorLesson, Slot: SlotHindi}, true
	case "file":
		return Locator{Kind: LocatorLegacy}, true
	}

	parts := strings.Split(name, "_")
	switch len(parts) {
	case 3: // section_<i>_<slot>
		if parts[0] != "section" {
			return Locator{}, false
		}
		i, ok := parseIndex(parts[1])
		if !ok {
			return Locator{}, false
		}
		slot, ok := slotNames[parts[2]]
		if !ok {
			return Locator{}, false
		}
		return Locator{Kind: LocatorSection, Section: i, Slot: slot}, true
	case 5: // section_<i>_subsection_<j>_<slot>
		if parts[0] != "section" || parts[2] != "subsection" {
			return Locator{}, false
		}
		i, ok := parseIndex(parts[1])
		if !ok {
			return Locator{}, false
		}
		j, ok := parseIndex(parts[3])
		if !ok {
			return Locator{}, false
		}
		slot, ok := slotNames[parts[4]]
		if !ok {
			return Locator{}, false
		}
		return Locator{Kind: LocatorSubsection, Section: i, Subsection: j, Slot: slot}, true
	}
	return Locator{}, false
}

// parseIndex accepts only plain decimal digits, so "+1", "1.0" and ""
// all read as malformed.
func parseIndex(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// FilePrefix is the stored-file name prefix for this locator, mirroring
// the upload layout ("english-<suffix>.mp3" and so on).
func (l Locator) FilePrefix() string {
	if l.Kind == LocatorLegacy {
		return "audio"
	}
	switch l.Slot {
	case SlotEnglish:
		return "english"
	case SlotHindi:
		return "hindi"
	case SlotEasyEnglish:
		return "easy-english"
	case SlotEasyHindi:
		return "easy-hindi"
	}
	return "audio"
}
