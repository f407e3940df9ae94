// Package textmatch classifies plain-text fragments that should not be
// narrated: table-of-contents labels and entries, decorative rules drawn
// with border characters, and placeholder stub markers left behind by
// upstream converters.
//
// All functions are pure and operate on already-extracted strings. The
// thresholds below decide what text survives narration filtering; change
// them only with calibration tests to back the change up.
package textmatch

import (
	"regexp"
	"strings"
	"unicode"
)

// Decorative-rule thresholds. Long separator lines slip past the strict
// border patterns when they mix characters or omit the bounding '+';
// these catch them before a synthesizer reads them character by character.
const (
	inflatingRuleMinLen     = 120
	inflatingRuleDensity    = 0.9
	inflatingRuleMaxLetters = 8
)

var (
	reASCIIBorderLine = regexp.MustCompile(`^\+[-=+]*\+$`)

	// Dotted-leader TOC line: leading text, a run of dots/spaces, then a
	// decimal or Roman-letter page reference. The letter run is validated
	// as a genuine Roman numeral afterwards.
	reTOCDottedLeader = regexp.MustCompile(`(?i)^.+?[. ]{2,}(\d+|[ivxlcdm]+)$`)
	// Numbered-list TOC line: "12. Chapter title".
	reTOCNumbered = regexp.MustCompile(`^\d+\.\s+.+$`)

	reRomanNumeral = regexp.MustCompile(`^M{0,3}(CM|CD|D?C{0,3})(XC|XL|L?X{0,3})(IX|IV|V?I{0,3})$`)
)

var tocLabels = map[string]bool{
	"CONTENTS":              true,
	"TABLE OF CONTENTS":     true,
	"ILLUSTRATIONS":         true,
	"LIST OF ILLUSTRATIONS": true,
	"LIST OF FIGURES":       true,
}

var stubMarkers = map[string]bool{
	"[IMAGE]":  true,
	"[FIGURE]": true,
	"[TABLE]":  true,
	"IMAGE":    true,
	"FIGURE":   true,
	"TABLE":    true,
}

// NormalizeLabel trims the string, collapses internal whitespace runs to
// a single space, and uppercases the result. Idempotent.
func NormalizeLabel(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), " "))
}

// IsTOCLabel reports whether s is a table-of-contents (or illustration
// list) heading label.
func IsTOCLabel(s string) bool {
	return tocLabels[NormalizeLabel(s)]
}

// IsStubMarker reports whether s is a placeholder token left in place of
// non-text content, such as "[IMAGE]".
func IsStubMarker(s string) bool {
	return stubMarkers[NormalizeLabel(s)]
}

// IsASCIIBorderLine reports whether s is a table border line such as
// "+----+====+": bounded by '+' at both ends with only '-', '=', '+'
// between.
func IsASCIIBorderLine(s string) bool {
	return reASCIIBorderLine.MatchString(strings.TrimSpace(s))
}

// IsASCIITableRow reports whether s is a pipe-delimited table row: the
// trimmed string starts and ends with '|'. The row may span several
// lines (soft-wrapped tables flatten into one block), and a lone '|'
// counts.
func IsASCIITableRow(s string) bool {
	trimmed := strings.TrimSpace(s)
	return trimmed != "" && strings.HasPrefix(trimmed, "|") && strings.HasSuffix(trimmed, "|")
}

// LooksLikeInflatingRule reports whether s is a long decorative separator
// line: trimmed length at least 120 runes, more than 90% of them drawn
// from '-', '=', '+', '|', and fewer than 8 letters.
func LooksLikeInflatingRule(s string) bool {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) < inflatingRuleMinLen {
		return false
	}
	ruleChars, letters := 0, 0
	for _, r := range runes {
		switch r {
		case '-', '=', '+', '|':
			ruleChars++
		}
		if unicode.IsLetter(r) {
			letters++
		}
	}
	return float64(ruleChars) > inflatingRuleDensity*float64(len(runes)) &&
		letters < inflatingRuleMaxLetters
}

// LooksLikeTOCEntry reports whether s looks like a single
// table-of-contents entry: either a dotted-leader line ending in a page
// number ("Introduction.......... 3") or a numbered list line
// ("1. The Beginning").
func LooksLikeTOCEntry(s string) bool {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return false
	}
	if m := reTOCDottedLeader.FindStringSubmatch(trimmed); m != nil {
		page := m[1]
		if page[0] >= '0' && page[0] <= '9' {
			return true
		}
		if isRomanNumeral(page) {
			return true
		}
	}
	return reTOCNumbered.MatchString(trimmed)
}

// isRomanNumeral reports whether s is a well-formed Roman numeral.
// Letter runs like "mid" or "clim" share the alphabet but are words, not
// page numbers.
func isRomanNumeral(s string) bool {
	return s != "" && reRomanNumeral.MatchString(strings.ToUpper(s))
}

// ShouldDropASCIITableish reports whether s is decorative table or
// separator art in any of the recognized shapes.
func ShouldDropASCIITableish(s string) bool {
	return IsASCIIBorderLine(s) || IsASCIITableRow(s) || LooksLikeInflatingRule(s)
}
