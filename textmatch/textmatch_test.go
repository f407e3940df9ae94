package textmatch

import (
	"strings"
	"testing"
)

func TestNormalizeLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  table   of CONTENTS ", "TABLE OF CONTENTS"},
		{"Contents", "CONTENTS"},
		{"\tlist  of\nfigures", "LIST OF FIGURES"},
		{"", ""},
		{"   ", ""},
		{"already normal", "ALREADY NORMAL"},
	}
	for _, tt := range tests {
		if got := NormalizeLabel(tt.in); got != tt.want {
			t.Errorf("NormalizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeLabel_Idempotent(t *testing.T) {
	inputs := []string{"  table   of CONTENTS ", "1. The Beginning", "+----+", "mixed Case  words"}
	for _, in := range inputs {
		once := NormalizeLabel(in)
		twice := NormalizeLabel(once)
		if once != twice {
			t.Errorf("NormalizeLabel not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestIsTOCLabel(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"Contents", true},
		{"CONTENTS", true},
		{"Table of Contents", true},
		{"  table   of CONTENTS ", true},
		{"Illustrations", true},
		{"List of Illustrations", true},
		{"List of Figures", true},
		{"Chapter One", false},
		{"Contents of the safe", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsTOCLabel(tt.in); got != tt.want {
			t.Errorf("IsTOCLabel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestIsStubMarker(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"[IMAGE]", true},
		{"[image]", true},
		{" [Figure] ", true},
		{"[TABLE]", true},
		{"image", true},
		{"FIGURE", true},
		{"table", true},
		{"[IMAGE] caption", false},
		{"imagery", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsStubMarker(tt.in); got != tt.want {
			t.Errorf("IsStubMarker(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestIsASCIIBorderLine(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"+----+====+", true},
		{"+-+", true},
		{"++", true},
		{"  +----+  ", true},
		{"+----", false},
		{"----+", false},
		{"+--|--+", false},
		{"+ ---+", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsASCIIBorderLine(tt.in); got != tt.want {
			t.Errorf("IsASCIIBorderLine(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestIsASCIITableRow(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"| a | b | c |", true},
		{"|cell|", true},
		{"  | x |  ", true},
		{"| a | b |\n| c | d |", true},
		{"|", true},
		{"| open ended", false},
		{"closed end |", false},
		{"plain text", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsASCIITableRow(tt.in); got != tt.want {
			t.Errorf("IsASCIITableRow(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLooksLikeInflatingRule(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"long dash rule", strings.Repeat("-", 130), true},
		{"exactly min length", strings.Repeat("=", 120), true},
		{"one below min length", strings.Repeat("=", 119), false},
		{"mixed rule chars", strings.Repeat("-=+|", 40), true},
		{"seven letters allowed", strings.Repeat("-", 150) + "chapter", true},
		{"eight letters rejected", strings.Repeat("-", 150) + "chapters", false},
		{"density too low", strings.Repeat("-.", 70), false},
		{"ordinary long sentence", strings.Repeat("the quick brown fox ", 8), false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		if got := LooksLikeInflatingRule(tt.in); got != tt.want {
			t.Errorf("%s: LooksLikeInflatingRule = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestLooksLikeTOCEntry(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"Introduction.......... 3", true},
		{"Chapter One . . . . . . 12", true},
		{"Preface.....xii", true},
		{"Epilogue . . . MCMXCIV", true},
		{"He lived  mid", false},
		{"The climbers went  clim", false},
		{"1. The Beginning", true},
		{"12. Another Chapter", true},
		{"It was a dark night.", false},
		{"The year was 1999", false},
		{"", false},
		{"   ", false},
		{"3.", false},
	}
	for _, tt := range tests {
		if got := LooksLikeTOCEntry(tt.in); got != tt.want {
			t.Errorf("LooksLikeTOCEntry(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestShouldDropASCIITableish(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"+----+----+", true},
		{"| a | b | c |", true},
		{strings.Repeat("-", 130), true},
		{"An ordinary paragraph.", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ShouldDropASCIITableish(tt.in); got != tt.want {
			t.Errorf("ShouldDropASCIITableish(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
