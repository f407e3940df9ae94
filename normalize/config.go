package normalize

import (
	"io"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Mode selects how sentences are cleaned.
type Mode string

const (
	// ModePage joins a page's sentences with a marker, cleans the page
	// once, and re-splits. Patterns that span sentence boundaries are
	// handled, at the cost of a fallback when the marker count drifts.
	ModePage Mode = "page"
	// ModeSentence cleans each sentence independently.
	ModeSentence Mode = "sentence"
)

// Config controls sentence normalization. The zero value disables
// everything; use DefaultConfig as the base.
type Config struct {
	Enabled                           bool              `toml:"enabled"`
	Mode                              Mode              `toml:"mode"`
	CollapseWhitespace                bool              `toml:"collapse_whitespace"`
	RemoveSpaceBeforePunctuation      bool              `toml:"remove_space_before_punctuation"`
	StripInlineCode                   bool              `toml:"strip_inline_code"`
	StripMarkdownLinks                bool              `toml:"strip_markdown_links"`
	DropNumericBracketCitations       bool              `toml:"drop_numeric_bracket_citations"`
	DropParentheticalNumericCitations bool              `toml:"drop_parenthetical_numeric_citations"`
	DropSquareBracketText             bool              `toml:"drop_square_bracket_text"`
	DropCurlyBraceText                bool              `toml:"drop_curly_brace_text"`
	MinSentenceChars                  int               `toml:"min_sentence_chars"`
	RequireAlphanumeric               bool              `toml:"require_alphanumeric"`
	Replacements                      map[string]string `toml:"replacements"`
	DropTokens                        []string          `toml:"drop_tokens"`
}

// configFile is the on-disk shape: options live under [normalization].
type configFile struct {
	Normalization Config `toml:"normalization"`
}

// DefaultConfig returns the built-in normalization settings.
func DefaultConfig() Config {
	return Config{
		Enabled:                           true,
		Mode:                              ModePage,
		CollapseWhitespace:                true,
		RemoveSpaceBeforePunctuation:      true,
		StripInlineCode:                   true,
		StripMarkdownLinks:                true,
		DropNumericBracketCitations:       true,
		DropParentheticalNumericCitations: true,
		DropSquareBracketText:             true,
		DropCurlyBraceText:                true,
		MinSentenceChars:                  2,
		RequireAlphanumeric:               true,
		Replacements:                      map[string]string{"#": " "},
		DropTokens:                        nil,
	}
}

// LoadConfig reads a TOML config file. A missing or invalid file falls
// back to DefaultConfig with a warning; a bad config should degrade
// narration, not stop it. Fields absent from the file keep their
// defaults.
func LoadConfig(path string, log *slog.Logger) Config {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn("falling back to default normalizer config", "path", path, "error", err)
		return DefaultConfig()
	}

	// Seed with defaults so absent fields keep them, but leave the
	// replacements map nil: decoding merges into an existing map, and a
	// file-supplied table must replace the defaults, not extend them.
	file := configFile{Normalization: DefaultConfig()}
	file.Normalization.Replacements = nil
	if err := toml.Unmarshal(data, &file); err != nil {
		log.Warn("invalid normalizer config TOML", "path", path, "error", err)
		return DefaultConfig()
	}

	cfg := file.Normalization
	if cfg.Replacements == nil {
		cfg.Replacements = DefaultConfig().Replacements
	}
	if cfg.Mode != ModePage && cfg.Mode != ModeSentence {
		cfg.Mode = ModePage
	}
	if cfg.MinSentenceChars < 1 {
		cfg.MinSentenceChars = 1
	}

	log.Info("loaded normalizer config", "path", path)
	return cfg
}
