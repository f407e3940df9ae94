// Package normalize cleans stringified sentences for speech synthesis:
// markdown leftovers, citation brackets, and spacing artifacts are
// stripped, and sentences that end up unspeakable are dropped. It runs
// downstream of the tree filter and an external sentence splitter, and
// keeps an index mapping between the displayed sentences and the ones
// actually sent to the synthesizer.
package normalize

import (
	"io"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// sentenceMarker joins a page's sentences for page-mode cleaning. It
// must never appear in book text and must survive every cleanup regex.
const sentenceMarker = "\n<<__SENTENCE_BOUNDARY__>>\n"

var (
	reInlineCode           = regexp.MustCompile("`([^`]+)`")
	reMarkdownLink         = regexp.MustCompile(`\[([^\]]+)\]\([^)]*\)`)
	reNumericBracketCite   = regexp.MustCompile(`\[\s*\d+(?:\s*,\s*\d+)*\s*\]`)
	reParentheticalNumeric = regexp.MustCompile(`\(\s*\d+(?:\s*,\s*\d+)*\s*\)`)
	reSquareBracketBlock   = regexp.MustCompile(`\[[^\]]*\]`)
	reCurlyBracketBlock    = regexp.MustCompile(`\{[^}]*\}`)
	reHorizontalWS         = regexp.MustCompile("[ \t ]+")
	reSpaceBeforePunct     = regexp.MustCompile(`\s+([,.;:!?])`)
)

// Normalizer applies a Config to sentence batches. Safe for concurrent
// use; it holds no per-call state.
type Normalizer struct {
	cfg Config
	log *slog.Logger
}

// Plan is the result of normalizing one page of sentences.
type Plan struct {
	// AudioSentences are the cleaned sentences to synthesize, in order.
	AudioSentences []string
	// DisplayToAudio maps a display sentence index to its audio index,
	// or -1 when the sentence was dropped.
	DisplayToAudio []int
	// AudioToDisplay maps an audio index back to its display index.
	AudioToDisplay []int
}

// New returns a Normalizer for cfg. A nil logger discards diagnostics.
func New(cfg Config, log *slog.Logger) *Normalizer {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Normalizer{cfg: cfg, log: log}
}

// PlanPage cleans one page worth of already-split sentences and returns
// the audio sentences plus the display and audio index maps.
func (n *Normalizer) PlanPage(displaySentences []string) Plan {
	if len(displaySentences) == 0 {
		return Plan{}
	}

	if !n.cfg.Enabled {
		plan := Plan{
			AudioSentences: append([]string(nil), displaySentences...),
			DisplayToAudio: make([]int, len(displaySentences)),
			AudioToDisplay: make([]int, len(displaySentences)),
		}
		for i := range displaySentences {
			plan.DisplayToAudio[i] = i
			plan.AudioToDisplay[i] = i
		}
		return plan
	}

	var cleaned []string
	if n.cfg.Mode == ModePage {
		cleaned = n.cleanPageMode(displaySentences)
	} else {
		cleaned = n.cleanEach(displaySentences)
	}

	plan := Plan{
		DisplayToAudio: make([]int, len(cleaned)),
	}
	for displayIdx, sentence := range cleaned {
		final, ok := n.finalizeSentence(sentence)
		if !ok {
			plan.DisplayToAudio[displayIdx] = -1
			continue
		}
		plan.DisplayToAudio[displayIdx] = len(plan.AudioSentences)
		plan.AudioSentences = append(plan.AudioSentences, final)
		plan.AudioToDisplay = append(plan.AudioToDisplay, displayIdx)
	}
	return plan
}

// cleanPageMode joins the page, cleans it once, and re-splits on the
// marker. If a cleanup pattern ate a marker the counts no longer line
// up, and we redo the page sentence by sentence.
func (n *Normalizer) cleanPageMode(sentences []string) []string {
	joined := strings.Join(sentences, sentenceMarker)
	split := strings.Split(n.cleanCore(joined), sentenceMarker)
	if len(split) == len(sentences) {
		return split
	}
	n.log.Debug("normalizer marker split mismatch; falling back to sentence mode",
		"expected", len(sentences), "actual", len(split))
	return n.cleanEach(sentences)
}

func (n *Normalizer) cleanEach(sentences []string) []string {
	out := make([]string, len(sentences))
	for i, s := range sentences {
		out[i] = n.cleanCore(s)
	}
	return out
}

func (n *Normalizer) cleanCore(input string) string {
	text := input

	if n.cfg.StripMarkdownLinks {
		text = reMarkdownLink.ReplaceAllString(text, "$1")
	}
	if n.cfg.StripInlineCode {
		text = reInlineCode.ReplaceAllString(text, "$1")
	}
	if n.cfg.DropNumericBracketCitations {
		text = reNumericBracketCite.ReplaceAllString(text, " ")
	}
	if n.cfg.DropParentheticalNumericCitations {
		text = reParentheticalNumeric.ReplaceAllString(text, " ")
	}
	if n.cfg.DropSquareBracketText {
		text = reSquareBracketBlock.ReplaceAllString(text, " ")
	}
	if n.cfg.DropCurlyBraceText {
		text = reCurlyBracketBlock.ReplaceAllString(text, " ")
	}

	if len(n.cfg.Replacements) > 0 {
		for _, from := range replacementOrder(n.cfg.Replacements) {
			text = strings.ReplaceAll(text, from, n.cfg.Replacements[from])
		}
	}
	for _, token := range n.cfg.DropTokens {
		if token != "" {
			text = strings.ReplaceAll(text, token, " ")
		}
	}

	if n.cfg.CollapseWhitespace {
		text = reHorizontalWS.ReplaceAllString(text, " ")
	}
	if n.cfg.RemoveSpaceBeforePunctuation {
		text = reSpaceBeforePunct.ReplaceAllString(text, "$1")
	}

	return strings.TrimSpace(text)
}

// replacementOrder returns keys longest first so longer patterns are not
// shadowed by their own substrings; ties break lexically for determinism.
func replacementOrder(replacements map[string]string) []string {
	keys := make([]string, 0, len(replacements))
	for k := range replacements {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}

func (n *Normalizer) finalizeSentence(sentence string) (string, bool) {
	trimmed := strings.TrimSpace(sentence)
	if trimmed == "" {
		return "", false
	}

	if n.cfg.RequireAlphanumeric && !containsAlphanumeric(trimmed) {
		return "", false
	}

	minChars := n.cfg.MinSentenceChars
	if minChars < 1 {
		minChars = 1
	}
	if len([]rune(trimmed)) < minChars {
		return "", false
	}

	return trimmed, true
}

func containsAlphanumeric(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
