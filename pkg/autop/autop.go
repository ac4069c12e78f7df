// Package autop rebuilds paragraph structure from loosely formatted text.
//
// Blank-line separated blocks become <p> elements and remaining single
// newlines become <br /> tags, while block-level markup already present in
// the input is left unwrapped. <pre> blocks are never touched.
package autop

import (
	"regexp"
	"strings"
)

// blockTags is the fixed set of element names treated as structural blocks.
const blockTags = `(?:table|thead|tfoot|caption|col|colgroup|tbody|tr|td|th|div|dl|dd|dt|ul|ol|li|pre|form|map|area|blockquote|address|math|style|p|h[1-6]|hr|fieldset|legend|section|article|aside|hgroup|header|footer|nav|figure|figcaption|details|menu|summary)`

var (
	doubleBreakRegex = regexp.MustCompile(`<br />\s*<br />`)
	blockOpenRegex   = regexp.MustCompile(`(<` + blockTags + `[^>]*>)`)
	blockCloseRegex  = regexp.MustCompile(`(</` + blockTags + `>)`)
	paramRegex       = regexp.MustCompile(`\s*<param([^>]*)>\s*`)
	embedCloseRegex  = regexp.MustCompile(`\s*</embed>\s*`)
	manyNewlineRegex = regexp.MustCompile(`\n\n+`)
	paragraphSplit   = regexp.MustCompile(`\n\s*\n`)

	emptyParagraphRegex   = regexp.MustCompile(`<p>\s*</p>`)
	wrappedBlockRegex     = regexp.MustCompile(`<p>\s*(</?` + blockTags + `[^>]*>)\s*</p>`)
	wrappedListItemRegex  = regexp.MustCompile(`<p>(<li.+?)</p>`)
	blockquoteOpenRegex   = regexp.MustCompile(`(?i)<p><blockquote([^>]*)>`)
	unclosedBlockRegex    = regexp.MustCompile(`<p>([^<]+)</(div|address|form)>`)
	leadingParagraphRegex = regexp.MustCompile(`<p>\s*(</?` + blockTags + `[^>]*>)`)
	trailingParagraph     = regexp.MustCompile(`(</?` + blockTags + `[^>]*>)\s*</p>`)

	scriptStyleRegex   = regexp.MustCompile(`(?s)<script.*?</script>|<style.*?</style>`)
	breakAfterBlock    = regexp.MustCompile(`(</?` + blockTags + `[^>]*>)\s*<br />`)
	breakBeforeClosers = regexp.MustCompile(`<br />(\s*</?(?:p|li|div|dl|dd|dt|th|pre|td|ul|ol)[^>]*>)`)
	trailingNewlineP   = regexp.MustCompile(`\n</p>(\n?)\z`)
)

// BlockTags returns the regular expression alternation of block-level
// element names used for spacing and unwrapping.
func BlockTags() string {
	return blockTags
}

// Reconstructor converts blank-line separated text into paragraph markup.
// A Reconstructor holds no per-call state and is safe for concurrent use.
type Reconstructor struct {
	lineBreaks bool
}

// Option configures a Reconstructor.
type Option func(*Reconstructor)

// WithLineBreaks controls whether remaining single newlines become <br />.
func WithLineBreaks(enabled bool) Option {
	return func(r *Reconstructor) {
		r.lineBreaks = enabled
	}
}

// New creates a Reconstructor. Line breaks are inserted by default.
func New(opts ...Option) *Reconstructor {
	r := &Reconstructor{lineBreaks: true}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Name returns the stage name for logging.
func (r *Reconstructor) Name() string {
	return "autop"
}

// Clean runs Autop with the configured line break setting. It never fails.
func (r *Reconstructor) Clean(text string) (string, error) {
	return Autop(text, r.lineBreaks), nil
}

// Autop replaces double line breaks with paragraph elements. When
// insertLineBreaks is true, newlines left inside paragraphs become <br />.
// Content of <pre> blocks is returned byte for byte.
func Autop(text string, insertLineBreaks bool) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	// Pad the end so the boundary expressions see a newline.
	text += "\n"

	text, pres := extractPre(text)
	text = spaceOutBlocks(text)

	var sb strings.Builder
	for _, chunk := range paragraphSplit.Split(text, -1) {
		if chunk == "" {
			continue
		}
		sb.WriteString("<p>")
		sb.WriteString(strings.Trim(chunk, "\n"))
		sb.WriteString("</p>\n")
	}
	text = sb.String()

	text = emptyParagraphRegex.ReplaceAllString(text, "")
	text = wrappedBlockRegex.ReplaceAllString(text, "${1}")
	text = fixTagsWrappedInP(text)
	text = leadingParagraphRegex.ReplaceAllString(text, "${1}")
	text = trailingParagraph.ReplaceAllString(text, "${1}")

	if insertLineBreaks {
		text = insertBreaks(text)
	}

	text = breakAfterBlock.ReplaceAllString(text, "${1}")
	text = breakBeforeClosers.ReplaceAllString(text, "${1}")
	text = trailingNewlineP.ReplaceAllString(text, "</p>${1}")

	return pres.restore(text)
}

// spaceOutBlocks puts block tags on their own lines and normalizes newlines.
func spaceOutBlocks(text string) string {
	text = doubleBreakRegex.ReplaceAllString(text, "\n\n")

	text = blockOpenRegex.ReplaceAllString(text, "\n${1}")
	text = blockCloseRegex.ReplaceAllString(text, "${1}\n\n")

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	if strings.Contains(text, "<object") {
		// No paragraphs inside object/embed.
		text = paramRegex.ReplaceAllString(text, "<param${1}>")
		text = embedCloseRegex.ReplaceAllString(text, "</embed>")
	}

	return manyNewlineRegex.ReplaceAllString(text, "\n\n")
}

func fixTagsWrappedInP(text string) string {
	text = wrappedListItemRegex.ReplaceAllString(text, "${1}")

	text = blockquoteOpenRegex.ReplaceAllString(text, "<blockquote${1}><p>")
	// </blockquote> gets its own line, matching what a second run produces.
	text = strings.ReplaceAll(text, "</blockquote></p>", "</p>\n</blockquote>")

	return unclosedBlockRegex.ReplaceAllString(text, "<p>${1}</p></${2}>")
}

// insertBreaks turns bare newlines into <br />\n. Newlines inside script and
// style bodies are shielded behind a sentinel for the duration.
func insertBreaks(text string) string {
	sentinel := pickSentinel(text)
	text = scriptStyleRegex.ReplaceAllStringFunc(text, func(span string) string {
		return strings.ReplaceAll(span, "\n", sentinel)
	})

	text = breakNewlines(text)

	return strings.ReplaceAll(text, sentinel, "\n")
}

// breakNewlines replaces every whitespace run ending in a newline with
// "<br />\n", unless the run starts right after an existing "<br />". A run
// that is skipped is retried one byte further on, so "<br /> \n" still gains
// a break after the space.
func breakNewlines(text string) string {
	var sb strings.Builder
	last := 0
	for i := 0; i < len(text); {
		if !isSpace(text[i]) {
			i++
			continue
		}
		if strings.HasSuffix(text[:i], "<br />") {
			i++
			continue
		}

		end := i
		newline := -1
		for end < len(text) && isSpace(text[end]) {
			if text[end] == '\n' {
				newline = end
			}
			end++
		}
		if newline < 0 {
			i = end
			continue
		}

		sb.WriteString(text[last:i])
		sb.WriteString("<br />\n")
		last = newline + 1
		i = newline + 1
	}
	sb.WriteString(text[last:])
	return sb.String()
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// pickSentinel returns a private-use rune that does not occur in text.
func pickSentinel(text string) string {
	for r := rune(0xE000); r <= 0xF8FF; r++ {
		if !strings.ContainsRune(text, r) {
			return string(r)
		}
	}
	// Every private-use rune is present; fall back to a tag-shaped marker.
	return "<autop-preserve-newline />"
}
