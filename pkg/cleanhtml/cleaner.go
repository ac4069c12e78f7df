// Package cleanhtml turns messy, editor-generated HTML into a small, clean
// subset of HTML.
//
// Cleaning runs in two passes. The first pass pre-cleans the raw markup,
// parses it, drops scripts and rewrites structural cruft (see package
// normalize). The result is filtered through an allow-list Sanitizer, then
// parsed and normalized a second time before the body is serialized.
package cleanhtml

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/jmylchreest/cleanhtml/internal/logger"
	"github.com/jmylchreest/cleanhtml/pkg/normalize"
)

// Cleaner runs the cleaning pipeline with a fixed set of Options.
// A Cleaner is safe for concurrent use if its Sanitizer is.
type Cleaner struct {
	options   Options
	sanitizer Sanitizer
}

// Option configures a Cleaner.
type Option func(*Cleaner)

// WithSanitizer replaces the default bluemonday-backed sanitizer.
func WithSanitizer(s Sanitizer) Option {
	return func(c *Cleaner) {
		if s != nil {
			c.sanitizer = s
		}
	}
}

// New creates a Cleaner for the given options.
func New(opts Options, options ...Option) *Cleaner {
	c := &Cleaner{
		options:   opts,
		sanitizer: NewPolicySanitizer(),
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// NewFromMap creates a Cleaner from option key/value pairs. Unknown keys
// fail with an *OptionError.
func NewFromMap(values map[string]bool, options ...Option) (*Cleaner, error) {
	opts, err := ParseOptions(values)
	if err != nil {
		return nil, err
	}
	return New(opts, options...), nil
}

// Name returns the cleaner name for logging.
func (c *Cleaner) Name() string {
	return "cleanhtml"
}

// Options returns the options the Cleaner was built with.
func (c *Cleaner) Options() Options {
	return c.options
}

// Clean returns the cleaned form of markup. Malformed markup never fails;
// the only error source is the sanitizer.
func (c *Cleaner) Clean(markup string) (string, error) {
	result := c.CleanWithStats(markup)
	if result.Error != nil {
		return "", result.Error
	}
	return result.Content, nil
}

// CleanWithStats performs cleaning and returns detailed stats.
func (c *Cleaner) CleanWithStats(markup string) *Result {
	startTime := time.Now()
	result := &Result{
		Stats: NewStats(),
	}
	result.Stats.InputBytes = len(markup)
	allowed := c.options.AllowedTags()

	logger.Debug("cleaning html", "bytes", len(markup), "options", c.options.String())

	// Pre-clean and first pass
	phase := result.Stats.AddPhase(PhasePreClean, len(markup))
	phaseStart := time.Now()
	document := preClean(markup)
	phase.OutputBytes = len(document)
	phase.Duration = time.Since(phaseStart)

	phase = result.Stats.AddPhase(PhaseFirstPass, len(document))
	phaseStart = time.Now()
	first := c.runPass(document, normalize.FirstPass, true, result)
	phase.OutputBytes = len(first)
	phase.Duration = time.Since(phaseStart)

	// Sanitize
	phase = result.Stats.AddPhase(PhaseSanitize, len(first))
	phaseStart = time.Now()
	sanitized, err := c.sanitizer.Sanitize(first, allowed)
	phase.Duration = time.Since(phaseStart)
	if err != nil {
		logger.Debug("sanitizer failed", "error", err)
		result.Error = err
		result.Stats.TotalDuration = time.Since(startTime)
		return result
	}
	phase.OutputBytes = len(sanitized)

	// Second pass. Loose text only gets an implied paragraph when <p> is
	// allowed, since this output is not sanitized again.
	phase = result.Stats.AddPhase(PhaseSecondPass, len(sanitized))
	phaseStart = time.Now()
	second := c.runPass(documentShell+sanitized, normalize.SecondPass, !c.options.Strip, result)
	phase.OutputBytes = len(second)
	phase.Duration = time.Since(phaseStart)

	result.Content = strings.TrimSuffix(second, "\n")
	result.Stats.OutputBytes = len(result.Content)
	result.Stats.TotalDuration = time.Since(startTime)

	logger.Debug("cleaned html",
		"input_bytes", result.Stats.InputBytes,
		"output_bytes", result.Stats.OutputBytes,
		"rewrites", result.Stats.TotalRewrites(),
		"duration", result.Stats.TotalDuration)

	return result
}

// runPass parses document, normalizes it and serializes the body. Parse and
// render failures are recorded as warnings and yield "".
func (c *Cleaner) runPass(document string, pass normalize.Pass, implied bool, result *Result) string {
	doc, err := parseDocument(document)
	if err != nil {
		result.AddWarning(pass.String(), "HTML parse failed, treating document as empty", err.Error())
		return ""
	}

	if implied && impliedParagraph(doc) {
		result.Stats.ImpliedParagraphs++
	}
	if pass == normalize.FirstPass {
		result.Stats.ScriptsRemoved += normalize.RemoveScripts(doc, pass)
	}

	report := normalize.Apply(doc, pass)
	result.Stats.RecordRewrites(report)
	logger.Debug("normalized document", "pass", pass.String(), "rewrites", report.Total())

	out, err := Serialize(doc)
	if err != nil {
		result.AddWarning(pass.String(), "serialization failed, treating document as empty", err.Error())
		return ""
	}
	return out
}

// Document parses already-clean markup into a document, for callers that
// want to inspect or re-serialize pipeline output.
func Document(markup string) (*goquery.Document, error) {
	return parseDocument(documentShell + markup)
}
