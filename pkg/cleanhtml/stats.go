package cleanhtml

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Phase names recorded in Stats.
const (
	PhasePreClean   = "preclean"
	PhaseFirstPass  = "first_pass"
	PhaseSanitize   = "sanitize"
	PhaseSecondPass = "second_pass"
)

// Stats captures metrics about what the cleaner did.
type Stats struct {
	// Size metrics
	InputBytes  int `json:"input_bytes" yaml:"input_bytes"`
	OutputBytes int `json:"output_bytes" yaml:"output_bytes"`

	// Structural changes
	ScriptsRemoved    int            `json:"scripts_removed" yaml:"scripts_removed"`
	ImpliedParagraphs int            `json:"implied_paragraphs" yaml:"implied_paragraphs"`
	Rewrites          map[string]int `json:"rewrites" yaml:"rewrites"` // rule -> count

	// Per-phase detail, in execution order
	Phases []*Phase `json:"phases" yaml:"phases"`

	TotalDuration time.Duration `json:"total_duration" yaml:"total_duration"`
}

// Phase records the size change and duration of one pipeline phase.
type Phase struct {
	Name        string        `json:"name" yaml:"name"`
	InputBytes  int           `json:"input_bytes" yaml:"input_bytes"`
	OutputBytes int           `json:"output_bytes" yaml:"output_bytes"`
	Duration    time.Duration `json:"duration" yaml:"duration"`
}

// NewStats creates a new Stats instance with initialized collections.
func NewStats() *Stats {
	return &Stats{
		Rewrites: make(map[string]int),
		Phases:   make([]*Phase, 0, 4),
	}
}

// AddPhase appends a phase and returns it for the caller to fill in.
func (s *Stats) AddPhase(name string, inputBytes int) *Phase {
	p := &Phase{Name: name, InputBytes: inputBytes}
	s.Phases = append(s.Phases, p)
	return p
}

// RecordRewrites adds per-rule counts to the running totals.
func (s *Stats) RecordRewrites(counts map[string]int) {
	for rule, n := range counts {
		s.Rewrites[rule] += n
	}
}

// TotalRewrites returns the sum of all rule rewrites.
func (s *Stats) TotalRewrites() int {
	total := 0
	for _, n := range s.Rewrites {
		total += n
	}
	return total
}

// ReductionPercent returns the percentage reduction in size.
func (s *Stats) ReductionPercent() float64 {
	if s.InputBytes == 0 {
		return 0
	}
	return float64(s.InputBytes-s.OutputBytes) / float64(s.InputBytes) * 100
}

// String returns a human-readable summary of the stats.
func (s *Stats) String() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Size: %d -> %d bytes (%.1f%% reduction)\n",
		s.InputBytes, s.OutputBytes, s.ReductionPercent()))

	if s.ScriptsRemoved > 0 {
		sb.WriteString(fmt.Sprintf("Scripts removed: %d\n", s.ScriptsRemoved))
	}
	if s.ImpliedParagraphs > 0 {
		sb.WriteString(fmt.Sprintf("Implied paragraphs: %d\n", s.ImpliedParagraphs))
	}

	if len(s.Rewrites) > 0 {
		rules := make([]string, 0, len(s.Rewrites))
		for rule := range s.Rewrites {
			rules = append(rules, rule)
		}
		sort.Strings(rules)

		parts := make([]string, 0, len(rules))
		for _, rule := range rules {
			parts = append(parts, fmt.Sprintf("%s=%d", rule, s.Rewrites[rule]))
		}
		sb.WriteString("Rewrites: ")
		sb.WriteString(strings.Join(parts, ", "))
		sb.WriteString("\n")
	}

	for _, p := range s.Phases {
		sb.WriteString(fmt.Sprintf("  %-12s %6d -> %6d bytes  %v\n",
			p.Name, p.InputBytes, p.OutputBytes, p.Duration.Round(time.Microsecond)))
	}

	sb.WriteString(fmt.Sprintf("Total: %v\n", s.TotalDuration.Round(time.Millisecond)))

	return sb.String()
}

// Warning represents a non-fatal issue encountered during cleaning.
type Warning struct {
	Phase   string `json:"phase" yaml:"phase"`
	Message string `json:"message" yaml:"message"`
	Context string `json:"context,omitempty" yaml:"context,omitempty"`
}

// String returns a formatted warning message.
func (w Warning) String() string {
	if w.Context != "" {
		return fmt.Sprintf("[%s] %s (context: %s)", w.Phase, w.Message, w.Context)
	}
	return fmt.Sprintf("[%s] %s", w.Phase, w.Message)
}

// Result contains the output of a cleaning operation.
type Result struct {
	// Content is the cleaned markup. It is empty when Error is set.
	Content string `json:"content" yaml:"content"`

	// Stats contains metrics about what was done.
	Stats *Stats `json:"stats" yaml:"stats"`

	// Warnings contains non-fatal issues encountered.
	Warnings []Warning `json:"warnings,omitempty" yaml:"warnings,omitempty"`

	// Error is set when the sanitizer fails.
	Error error `json:"-" yaml:"-"`
}

// AddWarning adds a warning to the result.
func (r *Result) AddWarning(phase, message, context string) {
	r.Warnings = append(r.Warnings, Warning{
		Phase:   phase,
		Message: message,
		Context: context,
	})
}

// HasWarnings returns true if any warnings were recorded.
func (r *Result) HasWarnings() bool {
	return len(r.Warnings) > 0
}
