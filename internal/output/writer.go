// Package output writes cleaning reports in machine-readable formats.
package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jmylchreest/cleanhtml/pkg/cleanhtml"
)

// Format represents output format types.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat converts a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", s)
	}
}

// Report describes one cleaning run.
type Report struct {
	Source    string              `json:"source" yaml:"source"`
	Cleaner   string              `json:"cleaner" yaml:"cleaner"`
	Options   map[string]bool     `json:"options" yaml:"options"`
	Stats     *cleanhtml.Stats    `json:"stats" yaml:"stats"`
	Warnings  []cleanhtml.Warning `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Version   string              `json:"version" yaml:"version"`
	CreatedAt time.Time           `json:"created_at" yaml:"created_at"`
}

// NewReport builds a report from a cleaning result.
func NewReport(source string, opts cleanhtml.Options, result *cleanhtml.Result, version string) *Report {
	return &Report{
		Source:    source,
		Cleaner:   "cleanhtml",
		Options:   opts.Map(),
		Stats:     result.Stats,
		Warnings:  result.Warnings,
		Version:   version,
		CreatedAt: time.Now().UTC(),
	}
}

// Writer handles report serialization.
type Writer interface {
	// Write outputs a single report.
	Write(report *Report) error

	// Flush ensures all data is written.
	Flush() error
}

// WriterOption configures a writer.
type WriterOption func(*writerConfig)

type writerConfig struct {
	pretty bool
	indent string
}

// WithPretty enables pretty-printing.
func WithPretty(enabled bool) WriterOption {
	return func(c *writerConfig) {
		c.pretty = enabled
	}
}

// WithIndent sets the indentation string.
func WithIndent(indent string) WriterOption {
	return func(c *writerConfig) {
		c.indent = indent
	}
}

// NewWriter creates a writer for the specified format.
func NewWriter(w io.Writer, format Format, opts ...WriterOption) (Writer, error) {
	cfg := &writerConfig{
		pretty: true,
		indent: "  ",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	switch format {
	case FormatJSON:
		return NewJSONWriter(w, cfg.pretty, cfg.indent), nil
	case FormatYAML:
		return NewYAMLWriter(w, len(cfg.indent)), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
