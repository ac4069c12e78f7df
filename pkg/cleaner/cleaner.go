// Package cleaner provides the stages that run around the HTML cleaning
// pipeline: content extraction before it and output formatting after it.
package cleaner

// Cleaner transforms markup into another form.
// cleanhtml.Cleaner and autop.Reconstructor both satisfy it.
type Cleaner interface {
	// Clean transforms the input. The output format depends on the
	// implementation (HTML, Markdown, formatted HTML).
	Clean(html string) (string, error)

	// Name returns the cleaner type for logging/debugging.
	Name() string
}
