package cleaner

import "github.com/yosssi/gohtml"

// PrettyCleaner indents HTML for reading. It does not change content.
type PrettyCleaner struct{}

// NewPretty creates a new HTML formatter.
func NewPretty() *PrettyCleaner {
	return &PrettyCleaner{}
}

// Clean returns html re-indented by gohtml.
func (c *PrettyCleaner) Clean(html string) (string, error) {
	if html == "" {
		return "", nil
	}
	return gohtml.Format(html), nil
}

// Name returns the cleaner type.
func (c *PrettyCleaner) Name() string {
	return "pretty"
}
