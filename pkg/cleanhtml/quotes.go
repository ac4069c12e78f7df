package cleanhtml

import "strings"

var quoteReplacer = strings.NewReplacer(
	"«", `"`,
	"»", `"`,
	"“", `"`,
	"”", `"`,
	"„", `"`,
	"‟", `"`,
	"‘", "'",
	"’", "'",
	"‚", "'",
	"‛", "'",
	"‹", "'",
	"›", "'",
)

// ChangeQuotes replaces typographic quotation marks with their ASCII
// equivalents. Double and angled double quotes become '"'; single, low and
// angled single quotes become '\''. Everything else is left as is.
func ChangeQuotes(s string) string {
	return quoteReplacer.Replace(s)
}
