package cleanhtml

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownOption is returned (wrapped in an *OptionError) when an option
// key is not one of Keys().
var ErrUnknownOption = errors.New("unknown option")

// OptionError names the option key that failed validation.
type OptionError struct {
	Key string
}

func (e *OptionError) Error() string {
	return fmt.Sprintf("%s does not exist as a settable option", e.Key)
}

func (e *OptionError) Unwrap() error {
	return ErrUnknownOption
}

// baseAllowedTags are always allowed unless Strip is set.
const baseAllowedTags = "h1,h2,h3,h4,h5,p,strong,b,ul,ol,li,hr,pre,code"

// Options selects which optional tag groups survive cleaning.
// The zero value is the default: only the base tags are allowed.
type Options struct {
	// Images allows img with src and alt.
	Images bool `json:"images" yaml:"images" mapstructure:"images"`

	// Italics allows em and i.
	Italics bool `json:"italics" yaml:"italics" mapstructure:"italics"`

	// Links allows a with href and target.
	Links bool `json:"links" yaml:"links" mapstructure:"links"`

	// Strip removes every tag, overriding all other options.
	Strip bool `json:"strip" yaml:"strip" mapstructure:"strip"`

	// Table allows table, tr and td.
	Table bool `json:"table" yaml:"table" mapstructure:"table"`
}

// Keys returns the recognized option keys in sorted order.
func Keys() []string {
	return []string{"images", "italics", "links", "strip", "table"}
}

// ParseOptions builds Options from a key/value map. Any key outside Keys()
// fails with an *OptionError naming it.
func ParseOptions(values map[string]bool) (Options, error) {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var opts Options
	for _, key := range keys {
		v := values[key]
		switch key {
		case "images":
			opts.Images = v
		case "italics":
			opts.Italics = v
		case "links":
			opts.Links = v
		case "strip":
			opts.Strip = v
		case "table":
			opts.Table = v
		default:
			return Options{}, &OptionError{Key: key}
		}
	}
	return opts, nil
}

// Map returns the options keyed by name.
func (o Options) Map() map[string]bool {
	return map[string]bool{
		"images":  o.Images,
		"italics": o.Italics,
		"links":   o.Links,
		"strip":   o.Strip,
		"table":   o.Table,
	}
}

// AllowedTags returns the allow-list string handed to the sanitizer: a comma
// separated list of element names, each optionally followed by its allowed
// attributes in brackets, e.g. "img[src|alt]". Strip yields "".
func (o Options) AllowedTags() string {
	if o.Strip {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(baseAllowedTags)
	if o.Images {
		sb.WriteString(",img[src|alt]")
	}
	if o.Italics {
		sb.WriteString(",em,i")
	}
	if o.Links {
		sb.WriteString(",a[href|target]")
	}
	if o.Table {
		sb.WriteString(",table,tr,td")
	}
	return sb.String()
}

// String renders the options as key=value pairs for logging.
func (o Options) String() string {
	parts := make([]string, 0, 5)
	m := o.Map()
	for _, k := range Keys() {
		parts = append(parts, fmt.Sprintf("%s=%t", k, m[k]))
	}
	return strings.Join(parts, " ")
}
