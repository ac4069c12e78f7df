package cleanhtml

import (
	"reflect"
	"testing"
)

func TestParseAllowedTags(t *testing.T) {
	got := parseAllowedTags("p,,A[href|target], img[src|alt] ,")
	want := []tagRule{
		{Element: "p"},
		{Element: "a", Attrs: []string{"href", "target"}},
		{Element: "img", Attrs: []string{"src", "alt"}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parseAllowedTags() = %+v, want %+v", got, want)
	}

	if rules := parseAllowedTags(""); len(rules) != 0 {
		t.Errorf("expected no rules for empty allow list, got %+v", rules)
	}
}

func TestPolicySanitizer(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		allowed string
		want    string
	}{
		{
			name:    "disallowed tags unwrapped",
			input:   "<p><em>x</em> y</p>",
			allowed: "p",
			want:    "<p>x y</p>",
		},
		{
			name:    "attributes filtered",
			input:   `<p class="c"><a href="http://example.com" onclick="x()" target="_blank">l</a></p>`,
			allowed: "p,a[href|target]",
			want:    `<p><a href="http://example.com" target="_blank">l</a></p>`,
		},
		{
			name:    "unsafe url scheme removed",
			input:   `<p><a href="javascript:alert(1)">l</a></p>`,
			allowed: "p,a[href]",
			want:    `<p>l</p>`,
		},
		{
			name:    "elements emptied by filtering dropped",
			input:   "<p><em> </em></p><p>ok</p>",
			allowed: "p",
			want:    "<p>ok</p>",
		},
		{
			name:    "image only paragraph dropped",
			input:   `<p><img src="x.png"></p>`,
			allowed: "p",
			want:    "",
		},
		{
			name:    "nested empties dropped",
			input:   "<ul><li> </li></ul><hr/>",
			allowed: "ul,li,hr",
			want:    "<hr/>",
		},
		{
			name:    "script content dropped",
			input:   "<p>a</p><script>alert(1)</script>",
			allowed: "p,script",
			want:    "<p>a</p>",
		},
		{
			name:    "empty allow list leaves text",
			input:   "<p>Hello <strong>world</strong></p>",
			allowed: "",
			want:    "Hello world",
		},
	}

	s := NewPolicySanitizer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Sanitize(tt.input, tt.allowed)
			if err != nil {
				t.Fatalf("Sanitize() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Sanitize() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPolicySanitizer_CachesPolicies(t *testing.T) {
	s := NewPolicySanitizer()
	first := s.policy("p,b")
	if second := s.policy("p,b"); first != second {
		t.Error("expected cached policy to be reused")
	}
	if other := s.policy("p"); other == first {
		t.Error("expected distinct policy for a different allow list")
	}
}

func TestRemoveEmptyElements_KeepsTableCells(t *testing.T) {
	got, err := removeEmptyElements("<table><tr><td></td><td>x</td></tr></table>")
	if err != nil {
		t.Fatalf("removeEmptyElements() error = %v", err)
	}
	want := "<table><tbody><tr><td></td><td>x</td></tr></tbody></table>"
	if got != want {
		t.Errorf("removeEmptyElements() = %q, want %q", got, want)
	}
}
