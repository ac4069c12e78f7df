package normalize

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func parse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return doc
}

func body(t *testing.T, doc *goquery.Document) string {
	t.Helper()
	out, err := doc.Find("body").Html()
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	return out
}

func TestRules(t *testing.T) {
	tests := []struct {
		name    string
		rule    func(*goquery.Document, Pass) int
		pass    Pass
		html    string
		want    string
		changed int
	}{
		{
			name:    "h1 becomes h2 with flattened text",
			rule:    PromoteH1,
			html:    `<h1>Hello <em>there</em></h1>`,
			want:    `<h2>Hello there</h2>`,
			changed: 1,
		},
		{
			name:    "short bold paragraph becomes heading",
			rule:    PromoteShortBold,
			html:    `<p><strong>Short title</strong></p>`,
			want:    `<h2>Short title</h2>`,
			changed: 1,
		},
		{
			name:    "heading text whitespace collapsed",
			rule:    PromoteShortBold,
			html:    "<p><strong>\n   Short   \n  title  </strong></p>",
			want:    `<h2>Short title</h2>`,
			changed: 1,
		},
		{
			name:    "eight words is still a heading",
			rule:    PromoteShortBold,
			html:    `<p><strong>one two three four five six seven eight</strong></p>`,
			want:    `<h2>one two three four five six seven eight</h2>`,
			changed: 1,
		},
		{
			name: "nine words stays bold",
			rule: PromoteShortBold,
			html: `<p><strong>one two three four five six seven eight nine</strong></p>`,
			want: `<p><strong>one two three four five six seven eight nine</strong></p>`,
		},
		{
			name: "bold with trailing text stays",
			rule: PromoteShortBold,
			html: `<p><strong>Bold</strong> tail</p>`,
			want: `<p><strong>Bold</strong> tail</p>`,
		},
		{
			name: "bold starting with markup stays",
			rule: PromoteShortBold,
			html: `<p><strong><em>Nested</em></strong></p>`,
			want: `<p><strong><em>Nested</em></strong></p>`,
		},
		{
			name:    "bold heading collapses",
			rule:    CollapseBoldHeading,
			html:    `<h2><strong>Title</strong></h2>`,
			want:    `<h2>Title</h2>`,
			changed: 1,
		},
		{
			name: "partly bold heading stays",
			rule: CollapseBoldHeading,
			html: `<h2><strong>Title</strong> more</h2>`,
			want: `<h2><strong>Title</strong> more</h2>`,
		},
		{
			name:    "span inside paragraph is unwrapped",
			rule:    UnwrapSpans,
			html:    `<p>a <span style="color: red">b</span> c</p>`,
			want:    `<p>a b c</p>`,
			changed: 1,
		},
		{
			name:    "one span level per call",
			rule:    UnwrapSpans,
			html:    `<p><span><span>x</span></span></p>`,
			want:    `<p><span>x</span></p>`,
			changed: 1,
		},
		{
			name:    "empty span is dropped",
			rule:    UnwrapSpans,
			html:    `<p><span></span>x</p>`,
			want:    `<p>x</p>`,
			changed: 1,
		},
		{
			name: "span outside paragraph stays",
			rule: UnwrapSpans,
			html: `<div><span>x</span></div>`,
			want: `<div><span>x</span></div>`,
		},
		{
			name: "list paragraphs kept on first pass",
			rule: UnwrapListParagraphs,
			pass: FirstPass,
			html: `<ul><li><p>one</p></li></ul>`,
			want: `<ul><li><p>one</p></li></ul>`,
		},
		{
			name:    "list paragraphs unwrapped on second pass",
			rule:    UnwrapListParagraphs,
			pass:    SecondPass,
			html:    `<ul><li><p>one</p><p>two</p></li></ul>`,
			want:    `<ul><li>onetwo</li></ul>`,
			changed: 2,
		},
		{
			name:    "scripts removed at any depth",
			rule:    RemoveScripts,
			html:    `<div><p>a<script>x()</script></p></div><script>y()</script>`,
			want:    `<div><p>a</p></div>`,
			changed: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pass := tt.pass
			if pass == 0 {
				pass = FirstPass
			}
			doc := parse(t, tt.html)
			changed := tt.rule(doc, pass)
			if got := body(t, doc); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
			if changed != tt.changed {
				t.Errorf("changed = %d, want %d", changed, tt.changed)
			}
		})
	}
}

func TestApply(t *testing.T) {
	doc := parse(t, `<h1>Top</h1><p><strong>Lead</strong></p><p><span>text</span></p>`)

	report := Apply(doc, FirstPass)

	if got := body(t, doc); got != `<h2>Top</h2><h2>Lead</h2><p>text</p>` {
		t.Errorf("unexpected body %q", got)
	}
	if report["promote_h1"] != 1 || report["promote_short_bold"] != 1 || report["unwrap_spans"] != 1 {
		t.Errorf("unexpected report %v", report)
	}
	if report.Total() != 3 {
		t.Errorf("Total() = %d, want 3", report.Total())
	}
}

func TestApply_Idempotent(t *testing.T) {
	doc := parse(t, `<h1>Top</h1><h2><strong>Sub</strong></h2><ul><li><p>item</p></li></ul>`)
	Apply(doc, SecondPass)
	first := body(t, doc)

	if report := Apply(doc, SecondPass); report.Total() != 0 {
		t.Errorf("second Apply changed nodes: %v", report)
	}
	if got := body(t, doc); got != first {
		t.Errorf("second Apply changed output:\n%q\n%q", first, got)
	}
}

func TestPassString(t *testing.T) {
	if FirstPass.String() != "first" || SecondPass.String() != "second" || Pass(0).String() != "unknown" {
		t.Error("unexpected Pass names")
	}
}
