package autop

import (
	"strings"
	"testing"
)

func TestAutop(t *testing.T) {
	tests := []struct {
		name  string
		input string
		br    bool
		want  string
	}{
		{
			name:  "empty input",
			input: "",
			br:    true,
			want:  "",
		},
		{
			name:  "whitespace only",
			input: " \n\t\n ",
			br:    true,
			want:  "",
		},
		{
			name:  "single line",
			input: "Hello world",
			br:    true,
			want:  "<p>Hello world</p>\n",
		},
		{
			name:  "two paragraphs with a line break",
			input: "First paragraph\n\nSecond line one\nline two",
			br:    true,
			want:  "<p>First paragraph</p>\n<p>Second line one<br />\nline two</p>\n",
		},
		{
			name:  "line breaks disabled",
			input: "Line one\nLine two",
			br:    false,
			want:  "<p>Line one\nLine two</p>\n",
		},
		{
			name:  "windows newlines",
			input: "One\r\n\r\nTwo",
			br:    true,
			want:  "<p>One</p>\n<p>Two</p>\n",
		},
		{
			name:  "doubled br becomes paragraph break",
			input: "One<br /><br />Two",
			br:    true,
			want:  "<p>One</p>\n<p>Two</p>\n",
		},
		{
			name:  "object params are not spaced out",
			input: `<p><object><param value="" name=""></object>`,
			br:    true,
			want:  `<p><object><param value="" name=""></object></p>` + "\n",
		},
		{
			name:  "blockquote contains its paragraph",
			input: "<blockquote>Quote</blockquote>",
			br:    true,
			want:  "<blockquote><p>Quote</p>\n</blockquote>\n",
		},
		{
			name:  "pre block untouched",
			input: "Intro\n\n<pre>a\n\n  b</pre>\n\nOutro",
			br:    true,
			want:  "<p>Intro</p>\n<pre>a\n\n  b</pre>\n<p>Outro</p>\n",
		},
		{
			name:  "script newlines are not broken",
			input: "Text\n<script>var a;\nvar b;</script>",
			br:    true,
			want:  "<p>Text<br />\n<script>var a;\nvar b;</script></p>\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Autop(tt.input, tt.br)
			if got != tt.want {
				t.Errorf("Autop(%q) =\n%q\nwant\n%q", tt.input, got, tt.want)
			}
		})
	}
}

func TestAutop_Idempotent(t *testing.T) {
	inputs := []string{
		"First paragraph\n\nSecond line one\nline two",
		"Intro\n\n<pre>a\n\n  b</pre>\n\nOutro",
		`<p><object><param value="" name=""></object>`,
		"<blockquote>Quote</blockquote>",
		"<blockquote>q\n\nr</blockquote>",
	}

	for _, input := range inputs {
		once := Autop(input, true)
		twice := Autop(once, true)
		if once != twice {
			t.Errorf("Autop not idempotent for %q:\nonce  %q\ntwice %q", input, once, twice)
		}
	}
}

func TestAutop_PreservesPreContent(t *testing.T) {
	pre := "<pre class=\"code\">line 1\n\n\nline 2\r\n<br /><br />\n  indented</pre>"
	input := "Before\n\n" + pre + "\n\nAfter"

	got := Autop(input, true)
	if !strings.Contains(got, pre) {
		t.Errorf("pre block altered:\n%q", got)
	}
}

func TestExtractPre(t *testing.T) {
	t.Run("stray closing tag kept", func(t *testing.T) {
		input := "<pre>x</pre>y</pre>z"
		text, pres := extractPre(input)
		if strings.Contains(text, "<pre>x") {
			t.Errorf("expected pre block to be replaced, got %q", text)
		}
		if !strings.Contains(text, "y</pre>z") {
			t.Errorf("expected stray closing tag kept, got %q", text)
		}
		if got := pres.restore(text); got != input {
			t.Errorf("restore() = %q, want %q", got, input)
		}
	})

	t.Run("no pre is a no-op", func(t *testing.T) {
		input := "</pre>Clean!"
		text, pres := extractPre(input)
		if text != input {
			t.Errorf("extractPre() = %q, want %q", text, input)
		}
		if got := pres.restore(text); got != input {
			t.Errorf("restore() = %q, want %q", got, input)
		}
	})

	t.Run("placeholders are numbered", func(t *testing.T) {
		text, pres := extractPre("<pre>a</pre><pre>b</pre>")
		if text != "<pre autop-pre-tag-0></pre><pre autop-pre-tag-1></pre>" {
			t.Errorf("unexpected placeholders: %q", text)
		}
		if len(pres.blocks) != 2 || pres.blocks[1] != "<pre>b</pre>" {
			t.Errorf("unexpected blocks: %v", pres.blocks)
		}
	})
}

func TestBreakNewlines(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"a\nb", "a<br />\nb"},
		{"a<br />\nb", "a<br />\nb"},
		{"a  \n  b", "a<br />\n  b"},
		{"a<br /> \nb", "a<br /> <br />\nb"},
		{"no newline here", "no newline here"},
	}
	for _, tt := range tests {
		if got := breakNewlines(tt.input); got != tt.want {
			t.Errorf("breakNewlines(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestPickSentinel(t *testing.T) {
	s := pickSentinel("plain")
	if s != "\uE000" {
		t.Errorf("pickSentinel() = %q, want U+E000", s)
	}
	s = pickSentinel("has \uE000 already")
	if s != "\uE001" {
		t.Errorf("pickSentinel() = %q, want U+E001", s)
	}
}

func TestReconstructor(t *testing.T) {
	r := New(WithLineBreaks(false))
	if r.Name() != "autop" {
		t.Errorf("Name() = %q", r.Name())
	}
	got, err := r.Clean("a\nb")
	if err != nil {
		t.Fatalf("Clean() error = %v", err)
	}
	if got != "<p>a\nb</p>\n" {
		t.Errorf("Clean() = %q", got)
	}
}
