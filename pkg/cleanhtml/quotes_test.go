package cleanhtml

import "testing"

func TestChangeQuotes(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"<p>This is ‘a test’</p>", "<p>This is 'a test'</p>"},
		{"“Hello” „there‟", `"Hello" "there"`},
		{"«guillemets» ‹single›", `"guillemets" 'single'`},
		{"‚low‛", "'low'"},
		{"plain \"ascii\" 'quotes'", "plain \"ascii\" 'quotes'"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ChangeQuotes(tt.input); got != tt.want {
			t.Errorf("ChangeQuotes(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestChangeQuotes_ThenClean(t *testing.T) {
	got, err := New(Options{}).Clean(ChangeQuotes("<p>This is ‘a test’ of “quotes”</p>"))
	if err != nil {
		t.Fatalf("Clean() error = %v", err)
	}
	if want := `<p>This is 'a test' of "quotes"</p>`; got != want {
		t.Errorf("Clean() = %q, want %q", got, want)
	}
}
