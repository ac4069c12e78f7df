package cleanhtml

import (
	"errors"
	"testing"
)

func TestAllowedTags(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want string
	}{
		{
			name: "defaults",
			want: "h1,h2,h3,h4,h5,p,strong,b,ul,ol,li,hr,pre,code",
		},
		{
			name: "all groups",
			opts: Options{Images: true, Italics: true, Links: true, Table: true},
			want: "h1,h2,h3,h4,h5,p,strong,b,ul,ol,li,hr,pre,code,img[src|alt],em,i,a[href|target],table,tr,td",
		},
		{
			name: "links only",
			opts: Options{Links: true},
			want: "h1,h2,h3,h4,h5,p,strong,b,ul,ol,li,hr,pre,code,a[href|target]",
		},
		{
			name: "strip wins",
			opts: Options{Strip: true, Images: true},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.opts.AllowedTags(); got != tt.want {
				t.Errorf("AllowedTags() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseOptions(t *testing.T) {
	t.Run("every key", func(t *testing.T) {
		opts, err := ParseOptions(map[string]bool{
			"images": true, "italics": true, "links": true, "strip": true, "table": true,
		})
		if err != nil {
			t.Fatalf("ParseOptions() error = %v", err)
		}
		want := Options{Images: true, Italics: true, Links: true, Strip: true, Table: true}
		if opts != want {
			t.Errorf("ParseOptions() = %+v, want %+v", opts, want)
		}
	})

	t.Run("nil map gives defaults", func(t *testing.T) {
		opts, err := ParseOptions(nil)
		if err != nil || opts != (Options{}) {
			t.Errorf("ParseOptions(nil) = %+v, %v", opts, err)
		}
	})

	t.Run("first unknown key in sorted order is reported", func(t *testing.T) {
		_, err := ParseOptions(map[string]bool{"zeta": true, "alpha": true, "links": true})
		var optErr *OptionError
		if !errors.As(err, &optErr) {
			t.Fatalf("expected *OptionError, got %v", err)
		}
		if optErr.Key != "alpha" {
			t.Errorf("Key = %q, want alpha", optErr.Key)
		}
		if err.Error() != "alpha does not exist as a settable option" {
			t.Errorf("Error() = %q", err.Error())
		}
	})
}

func TestOptionsMapRoundTrip(t *testing.T) {
	in := Options{Italics: true, Table: true}
	out, err := ParseOptions(in.Map())
	if err != nil {
		t.Fatalf("ParseOptions() error = %v", err)
	}
	if out != in {
		t.Errorf("got %+v, want %+v", out, in)
	}
	if len(in.Map()) != len(Keys()) {
		t.Errorf("Map() has %d keys, Keys() has %d", len(in.Map()), len(Keys()))
	}
}

func TestOptionsString(t *testing.T) {
	got := Options{Links: true}.String()
	want := "images=false italics=false links=true strip=false table=false"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
