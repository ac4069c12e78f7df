package version

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	oldVersion, oldDirty := Version, Dirty
	defer func() { Version, Dirty = oldVersion, oldDirty }()

	Version, Dirty = "1.2.3", "false"
	if got := String(); got != "1.2.3" {
		t.Errorf("String() = %q", got)
	}

	Dirty = "true"
	if got := String(); got != "1.2.3-dirty" {
		t.Errorf("String() = %q", got)
	}
	if !Get().Dirty {
		t.Error("Get().Dirty = false, want true")
	}
}

func TestFull(t *testing.T) {
	full := Full()
	if !strings.HasPrefix(full, "cleanhtml ") {
		t.Errorf("Full() = %q", full)
	}
	if !strings.Contains(full, "Go version:") {
		t.Errorf("expected go version line, got %q", full)
	}
}

func TestUserAgent(t *testing.T) {
	if ua := UserAgent(); !strings.HasPrefix(ua, "cleanhtml/"+String()) {
		t.Errorf("UserAgent() = %q", ua)
	}
}
