package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
}

func TestVersion_CanBeOverridden(t *testing.T) {
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	defer func() {
		Version, GitCommit, BuildDate = origVersion, origCommit, origDate
	}()

	Version = "1.2.3"
	GitCommit = "abc123def456"
	BuildDate = "2024-01-15T10:30:00Z"

	if got, want := String(false), "grammarworks 1.2.3 (abc123def456) built 2024-01-15T10:30:00Z"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestColoredWithoutTerminal(t *testing.T) {
	orig := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = orig }()

	if got := Colored(); got != Version {
		t.Errorf("Colored() = %q, want %q when colors are disabled", got, Version)
	}
	origVersion := Version
	defer func() { Version = origVersion }()
	Version = "weird"
	if Colored() != "weird" {
		t.Error("malformed versions are returned unchanged")
	}
}
