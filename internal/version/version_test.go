package version

import "testing"

func TestResolve(t *testing.T) {
	original := Version
	t.Cleanup(func() { Version = original })

	Version = ""
	if got := Resolve(); got == "" {
		t.Error("Resolve() returned an empty version")
	}

	Version = "2.3.4"
	if got := Resolve(); got != "2.3.4" {
		t.Errorf("Resolve() = %q, want 2.3.4", got)
	}
}
