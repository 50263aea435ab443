package theme

import "testing"

func TestByNameFallsBackToDefault(t *testing.T) {
	if got := ByName("tokyo-night"); got.Name != "tokyo-night" {
		t.Fatalf("ByName(tokyo-night) = %q", got.Name)
	}
	if got := ByName("no-such-theme"); got.Name != FlexokiDark.Name {
		t.Fatalf("ByName(unknown) = %q, want %q", got.Name, FlexokiDark.Name)
	}
}

func TestSetActive(t *testing.T) {
	orig := Active
	defer func() { Active = orig }()

	SetActive("terminal")
	if Active.Name != "terminal" {
		t.Fatalf("Active = %q, want terminal", Active.Name)
	}
}

func TestFormThemeIsUsable(t *testing.T) {
	for _, th := range All {
		if th.Form() == nil {
			t.Fatalf("%s: Form() returned nil", th.Name)
		}
	}
}
