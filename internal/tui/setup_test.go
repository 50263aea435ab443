package tui

import (
	"testing"

	"github.com/theirongolddev/growthcast/internal/config"
)

func TestSetupApplyWritesDefaultsAndTheme(t *testing.T) {
	cfg := config.DefaultConfig()
	s := newSetupState(&cfg)
	s.vals.budget = "250"
	s.vals.months = "24"
	s.themeName = "tokyo-night"

	if err := s.apply(&cfg); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if cfg.Defaults.MonthlyBudget != 250 || cfg.Defaults.HorizonMonths != 24 {
		t.Fatalf("defaults = %+v", cfg.Defaults)
	}
	if cfg.Appearance.Theme != "tokyo-night" {
		t.Fatalf("theme = %q, want tokyo-night", cfg.Appearance.Theme)
	}
}

func TestSetupApplyKeepsConfigOnBadValue(t *testing.T) {
	cfg := config.DefaultConfig()
	before := cfg.Defaults
	s := newSetupState(&cfg)
	s.vals.price = "free"

	if err := s.apply(&cfg); err == nil {
		t.Fatal("apply accepted a non-numeric price")
	}
	if cfg.Defaults != before {
		t.Fatalf("defaults changed to %+v", cfg.Defaults)
	}
}

func TestSetupUnknownThemeFallsBack(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Appearance.Theme = "solarized"
	s := newSetupState(&cfg)
	if s.themeName != "flexoki-dark" {
		t.Fatalf("themeName = %q, want flexoki-dark", s.themeName)
	}
}

func TestThemeOptionsCoverAllThemes(t *testing.T) {
	if got := len(themeOptions()); got != 4 {
		t.Fatalf("themeOptions() = %d entries, want 4", got)
	}
}
