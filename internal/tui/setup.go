package tui

import (
	"github.com/theirongolddev/growthcast/internal/config"
	"github.com/theirongolddev/growthcast/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// setupState holds what the setup wizard collects before it is written back
// into a Config.
type setupState struct {
	vals      *formValues
	themeName string
}

func newSetupState(cfg *config.Config) *setupState {
	return &setupState{
		vals:      valuesFrom(cfg.Defaults),
		themeName: theme.ByName(cfg.Appearance.Theme).Name,
	}
}

func themeOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		opts = append(opts, huh.NewOption(t.Name, t.Name))
	}
	return opts
}

func newSetupForm(s *setupState) *huh.Form {
	v := s.vals
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to growthcast!").
				Description("These values become the defaults for every forecast.\nFlags still override them per run."),
		),
		huh.NewGroup(
			huh.NewInput().Title("Annual Pricing (USD)").Value(&v.price).Validate(validatePrice),
			huh.NewInput().Title("Monthly Marketing Budget (USD)").Value(&v.budget).Validate(validateBudget),
			huh.NewInput().Title("Impressions per $100").Value(&v.impressions).Validate(validateImpressions),
			huh.NewInput().Title("Conversion Rate (as decimal)").Value(&v.conversion).Validate(validateRate("conversion rate")),
			huh.NewInput().Title("Churn Rate (as decimal)").Value(&v.churn).Validate(validateRate("churn rate")),
			huh.NewInput().Title("Forecast Duration (Months)").Value(&v.months).Validate(validateMonths),
		).Title("Default assumptions"),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOptions()...).
				Value(&s.themeName),
		),
	).WithTheme(theme.Active.Form())
}

// apply copies the collected values into cfg. cfg is left untouched on error.
func (s *setupState) apply(cfg *config.Config) error {
	in, err := s.vals.input()
	if err != nil {
		return err
	}
	cfg.Defaults = in
	cfg.Appearance.Theme = theme.ByName(s.themeName).Name
	return nil
}

// RunSetup runs the first-time setup wizard and updates cfg in place. The
// caller decides whether to save.
func RunSetup(cfg *config.Config) error {
	s := newSetupState(cfg)
	if err := newSetupForm(s).Run(); err != nil {
		return err
	}
	if err := s.apply(cfg); err != nil {
		return err
	}
	theme.SetActive(cfg.Appearance.Theme)
	return nil
}
