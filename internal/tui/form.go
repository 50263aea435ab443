package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/growthcast/internal/forecast"
	"github.com/theirongolddev/growthcast/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// formValues backs the input form. huh binds each field by pointer, so the
// App keeps a *formValues that survives Bubble Tea's value-copy updates.
type formValues struct {
	price       string
	budget      string
	impressions string
	conversion  string
	churn       string
	months      string
	confirm     bool
}

func valuesFrom(in forecast.Input) *formValues {
	return &formValues{
		price:       formatFloat(in.AnnualPrice),
		budget:      formatFloat(in.MonthlyBudget),
		impressions: formatFloat(in.ImpressionsPer100),
		conversion:  formatFloat(in.ConversionRate),
		churn:       formatFloat(in.ChurnRate),
		months:      strconv.Itoa(in.HorizonMonths),
		confirm:     true,
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// input parses the collected strings. Validators have already run, so an
// error here means the form was bypassed.
func (v *formValues) input() (forecast.Input, error) {
	var in forecast.Input
	var err error

	if in.AnnualPrice, err = parseFloat("annual price", v.price); err != nil {
		return in, err
	}
	if in.MonthlyBudget, err = parseFloat("monthly budget", v.budget); err != nil {
		return in, err
	}
	if in.ImpressionsPer100, err = parseFloat("impressions per $100", v.impressions); err != nil {
		return in, err
	}
	if in.ConversionRate, err = parseFloat("conversion rate", v.conversion); err != nil {
		return in, err
	}
	if in.ChurnRate, err = parseFloat("churn rate", v.churn); err != nil {
		return in, err
	}
	months, err := strconv.Atoi(strings.TrimSpace(v.months))
	if err != nil {
		return in, fmt.Errorf("forecast duration: %q is not a whole number", v.months)
	}
	in.HorizonMonths = months
	return in, nil
}

func parseFloat(label, s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a number", label, s)
	}
	return f, nil
}

// Field validators. The forecast engine itself accepts any finite value.

func validatePrice(s string) error {
	f, err := parseFloat("annual price", s)
	if err != nil {
		return err
	}
	if f < 1 {
		return errors.New("annual price must be at least 1")
	}
	return nil
}

func validateBudget(s string) error {
	f, err := parseFloat("monthly budget", s)
	if err != nil {
		return err
	}
	if f < 0 {
		return errors.New("monthly budget cannot be negative")
	}
	return nil
}

func validateImpressions(s string) error {
	_, err := parseFloat("impressions per $100", s)
	return err
}

func validateRate(label string) func(string) error {
	return func(s string) error {
		f, err := parseFloat(label, s)
		if err != nil {
			return err
		}
		if f < 0 || f > 1 {
			return fmt.Errorf("%s must be between 0 and 1", label)
		}
		return nil
	}
}

func validateMonths(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return errors.New("forecast duration must be a whole number")
	}
	if n < 1 || n > forecast.MaxHorizonMonths {
		return fmt.Errorf("forecast duration must be 1-%d months", forecast.MaxHorizonMonths)
	}
	return nil
}

func newInputForm(v *formValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Annual Pricing (USD)").
				Value(&v.price).
				Validate(validatePrice),
			huh.NewInput().
				Title("Monthly Marketing Budget (USD)").
				Value(&v.budget).
				Validate(validateBudget),
			huh.NewInput().
				Title("Impressions per $100").
				Value(&v.impressions).
				Validate(validateImpressions),
			huh.NewInput().
				Title("Conversion Rate (as decimal)").
				Value(&v.conversion).
				Validate(validateRate("conversion rate")),
			huh.NewInput().
				Title("Churn Rate (as decimal)").
				Value(&v.churn).
				Validate(validateRate("churn rate")),
			huh.NewInput().
				Title("Forecast Duration (Months)").
				Description(fmt.Sprintf("1-%d", forecast.MaxHorizonMonths)).
				Value(&v.months).
				Validate(validateMonths),
			huh.NewConfirm().
				Title("Calculate forecast?").
				Affirmative("Calculate").
				Negative("Cancel").
				Value(&v.confirm),
		),
	).WithTheme(theme.Active.Form()).WithShowHelp(true)
}
