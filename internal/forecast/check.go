package forecast

import (
	"errors"
	"fmt"
)

// Warning flags an input the engine accepts but whose result may not mean
// anything in the real world.
type Warning struct {
	Field   string  `json:"field" yaml:"field"`
	Value   float64 `json:"value" yaml:"value"`
	Message string  `json:"message" yaml:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s = %g: %s", w.Field, w.Value, w.Message)
}

// Check validates input collected by a shell before it reaches Forecast.
// Horizons outside [1, MaxHorizonMonths], non-finite values and inputs
// whose projection overflows int64 are errors.
// Out-of-range rates and amounts are returned as warnings and never clamped.
func Check(in Input) ([]Warning, error) {
	if in.HorizonMonths < 1 || in.HorizonMonths > MaxHorizonMonths {
		return nil, fmt.Errorf("%w: %d months (must be 1-%d)", ErrInvalidHorizon, in.HorizonMonths, MaxHorizonMonths)
	}
	if field, ok := firstNonFinite(in); ok {
		return nil, fmt.Errorf("%w: %s", ErrNonFinite, field)
	}
	if _, err := Forecast(in); errors.Is(err, ErrOutOfRange) {
		return nil, err
	}

	var warnings []Warning
	if in.ConversionRate < 0 || in.ConversionRate > 1 {
		warnings = append(warnings, Warning{
			Field:   "conversion_rate",
			Value:   in.ConversionRate,
			Message: "outside [0,1]; new customer counts are not meaningful",
		})
	}
	if in.ChurnRate < 0 || in.ChurnRate > 1 {
		warnings = append(warnings, Warning{
			Field:   "churn_rate",
			Value:   in.ChurnRate,
			Message: "outside [0,1]; churned customer counts are not meaningful",
		})
	}
	if in.MonthlyBudget < 0 {
		warnings = append(warnings, Warning{
			Field:   "monthly_budget",
			Value:   in.MonthlyBudget,
			Message: "negative budget yields negative ad reach",
		})
	}
	if in.ImpressionsPer100 < 0 {
		warnings = append(warnings, Warning{
			Field:   "impressions_per_100",
			Value:   in.ImpressionsPer100,
			Message: "negative impressions yield negative ad reach",
		})
	}
	if in.AnnualPrice <= 0 {
		warnings = append(warnings, Warning{
			Field:   "annual_price",
			Value:   in.AnnualPrice,
			Message: "non-positive price yields no revenue",
		})
	}
	return warnings, nil
}
