// Package forecast projects subscription revenue and customer growth month by month.
package forecast

import (
	"errors"
	"fmt"
	"math"
)

// MaxHorizonMonths is the longest projection the interactive shells accept.
const MaxHorizonMonths = 36

var (
	// ErrInvalidHorizon is returned when the horizon is less than one month.
	ErrInvalidHorizon = errors.New("invalid forecast horizon")
	// ErrNonFinite is returned when an input is NaN or infinite.
	ErrNonFinite = errors.New("non-finite forecast input")
	// ErrOutOfRange is returned when a count or amount would not fit in an int64.
	ErrOutOfRange = errors.New("forecast value out of range")
)

// Input holds the assumptions for one forecast run.
type Input struct {
	MonthlyBudget     float64 `json:"monthly_budget" yaml:"monthly_budget" toml:"monthly_budget"`
	AnnualPrice       float64 `json:"annual_price" yaml:"annual_price" toml:"annual_price"`
	ImpressionsPer100 float64 `json:"impressions_per_100" yaml:"impressions_per_100" toml:"impressions_per_100"`
	ConversionRate    float64 `json:"conversion_rate" yaml:"conversion_rate" toml:"conversion_rate"`
	ChurnRate         float64 `json:"churn_rate" yaml:"churn_rate" toml:"churn_rate"`
	HorizonMonths     int     `json:"horizon_months" yaml:"horizon_months" toml:"horizon_months"`
}

// MonthlyRecord is the projected state at the end of one month.
type MonthlyRecord struct {
	Month             int   `json:"month" yaml:"month"`
	AdReach           int64 `json:"ad_reach" yaml:"ad_reach"`
	NewCustomers      int64 `json:"new_customers" yaml:"new_customers"`
	Churned           int64 `json:"churned" yaml:"churned"`
	TotalCustomers    int64 `json:"total_customers" yaml:"total_customers"`
	MonthlyRevenue    int64 `json:"monthly_revenue" yaml:"monthly_revenue"`
	CumulativeRevenue int64 `json:"cumulative_revenue" yaml:"cumulative_revenue"`
	CumulativeUsers   int64 `json:"cumulative_users" yaml:"cumulative_users"`
}

// DefaultInput returns the stock assumptions: $9/year, $100/month of ads at
// 6711 impressions per $100, 3% conversion, 2% monthly churn, 36 months.
func DefaultInput() Input {
	return Input{
		MonthlyBudget:     100,
		AnnualPrice:       9,
		ImpressionsPer100: 6711,
		ConversionRate:    0.03,
		ChurnRate:         0.02,
		HorizonMonths:     MaxHorizonMonths,
	}
}

// Forecast runs the monthly recurrence and returns one record per month.
//
// Every count and currency amount is truncated toward zero before it is
// stored or carried into the next month, so truncation error accumulates.
// Rates outside [0,1] and negative amounts are computed as given; use Check
// to surface them to the caller. A horizon below one month returns
// ErrInvalidHorizon, a NaN or infinite field returns ErrNonFinite, and a
// month whose values would overflow int64 returns ErrOutOfRange.
func Forecast(in Input) ([]MonthlyRecord, error) {
	if in.HorizonMonths < 1 {
		return nil, fmt.Errorf("%w: %d months (need at least 1)", ErrInvalidHorizon, in.HorizonMonths)
	}
	if field, ok := firstNonFinite(in); ok {
		return nil, fmt.Errorf("%w: %s", ErrNonFinite, field)
	}

	records := make([]MonthlyRecord, 0, in.HorizonMonths)
	monthlyPrice := in.AnnualPrice / 12

	var total, cumulativeRevenue, cumulativeUsers int64
	for month := 1; month <= in.HorizonMonths; month++ {
		adReach, err := truncate("ad_reach", month, (in.MonthlyBudget/100)*in.ImpressionsPer100)
		if err != nil {
			return nil, err
		}
		newCustomers, err := truncate("new_customers", month, float64(adReach)*in.ConversionRate)
		if err != nil {
			return nil, err
		}
		churned, err := truncate("churned", month, float64(total)*in.ChurnRate)
		if err != nil {
			return nil, err
		}

		next, ok := addInt64(total, newCustomers)
		if ok {
			next, ok = addInt64(next, -churned)
		}
		if !ok {
			return nil, outOfRange("total_customers", month)
		}
		total = max(next, 0)

		if cumulativeUsers, ok = addInt64(cumulativeUsers, newCustomers); !ok {
			return nil, outOfRange("cumulative_users", month)
		}

		revenue, err := truncate("monthly_revenue", month, float64(total)*monthlyPrice)
		if err != nil {
			return nil, err
		}
		if cumulativeRevenue, ok = addInt64(cumulativeRevenue, revenue); !ok {
			return nil, outOfRange("cumulative_revenue", month)
		}

		records = append(records, MonthlyRecord{
			Month:             month,
			AdReach:           adReach,
			NewCustomers:      newCustomers,
			Churned:           churned,
			TotalCustomers:    total,
			MonthlyRevenue:    revenue,
			CumulativeRevenue: cumulativeRevenue,
			CumulativeUsers:   cumulativeUsers,
		})
	}

	return records, nil
}

// int64Limit is 2^63, the first float64 above math.MaxInt64.
const int64Limit = float64(math.MaxInt64)

// truncate converts v toward zero, refusing values outside the int64 range.
func truncate(field string, month int, v float64) (int64, error) {
	if v >= int64Limit || v <= -int64Limit {
		return 0, outOfRange(field, month)
	}
	return int64(v), nil
}

func addInt64(a, b int64) (int64, bool) {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, false
	}
	return sum, true
}

func outOfRange(field string, month int) error {
	return fmt.Errorf("%w: %s in month %d exceeds int64", ErrOutOfRange, field, month)
}

func firstNonFinite(in Input) (string, bool) {
	fields := []struct {
		name  string
		value float64
	}{
		{"monthly_budget", in.MonthlyBudget},
		{"annual_price", in.AnnualPrice},
		{"impressions_per_100", in.ImpressionsPer100},
		{"conversion_rate", in.ConversionRate},
		{"churn_rate", in.ChurnRate},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return f.name, true
		}
	}
	return "", false
}
