package forecast

// Summary holds the headline figures of a completed forecast.
type Summary struct {
	Months              int     `json:"months" yaml:"months"`
	FinalCustomers      int64   `json:"final_customers" yaml:"final_customers"`
	TotalAcquired       int64   `json:"total_acquired" yaml:"total_acquired"`
	TotalChurned        int64   `json:"total_churned" yaml:"total_churned"`
	TotalRevenue        int64   `json:"total_revenue" yaml:"total_revenue"`
	FinalMonthlyRevenue int64   `json:"final_monthly_revenue" yaml:"final_monthly_revenue"`
	TotalAdSpend        float64 `json:"total_ad_spend" yaml:"total_ad_spend"`
	CostPerAcquisition  float64 `json:"cost_per_acquisition" yaml:"cost_per_acquisition"`
	Net                 float64 `json:"net" yaml:"net"`
	BreakEvenMonth      int     `json:"break_even_month" yaml:"break_even_month"` // 0 if never
}

// Summarize derives headline figures from records produced by Forecast(in).
func Summarize(in Input, records []MonthlyRecord) Summary {
	s := Summary{Months: len(records)}
	if len(records) == 0 {
		return s
	}

	for _, r := range records {
		s.TotalChurned += r.Churned
		spent := in.MonthlyBudget * float64(r.Month)
		if s.BreakEvenMonth == 0 && in.MonthlyBudget > 0 && float64(r.CumulativeRevenue) >= spent {
			s.BreakEvenMonth = r.Month
		}
	}

	last := records[len(records)-1]
	s.FinalCustomers = last.TotalCustomers
	s.TotalAcquired = last.CumulativeUsers
	s.TotalRevenue = last.CumulativeRevenue
	s.FinalMonthlyRevenue = last.MonthlyRevenue
	s.TotalAdSpend = in.MonthlyBudget * float64(len(records))
	if s.TotalAcquired > 0 {
		s.CostPerAcquisition = s.TotalAdSpend / float64(s.TotalAcquired)
	}
	s.Net = float64(s.TotalRevenue) - s.TotalAdSpend

	return s
}
