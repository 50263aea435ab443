package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/growthcast/internal/forecast"
)

// ForecastHeaders are the column titles of the forecast table.
var ForecastHeaders = []string{
	"Month",
	"Ad Reach",
	"New Customers",
	"Total Customers",
	"Monthly Revenue",
	"Cumulative Revenue",
	"Cumulative Users",
}

// ForecastTable lays out one row per month. With showChurned a Churned
// column follows New Customers.
func ForecastTable(records []forecast.MonthlyRecord, showChurned bool) Table {
	headers := ForecastHeaders
	if showChurned {
		headers = make([]string, 0, len(ForecastHeaders)+1)
		headers = append(headers, ForecastHeaders[:3]...)
		headers = append(headers, "Churned")
		headers = append(headers, ForecastHeaders[3:]...)
	}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		row := []string{
			strconv.Itoa(r.Month),
			FormatNumber(r.AdReach),
			FormatNumber(r.NewCustomers),
		}
		if showChurned {
			row = append(row, FormatNumber(r.Churned))
		}
		row = append(row,
			FormatNumber(r.TotalCustomers),
			FormatCurrency(r.MonthlyRevenue, MonthlyRevenueWidth),
			FormatCurrency(r.CumulativeRevenue, CumulativeRevenueWidth),
			FormatNumber(r.CumulativeUsers),
		)
		rows = append(rows, row)
	}

	return Table{Headers: headers, Rows: rows}
}

// RenderAssumptions renders the inputs behind a forecast as a bullet list.
func RenderAssumptions(in forecast.Input) string {
	lines := []struct{ label, value string }{
		{"Pricing", FormatMoney(in.AnnualPrice) + " per year"},
		{"Monthly Marketing Budget", FormatMoney(in.MonthlyBudget)},
		{"Impressions per $100", strconv.FormatFloat(in.ImpressionsPer100, 'f', -1, 64)},
		{"Average Conversion Rate", FormatPercent(in.ConversionRate)},
		{"Average Churn Rate", FormatPercent(in.ChurnRate)},
		{"Forecast Duration", fmt.Sprintf("%d months", in.HorizonMonths)},
	}

	st := styles()
	var b strings.Builder
	b.WriteString("  ")
	b.WriteString(st.header.Render("Assumptions and Inputs"))
	b.WriteString("\n")
	for _, l := range lines {
		b.WriteString(st.muted.Render(fmt.Sprintf("  - %s: ", l.label)))
		b.WriteString(st.value.Render(l.value))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderSummary renders headline figures as a two-column table.
func RenderSummary(s forecast.Summary) string {
	breakEven := "not reached"
	if s.BreakEvenMonth > 0 {
		breakEven = fmt.Sprintf("month %d", s.BreakEvenMonth)
	}

	rows := [][]string{
		{"Active Customers", FormatNumber(s.FinalCustomers)},
		{"Customers Acquired", FormatNumber(s.TotalAcquired)},
		{"Customers Churned", FormatNumber(s.TotalChurned)},
		separatorRow,
		{"Final Monthly Revenue", "$" + FormatNumber(s.FinalMonthlyRevenue)},
		{"Total Revenue", "$" + FormatNumber(s.TotalRevenue)},
		{"Total Ad Spend", FormatMoney(s.TotalAdSpend)},
		{"Net", FormatMoney(s.Net)},
		separatorRow,
		{"Cost per Acquisition", FormatMoney(s.CostPerAcquisition)},
		{"Break-even", breakEven},
	}

	return RenderTable(Table{
		Title:   fmt.Sprintf("Summary (%d months)", s.Months),
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	})
}

// RenderTrend renders a labeled sparkline of monthly revenue.
func RenderTrend(records []forecast.MonthlyRecord) string {
	if len(records) == 0 {
		return ""
	}
	values := make([]float64, len(records))
	for i, r := range records {
		values[i] = float64(r.MonthlyRevenue)
	}
	last := records[len(records)-1].MonthlyRevenue
	st := styles()
	return fmt.Sprintf("  %s %s %s\n",
		st.muted.Render("Monthly revenue"),
		st.trend.Render(RenderSparkline(values)),
		st.money.Render("$"+FormatCompact(last)),
	)
}

// RenderWarnings renders input warnings, one per line.
func RenderWarnings(warnings []forecast.Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	st := styles()
	var b strings.Builder
	for _, w := range warnings {
		b.WriteString(st.warn.Render("  ! " + w.String()))
		b.WriteString("\n")
	}
	return b.String()
}
