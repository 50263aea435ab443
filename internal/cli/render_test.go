package cli

import (
	"bytes"
	"encoding/csv"
	stdjson "encoding/json"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/theirongolddev/growthcast/internal/forecast"
	"github.com/theirongolddev/growthcast/internal/tui/theme"
	"gopkg.in/yaml.v3"
)

func init() {
	// Plain output so assertions can match cell text directly.
	lipgloss.SetColorProfile(termenv.Ascii)
}

func mustReport(t *testing.T, mutate func(*forecast.Input)) forecast.Report {
	t.Helper()
	in := forecast.DefaultInput()
	if mutate != nil {
		mutate(&in)
	}
	r, err := forecast.Run(in)
	if err != nil {
		t.Fatalf("forecast.Run error: %v", err)
	}
	return r
}

func TestForecastTable_Rows(t *testing.T) {
	r := mustReport(t, func(in *forecast.Input) { in.HorizonMonths = 2 })

	tbl := ForecastTable(r.Records, false)
	if len(tbl.Headers) != 7 {
		t.Fatalf("headers = %v, want 7 columns", tbl.Headers)
	}
	want := [][]string{
		{"1", "6,711", "201", "201", "$    150", "$       150", "201"},
		{"2", "6,711", "201", "398", "$    298", "$       448", "402"},
	}
	for i, row := range want {
		for j, cell := range row {
			if tbl.Rows[i][j] != cell {
				t.Fatalf("row %d col %d = %q, want %q", i, j, tbl.Rows[i][j], cell)
			}
		}
	}
}

func TestForecastTable_ChurnedColumn(t *testing.T) {
	r := mustReport(t, func(in *forecast.Input) { in.HorizonMonths = 2 })

	tbl := ForecastTable(r.Records, true)
	if len(tbl.Headers) != 8 || tbl.Headers[3] != "Churned" {
		t.Fatalf("headers = %v, want Churned at index 3", tbl.Headers)
	}
	if tbl.Rows[1][3] != "4" {
		t.Fatalf("month 2 churned cell = %q, want 4", tbl.Rows[1][3])
	}
	if len(ForecastHeaders) != 7 {
		t.Fatal("ForecastTable mutated ForecastHeaders")
	}
}

func TestRenderTable_Alignment(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"Name", "Value"},
		Rows: [][]string{
			{"a", "1"},
			{"---"},
			{"bbb", "22"},
		},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 7 {
		t.Fatalf("got %d lines, want 7:\n%s", len(lines), out)
	}
	if lines[3] != "│ a    │     1 │" {
		t.Fatalf("row line = %q", lines[3])
	}
	if !strings.HasPrefix(lines[4], "├") {
		t.Fatalf("separator line = %q", lines[4])
	}
	if lines[5] != "│ bbb  │    22 │" {
		t.Fatalf("row line = %q", lines[5])
	}
}

func TestRenderTable_Empty(t *testing.T) {
	if out := RenderTable(Table{}); out != "" {
		t.Fatalf("RenderTable(empty) = %q, want empty", out)
	}
}

func TestRenderAssumptions(t *testing.T) {
	out := RenderAssumptions(forecast.DefaultInput())
	for _, want := range []string{
		"Pricing: $9 per year",
		"Monthly Marketing Budget: $100",
		"Impressions per $100: 6711",
		"Average Conversion Rate: 3%",
		"Average Churn Rate: 2%",
		"Forecast Duration: 36 months",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("assumptions missing %q:\n%s", want, out)
		}
	}
}

func TestRenderSummary(t *testing.T) {
	r := mustReport(t, nil)
	out := RenderSummary(r.Summary)
	for _, want := range []string{"Summary (36 months)", "5,206", "$80,658", "$3,600", "month 1"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestRenderWarnings(t *testing.T) {
	if RenderWarnings(nil) != "" {
		t.Fatal("RenderWarnings(nil) not empty")
	}
	out := RenderWarnings([]forecast.Warning{{Field: "churn_rate", Value: 2, Message: "outside [0,1]"}})
	if !strings.Contains(out, "churn_rate = 2: outside [0,1]") {
		t.Fatalf("warnings = %q", out)
	}
}

func TestRenderSparkline(t *testing.T) {
	got := RenderSparkline([]float64{0, 1, 2, 4})
	if n := len([]rune(got)); n != 4 {
		t.Fatalf("sparkline %q has %d runes, want 4", got, n)
	}
	if !strings.HasSuffix(got, "█") {
		t.Fatalf("sparkline %q does not peak at the end", got)
	}
	if RenderSparkline(nil) != "" {
		t.Fatal("RenderSparkline(nil) not empty")
	}
	if flat := RenderSparkline([]float64{0, 0}); flat != "▁▁" {
		t.Fatalf("flat sparkline = %q", flat)
	}
}

func TestWriteCSV(t *testing.T) {
	r := mustReport(t, func(in *forecast.Input) { in.HorizonMonths = 2 })

	var buf bytes.Buffer
	if err := WriteCSV(&buf, r.Records); err != nil {
		t.Fatalf("WriteCSV error: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("csv rows = %d, want 3", len(rows))
	}
	want := []string{"2", "6711", "201", "4", "398", "298", "448", "402"}
	for i, cell := range want {
		if rows[2][i] != cell {
			t.Fatalf("row 2 col %d = %q, want %q", i, rows[2][i], cell)
		}
	}
}

func TestWriteJSON(t *testing.T) {
	r := mustReport(t, func(in *forecast.Input) { in.HorizonMonths = 1 })

	var buf bytes.Buffer
	if err := WriteJSON(&buf, r); err != nil {
		t.Fatalf("WriteJSON error: %v", err)
	}

	var decoded forecast.Report
	if err := stdjson.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decoding json: %v\n%s", err, buf.String())
	}
	if decoded.Records[0].MonthlyRevenue != 150 {
		t.Fatalf("monthly_revenue = %d, want 150", decoded.Records[0].MonthlyRevenue)
	}
	if !strings.Contains(buf.String(), `"cumulative_users"`) {
		t.Fatalf("json missing snake_case field:\n%s", buf.String())
	}
}

func TestWriteYAML(t *testing.T) {
	r := mustReport(t, func(in *forecast.Input) { in.HorizonMonths = 1 })

	var buf bytes.Buffer
	if err := WriteYAML(&buf, r); err != nil {
		t.Fatalf("WriteYAML error: %v", err)
	}

	var decoded forecast.Report
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decoding yaml: %v", err)
	}
	if decoded.Input.ImpressionsPer100 != 6711 {
		t.Fatalf("impressions_per_100 = %v, want 6711", decoded.Input.ImpressionsPer100)
	}
	if decoded.Summary.TotalRevenue != 150 {
		t.Fatalf("total_revenue = %d, want 150", decoded.Summary.TotalRevenue)
	}
}

func TestStylesFollowActiveTheme(t *testing.T) {
	defer theme.SetActive(theme.FlexokiDark.Name)

	theme.SetActive("tokyo-night")
	if got := styles().header.GetForeground(); got != theme.TokyoNight.Accent {
		t.Fatalf("header color = %v, want %v", got, theme.TokyoNight.Accent)
	}
	if got := styles().warn.GetForeground(); got != theme.TokyoNight.Orange {
		t.Fatalf("warn color = %v, want %v", got, theme.TokyoNight.Orange)
	}
}
