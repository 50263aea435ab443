package cli

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/theirongolddev/growthcast/internal/forecast"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Format selects how a forecast report is written.
type Format string

// Supported output formats.
const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatCSV   Format = "csv"
	FormatYAML  Format = "yaml"
)

// ParseFormat maps a flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTable, FormatJSON, FormatCSV, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want table, json, csv or yaml)", s)
	}
}

// WriteJSON writes the full report as indented JSON.
func WriteJSON(w io.Writer, r forecast.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}

// WriteYAML writes the full report as YAML.
func WriteYAML(w io.Writer, r forecast.Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}

// csvHeader names the columns written by WriteCSV.
var csvHeader = []string{
	"month",
	"ad_reach",
	"new_customers",
	"churned",
	"total_customers",
	"monthly_revenue",
	"cumulative_revenue",
	"cumulative_users",
}

// WriteCSV writes one row per month with plain integer values.
func WriteCSV(w io.Writer, records []forecast.MonthlyRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, r := range records {
		row := []string{
			strconv.Itoa(r.Month),
			strconv.FormatInt(r.AdReach, 10),
			strconv.FormatInt(r.NewCustomers, 10),
			strconv.FormatInt(r.Churned, 10),
			strconv.FormatInt(r.TotalCustomers, 10),
			strconv.FormatInt(r.MonthlyRevenue, 10),
			strconv.FormatInt(r.CumulativeRevenue, 10),
			strconv.FormatInt(r.CumulativeUsers, 10),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv row %d: %w", r.Month, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
