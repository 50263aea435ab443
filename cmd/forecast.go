package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/theirongolddev/growthcast/internal/cli"
	"github.com/theirongolddev/growthcast/internal/forecast"

	"github.com/spf13/cobra"
)

var (
	flagOutput  string
	flagChurned bool
	flagSummary bool
)

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Print the month-by-month forecast table",
	RunE:  runForecast,
}

func init() {
	addOutputFlags(forecastCmd)
	rootCmd.AddCommand(forecastCmd)
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&flagOutput, "output", "o", "table", "Output format: table, json, csv, yaml")
	cmd.Flags().BoolVar(&flagChurned, "churned", false, "Add a Churned column to the table")
	cmd.Flags().BoolVar(&flagSummary, "summary", true, "Show assumptions, trend and summary around the table")
}

func runForecast(cmd *cobra.Command, _ []string) error {
	format, err := cli.ParseFormat(flagOutput)
	if err != nil {
		return err
	}

	report, err := forecast.Run(inputFromFlags(cmd))
	if err != nil {
		return fmt.Errorf("forecast: %w", err)
	}

	if !flagQuiet && len(report.Warnings) > 0 {
		fmt.Fprint(os.Stderr, cli.RenderWarnings(report.Warnings))
	}

	return writeReport(os.Stdout, format, report)
}

func writeReport(w io.Writer, format cli.Format, report forecast.Report) error {
	switch format {
	case cli.FormatJSON:
		return cli.WriteJSON(w, report)
	case cli.FormatYAML:
		return cli.WriteYAML(w, report)
	case cli.FormatCSV:
		return cli.WriteCSV(w, report.Records)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, cli.RenderTitle("SaaS EARNINGS AND GROWTH FORECAST"))
	fmt.Fprintln(w)

	if flagSummary {
		fmt.Fprint(w, cli.RenderAssumptions(report.Input))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "  Forecast for the next %d months:\n", report.Input.HorizonMonths)
	fmt.Fprint(w, cli.RenderTable(cli.ForecastTable(report.Records, flagChurned)))

	if flagSummary {
		fmt.Fprintln(w)
		fmt.Fprint(w, cli.RenderTrend(report.Records))
		fmt.Fprintln(w)
		fmt.Fprint(w, cli.RenderSummary(report.Summary))
	}

	return nil
}
