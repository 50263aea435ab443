package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/growthcast/internal/config"
	"github.com/theirongolddev/growthcast/internal/forecast"
	"github.com/theirongolddev/growthcast/internal/tui/theme"

	"github.com/spf13/cobra"
)

var (
	flagBudget      float64
	flagPrice       float64
	flagImpressions float64
	flagConversion  float64
	flagChurn       float64
	flagMonths      int
	flagQuiet       bool
)

// appConfig is loaded once per invocation before any command runs.
var appConfig = config.DefaultConfig()

var rootCmd = &cobra.Command{
	Use:   "growthcast",
	Short: "SaaS earnings and growth forecast",
	Long: "Project monthly customers and revenue for a subscription business from\n" +
		"ad budget, pricing, impressions, conversion and churn.",
	PersistentPreRunE: loadConfig,
	RunE:              runForecast,
	SilenceUsage:      true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	d := forecast.DefaultInput()

	pf := rootCmd.PersistentFlags()
	pf.Float64VarP(&flagBudget, "budget", "b", d.MonthlyBudget, "Monthly marketing budget (USD)")
	pf.Float64VarP(&flagPrice, "price", "p", d.AnnualPrice, "Annual subscription price (USD)")
	pf.Float64VarP(&flagImpressions, "impressions", "i", d.ImpressionsPer100, "Ad impressions per $100")
	pf.Float64VarP(&flagConversion, "conversion", "c", d.ConversionRate, "Conversion rate (as decimal)")
	pf.Float64VarP(&flagChurn, "churn", "r", d.ChurnRate, "Monthly churn rate (as decimal)")
	pf.IntVarP(&flagMonths, "months", "n", d.HorizonMonths, fmt.Sprintf("Forecast duration in months (1-%d)", forecast.MaxHorizonMonths))
	pf.BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress warnings and notices")

	addOutputFlags(rootCmd)
}

func loadConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil && !flagQuiet {
		fmt.Fprintf(os.Stderr, "  %v; using built-in defaults\n", err)
	}
	appConfig = cfg
	theme.SetActive(cfg.Appearance.Theme)
	return nil
}

// inputFromFlags starts from the configured defaults and applies only the
// flags the user actually set.
func inputFromFlags(cmd *cobra.Command) forecast.Input {
	in := appConfig.Defaults
	flags := cmd.Flags()

	if flags.Changed("budget") {
		in.MonthlyBudget = flagBudget
	}
	if flags.Changed("price") {
		in.AnnualPrice = flagPrice
	}
	if flags.Changed("impressions") {
		in.ImpressionsPer100 = flagImpressions
	}
	if flags.Changed("conversion") {
		in.ConversionRate = flagConversion
	}
	if flags.Changed("churn") {
		in.ChurnRate = flagChurn
	}
	if flags.Changed("months") {
		in.HorizonMonths = flagMonths
	}
	return in
}
