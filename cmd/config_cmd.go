// Package cmd implements the growthcast CLI commands.
package cmd

import (
	"fmt"

	"github.com/theirongolddev/growthcast/internal/cli"
	"github.com/theirongolddev/growthcast/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg := appConfig

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	d := cfg.Defaults
	fmt.Println("  [Defaults]")
	fmt.Printf("    Annual price:         %s\n", cli.FormatMoney(d.AnnualPrice))
	fmt.Printf("    Monthly budget:       %s\n", cli.FormatMoney(d.MonthlyBudget))
	fmt.Printf("    Impressions per $100: %g\n", d.ImpressionsPer100)
	fmt.Printf("    Conversion rate:      %s\n", cli.FormatPercent(d.ConversionRate))
	fmt.Printf("    Churn rate:           %s\n", cli.FormatPercent(d.ChurnRate))
	fmt.Printf("    Horizon:              %d months\n", d.HorizonMonths)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Server]")
	fmt.Printf("    Address:   %s\n", config.ServerAddr(cfg))
	fmt.Printf("    Log level: %s\n", cfg.Server.LogLevel)
	fmt.Println()

	fmt.Println("  Run `growthcast setup` to reconfigure.")
	return nil
}
