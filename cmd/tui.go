package cmd

import (
	"fmt"

	"github.com/theirongolddev/growthcast/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Fill in the assumptions interactively and view the forecast",
	RunE:  runTUI,
}

func init() {
	tuiCmd.Flags().BoolVar(&flagChurned, "churned", false, "Add a Churned column to the table")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Without this, lipgloss may fall back to the Ascii profile inside the
	// alt screen and drop all colors.
	lipgloss.SetColorProfile(termenv.TrueColor)

	app := tui.NewApp(inputFromFlags(cmd), flagChurned)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
