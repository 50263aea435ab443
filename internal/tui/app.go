// Package tui implements the interactive forecast form and results view.
package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/growthcast/internal/cli"
	"github.com/theirongolddev/growthcast/internal/forecast"
	"github.com/theirongolddev/growthcast/internal/tui/components"
	"github.com/theirongolddev/growthcast/internal/tui/theme"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

type screen int

const (
	screenForm screen = iota
	screenResult
)

const (
	headerHeight = 3 // title line + blank + rule
	footerHeight = 2 // blank + help line
)

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Edit     key.Binding
	Quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		PageUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "page up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+d", " "), key.WithHelp("pgdn", "page down")),
		Top:      key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		Edit:     key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit inputs")),
		Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Up, k.PageDown, k.Edit, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Top},
		{k.Edit, k.Quit},
	}
}

// App is the root Bubble Tea model. Each form submission is one user
// action and triggers exactly one forecast run.
type App struct {
	screen screen
	width  int
	height int

	form *huh.Form
	vals *formValues

	hasResult bool
	report    forecast.Report
	runErr    error
	scroll    int

	showChurned bool
	keys        keyMap
	help        help.Model
}

// NewApp creates the TUI with the form pre-filled from defaults.
func NewApp(defaults forecast.Input, showChurned bool) App {
	a := App{
		showChurned: showChurned,
		keys:        newKeyMap(),
		help:        help.New(),
	}
	a.openForm(defaults)
	return a
}

func (a *App) openForm(in forecast.Input) {
	a.screen = screenForm
	a.vals = valuesFrom(in)
	a.form = newInputForm(a.vals)
	if a.width > 0 {
		a.form = a.form.WithWidth(min(a.width, 80))
	}
}

// submit parses the form values and runs the forecast once.
func (a *App) submit() {
	a.screen = screenResult
	a.form = nil
	a.scroll = 0
	a.hasResult = true

	in, err := a.vals.input()
	if err != nil {
		a.report, a.runErr = forecast.Report{}, err
		return
	}
	a.report, a.runErr = forecast.Run(in)
	if a.runErr != nil {
		a.report.Input = in
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	if a.form != nil {
		return a.form.Init()
	}
	return nil
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		if a.form != nil {
			a.form = a.form.WithWidth(min(msg.Width, 80))
		}
		a.scroll = a.clampScroll(a.scroll)
		return a, nil
	}

	if a.screen == screenForm {
		return a.updateForm(msg)
	}
	return a.updateResult(msg)
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		if !a.vals.confirm {
			return a.cancelForm()
		}
		a.submit()
		return a, nil
	case huh.StateAborted:
		return a.cancelForm()
	}

	return a, cmd
}

// cancelForm returns to the previous result, or quits if there is none.
func (a App) cancelForm() (tea.Model, tea.Cmd) {
	a.form = nil
	if !a.hasResult {
		return a, tea.Quit
	}
	a.screen = screenResult
	return a, nil
}

func (a App) updateResult(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}

	page := max(a.bodyHeight()-1, 1)
	switch {
	case key.Matches(km, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(km, a.keys.Edit):
		in := a.report.Input
		if in == (forecast.Input{}) {
			in = forecast.DefaultInput()
		}
		a.openForm(in)
		return a, a.form.Init()
	case key.Matches(km, a.keys.Down):
		a.scroll = a.clampScroll(a.scroll + 1)
	case key.Matches(km, a.keys.Up):
		a.scroll = a.clampScroll(a.scroll - 1)
	case key.Matches(km, a.keys.PageDown):
		a.scroll = a.clampScroll(a.scroll + page)
	case key.Matches(km, a.keys.PageUp):
		a.scroll = a.clampScroll(a.scroll - page)
	case key.Matches(km, a.keys.Top):
		a.scroll = 0
	}
	return a, nil
}

func (a App) bodyHeight() int {
	h := a.height - headerHeight - footerHeight
	if h < 1 {
		return 1
	}
	return h
}

func (a App) clampScroll(s int) int {
	maxScroll := len(a.resultLines()) - a.bodyHeight()
	if s > maxScroll {
		s = maxScroll
	}
	if s < 0 {
		s = 0
	}
	return s
}

// View implements tea.Model.
func (a App) View() string {
	t := theme.Active
	titleStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	ruleStyle := lipgloss.NewStyle().Foreground(t.Border)

	var b strings.Builder
	b.WriteString(titleStyle.Render("  SaaS Earnings and Growth Forecast"))
	b.WriteString("\n\n")

	if a.screen == screenForm && a.form != nil {
		b.WriteString(a.form.View())
		return b.String()
	}

	ruleWidth := a.width
	if ruleWidth <= 0 {
		ruleWidth = 60
	}
	b.WriteString(ruleStyle.Render(strings.Repeat("─", ruleWidth)))
	b.WriteString("\n")

	lines := a.resultLines()
	end := min(a.scroll+a.bodyHeight(), len(lines))
	if a.height <= 0 {
		end = len(lines)
	}
	b.WriteString(strings.Join(lines[a.scroll:end], "\n"))
	b.WriteString("\n\n")

	footer := a.help.View(a.keys)
	if len(lines) > a.bodyHeight() && a.height > 0 {
		footer = mutedStyle.Render(fmt.Sprintf("%d/%d  ", end, len(lines))) + footer
	}
	b.WriteString(footer)
	return b.String()
}

// resultLines renders the results screen body, one entry per terminal line.
func (a App) resultLines() []string {
	if !a.hasResult {
		return nil
	}

	var b strings.Builder
	if a.runErr != nil {
		errStyle := lipgloss.NewStyle().Foreground(theme.Active.Red)
		b.WriteString(errStyle.Render(fmt.Sprintf("  Could not compute forecast: %s", a.runErr)))
		b.WriteString("\n")
		return strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
	}

	r := a.report
	b.WriteString(cli.RenderAssumptions(r.Input))
	if w := cli.RenderWarnings(r.Warnings); w != "" {
		b.WriteString("\n")
		b.WriteString(w)
	}
	b.WriteString("\n")
	b.WriteString(a.overview())
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("  Forecast for the next %d months:\n", r.Input.HorizonMonths))
	b.WriteString(cli.RenderTable(cli.ForecastTable(r.Records, a.showChurned)))
	b.WriteString("\n")
	b.WriteString(cli.RenderTrend(r.Records))
	b.WriteString("\n")
	b.WriteString(cli.RenderSummary(r.Summary))

	return strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
}

// overview renders the headline cards and the customer growth chart.
func (a App) overview() string {
	r := a.report
	width := 78
	if a.width > 0 {
		width = min(a.width-2, 110)
	}

	breakEven := "never"
	if m := r.Summary.BreakEvenMonth; m > 0 {
		breakEven = fmt.Sprintf("month %d", m)
	}
	cards := components.MetricCardRow([]components.Metric{
		{Label: "Customers", Value: cli.FormatNumber(r.Summary.FinalCustomers), Note: fmt.Sprintf("%s acquired", cli.FormatCompact(r.Summary.TotalAcquired))},
		{Label: "Revenue", Value: "$" + cli.FormatNumber(r.Summary.TotalRevenue), Note: fmt.Sprintf("%d months", r.Summary.Months)},
		{Label: "Net of ad spend", Value: cli.FormatMoney(r.Summary.Net)},
		{Label: "Break-even", Value: breakEven},
	}, width)

	values := make([]float64, len(r.Records))
	labels := make([]string, len(r.Records))
	for i, rec := range r.Records {
		values[i] = float64(rec.TotalCustomers)
		labels[i] = fmt.Sprintf("M%d", rec.Month)
	}
	chart := components.BarChart(values, labels, theme.Active.Green, width-2, 8)

	title := lipgloss.NewStyle().Foreground(theme.Active.TextMuted).Bold(true)
	return "  " + strings.ReplaceAll(cards, "\n", "\n  ") + "\n\n" +
		title.Render("  Total customers by month") + "\n" +
		"  " + strings.ReplaceAll(chart, "\n", "\n  ")
}
