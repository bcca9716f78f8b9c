package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/sazyar/sazyar/pkg/domain/evm"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Interactive terminal dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		if os.Getenv("SAZYAR_SKIP_DASHBOARD_RUN") == "true" {
			return nil
		}
		p := tea.NewProgram(initialModel())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("dashboard run failed: %w", err)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(dashboardCmd)
}

// Styles
var baseStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.NormalBorder()).
	BorderForeground(lipgloss.Color("240"))

var headerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#2563EB")).
	PaddingLeft(1).
	PaddingRight(1)

var statusGood = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
var statusBad = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

type model struct {
	table   table.Model
	project string
	summary evm.Summary
	alerts  []string
	err     error
}

func initialModel() model {
	services, err := loadServices()
	if err != nil {
		return model{err: err}
	}

	p, err := services.Project.Load()
	if err != nil {
		return model{err: err}
	}

	report, err := services.Analytics.Analyze()
	if err != nil {
		return model{err: err}
	}

	columns := []table.Column{
		{Title: "St", Width: 3},
		{Title: "Task", Width: 32},
		{Title: "Start", Width: 11},
		{Title: "Finish", Width: 11},
		{Title: "Pct", Width: 5},
		{Title: "BAC", Width: 11},
		{Title: "EAC", Width: 11},
	}

	rows := []table.Row{}
	for _, a := range report.Tasks {
		rows = append(rows, table.Row{
			statusGlyph(a.Task.Status),
			a.Task.Title,
			a.Task.StartDate,
			a.Task.FinishDate,
			fmt.Sprintf("%.0f%%", a.Task.PercentComplete),
			formatMoney(a.BAC),
			formatMoney(a.EAC),
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240"))
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229"))
	t.SetStyles(s)

	alerts := []string{}
	for _, a := range p.Alerts {
		alerts = append(alerts, fmt.Sprintf("[%s] %s", a.Severity, a.Message))
	}

	return model{
		table:   t,
		project: p.Name,
		summary: report.Summary,
		alerts:  alerts,
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	}
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if m.err != nil {
		return fmt.Sprintf("Error loading dashboard: %v\nPress q to quit.", m.err)
	}

	header := headerStyle.Render(m.project)

	evLine := fmt.Sprintf("BAC %s   EV %s   AC %s   CPI %.2f   EAC %s",
		formatMoney(m.summary.TotalBAC),
		formatMoney(m.summary.TotalEV),
		formatMoney(m.summary.TotalAC),
		m.summary.CPI,
		formatMoney(m.summary.EAC))
	if m.summary.VAC < 0 {
		evLine = statusBad.Render(evLine)
	} else {
		evLine = statusGood.Render(evLine)
	}

	alertView := ""
	if len(m.alerts) > 0 {
		alertView = statusBad.Render("\nAlerts:\n")
		for _, a := range m.alerts {
			alertView += fmt.Sprintf("- %s\n", a)
		}
	}

	return baseStyle.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header,
			evLine,
			"\nSchedule:",
			m.table.View(),
			alertView,
			"\n[q] Quit  [Up/Down] Navigate",
		),
	) + "\n"
}
