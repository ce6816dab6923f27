package cli

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// Dashboard panel indices.
const (
	panelToday = iota
	panelStats
	panelReminders
	panelCount
)

type dashboardModel struct {
	activePanel int
	width       int
	height      int

	// Data.
	todayRows []todaySnapshot
	statsData *statsSnapshot
	reminders []reminderSnapshot

	// State.
	loading bool
	err     error
}

type todaySnapshot struct {
	id     string
	name   string
	kind   string
	status string
}

type statsSnapshot struct {
	plannedToday      int
	completedToday    int
	plannedThisWeek   int
	completedThisWeek int
	overdueCount      int
	healthyCount      int
	attentionCount    int
	upcomingEvents    int
}

type reminderSnapshot struct {
	severity string
	message  string
	time     string
}

// dataLoadedMsg carries loaded data back to the model.
type dataLoadedMsg struct {
	todayRows []todaySnapshot
	stats     *statsSnapshot
	reminders []reminderSnapshot
	err       error
}

// Style definitions.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2)

	activePanelStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("62")).
				Padding(1, 2)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			MarginBottom(1)

	statusPlanned     = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	statusDoneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	statusSkippedSty  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	statusOtherStatus = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	severityHigh   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	severityMedium = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	severityLow    = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func newDashboardModel() dashboardModel {
	return dashboardModel{
		activePanel: panelToday,
		loading:     true,
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return loadData
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.activePanel = (m.activePanel + 1) % panelCount
			return m, nil
		case "shift+tab":
			m.activePanel = (m.activePanel - 1 + panelCount) % panelCount
			return m, nil
		case "r":
			m.loading = true
			return m, loadData
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case dataLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.todayRows = msg.todayRows
		m.statsData = msg.stats
		m.reminders = msg.reminders
		m.err = nil
		return m, nil
	}

	return m, nil
}

func (m dashboardModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	title := titleStyle.Render(" Nurture Dashboard ")
	help := helpStyle.Render("tab: switch panel | r: refresh | q: quit")

	if m.loading {
		return fmt.Sprintf("%s\n\n  Loading data...\n\n%s", title, help)
	}

	if m.err != nil {
		return fmt.Sprintf("%s\n\n  Error: %s\n\n%s", title, m.err, help)
	}

	todayPanel := m.renderTodayPanel()
	statsPanel := m.renderStatsPanel()
	remindersPanel := m.renderRemindersPanel()

	// Available width for panels after accounting for margins.
	availableWidth := m.width - 2

	var body string
	if availableWidth > 120 {
		// Horizontal layout: three columns.
		colWidth := availableWidth / 3
		todayPanel = m.applyPanelStyle(panelToday, todayPanel, colWidth-4)
		statsPanel = m.applyPanelStyle(panelStats, statsPanel, colWidth-4)
		remindersPanel = m.applyPanelStyle(panelReminders, remindersPanel, colWidth-4)
		body = lipgloss.JoinHorizontal(lipgloss.Top, todayPanel, statsPanel, remindersPanel)
	} else {
		// Vertical layout: stacked.
		panelWidth := availableWidth - 4
		if panelWidth < 20 {
			panelWidth = 20
		}
		todayPanel = m.applyPanelStyle(panelToday, todayPanel, panelWidth)
		statsPanel = m.applyPanelStyle(panelStats, statsPanel, panelWidth)
		remindersPanel = m.applyPanelStyle(panelReminders, remindersPanel, panelWidth)
		body = lipgloss.JoinVertical(lipgloss.Left, todayPanel, statsPanel, remindersPanel)
	}

	return fmt.Sprintf("%s\n\n%s\n\n%s", title, body, help)
}

func (m dashboardModel) applyPanelStyle(panel int, content string, width int) string {
	style := panelStyle
	if m.activePanel == panel {
		style = activePanelStyle
	}
	return style.Width(width).Render(content)
}

func (m dashboardModel) renderTodayPanel() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Today"))
	b.WriteString("\n")

	if len(m.todayRows) == 0 {
		b.WriteString("  Nothing scheduled today.")
		return b.String()
	}

	for _, row := range m.todayRows {
		label := fmt.Sprintf("  %-10s %s (%s)", row.id, row.name, row.kind)
		b.WriteString(styleForStatus(row.status).Render(label))
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("\n  Total: %d", len(m.todayRows)))

	return b.String()
}

func (m dashboardModel) renderStatsPanel() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Stats"))
	b.WriteString("\n")

	if m.statsData == nil {
		b.WriteString("  No stats available.")
		return b.String()
	}

	sd := m.statsData
	lines := []struct {
		label string
		value string
	}{
		{"Today", fmt.Sprintf("%d/%d done", sd.completedToday, sd.plannedToday)},
		{"This week", fmt.Sprintf("%d/%d done", sd.completedThisWeek, sd.plannedThisWeek)},
		{"Overdue", fmt.Sprintf("%d", sd.overdueCount)},
		{"Healthy", fmt.Sprintf("%d", sd.healthyCount)},
		{"Attention", fmt.Sprintf("%d", sd.attentionCount)},
		{"Events 14d", fmt.Sprintf("%d", sd.upcomingEvents)},
	}

	for _, l := range lines {
		b.WriteString(fmt.Sprintf("  %-14s %s\n", l.label, l.value))
	}

	return b.String()
}

func (m dashboardModel) renderRemindersPanel() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Reminders"))
	b.WriteString("\n")

	if len(m.reminders) == 0 {
		b.WriteString("  No active reminders.")
		return b.String()
	}

	for _, r := range m.reminders {
		sev := styleForSeverity(r.severity).Render(fmt.Sprintf("[%s]", strings.ToUpper(r.severity)))
		b.WriteString(fmt.Sprintf("  %s %s\n", sev, r.message))
	}

	b.WriteString(fmt.Sprintf("\n  Total: %d reminder(s)", len(m.reminders)))

	return b.String()
}

func styleForStatus(status string) lipgloss.Style {
	switch status {
	case "planned":
		return statusPlanned
	case "completed":
		return statusDoneStyle
	case "skipped":
		return statusSkippedSty
	default:
		return statusOtherStatus
	}
}

func styleForSeverity(severity string) lipgloss.Style {
	switch strings.ToLower(severity) {
	case "high":
		return severityHigh
	case "medium":
		return severityMedium
	case "low":
		return severityLow
	default:
		return lipgloss.NewStyle()
	}
}

func loadData() tea.Msg {
	var result dataLoadedMsg

	// Load today's interactions from the scheduler.
	if Scheduler != nil {
		if _, err := Scheduler.All(); err != nil {
			result.err = fmt.Errorf("loading interactions: %w", err)
			return result
		}
		for _, interaction := range Scheduler.Today() {
			name := interaction.RelationshipName
			if name == "" {
				name = interaction.RelationshipID
			}
			result.todayRows = append(result.todayRows, todaySnapshot{
				id:     interaction.ID,
				name:   name,
				kind:   string(interaction.InteractionType),
				status: string(interaction.Status),
			})
		}
	}

	// Load the dashboard stats.
	if StatsCalc != nil {
		stats, err := StatsCalc.Calculate()
		if err != nil {
			result.err = fmt.Errorf("loading stats: %w", err)
			return result
		}
		result.stats = &statsSnapshot{
			plannedToday:      stats.PlannedToday,
			completedToday:    stats.CompletedToday,
			plannedThisWeek:   stats.PlannedThisWeek,
			completedThisWeek: stats.CompletedThisWeek,
			overdueCount:      stats.OverdueCount,
			healthyCount:      stats.HealthyRelationships,
			attentionCount:    stats.NeedsAttentionCount,
			upcomingEvents:    stats.UpcomingEvents,
		}
	}

	// Load reminders from the reminder engine.
	if ReminderEngine != nil {
		reminders, err := ReminderEngine.Evaluate()
		if err != nil {
			result.err = fmt.Errorf("loading reminders: %w", err)
			return result
		}
		result.reminders = make([]reminderSnapshot, 0, len(reminders))

		// Sort reminders by severity: high first, then medium, then low.
		sort.Slice(reminders, func(i, j int) bool {
			return severityRank(string(reminders[i].Severity)) < severityRank(string(reminders[j].Severity))
		})

		for _, r := range reminders {
			result.reminders = append(result.reminders, reminderSnapshot{
				severity: string(r.Severity),
				message:  r.Message,
				time:     r.TriggeredAt.Format("2006-01-02 15:04 UTC"),
			})
		}
	}

	return result
}

func severityRank(s string) int {
	switch s {
	case "high":
		return 0
	case "medium":
		return 1
	case "low":
		return 2
	default:
		return 3
	}
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Interactive TUI dashboard for today's plan, stats, and reminders",
	Long: `Launch an interactive terminal dashboard showing today's interactions,
nurturing statistics, and active reminders in a live-updating view.

Navigate between panels with Tab, refresh with r, quit with q.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if StatsCalc == nil {
			return fmt.Errorf("stats calculator not initialized")
		}
		p := tea.NewProgram(newDashboardModel(), tea.WithAltScreen())
		_, err := p.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
