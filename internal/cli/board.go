package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/a1mart/tasker/internal/core"
	"github.com/a1mart/tasker/pkg/models"
)

// Board columns in display order.
var boardColumns = []models.TaskStatus{
	models.TaskStatusTodo,
	models.TaskStatusInProgress,
	models.TaskStatusReview,
	models.TaskStatusDone,
	models.TaskStatusCancelled,
}

type boardModel struct {
	snap core.Snapshot

	activeColumn int
	cursor       int
	searching    bool

	width  int
	height int
}

// snapshotMsg delivers a store snapshot to the model.
type snapshotMsg core.Snapshot

// syncDoneMsg signals that a background refresh finished; errors surface
// through the snapshot, not through this message.
type syncDoneMsg struct{}

var (
	boardTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	columnStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	activeColumnStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("62")).
				Padding(0, 1)

	columnHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	selectedTaskStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("238"))

	connectedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	connectingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	disconnectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)

	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	boardHelpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func newBoardModel() boardModel {
	return boardModel{snap: App.Store.Snapshot()}
}

// refresh starts a synchronization pass in the background. Results arrive
// via store snapshots; a stale pass is discarded by the synchronizer.
func refresh() tea.Msg {
	_ = App.Syncer.SyncAll(context.Background())
	return syncDoneMsg{}
}

func (m boardModel) Init() tea.Cmd {
	return refresh
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case snapshotMsg:
		m.snap = core.Snapshot(msg)
		m.clampCursor()
		return m, nil

	case syncDoneMsg:
		m.snap = App.Store.Snapshot()
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateBoard(msg)
	}
	return m, nil
}

func (m boardModel) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit
	case "tab", "l", "right":
		m.activeColumn = (m.activeColumn + 1) % len(boardColumns)
		m.clampCursor()
	case "shift+tab", "h", "left":
		m.activeColumn = (m.activeColumn - 1 + len(boardColumns)) % len(boardColumns)
		m.clampCursor()
	case "j", "down":
		m.cursor++
		m.clampCursor()
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "r":
		return m, refresh
	case "/":
		m.searching = true
	case "d":
		if task := m.selectedTask(); task != nil {
			return m, markDone(task.ID)
		}
	}
	return m, nil
}

// updateSearch handles keystrokes while the search prompt is active. Every
// change feeds the debouncer, which decides when (and whether) to hit the
// service.
func (m boardModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		App.Debouncer.QueryChanged("")
	case "enter":
		m.searching = false
	case "backspace":
		q := m.snap.Query
		if q != "" {
			App.Debouncer.QueryChanged(q[:len(q)-1])
		}
	default:
		if msg.Type == tea.KeyRunes {
			App.Debouncer.QueryChanged(m.snap.Query + string(msg.Runes))
		}
	}
	m.snap = App.Store.Snapshot()
	return m, nil
}

// markDone routes a status-only update through the mutation pipeline, which
// reconciles the whole board on success.
func markDone(id string) tea.Cmd {
	return func() tea.Msg {
		done := models.TaskStatusDone
		_ = App.Mutations.UpdateTask(context.Background(), id, core.TaskUpdate{Status: &done})
		return syncDoneMsg{}
	}
}

func (m *boardModel) columnTasks(status models.TaskStatus) []models.Task {
	return core.FilterTasks(m.snap.Displayed, core.TaskFilter{Statuses: []models.TaskStatus{status}})
}

func (m *boardModel) selectedTask() *models.Task {
	tasks := m.columnTasks(boardColumns[m.activeColumn])
	if m.cursor < len(tasks) {
		return &tasks[m.cursor]
	}
	return nil
}

func (m *boardModel) clampCursor() {
	tasks := m.columnTasks(boardColumns[m.activeColumn])
	if m.cursor >= len(tasks) {
		m.cursor = len(tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m boardModel) View() string {
	var b strings.Builder

	b.WriteString(boardTitleStyle.Render("tasker board"))
	b.WriteString("  ")
	b.WriteString(m.connectionBadge())
	if m.snap.Mutating {
		b.WriteString("  saving…")
	}
	b.WriteString("\n\n")

	if m.snap.Loading {
		b.WriteString("Loading…\n")
		return b.String()
	}

	cols := make([]string, 0, len(boardColumns))
	for i, status := range boardColumns {
		cols = append(cols, m.renderColumn(i, status))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cols...))
	b.WriteString("\n")

	if m.snap.Analytics != nil {
		a := m.snap.Analytics
		b.WriteString(fmt.Sprintf("%d tasks · %.1f%% complete · %d overdue\n",
			a.TotalTasks, a.CompletionRate, a.OverdueTasks))
	} else {
		b.WriteString(boardHelpStyle.Render("analytics unavailable") + "\n")
	}

	if m.searching || m.snap.Query != "" {
		b.WriteString(fmt.Sprintf("search: %s█\n", m.snap.Query))
	}
	if m.snap.Err != "" {
		b.WriteString(errorStyle.Render(m.snap.Err) + "\n")
	}

	b.WriteString(boardHelpStyle.Render("tab/h/l: column · j/k: task · d: done · /: search · r: refresh · q: quit"))
	return b.String()
}

func (m boardModel) connectionBadge() string {
	switch m.snap.Connection {
	case core.StateConnected:
		return connectedStyle.Render("● connected")
	case core.StateConnecting:
		return connectingStyle.Render("● connecting")
	default:
		return disconnectedStyle.Render("● disconnected")
	}
}

func (m boardModel) renderColumn(index int, status models.TaskStatus) string {
	tasks := m.columnTasks(status)

	var b strings.Builder
	b.WriteString(columnHeaderStyle.Render(fmt.Sprintf("%s (%d)", status, len(tasks))))
	b.WriteString("\n")

	for i, t := range tasks {
		title := t.Title
		if len(title) > 24 {
			title = title[:21] + "…"
		}
		line := fmt.Sprintf("%-24s", title)
		if index == m.activeColumn && i == m.cursor {
			line = selectedTaskStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if len(tasks) == 0 {
		b.WriteString(boardHelpStyle.Render("(empty)"))
		b.WriteString("\n")
	}

	style := columnStyle
	if index == m.activeColumn {
		style = activeColumnStyle
	}
	return style.Render(b.String())
}

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Interactive kanban board",
	Long: `Open the interactive board. Columns mirror task statuses; the view stays
subscribed to the data core, so refreshes, searches, and writes from the
board always render the reconciled server state.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		model := newBoardModel()
		sub := App.Store.Subscribe()

		p := tea.NewProgram(model, tea.WithAltScreen())

		// Forward store snapshots into the program for as long as it runs.
		done := make(chan struct{})
		go func() {
			for {
				select {
				case snap := <-sub:
					p.Send(snapshotMsg(snap))
				case <-done:
					return
				}
			}
		}()
		defer close(done)

		if _, err := p.Run(); err != nil {
			return fmt.Errorf("running board: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(boardCmd)
}
