package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"grammarworks/internal/driver"
)

// CheckModel renders the progress of a batch check, one row per grammar.
type CheckModel struct {
	title    string
	events   <-chan driver.Event
	spinner  spinner.Model
	prog     progress.Model
	rows     []fileRow
	index    map[string]int
	finished int
	failed   int
	diags    int
	width    int
	done     bool
}

type fileRow struct {
	path    string
	label   string
	stage   driver.Stage
	status  driver.Status
	diags   int
	elapsed time.Duration
}

type eventMsg driver.Event
type doneMsg struct{}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	workingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	idleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	countStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// NewCheckModel returns a Bubble Tea model fed by events of driver.CheckPaths.
func NewCheckModel(title string, files []string, events <-chan driver.Event) *CheckModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = workingStyle

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	rows := make([]fileRow, 0, len(files))
	index := make(map[string]int, len(files))
	for i, file := range files {
		rows = append(rows, fileRow{path: file, label: "queued", status: driver.StatusQueued})
		index[file] = i
	}
	return &CheckModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		rows:    rows,
		index:   index,
		width:   80,
	}
}

func (m *CheckModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listen())
}

func (m *CheckModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.apply(driver.Event(msg))
		return m, tea.Batch(cmd, m.listen())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = max(msg.Width-4, 10)
		}
		return m, nil
	case progress.FrameMsg:
		pm, cmd := m.prog.Update(msg)
		m.prog = pm.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *CheckModel) View() string {
	if len(m.rows) == 0 {
		return ""
	}
	header := fmt.Sprintf("%s  %d/%d", m.title, m.finished, len(m.rows))
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	// статус (10) + счётчик (6) + время (8) + отступы
	nameWidth := max(m.width-30, 20)
	for _, row := range m.rows {
		b.WriteString("  ")
		b.WriteString(rowStyle(row.status).Render(fmt.Sprintf("%10s", row.label)))
		b.WriteString(" ")
		b.WriteString(runewidth.FillRight(truncate(row.path, nameWidth), nameWidth))
		if row.status == driver.StatusDone {
			if row.diags > 0 {
				b.WriteString(countStyle.Render(fmt.Sprintf(" %5d", row.diags)))
			} else {
				b.WriteString("      ")
			}
			fmt.Fprintf(&b, " %6s", row.elapsed.Round(time.Millisecond))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")
	if m.done {
		fmt.Fprintf(&b, "%d diagnostic(s), %d file(s) failed\n", m.diags, m.failed)
	}
	return b.String()
}

func (m *CheckModel) listen() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

// apply folds one event into the rows; run-level events (no file) are ignored.
func (m *CheckModel) apply(ev driver.Event) tea.Cmd {
	idx, ok := m.index[ev.File]
	if ev.File == "" || !ok {
		return nil
	}
	row := &m.rows[idx]
	terminal := row.status == driver.StatusDone || row.status == driver.StatusError
	if terminal {
		return nil
	}
	row.stage = ev.Stage
	row.status = ev.Status
	row.label = statusLabel(ev.Stage, ev.Status)
	switch ev.Status {
	case driver.StatusDone:
		row.diags = ev.Diagnostics
		row.elapsed = ev.Elapsed
		m.finished++
		m.diags += ev.Diagnostics
	case driver.StatusError:
		row.elapsed = ev.Elapsed
		m.finished++
		m.failed++
	}
	return m.prog.SetPercent(m.percent())
}

func (m *CheckModel) percent() float64 {
	if len(m.rows) == 0 {
		return 1
	}
	total := 0.0
	for _, row := range m.rows {
		switch row.status {
		case driver.StatusDone, driver.StatusError:
			total++
		case driver.StatusWorking:
			total += stageWeight(row.stage)
		}
	}
	return total / float64(len(m.rows))
}

func stageWeight(stage driver.Stage) float64 {
	switch stage {
	case driver.StageLoad:
		return 0.1
	case driver.StageAnalyze:
		return 0.4
	case driver.StageCheck:
		return 0.8
	default:
		return 0
	}
}

func statusLabel(stage driver.Stage, status driver.Status) string {
	switch status {
	case driver.StatusQueued:
		return "queued"
	case driver.StatusDone:
		return "done"
	case driver.StatusError:
		return "error"
	}
	switch stage {
	case driver.StageLoad:
		return "loading"
	case driver.StageAnalyze:
		return "analyzing"
	case driver.StageCheck:
		return "checking"
	}
	return string(status)
}

func rowStyle(status driver.Status) lipgloss.Style {
	switch status {
	case driver.StatusDone:
		return doneStyle
	case driver.StatusError:
		return errorStyle
	case driver.StatusWorking:
		return workingStyle
	default:
		return idleStyle
	}
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	// Truncate вычитает ширину хвоста сам
	return runewidth.Truncate(value, width, "...")
}

// RunCheckProgress renders events until the channel is closed.
// The producer must close events when it is done.
func RunCheckProgress(out io.Writer, title string, files []string, events <-chan driver.Event) error {
	program := tea.NewProgram(NewCheckModel(title, files, events), tea.WithOutput(out))
	_, err := program.Run()
	// дочитываем канал, чтобы не заблокировать отправителя
	for range events {
	}
	return err
}
