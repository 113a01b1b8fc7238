package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"prim/internal/driver"
)

const maxRows = 12

type progressModel struct {
	title      string
	events     <-chan driver.Event
	spinner    spinner.Model
	prog       progress.Model
	items      []fileItem
	index      map[string]int
	stageLabel string
	width      int
	done       bool
	tally      tally
}

type fileItem struct {
	path   string
	status string
	stage  driver.Stage
	final  bool
	err    string
}

// tally counts files by outcome.
type tally struct {
	formatted, unchanged, failed int
}

func (t tally) finished() int { return t.formatted + t.unchanged + t.failed }

type eventMsg driver.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders formatting
// progress for files until events is closed.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	items := make([]fileItem, 0, len(files))
	index := make(map[string]int, len(files))
	for i, file := range files {
		items = append(items, fileItem{path: file, status: labelQueued})
		index[file] = i
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   items,
		index:   index,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(driver.Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
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
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		progressModel, cmd := m.prog.Update(msg)
		m.prog = progressModel.(progress.Model)
		return m, cmd
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := m.title
	if m.stageLabel != "" {
		header = fmt.Sprintf("%s (%s)", header, m.stageLabel)
	}
	if m.done {
		header = fmt.Sprintf("done: %s", header)
	} else {
		header = fmt.Sprintf("%s %s", m.spinner.View(), header)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	nameWidth := max(m.width-16, 20)
	rows, hidden := m.visibleRows()
	for _, item := range rows {
		statusStyled := styleStatus(item.status).Render(fmt.Sprintf("%12s", item.status))
		fmt.Fprintf(&b, "  %s %s\n", statusStyled, truncate(item.path, nameWidth))
		if item.err != "" {
			fmt.Fprintf(&b, "  %12s %s\n", "", truncate(item.err, nameWidth))
		}
	}
	if hidden > 0 {
		fmt.Fprintf(&b, "  %12s %d more\n", "", hidden)
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	fmt.Fprintf(&b, "\n%d/%d files, %d formatted, %d unchanged, %d errors\n",
		m.tally.finished(), len(m.items), m.tally.formatted, m.tally.unchanged, m.tally.failed)
	return b.String()
}

// visibleRows picks at most maxRows items. With more files than rows,
// failed and in-flight files are kept and settled ones are counted as hidden.
func (m *progressModel) visibleRows() ([]fileItem, int) {
	if len(m.items) <= maxRows {
		return m.items, 0
	}
	rows := make([]fileItem, 0, maxRows)
	for _, item := range m.items {
		if len(rows) == maxRows {
			break
		}
		if item.err != "" || (!item.final && item.status != labelQueued) {
			rows = append(rows, item)
		}
	}
	return rows, len(m.items) - len(rows)
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev driver.Event) tea.Cmd {
	label := statusLabel(ev.Stage, ev.Status)
	if ev.File == "" {
		if label != "" {
			m.stageLabel = label
		}
		return nil
	}
	idx, ok := m.index[ev.File]
	if !ok {
		return nil
	}
	if label != "" {
		m.items[idx].status = label
		m.items[idx].stage = ev.Stage
	}
	if !m.items[idx].final {
		switch ev.Status {
		case driver.StatusDone:
			m.tally.formatted++
			m.items[idx].final = true
		case driver.StatusUnchanged:
			m.tally.unchanged++
			m.items[idx].final = true
		case driver.StatusError:
			m.tally.failed++
			m.items[idx].final = true
			if ev.Err != nil {
				m.items[idx].err = ev.Err.Error()
			}
		}
	}
	return m.prog.SetPercent(m.percent())
}

func (m *progressModel) percent() float64 {
	if len(m.items) == 0 {
		return 0
	}
	total := 0.0
	for _, item := range m.items {
		if item.final {
			total += 1.0
		} else {
			total += stageWeight[item.stage]
		}
	}
	return total / float64(len(m.items))
}

const (
	labelQueued     = "queued"
	labelFormatting = "formatting"
	labelFormatted  = "formatted"
	labelUnchanged  = "unchanged"
	labelError      = "error"
)

// stageWeight is the share of a file's work done once it enters a stage.
var stageWeight = map[driver.Stage]float64{
	driver.StageRead:  0.1,
	driver.StageLex:   0.3,
	driver.StagePrint: 0.6,
	driver.StageWrite: 0.9,
}

var workingLabels = map[driver.Stage]string{
	driver.StageCollect: "collecting",
	driver.StageRead:    "reading",
	driver.StageLex:     "lexing",
	driver.StagePrint:   "printing",
	driver.StageWrite:   "writing",
}

func statusLabel(stage driver.Stage, status driver.Status) string {
	switch status {
	case driver.StatusQueued:
		return labelQueued
	case driver.StatusDone:
		if stage == driver.StageCollect {
			return labelFormatting
		}
		return labelFormatted
	case driver.StatusUnchanged:
		return labelUnchanged
	case driver.StatusError:
		return labelError
	case driver.StatusWorking:
		return workingLabels[stage]
	default:
		return ""
	}
}

func styleStatus(status string) lipgloss.Style {
	switch status {
	case labelFormatted:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case labelError:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case "reading", "lexing", "printing", "writing":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
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
	return runewidth.Truncate(value, width-3, "...")
}
