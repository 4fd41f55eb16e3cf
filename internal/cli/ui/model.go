// Package ui implements the interactive terminal view of a running search:
// a spinner, live scanned/match counters, and a short completion summary.
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/stackvity/stack-searcher/internal/cli/hooks"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	termStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	counterStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// Model is the bubbletea model for a search run. Updates arrive as messages
// from the hooks layer; the model itself owns no shared state.
type Model struct {
	spinner  spinner.Model
	term     string
	cancel   context.CancelFunc
	start    time.Time
	width    int
	total    int
	scanned  int64
	matched  int
	errors   int
	forced   bool
	done     bool
	quitting bool
}

// NewModel creates the TUI model. cancel is invoked when the user aborts the
// run; the search then unwinds and delivers its final report as usual.
func NewModel(term string, cancel context.CancelFunc) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return Model{
		spinner: sp,
		term:    term,
		cancel:  cancel,
		start:   time.Now(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			if !m.quitting {
				m.quitting = true
				if m.cancel != nil {
					m.cancel()
				}
			}
			return m, nil
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case hooks.ScanStartedMsg:
		m.total = msg.Total
		return m, nil

	case hooks.FileScannedMsg:
		if msg.Completed > m.scanned {
			m.scanned = msg.Completed
		}
		m.matched += msg.Matches
		return m, nil

	case hooks.RunCompleteMsg:
		m.done = true
		m.scanned = int64(msg.Report.Summary.ScannedFiles)
		m.matched = msg.Report.Summary.MatchCount
		m.errors = msg.Report.Summary.ErrorCount
		m.forced = msg.Report.Summary.ForcedShutdown
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("stack-searcher"))
	b.WriteString(dimStyle.Render(" searching for "))
	b.WriteString(termStyle.Render(fmt.Sprintf("%q", m.term)))
	b.WriteString("\n\n")

	switch {
	case m.done:
		b.WriteString(counterStyle.Render(fmt.Sprintf("Done: %d/%d files scanned, %d matches",
			m.scanned, m.total, m.matched)))
		if m.errors > 0 {
			b.WriteString(errStyle.Render(fmt.Sprintf("  (%d file errors)", m.errors)))
		}
		if m.forced {
			b.WriteString(errStyle.Render("  (forced shutdown)"))
		}
	case m.quitting:
		b.WriteString(m.spinner.View())
		b.WriteString(dimStyle.Render(" cancelling, waiting for workers to stop"))
	default:
		b.WriteString(m.spinner.View())
		b.WriteString(counterStyle.Render(fmt.Sprintf(" %d/%d files scanned", m.scanned, m.total)))
		b.WriteString(counterStyle.Render(fmt.Sprintf("  %d matches", m.matched)))
	}

	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("elapsed %s  ", time.Since(m.start).Round(time.Second))))
	if !m.done {
		b.WriteString(dimStyle.Render("press q to cancel"))
	}
	b.WriteString("\n")
	return b.String()
}
