// Package progress shows a spinner while a long step runs.
package progress

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}

// Run calls fn, drawing a spinner labeled message on w while it runs.
// When w is not a terminal fn runs without any output.
func Run(ctx context.Context, w io.Writer, message string, fn func(context.Context) error) error {
	if !IsTerminal(w) {
		return fn(ctx)
	}

	p := tea.NewProgram(newSpinnerModel(message),
		tea.WithOutput(w),
		tea.WithInput(nil),
		tea.WithContext(ctx))

	errCh := make(chan error, 1)
	go func() {
		err := fn(ctx)
		errCh <- err
		p.Send(doneMsg{err: err})
	}()

	// The spinner is cosmetic; its own failures never mask fn's result.
	_, _ = p.Run()
	return <-errCh
}

type doneMsg struct {
	err error
}

type spinnerModel struct {
	spinner spinner.Model
	message string
	done    bool
	err     error
}

func newSpinnerModel(message string) *spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return &spinnerModel{spinner: s, message: message}
}

func (m *spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case doneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	case spinner.TickMsg:
		if !m.done {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m *spinnerModel) View() string {
	if m.done {
		if m.err != nil {
			return fmt.Sprintf("❌ %s\n", m.message)
		}
		return fmt.Sprintf("✅ %s\n", m.message)
	}
	return fmt.Sprintf("%s %s...", m.spinner.View(), m.message)
}
