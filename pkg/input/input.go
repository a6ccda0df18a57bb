// Package input asks the user questions on the terminal.
package input

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Prompter reads answers from in and writes questions to out.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter creates a Prompter. A nil reader or writer means stdin or
// stdout.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &Prompter{in: bufio.NewReader(in), out: out}
}

func (p *Prompter) ask(question, hint string) (string, bool) {
	if hint != "" {
		fmt.Fprint(p.out, promptStyle.Render(question)+" "+hintStyle.Render(hint)+": ")
	} else {
		fmt.Fprint(p.out, promptStyle.Render(question)+": ")
	}

	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	return strings.TrimSpace(line), true
}

// Prompt asks for text. Enter alone returns defaultValue.
//
// Example:
//
//	entry := p.Prompt("Entry point", "src/index.js")
//	// Displays: Entry point (src/index.js): _
func (p *Prompter) Prompt(message, defaultValue string) string {
	hint := ""
	if defaultValue != "" {
		hint = fmt.Sprintf("(%s)", defaultValue)
	}
	answer, ok := p.ask(message, hint)
	if !ok || answer == "" {
		return defaultValue
	}
	return answer
}

// Confirm asks a yes/no question. Enter alone returns defaultYes.
func (p *Prompter) Confirm(message string, defaultYes bool) bool {
	hint := "[y/N]"
	if defaultYes {
		hint = "[Y/n]"
	}
	answer, ok := p.ask(message, hint)
	if !ok || answer == "" {
		return defaultYes
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}

// List asks for comma separated values. Empty entries are dropped and
// Enter alone returns defaults.
func (p *Prompter) List(message string, defaults []string) []string {
	hint := "(comma separated)"
	if len(defaults) > 0 {
		hint = fmt.Sprintf("(%s)", strings.Join(defaults, ", "))
	}
	answer, ok := p.ask(message, hint)
	if !ok || answer == "" {
		return defaults
	}

	var values []string
	for _, v := range strings.Split(answer, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}

var std = NewPrompter(nil, nil)

// Prompt asks on stdin/stdout. See Prompter.Prompt.
func Prompt(message, defaultValue string) string { return std.Prompt(message, defaultValue) }

// Confirm asks on stdin/stdout. See Prompter.Confirm.
func Confirm(message string, defaultYes bool) bool { return std.Confirm(message, defaultYes) }

// List asks on stdin/stdout. See Prompter.List.
func List(message string, defaults []string) []string { return std.List(message, defaults) }
