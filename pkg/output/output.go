// Package output prints styled status lines for the nightjar CLI.
//
// Messages go to stdout unless SetOutput redirects them:
//
//	output.Success("No ghost components found")
//	output.Info("Next steps:")
//	output.Step("nightjar chase -r . -e src/index.js")
//	output.Error("entry file not found")
//
// Verbose lines print only after SetVerbose(true).
package output

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	mu          sync.Mutex
	out         io.Writer = os.Stdout
	verboseMode bool
)

// SetOutput redirects all messages to w and returns the previous writer.
func SetOutput(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	prev := out
	out = w
	return prev
}

// SetVerbose enables or disables verbose output.
// The CLI calls this when --verbose is set.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verboseMode = v
}

func emit(s string) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintln(out, s)
}

// Success prints a completed operation in green.
func Success(msg string) {
	emit(successStyle.Render("✅ " + msg))
}

// Error prints a failure in red.
//
// Example:
//
//	output.Error("cannot resolve './Missing' from src/App.js")
func Error(msg string) {
	emit(errorStyle.Render("❌ " + msg))
}

// Warn prints a recoverable problem.
func Warn(msg string) {
	emit(warnStyle.Render("⚠️  " + msg))
}

// Info prints a status update.
func Info(msg string) {
	emit(infoStyle.Render("ℹ️  " + msg))
}

// Step prints an indented sub-item in gray.
func Step(msg string) {
	emit(stepStyle.Render("   " + msg))
}

// Verbose prints a debug message only in verbose mode.
func Verbose(msg string) {
	mu.Lock()
	enabled := verboseMode
	mu.Unlock()
	if enabled {
		emit(stepStyle.Render("🔍 " + msg))
	}
}
