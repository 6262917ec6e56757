// Package output provides styled terminal output for the wren CLI.
//
// Functions use lipgloss for styling but abstract away the details from
// callers. Output goes to stdout unless redirected with SetWriter.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("green")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("red")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("yellow"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	verboseMode bool
	out         io.Writer = os.Stdout
)

// SetVerbose enables or disables verbose output for debugging.
// This should be called by the CLI when the --verbose flag is set.
func SetVerbose(v bool) {
	verboseMode = v
}

// IsVerbose reports whether verbose output is enabled
func IsVerbose() bool {
	return verboseMode
}

// SetWriter redirects all output and returns the previous writer
func SetWriter(w io.Writer) io.Writer {
	prev := out
	out = w
	return prev
}

// Success prints a success message in green.
// Use this for completed operations.
//
// Example:
//
//	output.Success("Parsed 212 tags")
func Success(msg string) {
	fmt.Fprintln(out, successStyle.Render("✔ "+msg))
}

// Error prints an error message in red.
// Use this for failures that need user attention.
func Error(msg string) {
	fmt.Fprintln(out, errorStyle.Render("✖ "+msg))
}

// Warn prints a warning in yellow.
func Warn(msg string) {
	fmt.Fprintln(out, warnStyle.Render("! "+msg))
}

// Info prints an informational message in cyan.
func Info(msg string) {
	fmt.Fprintln(out, infoStyle.Render("ℹ "+msg))
}

// Step prints an indented step message in gray.
//
// Example:
//
//	output.Step("data/schema.cfg:14: undefined primitive type \"color\"")
func Step(msg string) {
	fmt.Fprintln(out, stepStyle.Render("   "+msg))
}

// Verbose prints a debug message only if verbose mode is enabled.
func Verbose(msg string) {
	if verboseMode {
		fmt.Fprintln(out, stepStyle.Render("… "+msg))
	}
}

// Plain prints msg without styling; used for machine-readable output.
func Plain(msg string) {
	fmt.Fprint(out, msg)
}
