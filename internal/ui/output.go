package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/mgutz/ansi"
	"github.com/openhexa/openhexa-cli/internal/config"
)

// Stdout and Stderr are where every printer writes. Tests swap them.
var (
	Stdout io.Writer = colorable.NewColorableStdout()
	Stderr io.Writer = colorable.NewColorableStderr()
)

// colorEnabled is decided once: styling only when stdout is a terminal.
var colorEnabled = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

// SetColor forces styling on or off
func SetColor(enabled bool) {
	colorEnabled = enabled
}

// Bold styles s in bold
func Bold(s string) string {
	return style(s, "default+b")
}

// Link styles a URL in bright blue, underlined
func Link(s string) string {
	return style(s, "blue+hu")
}

func style(s, code string) string {
	if !colorEnabled {
		return s
	}
	return ansi.Color(s, code)
}

// PrintWorkspacesList prints the workspaces, the active one in bold
func PrintWorkspacesList(workspaces []config.WorkspaceView) {
	fmt.Fprintln(Stdout, "Workspaces:")
	for _, ws := range workspaces {
		if ws.Current {
			fmt.Fprintln(Stdout, Bold(fmt.Sprintf("* %s (active)", ws.Slug)))
		} else {
			fmt.Fprintf(Stdout, "* %s\n", ws.Slug)
		}
	}
	if len(workspaces) == 0 {
		fmt.Fprintln(Stdout, "\nAdd your first workspace with: openhexa workspaces add <slug>")
	}
}

// Println prints a plain line
func Println(message string) {
	fmt.Fprintln(Stdout, message)
}

// Success prints a success message with checkmark
func Success(message string) {
	fmt.Fprintf(Stdout, "✓ %s\n", message)
}

// Error prints an error message
func Error(message string) {
	fmt.Fprintf(Stderr, "✗ %s\n", message)
}

// Info prints an info message
func Info(message string) {
	fmt.Fprintf(Stdout, "ℹ %s\n", message)
}

// Warning prints a warning message
func Warning(message string) {
	fmt.Fprintf(Stderr, "⚠ %s\n", message)
}
