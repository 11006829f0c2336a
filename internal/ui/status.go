package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Status prints severity-labeled lines for wizard output.
// Warnings are informational and never abort the run.
type Status struct {
	out   io.Writer
	color bool
}

// NewStatus creates a Status writing to out. Color follows the terminal's
// capabilities and NO_COLOR.
func NewStatus(out io.Writer) *Status {
	return &Status{out: out, color: ColorEnabled()}
}

// NewPlainStatus creates a Status that never styles its output.
func NewPlainStatus(out io.Writer) *Status {
	return &Status{out: out}
}

func (s *Status) render(symbol string, color lipgloss.Color) string {
	if !s.color {
		return symbol
	}
	return lipgloss.NewStyle().Foreground(color).Render(symbol)
}

// Successf prints a success line with the success symbol.
func (s *Status) Successf(format string, args ...interface{}) {
	fmt.Fprintf(s.out, "%s %s\n", s.render(SymbolSuccess, ColorSuccess), fmt.Sprintf(format, args...))
}

// Warnf prints a non-fatal warning line.
func (s *Status) Warnf(format string, args ...interface{}) {
	fmt.Fprintf(s.out, "%s %s\n", s.render(SymbolWarning, ColorWarning), fmt.Sprintf(format, args...))
}

// Failf prints a failure line.
func (s *Status) Failf(format string, args ...interface{}) {
	fmt.Fprintf(s.out, "%s %s\n", s.render(SymbolFail, ColorError), fmt.Sprintf(format, args...))
}

// Infof prints an informational line.
func (s *Status) Infof(format string, args ...interface{}) {
	fmt.Fprintf(s.out, "  %s\n", fmt.Sprintf(format, args...))
}

// Skipf prints a skipped-step line.
func (s *Status) Skipf(format string, args ...interface{}) {
	fmt.Fprintf(s.out, "%s %s\n", s.render(SymbolSkipped, ColorWarning), fmt.Sprintf(format, args...))
}
