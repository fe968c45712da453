// Package errors formats compiler diagnostics (lexical, syntactic, and
// semantic) with source context and a caret pointing at the offending
// column, the way a terminal-facing compiler error should read.
package errors

import (
	"fmt"
	"strings"

	"github.com/minipar-lang/minipar/internal/token"
)

// Severity classifies a diagnostic as an error or a warning.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// CompilerError is a single lexical, syntactic, or semantic diagnostic.
type CompilerError struct {
	Severity Severity
	Message  string
	Source   string
	File     string
	Pos      token.Position
}

// New creates a CompilerError at error severity.
func New(pos token.Position, message, source, file string) *CompilerError {
	return &CompilerError{Severity: SeverityError, Pos: pos, Message: message, Source: source, File: file}
}

// NewWarning creates a CompilerError at warning severity.
func NewWarning(pos token.Position, message, source, file string) *CompilerError {
	return &CompilerError{Severity: SeverityWarning, Pos: pos, Message: message, Source: source, File: file}
}

// Error implements the error interface.
func (e *CompilerError) Error() string { return e.Format(false) }

// Format renders the diagnostic with a source-context line and a caret
// under the offending column. If color is true, ANSI codes highlight the
// caret and message for terminal output.
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder

	header := "Error"
	if e.Severity == SeverityWarning {
		header = "Warning"
	}
	if e.File != "" {
		fmt.Fprintf(&sb, "%s in %s:%d:%d\n", header, e.File, e.Pos.Line, e.Pos.Column)
	} else {
		fmt.Fprintf(&sb, "%s at line %d:%d\n", header, e.Pos.Line, e.Pos.Column)
	}

	if line := e.sourceLine(e.Pos.Line); line != "" {
		lineNumStr := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(line)
		sb.WriteString("\n")

		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+e.Pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}
	return sb.String()
}

func (e *CompilerError) sourceLine(lineNum int) string {
	if e.Source == "" {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// FromStringErrors wraps raw "line L:C: message" strings (as produced by
// the parser) into CompilerErrors so they can share the same formatting
// path as semantic diagnostics.
func FromStringErrors(msgs []string, source, file string) []*CompilerError {
	out := make([]*CompilerError, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, New(token.Position{}, m, source, file))
	}
	return out
}

// FormatErrors renders a batch of diagnostics, one after another.
func FormatErrors(errs []*CompilerError, color bool) string {
	var sb strings.Builder
	for i, e := range errs {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(e.Format(color))
	}
	return sb.String()
}
