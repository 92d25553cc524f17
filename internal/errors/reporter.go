package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/datawire/adaptive/internal/ast"
	"github.com/fatih/color"
)

// ErrorLevel represents the severity of a diagnostic
type ErrorLevel string

const (
	Error   ErrorLevel = "error"
	Warning ErrorLevel = "warning"
	Note    ErrorLevel = "note"
)

// Diagnostic is the presentation form of a ParseError or CompileError
type Diagnostic struct {
	Level    ErrorLevel
	Code     string
	Message  string
	Position ast.Position
	Length   int
	Notes    []string
	HelpText string
}

// Diagnose converts one of the package error kinds into a Diagnostic. It
// reports false for any other error.
func Diagnose(err error) (Diagnostic, bool) {
	var pe *ParseError
	var ce *CompileError
	switch {
	case errors.As(err, &pe):
		d := Diagnostic{
			Level:    Error,
			Code:     pe.Code,
			Message:  "syntax error: " + pe.Message,
			Position: pe.Pos,
			Length:   max(1, len(pe.Token)),
		}
		if pe.Token != "" {
			d.Notes = append(d.Notes, fmt.Sprintf("unexpected %q", pe.Token))
		}
		return d, true
	case errors.As(err, &ce):
		d := Diagnostic{
			Level:    Error,
			Code:     ce.Code,
			Message:  fmt.Sprintf("%v: %s", ce.Err, ce.Message),
			Position: ce.Pos,
			Length:   1,
		}
		if ce.Definition != "" {
			d.Notes = append(d.Notes, "in definition "+ce.Definition)
		}
		d.HelpText = helpFor(ce)
		return d, true
	}
	return Diagnostic{}, false
}

func helpFor(ce *CompileError) string {
	switch ce.Err {
	case ErrMissingService:
		return "annotate the module with @service"
	case ErrUnsupportedType:
		return "only List<T> with a non-list element is supported"
	case ErrStructAfterOperation:
		return "declare every struct before the first operation"
	}
	return ""
}

// ErrorReporter renders diagnostics against the source they refer to
type ErrorReporter struct {
	filename string
	lines    []string
}

// NewErrorReporter creates a new error reporter for a file
func NewErrorReporter(filename, source string) *ErrorReporter {
	return &ErrorReporter{
		filename: filename,
		lines:    strings.Split(source, "\n"),
	}
}

// Report formats err, falling back to its plain message when it carries no
// position.
func (er *ErrorReporter) Report(err error) string {
	d, ok := Diagnose(err)
	if !ok || d.Position.Line == 0 {
		return levelColor(Error)(string(Error)) + ": " + err.Error() + "\n"
	}
	return er.FormatError(d)
}

// FormatError renders a diagnostic as a header, location, the offending
// line with a caret marker, and any notes.
func (er *ErrorReporter) FormatError(d Diagnostic) string {
	var b strings.Builder
	dim := color.New(color.Faint).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	// Header: error[E0100]: message
	if d.Code != "" {
		fmt.Fprintf(&b, "%s[%s]: %s\n", levelColor(d.Level)(string(d.Level)), d.Code, d.Message)
	} else {
		fmt.Fprintf(&b, "%s: %s\n", levelColor(d.Level)(string(d.Level)), d.Message)
	}

	width := max(3, len(fmt.Sprint(d.Position.Line)))
	gutter := strings.Repeat(" ", width)

	filename := d.Position.Filename
	if filename == "" {
		filename = er.filename
	}
	fmt.Fprintf(&b, "%s %s %s:%d:%d\n", gutter, dim("-->"), filename, d.Position.Line, d.Position.Column)
	fmt.Fprintf(&b, "%s %s\n", gutter, dim("│"))

	if d.Position.Line > 0 && d.Position.Line <= len(er.lines) {
		fmt.Fprintf(&b, "%s %s %s\n", bold(fmt.Sprintf("%*d", width, d.Position.Line)), dim("│"), er.lines[d.Position.Line-1])
		marker := strings.Repeat(" ", max(0, d.Position.Column-1)) + levelColor(d.Level)(strings.Repeat("^", max(1, d.Length)))
		fmt.Fprintf(&b, "%s %s %s\n", gutter, dim("│"), marker)
	}

	noteColor := color.New(color.FgBlue).SprintFunc()
	for _, note := range d.Notes {
		fmt.Fprintf(&b, "%s %s %s %s\n", gutter, dim("│"), noteColor("note:"), note)
	}
	if d.HelpText != "" {
		helpColor := color.New(color.FgGreen).SprintFunc()
		fmt.Fprintf(&b, "%s %s %s %s\n", gutter, dim("│"), helpColor("help:"), d.HelpText)
	}

	b.WriteString("\n")
	return b.String()
}

func levelColor(level ErrorLevel) func(...interface{}) string {
	switch level {
	case Warning:
		return color.New(color.FgYellow, color.Bold).SprintFunc()
	case Note:
		return color.New(color.FgBlue, color.Bold).SprintFunc()
	default:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	}
}
