package lsp

import (
	"github.com/datawire/adaptive/internal/errors"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// ConvertError transforms a parse or compile error into LSP diagnostics for
// IDE display. Errors without a position are reported on the first line.
func ConvertError(err error) []protocol.Diagnostic {
	d, ok := errors.Diagnose(err)
	if !ok {
		return []protocol.Diagnostic{{
			Range:    protocol.Range{},
			Severity: ptrSeverity(protocol.DiagnosticSeverityError),
			Source:   ptrString("sdlc"),
			Message:  err.Error(),
		}}
	}

	line := uint32(max(0, d.Position.Line-1))    // Convert to 0-based indexing
	char := uint32(max(0, d.Position.Column-1)) // Convert to 0-based indexing
	diagnostic := protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: line, Character: char},
			End:   protocol.Position{Line: line, Character: char + uint32(max(1, d.Length))},
		},
		Severity: ptrSeverity(protocol.DiagnosticSeverityError),
		Source:   ptrString("sdlc"),
		Message:  d.Message,
	}
	if d.Code != "" {
		diagnostic.Code = &protocol.IntegerOrString{Value: d.Code}
	}
	for _, note := range d.Notes {
		diagnostic.Message += "\nnote: " + note
	}
	if d.HelpText != "" {
		diagnostic.Message += "\nhelp: " + d.HelpText
	}
	return []protocol.Diagnostic{diagnostic}
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}
