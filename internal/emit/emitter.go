// Package emit accumulates indented lines of generated source.
//
// Several Emitters may share one destination, each with its own prefix and
// indentation. Whenever consecutive lines come from different Emitters a
// blank line separates them, unless either line is already blank, so
// generated code and the reference echo of the schema stay visually apart.
package emit

import (
	"fmt"
	"io"
	"strings"

	"github.com/datawire/adaptive/internal/ast"
)

const DefaultUnit = "    "

type destination struct {
	lines []string
	last  *Emitter
}

func (d *destination) append(from *Emitter, line string) {
	line = strings.TrimRight(line, " \t")
	if d.last != nil && d.last != from && line != "" && d.lines[len(d.lines)-1] != "" {
		d.lines = append(d.lines, "")
	}
	d.lines = append(d.lines, line)
	d.last = from
}

type Emitter struct {
	prefix string
	unit   string
	depth  int
	dst    *destination
}

// New returns an Emitter writing to a fresh destination. unit is one level
// of indentation; empty means four spaces.
func New(unit string) *Emitter {
	if unit == "" {
		unit = DefaultUnit
	}
	return &Emitter{unit: unit, dst: &destination{}}
}

// Ref returns a second channel into the same destination. Its lines start
// with prefix, ahead of the indentation.
func (e *Emitter) Ref(prefix string) *Emitter {
	return &Emitter{prefix: prefix, unit: e.unit, dst: e.dst}
}

// Line writes one line at the current depth. With no args, format is
// written verbatim.
func (e *Emitter) Line(format string, args ...any) {
	line := format
	if len(args) > 0 {
		line = fmt.Sprintf(format, args...)
	}
	e.dst.append(e, e.prefix+strings.Repeat(e.unit, e.depth)+line)
}

// Lines writes each line of text at the current depth.
func (e *Emitter) Lines(text string) {
	for _, line := range strings.Split(text, "\n") {
		e.Line(line)
	}
}

// Blank writes an empty line.
func (e *Emitter) Blank() {
	e.dst.append(e, "")
}

func (e *Emitter) Indent() {
	e.depth++
}

// Dedent panics when the depth is already zero.
func (e *Emitter) Dedent() {
	if e.depth == 0 {
		panic(fmt.Sprintf("emit: dedent below zero after %d lines", len(e.dst.lines)))
	}
	e.depth--
}

func (e *Emitter) Depth() int { return e.depth }

// Indented runs body one level deeper.
func (e *Emitter) Indented(body func()) {
	e.Indent()
	defer e.Dedent()
	body()
}

// Block writes `header {`, runs body one level deeper and writes `}`. The
// closing brace is written even if body panics.
func (e *Emitter) Block(header string, body func()) {
	e.BlockWith(header+" {", "}", body)
}

// BlockWith is Block with explicit opening and closing lines.
func (e *Emitter) BlockWith(open, closing string, body func()) {
	e.Line(open)
	e.Indent()
	defer func() {
		e.Dedent()
		if closing != "" {
			e.Line(closing)
		}
	}()
	body()
}

func (e *Emitter) String() string {
	return strings.Join(e.dst.lines, "\n") + "\n"
}

func (e *Emitter) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, e.String())
	return int64(n), err
}

// Reference echo of the schema

// ModuleHead echoes the module's annotations and opening line and indents.
func (e *Emitter) ModuleHead(m *ast.Module) {
	for _, a := range m.Annotations {
		e.Line(a.String())
	}
	e.Line("module %s {", m.Name)
	e.Indent()
}

func (e *Emitter) ModuleTail(*ast.Module) {
	e.Dedent()
	e.Line("};")
}

// Echo writes the SDL text of a definition.
func (e *Emitter) Echo(def ast.Definition) {
	e.Lines(def.String())
}
