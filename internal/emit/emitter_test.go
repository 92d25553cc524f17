package emit

import (
	"bytes"
	"testing"

	"github.com/datawire/adaptive/internal/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockIndentation(t *testing.T) {
	e := New("")
	e.Block("class Foo", func() {
		e.Line("x = %d", 1)
		e.Block("def bar()", func() {
			e.Line("return x")
		})
	})

	assert.Equal(t, "class Foo {\n    x = 1\n    def bar() {\n        return x\n    }\n}\n", e.String())
	assert.Equal(t, 0, e.Depth())
}

func TestCustomUnit(t *testing.T) {
	e := New("\t")
	e.Indented(func() {
		e.Line("a")
	})
	assert.Equal(t, "\ta\n", e.String())
}

func TestLineVerbatimWithoutArgs(t *testing.T) {
	e := New("")
	verbatim := "100%"
	e.Line(verbatim)
	assert.Equal(t, "100%\n", e.String())
}

func TestTrailingWhitespaceTrimmed(t *testing.T) {
	e := New("")
	e.Indent()
	e.Line("")
	e.Line("a   ")
	assert.Equal(t, "\n    a\n", e.String())
}

func TestDedentBelowZeroPanics(t *testing.T) {
	e := New("")
	assert.Panics(t, func() { e.Dedent() })
}

func TestBlockClosesOnPanic(t *testing.T) {
	e := New("")
	assert.Panics(t, func() {
		e.Block("if x", func() {
			e.Line("boom")
			panic("body failed")
		})
	})
	assert.Equal(t, "if x {\n    boom\n}\n", e.String())
	assert.Equal(t, 0, e.Depth())
}

func TestRefChannelSeparation(t *testing.T) {
	e := New("")
	ref := e.Ref("## ")

	ref.Line("module M {")
	ref.Line("};")
	e.Line("class M:")
	e.Line("pass")
	ref.Line("done")

	expected := "## module M {\n## };\n\nclass M:\npass\n\n## done\n"
	assert.Equal(t, expected, e.String())
	assert.Equal(t, e.String(), ref.String())
}

func TestRefChannelSwitchAfterBlank(t *testing.T) {
	e := New("")
	ref := e.Ref("// ")
	e.Line("a")
	e.Blank()
	ref.Line("b")
	assert.Equal(t, "a\n\n// b\n", e.String())
}

func TestBlankAfterRefChannelIsTheSeparator(t *testing.T) {
	e := New("")
	ref := e.Ref("// ")
	ref.Line("};")
	e.Blank()
	e.Line("def f():")
	ref.Line("x;")
	e.Indent()
	e.Blank()
	e.Line("pass")
	assert.Equal(t, "// };\n\ndef f():\n\n// x;\n\n    pass\n", e.String())
}

func TestRefChannelKeepsOwnDepth(t *testing.T) {
	e := New("")
	ref := e.Ref("// ")
	e.Indent()
	ref.Line("a")
	e.Line("b")
	assert.Equal(t, "// a\n\n    b\n", e.String())
}

func TestEchoModule(t *testing.T) {
	m := &ast.Module{
		Name:        "M",
		Annotations: []*ast.Annotation{{Name: "service"}},
	}
	op := &ast.Operation{
		Name:        "ping",
		Type:        ast.Type("void"),
		Description: &ast.Description{Content: ast.Quote("Ping")},
	}

	e := New("")
	ref := e.Ref("## ")
	ref.ModuleHead(m)
	ref.Echo(op)
	ref.ModuleTail(m)

	expected := "## @service\n## module M {\n##     void ping() {\n##         desc \"Ping\";\n##     };\n## };\n"
	assert.Equal(t, expected, e.String())
}

func TestWriteTo(t *testing.T) {
	e := New("")
	e.Line("hello")

	var buf bytes.Buffer
	n, err := e.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(6), n)
	assert.Equal(t, "hello\n", buf.String())
}
