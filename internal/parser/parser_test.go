package parser

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/datawire/adaptive/internal/ast"
	"github.com/datawire/adaptive/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readExample(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "..", "examples", name))
	require.NoError(t, err)
	return strings.TrimSpace(string(data))
}

func TestRoundTrip(t *testing.T) {
	for _, name := range []string{"minimal.sdl", "longer.sdl", "inventory.sdl"} {
		t.Run(name, func(t *testing.T) {
			source := readExample(t, name)
			m, err := Parse(name, source)
			require.NoError(t, err)
			assert.Equal(t, source, m.String())
		})
	}
}

func TestParseEmptyModule(t *testing.T) {
	m, err := Parse("test.sdl", "module Empty {};")
	require.NoError(t, err)
	assert.Equal(t, "Empty", m.Name)
	assert.Empty(t, m.Definitions)
	assert.Equal(t, 1, m.Pos.Line)
	assert.Equal(t, "test.sdl", m.Pos.Filename)
}

func TestParsePetStore(t *testing.T) {
	m, err := ParseFile(filepath.Join("..", "..", "examples", "petstore.sdl"))
	require.NoError(t, err)
	require.Len(t, m.Definitions, 7)

	_, ok := m.Definitions[0].(*ast.Description)
	assert.True(t, ok, "first definition should be a description")
	_, ok = m.Definitions[1].(*ast.Defaults)
	assert.True(t, ok, "second definition should be a defaults block")

	structs := m.Structs()
	require.Len(t, structs, 1)
	pet := structs[0]
	assert.Equal(t, "Pet", pet.Name)
	require.Len(t, pet.Fields, 3)
	assert.Nil(t, pet.Fields[0].Default)
	assert.IsType(t, &ast.NullLiteral{}, pet.Fields[2].Default)
	assert.False(t, pet.Fields[1].Type.Nullable)
	assert.True(t, pet.Fields[2].Type.Nullable)

	ops := m.Operations()
	require.Len(t, ops, 4)

	findPets := ops[0]
	assert.Equal(t, "List<Pet>", findPets.Type.String())
	assert.True(t, findPets.Type.IsStructList())
	assert.Equal(t, "List<string> tags = null", findPets.Parameters[0].String())
	assert.True(t, findPets.Parameters[1].Type.Nullable)
	assert.True(t, findPets.Parameters[1].Type.Equal(ast.Type("int32")))
	require.NotNil(t, findPets.Description)
	assert.Equal(t, "Returns all pets from the system that the user has access to", findPets.Description.Content.Value())

	findPetByID := ops[2]
	assert.Equal(t, "Pet findPetById(int64 id) {\n    desc \"Returns a pet based on the ID supplied\";\n};", findPetByID.String())
	assert.True(t, ops[3].Type.IsVoid())
}

func TestParseAnnotations(t *testing.T) {
	m, err := Parse("inv.sdl", readExample(t, "inventory.sdl"))
	require.NoError(t, err)

	require.NotNil(t, ast.FindAnnotation(m.Annotations, "service"))
	ops := m.Operations()
	cache := ast.FindAnnotation(ops[0].Annotations, "cache")
	require.NotNil(t, cache)
	require.Len(t, cache.Args, 1)
	assert.Equal(t, "30", cache.Args[0].(*ast.StringLiteral).Value())
	assert.Nil(t, ast.FindAnnotation(ops[2].Annotations, "cache"))
}

func TestParseNestedGenerics(t *testing.T) {
	m, err := Parse("n.sdl", "module N { List<List<Pet>> grid(Map<string, Pet> index); };")
	require.NoError(t, err)
	op := m.Operations()[0]
	assert.Equal(t, "List<List<Pet>>", op.Type.String())
	assert.Equal(t, "Map<string, Pet> index", op.Parameters[0].String())
}

func TestParseError(t *testing.T) {
	source := "module M {\n    struct S { int32; };\n};"
	m, err := Parse("bad.sdl", source)
	assert.Nil(t, m, "no partial module on failure")
	require.Error(t, err)

	var perr *errors.ParseError
	require.True(t, stderrors.As(err, &perr))
	assert.Equal(t, errors.ErrorSyntax, perr.Code)
	assert.Equal(t, "bad.sdl", perr.Pos.Filename)
	assert.Equal(t, 2, perr.Pos.Line)
	line := strings.Split(source, "\n")[1]
	assert.True(t, strings.HasPrefix(line[perr.Pos.Column-1:], perr.Token))
	assert.Contains(t, []string{";", "int32"}, perr.Token)
}

func TestParseErrorAtEndOfInput(t *testing.T) {
	_, err := Parse("eof.sdl", "module M {")
	var perr *errors.ParseError
	require.True(t, stderrors.As(err, &perr))
	assert.Equal(t, "", perr.Token)
	assert.Contains(t, perr.Error(), "end of input")
}

func TestMisplacedAnnotation(t *testing.T) {
	_, err := Parse("a.sdl", `module M { @service desc "x"; };`)
	var perr *errors.ParseError
	require.True(t, stderrors.As(err, &perr))
	assert.Equal(t, errors.ErrorMisplacedAnnotation, perr.Code)
	assert.Equal(t, "@service", perr.Token)
}

func TestParseFileMissing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "missing.sdl"))
	var ioerr *errors.IOError
	require.True(t, stderrors.As(err, &ioerr))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
