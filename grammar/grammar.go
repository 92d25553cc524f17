package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// File is one SDL compilation unit: exactly one module.
type File struct {
	Pos    lexer.Position
	Module *Module `parser:"@@"`
}

type Module struct {
	Pos         lexer.Position
	EndPos      lexer.Position
	Annotations []*Annotation `parser:"@@*"`
	Name        string        `parser:"\"module\" @Ident \"{\""`
	Definitions []*Definition `parser:"@@* \"}\" \";\""`
}

// Definition carries the annotations written before an item. They are only
// meaningful on structs and operations; the parser reports them anywhere
// else.
type Definition struct {
	Pos         lexer.Position
	Annotations []*Annotation `parser:"@@*"`
	Item        *Item         `parser:"@@"`
}

// Item is an ordered choice.
type Item struct {
	Struct    *Struct    `parser:"  @@"`
	Desc      *Desc      `parser:"| @@"`
	Defaults  *Defaults  `parser:"| @@"`
	Operation *Operation `parser:"| @@"`
}

type Desc struct {
	Pos     lexer.Position
	Content string `parser:"\"desc\" @String \";\""`
}

// Defaults is accepted and skipped: its contents are never interpreted.
type Defaults struct {
	Pos  lexer.Position
	Body []string `parser:"\"defaults\" \"{\" ( @!\"}\" )* \"}\" \";\""`
}

type Struct struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Name   string   `parser:"\"struct\" @Ident \"{\""`
	Fields []*Field `parser:"@@* \"}\" \";\""`
}

type Field struct {
	Pos     lexer.Position
	Type    *Type    `parser:"@@"`
	Name    string   `parser:"@Ident"`
	Default *Literal `parser:"( \"=\" @@ )? \";\""`
}

type Operation struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Type   *Type    `parser:"@@"`
	Name   string   `parser:"@Ident \"(\""`
	Params []*Param `parser:"( @@ ( \",\" @@ )* )? \")\""`
	Body   *Body    `parser:"@@? \";\""`
}

// Body holds an optional description followed by opaque tokens that are
// skipped.
type Body struct {
	Pos  lexer.Position
	Desc *Desc    `parser:"\"{\" @@?"`
	Rest []string `parser:"( @!\"}\" )* \"}\""`
}

type Param struct {
	Pos     lexer.Position
	Type    *Type    `parser:"@@"`
	Name    string   `parser:"@Ident"`
	Default *Literal `parser:"( \"=\" @@ )?"`
}

type Type struct {
	Pos  lexer.Position
	Name string  `parser:"@Ident"`
	Args []*Type `parser:"( \"<\" @@ ( \",\" @@ )* \">\" )?"`
}

type Literal struct {
	Pos    lexer.Position
	String *string `parser:"  @String"`
	Null   bool    `parser:"| @\"null\""`
}

// Annotation is written `@name` or `@name("arg", null)`.
type Annotation struct {
	Pos  lexer.Position
	Name string     `parser:"\"@\" @Ident"`
	Args []*Literal `parser:"( \"(\" ( @@ ( \",\" @@ )* )? \")\" )?"`
}
