package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

var SDLLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		// Comments
		{Name: "Comment", Pattern: `//[^\n]*`, Action: nil},

		// Double quoted strings. There are no escapes.
		{Name: "String", Pattern: `"[^"]*"`, Action: nil},

		{Name: "Number", Pattern: `[0-9]+(\.[0-9]+)?`, Action: nil},

		// Keywords and identifiers
		{Name: "Ident", Pattern: `[a-zA-Z][a-zA-Z0-9]*`, Action: nil},

		{Name: "Punct", Pattern: `[=;,<>{}()@]`, Action: nil},

		// Whitespace
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`, Action: nil},

		// Anything else is only legal inside opaque defaults and
		// operation bodies.
		{Name: "Other", Pattern: `.`, Action: nil},
	},
})
