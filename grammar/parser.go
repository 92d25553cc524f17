package grammar

import (
	"fmt"
	"os"

	"github.com/alecthomas/participle/v2"
)

var parser = participle.MustBuild[File](
	participle.Lexer(SDLLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.UseLookahead(3),
)

// ParseString parses SDL source. The returned error is a participle.Error
// carrying the failure position.
func ParseString(filename, source string) (*File, error) {
	return parser.ParseString(filename, source)
}

func ParseFile(path string) (*File, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return ParseString(path, string(source))
}

// EBNF renders the grammar.
func EBNF() string {
	return parser.String()
}
