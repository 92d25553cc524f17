package transform

import (
	"fmt"

	"github.com/datawire/adaptive/internal/ast"
	"github.com/datawire/adaptive/internal/errors"
)

// Mode selects which side of a service is generated.
type Mode int

const (
	Client Mode = iota
	Server
)

func (m Mode) String() string {
	switch m {
	case Client:
		return "client"
	case Server:
		return "server"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode accepts "client" or "server".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "client":
		return Client, nil
	case "server":
		return Server, nil
	}
	return 0, errors.Compile(errors.ErrUnknownMode, "", ast.Position{}, "%q is neither client nor server", s)
}
