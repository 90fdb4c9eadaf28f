package formatter

import (
	"errors"
	"fmt"

	"github.com/pelletier/go-toml/v2"

	"github.com/oakwood-commons/jptr/pkg/pointer"
	"github.com/oakwood-commons/jptr/pkg/tree"
)

// ErrTOMLUnsupported is returned for values TOML has no way to express.
var ErrTOMLUnsupported = errors.New("value cannot be written as TOML")

// FormatTOML renders an object as a TOML document. TOML has no null and no
// top-level scalars or arrays; those yield ErrTOMLUnsupported.
func FormatTOML(n *tree.Node) (string, error) {
	if n.Kind() != tree.Object {
		return "", fmt.Errorf("%w: top-level %s", ErrTOMLUnsupported, n.Kind())
	}
	err := pointer.Walk(n, func(p pointer.Pointer, v *tree.Node) error {
		if v.Kind() == tree.Null {
			return fmt.Errorf("%w: null at %q", ErrTOMLUnsupported, p.String())
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	out, err := toml.Marshal(n.Interface())
	if err != nil {
		return "", err
	}
	return string(out), nil
}
