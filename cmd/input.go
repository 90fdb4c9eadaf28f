package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/jptr/pkg/core"
	"github.com/oakwood-commons/jptr/pkg/loader"
	"github.com/oakwood-commons/jptr/pkg/settings"
	"github.com/oakwood-commons/jptr/pkg/tree"
)

var errNoInput = errors.New("no input: pass a file argument or pipe a document on stdin")

// resolveInput decides where the document comes from. An empty path reads
// stdin only when it is not a terminal.
func resolveInput(cmd *cobra.Command, path string) (settings.Input, error) {
	switch path {
	case settings.StdinPath:
		return settings.Input{Path: path, FromStdin: true}, nil
	case "":
		if isTerminal(cmd.InOrStdin()) {
			return settings.Input{}, usageError(errNoInput)
		}
		return settings.Input{FromStdin: true}, nil
	default:
		return settings.Input{Path: path}, nil
	}
}

// loadInput parses the document named by in. The caller owns the root.
func loadInput(cmd *cobra.Command, engine *core.Engine, in settings.Input) (*tree.Node, loader.Format, error) {
	if !in.FromStdin {
		root, format, err := engine.LoadFile(in.Path)
		if err != nil {
			return nil, "", fmt.Errorf("load %s: %w", in.Label(), err)
		}
		return root, format, nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, "", fmt.Errorf("read stdin: %w", err)
	}
	root, format, err := engine.LoadBytes(data)
	if err != nil {
		return nil, "", fmt.Errorf("load %s: %w", in.Label(), err)
	}
	return root, format, nil
}
