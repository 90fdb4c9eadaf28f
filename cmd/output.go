package cmd

import (
	"context"
	"strconv"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/oakwood-commons/jptr/internal/formatter"
	"github.com/oakwood-commons/jptr/pkg/core"
	"github.com/oakwood-commons/jptr/pkg/logger"
	"github.com/oakwood-commons/jptr/pkg/settings"
	"github.com/oakwood-commons/jptr/pkg/tree"
)

func runFromContext(ctx context.Context) *settings.Run {
	return settings.FromContextOrDefault(ctx)
}

func loggerFromContext(ctx context.Context) logr.Logger {
	return *logger.FromContext(ctx)
}

func formatOptions(run *settings.Run) formatter.Options {
	return formatter.Options{
		Format:              run.OutputFormat,
		Indent:              run.Indent,
		LiteralBlockStrings: run.LiteralBlockStrings,
	}
}

// newEngine builds an engine from the command's settings and logger.
func newEngine(cmd *cobra.Command) (*core.Engine, error) {
	ctx := cmd.Context()
	return core.New(
		core.WithOutput(formatOptions(runFromContext(ctx))),
		core.WithLogger(loggerFromContext(ctx)),
	)
}

// printNode renders n in the configured output format to the command's stdout.
func printNode(cmd *cobra.Command, engine *core.Engine, n *tree.Node) error {
	out, err := engine.Render(n)
	if err != nil {
		return err
	}
	return writeString(cmd.OutOrStdout(), out)
}

// templateArgs converts -a values for a printf template: integers become
// int so %d works, everything else stays a string.
func templateArgs(values []string) []any {
	args := make([]any, len(values))
	for i, v := range values {
		if n, err := strconv.Atoi(v); err == nil {
			args[i] = n
			continue
		}
		args[i] = v
	}
	return args
}
