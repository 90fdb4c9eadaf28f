package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/jptr/internal/formatter"
	"github.com/oakwood-commons/jptr/internal/limiter"
	"github.com/oakwood-commons/jptr/pkg/core"
	"github.com/oakwood-commons/jptr/pkg/pointer"
)

var (
	listFrom   string
	listWhere  string
	listLeaves bool
	listLimit  limiter.Config
)

var listCmd = &cobra.Command{
	Use:   "list [file]",
	Short: "List every pointer in a document with its value",
	Long: `Print one line per node: the JSON Pointer that addresses it and a
single-line rendering of its value. Object members are listed in document
order, parents before their children.

--where filters with a CEL predicate. In the expression, _ is the node's
value, pointer its JSON Pointer and kind one of null, bool, number,
string, array or object.`,
	Example: `  jptr list deploy.yaml
  jptr list deploy.yaml --from /spec/template --leaves
  jptr list users.json --where 'kind == "string" && pointer.endsWith("/email")'
  jptr list big.json --leaves --tail 5`,
	Args: usageArgs(cobra.MaximumNArgs(1)),
	RunE: func(cmd *cobra.Command, args []string) error {
		window := listLimit
		if !cmd.Flags().Changed("limit") && window.Tail == 0 {
			window.Limit = loadedConfig.ListLimit()
		}
		if err := window.Validate(); err != nil {
			return usageError(err)
		}
		if _, err := pointer.Parse(listFrom); err != nil {
			return usageError(fmt.Errorf("--from: %w", err))
		}

		engine, err := newEngine(cmd)
		if err != nil {
			return err
		}
		if listWhere != "" {
			if err := engine.Evaluator.Check(listWhere); err != nil {
				return usageError(fmt.Errorf("--where: %w", err))
			}
		}

		file := ""
		if len(args) > 0 {
			file = args[0]
		}
		in, err := resolveInput(cmd, file)
		if err != nil {
			return err
		}
		root, _, err := loadInput(cmd, engine, in)
		if err != nil {
			return err
		}
		defer root.Release()

		entries, err := engine.Entries(root, core.Query{
			From:   listFrom,
			Where:  listWhere,
			Leaves: listLeaves,
			Window: window,
		})
		if errors.Is(err, core.ErrExpression) {
			return usageError(err)
		}
		if err != nil {
			return err
		}

		run := runFromContext(cmd.Context())
		return writeString(cmd.OutOrStdout(), formatter.RenderList(entries, formatter.ListOptions{
			NoColor:  run.NoColor,
			MaxWidth: formatter.TerminalWidth(),
		}))
	},
}

func init() { //nolint:gochecknoinits
	f := listCmd.Flags()
	f.StringVar(&listFrom, "from", "", "list only the subtree at this pointer")
	f.StringVar(&listWhere, "where", "", "CEL predicate selecting which nodes to list")
	f.BoolVar(&listLeaves, "leaves", false, "list only scalars and empty containers")
	f.IntVar(&listLimit.Limit, "limit", 0, "show at most N entries (default from config list.limit)")
	f.IntVar(&listLimit.Offset, "offset", 0, "skip the first N entries")
	f.IntVar(&listLimit.Tail, "tail", 0, "show only the last N entries")
}
