package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/jptr/pkg/core"
	"github.com/oakwood-commons/jptr/pkg/loader"
	"github.com/oakwood-commons/jptr/pkg/logger"
	"github.com/oakwood-commons/jptr/pkg/tree"
)

var (
	getArgs   []string
	getDecode bool
	getEval   string
)

var getCmd = &cobra.Command{
	Use:   "get <pointer> [file]",
	Short: "Print the value a JSON Pointer resolves to",
	Long: `Resolve <pointer> against the document and print the value it names.

With -a/--arg, <pointer> is a printf template and each -a value fills the
next verb. Integer values are passed as ints so %d works; use %% for a
literal percent sign.`,
	Example: `  jptr get /spec/containers/0/image deploy.yaml
  jptr get '/users/%d/%s' users.json -a 3 -a email
  jptr get /token app.json --decode
  jptr get /items data.json --eval '_.size()'`,
	Args: usageArgs(cobra.RangeArgs(1, 2)),
	RunE: func(cmd *cobra.Command, args []string) error {
		lgr := loggerFromContext(cmd.Context())
		path := args[0]
		file := ""
		if len(args) > 1 {
			file = args[1]
		}

		engine, err := newEngine(cmd)
		if err != nil {
			return err
		}
		if getEval != "" {
			if err := engine.Evaluator.Check(getEval); err != nil {
				return usageError(fmt.Errorf("--eval: %w", err))
			}
		}
		in, err := resolveInput(cmd, file)
		if err != nil {
			return err
		}
		root, format, err := loadInput(cmd, engine, in)
		if err != nil {
			return err
		}
		defer root.Release()

		tmplArgs := templateArgs(getArgs)
		resolved, err := engine.Pointer(path, tmplArgs...)
		if err != nil {
			return err
		}
		node, err := engine.Get(root, path, tmplArgs...)
		if err != nil {
			return err
		}
		lgr.V(1).Info("resolved", logger.PointerKey, resolved, logger.FormatKey, string(format), "kind", node.Kind().String())

		if getDecode {
			node = loader.RecursiveDecode(node)
			defer node.Release()
		}
		if getEval != "" {
			node, err = evalNode(engine, getEval, resolved, node)
			if err != nil {
				return err
			}
			defer node.Release()
		}
		return printNode(cmd, engine, node)
	},
}

func evalNode(engine *core.Engine, expr, path string, n *tree.Node) (*tree.Node, error) {
	out, err := engine.Evaluate(expr, path, n)
	if err != nil {
		return nil, fmt.Errorf("--eval: %w", err)
	}
	return out, nil
}

func init() { //nolint:gochecknoinits
	getCmd.Flags().StringArrayVarP(&getArgs, "arg", "a", nil, "printf argument for the pointer template (repeatable)")
	getCmd.Flags().BoolVar(&getDecode, "decode", false, "decode string values that hold embedded JSON or YAML")
	getCmd.Flags().StringVar(&getEval, "eval", "", "CEL expression applied to the resolved value (_ is the value)")
}
