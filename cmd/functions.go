package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/jptr/internal/cel"
)

var functionsCategory string

var functionsCmd = &cobra.Command{
	Use:   "functions [name]",
	Short: "List the CEL functions available to --where and --eval",
	Long: `List the functions and macros that --where and --eval expressions can
call, one usage per line. With [name], only functions whose name contains it
are shown.`,
	Example: `  jptr functions
  jptr functions --category string
  jptr functions base64`,
	Args: usageArgs(cobra.MaximumNArgs(1)),
	RunE: func(cmd *cobra.Command, args []string) error {
		ev, err := cel.NewEvaluator()
		if err != nil {
			return err
		}
		var b strings.Builder
		for _, fn := range ev.Functions() {
			if functionsCategory != "" && fn.Category != functionsCategory {
				continue
			}
			if len(args) > 0 && !strings.Contains(strings.ToLower(fn.Name), strings.ToLower(args[0])) {
				continue
			}
			if fn.Macro {
				fmt.Fprintf(&b, "%s  (%s)\n", fn.Name, fn.Category)
				continue
			}
			for _, u := range fn.Usages {
				fmt.Fprintf(&b, "%s  (%s)\n", u, fn.Category)
			}
		}
		return writeString(cmd.OutOrStdout(), b.String())
	},
}

func init() { //nolint:gochecknoinits
	functionsCmd.Flags().StringVar(&functionsCategory, "category", "", "only list one category: string, list, math, encoding, regex, conversion, datetime, macro or general")
}
