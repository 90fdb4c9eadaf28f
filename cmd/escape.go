package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/jptr/pkg/pointer"
)

var (
	escapeUnescape bool
	escapeJoin     bool
)

var escapeCmd = &cobra.Command{
	Use:   "escape <token>...",
	Short: "Escape reference tokens for use in a JSON Pointer",
	Long: `Print each token with "~" written as ~0 and "/" as ~1, one per line.

--unescape reverses the encoding. --join prints a single pointer made of
all the tokens instead.`,
	Example: `  jptr escape a/b m~n          # a~1b, m~0n
  jptr escape --join paths /api/v1  # /paths/~1api~1v1
  jptr escape --unescape a~1b`,
	Args: usageArgs(cobra.MinimumNArgs(1)),
	RunE: func(cmd *cobra.Command, args []string) error {
		if escapeUnescape && escapeJoin {
			return usageError(fmt.Errorf("--unescape and --join are mutually exclusive"))
		}
		var b strings.Builder
		switch {
		case escapeJoin:
			b.WriteString(pointer.New(args...).String())
			b.WriteString("\n")
		case escapeUnescape:
			for _, tok := range args {
				s, err := pointer.Unescape(tok)
				if err != nil {
					return usageError(err)
				}
				b.WriteString(s)
				b.WriteString("\n")
			}
		default:
			for _, tok := range args {
				b.WriteString(pointer.Escape(tok))
				b.WriteString("\n")
			}
		}
		return writeString(cmd.OutOrStdout(), b.String())
	},
}

func init() { //nolint:gochecknoinits
	escapeCmd.Flags().BoolVar(&escapeUnescape, "unescape", false, "decode ~0 and ~1 instead of encoding")
	escapeCmd.Flags().BoolVar(&escapeJoin, "join", false, "join the tokens into one pointer")
}
