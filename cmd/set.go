package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/jptr/internal/formatter"
	"github.com/oakwood-commons/jptr/pkg/loader"
	"github.com/oakwood-commons/jptr/pkg/logger"
	"github.com/oakwood-commons/jptr/pkg/pointer"
	"github.com/oakwood-commons/jptr/pkg/tree"
)

var (
	setArgs   []string
	setWrite  bool
	setString bool
)

var errWriteStdin = errors.New("--write needs a file argument, not stdin")

var setCmd = &cobra.Command{
	Use:   "set <pointer> <value> [file]",
	Short: "Set the value at a JSON Pointer and print the document",
	Long: `Set the location named by <pointer> to <value> and print the whole document.

<value> is parsed as JSON when it is valid JSON, otherwise it is taken as a
string; --string always takes it as a string. Intermediate containers are
never created: the parent of the target must exist. On arrays an index equal
to the length, or "-", appends.

With -w/--write the file is rewritten in the format it was read from.`,
	Example: `  jptr set /replicas 3 deploy.yaml -w
  jptr set /tags/- '"beta"' app.json
  jptr set '/servers/%d/host' example.org config.toml -a 0 --string`,
	Args: usageArgs(cobra.RangeArgs(2, 3)),
	RunE: func(cmd *cobra.Command, args []string) error {
		lgr := loggerFromContext(cmd.Context())
		path, raw := args[0], args[1]
		file := ""
		if len(args) > 2 {
			file = args[2]
		}

		engine, err := newEngine(cmd)
		if err != nil {
			return err
		}
		in, err := resolveInput(cmd, file)
		if err != nil {
			return err
		}
		if setWrite && in.FromStdin {
			return usageError(errWriteStdin)
		}
		root, format, err := loadInput(cmd, engine, in)
		if err != nil {
			return err
		}
		doc := tree.NewDocument(root)
		defer doc.Close()

		var value *tree.Node
		if setString {
			value = tree.NewString(raw)
		} else {
			value = loader.ParseValue(raw)
		}
		kind := value.Kind().String()
		tmplArgs := templateArgs(setArgs)
		resolved, err := engine.Pointer(path, tmplArgs...)
		if err != nil {
			value.Release()
			return err
		}
		own, err := engine.Set(doc, path, value, tmplArgs...)
		if own == pointer.Retained {
			value.Release()
		}
		if err != nil {
			return err
		}
		lgr.V(1).Info("set", logger.PointerKey, resolved, "kind", kind)

		if !setWrite {
			return printNode(cmd, engine, doc.Root())
		}
		out, err := renderAs(doc.Root(), format, engine.Output)
		if err != nil {
			return err
		}
		if err := writeFile(in.Path, out); err != nil {
			return err
		}
		lgr.V(1).Info("file written", logger.FileKey, in.Path, logger.FormatKey, string(format))
		return nil
	},
}

// renderAs renders a document back into the format it was loaded from.
func renderAs(n *tree.Node, format loader.Format, opts formatter.Options) (string, error) {
	switch format {
	case loader.FormatJSON:
		indent := opts.Indent
		if indent == 0 {
			indent = 2
		}
		return formatter.FormatJSON(n, indent)
	case loader.FormatYAML:
		return formatter.FormatYAML(n, formatter.YAMLFormatOptions{
			Indent:              opts.Indent,
			LiteralBlockStrings: opts.LiteralBlockStrings,
		})
	case loader.FormatYAMLStream:
		if n.Kind() != tree.Array {
			return "", fmt.Errorf("a YAML stream needs an array root, got %s", n.Kind())
		}
		docs := make([]string, 0, n.Len())
		for _, e := range n.Elements() {
			out, err := renderAs(e, loader.FormatYAML, opts)
			if err != nil {
				return "", err
			}
			docs = append(docs, out)
		}
		return strings.Join(docs, "---\n"), nil
	case loader.FormatTOML:
		return formatter.FormatTOML(n)
	case loader.FormatNDJSON:
		if n.Kind() != tree.Array {
			return "", fmt.Errorf("ndjson output needs an array root, got %s", n.Kind())
		}
		var b strings.Builder
		for _, e := range n.Elements() {
			b.WriteString(e.String())
			b.WriteString("\n")
		}
		return b.String(), nil
	default:
		return "", fmt.Errorf("cannot write %s documents back", format)
	}
}

// writeFile replaces path with data, keeping its permissions.
func writeFile(path, data string) error {
	mode := os.FileMode(0o644)
	if st, err := os.Stat(path); err == nil {
		mode = st.Mode().Perm()
	}
	if err := os.WriteFile(path, []byte(data), mode); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func init() { //nolint:gochecknoinits
	setCmd.Flags().StringArrayVarP(&setArgs, "arg", "a", nil, "printf argument for the pointer template (repeatable)")
	setCmd.Flags().BoolVarP(&setWrite, "write", "w", false, "rewrite the input file instead of printing")
	setCmd.Flags().BoolVar(&setString, "string", false, "take <value> as a string even when it is valid JSON")
}
