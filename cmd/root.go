package cmd

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"runtime"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/oakwood-commons/jptr/internal/config"
	"github.com/oakwood-commons/jptr/internal/formatter"
	"github.com/oakwood-commons/jptr/pkg/logger"
	"github.com/oakwood-commons/jptr/pkg/settings"
)

var (
	outputFormat string
	indent       int
	noColor      bool
	debug        bool
	configFile   string

	// loadedConfig is the merged config of the running command.
	loadedConfig config.Config
)

var rootCmd = &cobra.Command{
	Use:   settings.CliBinaryName,
	Short: "Resolve and edit JSON, YAML and TOML documents with JSON Pointers (RFC 6901)",
	Long: `jptr reads a JSON, YAML, TOML, NDJSON or JWT document and resolves
RFC 6901 JSON Pointers against it.

A pointer is a sequence of /-prefixed reference tokens; "" is the whole
document. Inside a token, ~1 stands for "/" and ~0 for "~". On arrays,
tokens are decimal indices without leading zeros, and "-" (set only)
appends a new element.`,
	Example: `  jptr get /items/0/name catalog.yaml
  jptr get /items/%d/name catalog.yaml -a 2
  cat catalog.json | jptr get /metadata/a~1b
  jptr set /items/- '{"name":"new"}' catalog.json -w
  jptr list catalog.yaml --from /items --where 'pointer.endsWith("/price") && _ < 10'`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		// --debug maps to zap's debug level (-1), which logr exposes as V(1).
		var level int8
		if debug {
			level = -1
		}
		lgr := logger.Get(level)
		lgr = logger.WithValues(lgr, logger.CommandKey, cmd.Name())

		cfgPath := config.ResolvePath(configFile)
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return usageError(fmt.Errorf("config: %w", err))
		}
		loadedConfig = cfg
		if cfgPath != "" {
			lgr.V(1).Info("config loaded", logger.FileKey, cfgPath)
		}

		run, err := runSettings(cmd, cfg, level)
		if err != nil {
			return err
		}
		formatter.SetListTheme(formatter.ListColors{
			KeyColor:   colorOrNil(cfg.List.KeyColor),
			ValueColor: colorOrNil(cfg.List.ValueColor),
		})

		ctx := logger.WithLogger(cmd.Context(), lgr)
		cmd.SetContext(settings.IntoContext(ctx, run))
		return nil
	},
}

// runSettings merges config values with the flags the user actually set.
func runSettings(cmd *cobra.Command, cfg config.Config, level int8) (*settings.Run, error) {
	run := settings.NewCliParams()
	run.MinLogLevel = level
	run.OutputFormat = cfg.Output.Format
	run.Indent = cfg.IndentOr(run.Indent)
	run.LiteralBlockStrings = cfg.LiteralBlocks()

	flags := cmd.Flags()
	if flags.Changed("output") {
		run.OutputFormat = strings.ToLower(outputFormat)
	}
	if flags.Changed("indent") {
		if indent < 0 {
			return nil, usageError(fmt.Errorf("--indent must be non-negative, got %d", indent))
		}
		run.Indent = indent
	}
	switch run.OutputFormat {
	case formatter.OutputJSON, formatter.OutputYAML, formatter.OutputTOML, formatter.OutputRaw:
	default:
		return nil, usageError(fmt.Errorf("unknown output format %q (expected json, yaml, toml or raw)", run.OutputFormat))
	}

	switch {
	case noColor:
		run.NoColor = true
	case cfg.Output.Color == "always":
		run.NoColor = false
	case cfg.Output.Color == "never":
		run.NoColor = true
	default:
		run.NoColor = !isTerminal(cmd.OutOrStdout()) || os.Getenv("NO_COLOR") != ""
	}
	return run, nil
}

func colorOrNil(s string) color.Color {
	if s == "" {
		return nil
	}
	return lipgloss.Color(s)
}

// isTerminal reports whether v is an *os.File attached to a terminal.
func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func cliVersionString() string {
	v := settings.VersionInformation
	return fmt.Sprintf("%s %s (commit %s, built %s, %s)", settings.CliBinaryName, v.BuildVersion, v.Commit, v.BuildTime, runtime.Version())
}

func writeString(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}

func init() { //nolint:gochecknoinits
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&outputFormat, "output", "o", "json", "output format: json|yaml|toml|raw (default from config)")
	pf.IntVar(&indent, "indent", 2, "indentation for json and yaml output; 0 prints compact json (default from config)")
	pf.BoolVar(&noColor, "no-color", false, "disable color output")
	pf.BoolVar(&debug, "debug", false, "write debug logs to stderr")
	pf.StringVar(&configFile, "config-file", "", "path to a YAML config file (default $XDG_CONFIG_HOME/jptr/config.yaml)")

	rootCmd.Version = cliVersionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	rootCmd.AddCommand(getCmd, setCmd, listCmd, escapeCmd, functionsCmd, configCmd, versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
