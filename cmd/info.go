package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oakwood-commons/jptr/internal/config"
)

var configDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	Long: `Print the configuration in effect: built-in defaults merged with the
file given by --config-file, or $XDG_CONFIG_HOME/jptr/config.yaml when it
exists. --defaults prints the built-in defaults, a useful starting point
for a config file.`,
	Args: usageArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, _ []string) error {
		if configDefaults {
			_, err := cmd.OutOrStdout().Write(config.DefaultYAML())
			return err
		}
		out, err := loadedConfig.Marshal()
		if err != nil {
			return err
		}
		return writeString(cmd.OutOrStdout(), out)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  usageArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, _ []string) error {
		return writeString(cmd.OutOrStdout(), cliVersionString()+"\n")
	},
}

func init() { //nolint:gochecknoinits
	configCmd.Flags().BoolVar(&configDefaults, "defaults", false, "print the built-in defaults")
}
