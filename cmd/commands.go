package cmd

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/kvfold/internal/cel"
	"github.com/oakwood-commons/kvfold/pkg/settings"
)

// cliVersionString builds the version line for `kvfold version` and --version.
func cliVersionString() string {
	v := settings.VersionInformation
	return fmt.Sprintf("%s %s (commit %s, built %s, %s)", settings.CliBinaryName, v.BuildVersion, v.Commit, v.BuildTime, runtime.Version())
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print kvfold version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), cliVersionString())
			return nil
		},
	}
}

func newThemesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List available themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			merged, err := loadMergedConfig(resolveConfigPath(opts.configFile))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Available themes (default: %s):\n", merged.UI.Theme.Default)
			for _, name := range themeNames(merged) {
				fmt.Fprintf(out, " - %s\n", name)
			}
			return nil
		},
	}
}

func newConfigCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the merged configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			merged, err := loadMergedConfig(resolveConfigPath(opts.configFile))
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(merged)
			if err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newFunctionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "functions [filter]",
		Short: "List the functions available in --expression",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := ""
			if len(args) == 1 {
				filter = strings.ToLower(args[0])
			}
			fns, err := cel.DiscoverFunctions()
			if err != nil {
				return err
			}
			for _, fn := range fns {
				if filter != "" && !strings.Contains(strings.ToLower(fn), filter) {
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), fn)
			}
			return nil
		},
	}
}
