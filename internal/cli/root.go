// Package cli provides the command-line interface for tokensmith.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jmylchreest/tokensmith/internal/version"
)

// envPrefix namespaces environment overrides, e.g. TOKENSMITH_PRIMARY.
const envPrefix = "TOKENSMITH"

// app is the state shared by every command of one invocation.
type app struct {
	v      *viper.Viper
	logger hclog.Logger
	stderr io.Writer
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New(), logger: hclog.NewNullLogger(), stderr: os.Stderr}

	rootCmd := &cobra.Command{
		Use:   "tokensmith",
		Short: "Accessible design-token generator",
		Long: `tokensmith searches for light and dark design-token sets around a fixed brand
colour. Every candidate is scored for WCAG contrast, layering, emphasis, hue
harmony, colour-vision robustness and semantic separation; the best set for
each mode is emitted as JSON or CSS custom properties.`,
		Version:      version.Short(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.stderr = cmd.ErrOrStderr()
			if err := a.loadConfig(cmd); err != nil {
				return err
			}
			a.logger = a.newLogger()
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().String("config", "", "config file (yaml, toml or json)")

	// Set version template
	rootCmd.SetVersionTemplate(version.String() + "\n")

	// Add subcommands
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newGenerateCmd(a))
	rootCmd.AddCommand(newValidateCmd(a))

	return rootCmd
}

// loadConfig binds the invoked command's flags, the environment and the
// optional config file. Flags win over environment, environment over file.
func (a *app) loadConfig(cmd *cobra.Command) error {
	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if err := a.v.BindPFlag(f.Name, f); err != nil && bindErr == nil {
			bindErr = fmt.Errorf("failed to bind flag %s: %w", f.Name, err)
		}
	})
	if bindErr != nil {
		return bindErr
	}

	if path := a.v.GetString("config"); path != "" {
		a.v.SetConfigFile(path)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}
	return nil
}

func (a *app) newLogger() hclog.Logger {
	level := hclog.Warn
	switch {
	case a.v.GetBool("quiet"):
		level = hclog.Off
	case a.v.GetBool("verbose"):
		level = hclog.Debug
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "tokensmith",
		Output: a.stderr,
		Level:  level,
	})
}

// newVersionCmd represents the version command
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
