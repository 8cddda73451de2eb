package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/reoring/conform/i18n"
)

// version is set via -ldflags at build time.
var version = "(devel)"

// errNonconforming is returned when at least one input failed validation.
var errNonconforming = errors.New("input does not conform")

func newLogger(w io.Writer, verbose bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{Prefix: "conform"})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// newConfig binds the command's flags to CONFORM_* environment variables.
// Flags given on the command line win over the environment.
func newConfig(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix("conform")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, fmt.Errorf("bind flags: %w", err)
	}
	if err := v.BindPFlags(cmd.InheritedFlags()); err != nil {
		return nil, fmt.Errorf("bind flags: %w", err)
	}
	return v, nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "conform",
		Short:         "Validate JSON and YAML documents against built-in validators",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := newConfig(cmd)
			if err != nil {
				return err
			}
			i18n.SetLanguage(cfg.GetString("lang"))
			return nil
		},
	}
	root.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	root.PersistentFlags().String("lang", "en", "message language (en, ja)")

	root.AddCommand(newCheckCmd())
	root.AddCommand(newKindsCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the current version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "conform", version)
		},
	}
}
