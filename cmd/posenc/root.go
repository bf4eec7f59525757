package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yukin371/lspenc/internal/config"
	"github.com/yukin371/lspenc/pkg/logger"
)

// app carries state shared by subcommands once the root command has loaded
// configuration.
type app struct {
	cfgFile string
	verbose bool

	cfg    *config.Config
	loader *config.Loader
	log    *logger.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "posenc",
		Short: "Inspect and convert LSP position encodings",
		Long: `posenc works with the LSP position encoding kinds (utf-8, utf-16, utf-32).

It validates wire tags, negotiates the encoding a server should answer an
initialize request with, and converts positions between code-unit measures.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is config.yaml in the user config directory, or $LSPENC_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(
		newKindsCmd(a),
		newParseCmd(a),
		newNegotiateCmd(a),
		newConvertCmd(a),
		newConfigCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

func (a *app) init(cmd *cobra.Command) error {
	a.loader = config.NewLoader(a.cfgFile)
	cfg, err := a.loader.Load()
	if err != nil {
		return err
	}
	a.cfg = cfg

	level, err := cfg.Log.LogLevel()
	if err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if a.verbose {
		level = logger.DEBUG
	}
	a.log = logger.New(cmd.ErrOrStderr(), cmd.ErrOrStderr(), level, "")
	a.log.Debug("Configuration loaded from %s", a.loader.Path())
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "posenc version %s\n", version)
		},
	}
}
