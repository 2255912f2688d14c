// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the utilities CLI. Each tool is a
// subcommand: random-id, gsheet, html-to-markdown, collection-size,
// underscore and date-prefix.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/utilities/internal/logging"
)

// version is set at build time via ldflags.
var version = "dev"

// configErr holds a config file read failure until a logger exists.
var configErr error

// rootCmd is the base command for the utilities CLI.
var rootCmd = &cobra.Command{
	Use:   "utilities",
	Short: "Small standalone tools for everyday chores",
	Long: `utilities bundles small independent command-line tools: short random IDs,
public spreadsheet loading, HTML to Markdown conversion, repository collection
sizing and filename helpers.

Settings are read from utilities.yaml (current directory or
~/.config/utilities/) and UTILITIES_* environment variables; flags win.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger := logging.New(viper.GetString("log.level"), viper.GetString("log.format"), cmd.ErrOrStderr())
		slog.SetDefault(logger)
		cmd.SetContext(logging.WithLogger(cmd.Context(), logger))

		if configErr != nil {
			return fmt.Errorf("reading config: %w", configErr)
		}
		if f := viper.ConfigFileUsed(); f != "" {
			logger.Debug("using config file", "path", f)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./utilities.yaml or ~/.config/utilities/utilities.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error (env LOG_LEVEL)")
	rootCmd.PersistentFlags().String("log-format", "", "log format: text or json")
	bindFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	bindFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageErrorf("%v", err)
	})
	setDefaults()
}

func initConfig() {
	configErr = nil
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("utilities")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "utilities"))
		}
	}

	viper.SetEnvPrefix("UTILITIES")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()
	_ = viper.BindEnv("log.level", "UTILITIES_LOG_LEVEL", "LOG_LEVEL")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			configErr = err
		}
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}
