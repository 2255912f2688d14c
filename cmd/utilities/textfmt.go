// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/utilities/internal/textfmt"
)

// now is the clock used by date-prefix.
var now = time.Now

var underscoreCmd = &cobra.Command{
	Use:   "underscore",
	Short: "Replace spaces with underscores",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := requiredSource(cmd)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), textfmt.Underscore(src))
		return nil
	},
}

var datePrefixCmd = &cobra.Command{
	Use:   "date-prefix",
	Short: "Prefix text with today's date, optionally with the time",
	Long: `Date-prefix prints the source text prefixed with the local date
(2025-09-06_text), or with date and time when --add_timestamp is "true"
(2025-09-06T21:46:45_text).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := requiredSource(cmd)
		if err != nil {
			return err
		}
		withTime, _ := cmd.Flags().GetString("add_timestamp")
		fmt.Fprintln(cmd.OutOrStdout(), textfmt.DatePrefix(src, now(), textfmt.ParseBoolFlag(withTime)))
		return nil
	},
}

func init() {
	underscoreCmd.Flags().String("source", "", "text to transform")
	datePrefixCmd.Flags().String("source", "", "text to transform")
	datePrefixCmd.Flags().String("add_timestamp", "false", `"true" adds HH:MM:SS after the date`)

	rootCmd.AddCommand(underscoreCmd, datePrefixCmd)
}

func requiredSource(cmd *cobra.Command) (string, error) {
	if !cmd.Flags().Changed("source") {
		return "", usageErrorf("--source is required")
	}
	src, _ := cmd.Flags().GetString("source")
	return src, nil
}
