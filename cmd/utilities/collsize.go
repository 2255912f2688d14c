// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/pdiddy/utilities/internal/collsize"
)

var collsizeCmd = &cobra.Command{
	Use:   "collection-size",
	Short: "Total the stored bytes of a repository collection",
	Long: `Collection-size pages through the repository search API for every item in
a collection, sums the items' stored sizes and prints the total in bytes and
human-readable units, along with the collection title when it is public.
Rate-limited requests (HTTP 429) are retried with backoff.

Example:
  utilities collection-size --collection-pid bdr:bwehb8b8`,
	Args: cobra.NoArgs,
	RunE: runCollectionSize,
}

func init() {
	collsizeCmd.Flags().String("collection-pid", "", "collection PID, e.g. bdr:bwehb8b8")
	collsizeCmd.Flags().Int("rows", 0, "search page size (default 500, usually the API maximum)")
	collsizeCmd.Flags().Bool("json", false, "print the result as JSON")
	bindFlag("collection.rows", collsizeCmd.Flags().Lookup("rows"))

	rootCmd.AddCommand(collsizeCmd)
}

func runCollectionSize(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	pid, _ := cmd.Flags().GetString("collection-pid")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	res, err := collsize.NewClient(cfg.Collection).Run(cmd.Context(), pid)
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	return collsize.PrintResults(cmd.OutOrStdout(), res)
}
