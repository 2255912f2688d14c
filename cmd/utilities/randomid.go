// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/utilities/internal/idgen"
)

var randomIDCmd = &cobra.Command{
	Use:   "random-id",
	Short: "Print a short random ID without confusable characters",
	Long: `Random-id prints IDs drawn uniformly from lowercase and uppercase letters
and digits, leaving out characters that are easy to misread (0 O o 1 l I i).
The default length is 10.

--stats reports on stderr roughly how many IDs of the chosen length can be
generated before a collision becomes likely.`,
	Args: cobra.NoArgs,
	RunE: runRandomID,
}

func init() {
	randomIDCmd.Flags().IntP("length", "l", idgen.DefaultLength, "number of characters in each ID")
	randomIDCmd.Flags().Int("count", 1, "number of IDs to print")
	randomIDCmd.Flags().Bool("uuid", false, "print random v4 UUIDs instead")
	randomIDCmd.Flags().Bool("stats", false, "report the collision-safe ID count for the length")
	bindFlag("random_id.length", randomIDCmd.Flags().Lookup("length"))

	rootCmd.AddCommand(randomIDCmd)
}

func runRandomID(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	count, _ := cmd.Flags().GetInt("count")
	useUUID, _ := cmd.Flags().GetBool("uuid")
	stats, _ := cmd.Flags().GetBool("stats")

	if count < 1 {
		return usageErrorf("count must be a positive integer: got %d", count)
	}
	out := cmd.OutOrStdout()

	if useUUID {
		for range count {
			fmt.Fprintln(out, idgen.UUID())
		}
		return nil
	}

	ids, err := idgen.GenerateN(cfg.RandomID.Length, count)
	if err != nil {
		return err
	}
	for _, id := range ids {
		fmt.Fprintln(out, id)
	}

	if stats {
		fmt.Fprintf(cmd.ErrOrStderr(), "alphabet: %d characters, length %d: about %.0f IDs before a %g chance of any collision\n",
			len(idgen.Alphabet), cfg.RandomID.Length, idgen.MaxIDs(cfg.RandomID.Length, idgen.DefaultEpsilon), idgen.DefaultEpsilon)
	}
	return nil
}
