package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var buildIndexCmd = &cobra.Command{
	Use:   "build-index",
	Short: "Parse a ratings table into the JSON snapshot",
	Long: "Reads a plain-text ratings table line by line, keeps every line that carries a slug and a " +
		"decimal rating, and writes the resulting index atomically. Later lines win on duplicate slugs.",
	Args: cobra.NoArgs,
	RunE: runBuildIndex,
}

var (
	buildIndexRatingsFile string
	buildIndexOut         string
)

func init() {
	buildIndexCmd.Flags().StringVarP(&buildIndexRatingsFile, "ratings-file", "r", "", "Path to the ratings table (default from ratings_file)")
	buildIndexCmd.Flags().StringVarP(&buildIndexOut, "out", "o", "", "Path to the output snapshot (default from snapshot_path)")

	rootCmd.AddCommand(buildIndexCmd)
}

func runBuildIndex(cmd *cobra.Command, _ []string) error {
	src := buildIndexRatingsFile
	if src == "" {
		src = cfg.RatingsFile
	}
	if src == "" {
		return errors.New("--ratings-file is required")
	}
	out := buildIndexOut
	if out == "" {
		out = cfg.SnapshotPath
	}

	n, err := newService().Build(cmd.Context(), src, out)
	if err != nil {
		return fmt.Errorf("failed to build index: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d problems -> %s\n", n, out)
	return nil
}
