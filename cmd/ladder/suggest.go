package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/okian/ladder/internal/domain/bridge"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest <slug|url>",
	Short: "Suggest strictly easier bridge problems as JSON",
	Long: "Lists problems rated strictly below the target and within --delta of it, ranked by shared " +
		"slug words first and by rating gap second.",
	Args: cobra.ExactArgs(1),
	RunE: runSuggest,
}

var (
	suggestDelta float64
	suggestLimit int
)

func init() {
	suggestCmd.Flags().Float64VarP(&suggestDelta, "delta", "d", bridge.DefaultDelta, "Maximum rating gap below the target")
	suggestCmd.Flags().IntVarP(&suggestLimit, "limit", "n", bridge.DefaultLimit, "Maximum number of bridges")

	rootCmd.AddCommand(suggestCmd)
}

type suggestTarget struct {
	Slug   string  `json:"slug"`
	Rating float64 `json:"rating"`
}

type suggestOutput struct {
	Target  suggestTarget      `json:"target"`
	Bridges []bridge.Candidate `json:"bridges"`
}

func runSuggest(cmd *cobra.Command, args []string) error {
	delta, limit := queryDefaults(cmd, suggestDelta, suggestLimit)
	res, err := newService().Suggest(cmd.Context(), args[0], delta, limit)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(suggestOutput{
		Target:  suggestTarget{Slug: res.Target.Slug, Rating: res.Target.Rating},
		Bridges: res.Bridges,
	})
}
