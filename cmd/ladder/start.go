package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/okian/ladder/internal/adapters/explain"
	"github.com/okian/ladder/pkg/linescan"
	"github.com/okian/ladder/pkg/logger"
)

var startCmd = &cobra.Command{
	Use:   "start <slug|url>",
	Short: "Explain a problem, then offer a full solution or easier bridges",
	Long: "Computes bridges with the configured delta and limit, runs the explainer, and then asks " +
		"whether to solve the problem or list the bridges. --non-interactive prints the bridges " +
		"instead of asking.",
	Args: cobra.ExactArgs(1),
	RunE: runStart,
}

var (
	startStatementFile string
	startCodeFile      string
	startNonInteract   bool
)

func init() {
	startCmd.Flags().StringVar(&startStatementFile, "statement-file", "", "Problem statement to attach")
	startCmd.Flags().StringVar(&startCodeFile, "code-file", "", "Your solution to attach for review")
	startCmd.Flags().BoolVar(&startNonInteract, "non-interactive", false, "Skip the choice prompt; print analysis and bridges")

	rootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	svc := newService()

	delta, limit := svc.Defaults()
	res, err := svc.Suggest(ctx, args[0], delta, limit)
	if err != nil {
		return err
	}

	runner := newExplainer(cmd)
	req := explain.Request{
		Mode:          explain.ModeFor(startCodeFile),
		Slug:          res.Target.Slug,
		Rating:        &res.Target.Rating,
		StatementFile: startStatementFile,
		CodeFile:      startCodeFile,
	}
	if err := runner.Run(ctx, req); err != nil {
		logger.Get().Warn(ctx, "explainer unavailable", logger.String("slug", req.Slug), logger.Error(err))
	}

	if startNonInteract {
		printBridges(out, res.Bridges)
		return nil
	}

	fmt.Fprint(out, choicePrompt)
	switch readChoice(cmd.InOrStdin()) {
	case "bridges":
		printBridges(out, res.Bridges)
	case "solve":
		req.Mode = explain.ModeSolve
		return runner.Run(ctx, req)
	}
	return nil
}

// readChoice reads one answer line. EOF and read errors count as an empty
// answer.
func readChoice(r io.Reader) string {
	sc := linescan.New(r)
	if !sc.Scan() {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(sc.Text()))
}
