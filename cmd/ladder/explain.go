package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/okian/ladder/internal/adapters/explain"
	service "github.com/okian/ladder/internal/app"
	"github.com/okian/ladder/internal/domain/bridge"
	"github.com/okian/ladder/internal/domain/slug"
)

var explainCmd = &cobra.Command{
	Use:   "explain <slug|url>",
	Short: "Ask the configured LLM CLI to explain or review a problem",
	Long: "Builds a prompt from the explain template (or the review template when --code-file is given), " +
		"appends the slug and rating, and runs the explainer with any existing files attached.",
	Args: cobra.ExactArgs(1),
	RunE: runExplain,
}

var (
	explainStatementFile string
	explainCodeFile      string
)

func init() {
	explainCmd.Flags().StringVar(&explainStatementFile, "statement-file", "", "Problem statement to attach")
	explainCmd.Flags().StringVar(&explainCodeFile, "code-file", "", "Your solution to attach for review")

	rootCmd.AddCommand(explainCmd)
}

func runExplain(cmd *cobra.Command, args []string) error {
	req, err := explainRequest(cmd.Context(), newService(), args[0], explainStatementFile, explainCodeFile)
	if err != nil {
		return err
	}
	return newExplainer(cmd).Run(cmd.Context(), req)
}

// explainRequest resolves ref and attaches its rating when indexed. An
// unindexed slug is still explained, with an unknown rating.
func explainRequest(ctx context.Context, svc *service.Service, ref, statementFile, codeFile string) (explain.Request, error) {
	req := explain.Request{
		Mode:          explain.ModeFor(codeFile),
		Slug:          slug.Resolve(ref),
		StatementFile: statementFile,
		CodeFile:      codeFile,
	}
	rec, err := svc.Lookup(ctx, req.Slug)
	switch {
	case err == nil:
		req.Rating = &rec.Rating
	case errors.Is(err, bridge.ErrUnknownIdentifier):
	default:
		return explain.Request{}, err
	}
	return req, nil
}
