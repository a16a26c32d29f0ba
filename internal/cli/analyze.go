package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/karandeol-26/VeriCura/internal/app"
	"github.com/karandeol-26/VeriCura/internal/render"
)

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd(build AppBuilder) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <url>",
		Short: "Scan a page, then run deep AI analysis on it",
		Long: `Analyze scans the page and, when it is health content, asks the
configured xAI model to review its claims and authors. The AI score replaces
the heuristic score; always-credible institutions never drop below 95.

Deep analysis needs XAI_API_KEY (or analyzer.api_key in the config file).
Without it the report says so and keeps the heuristic score.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := formatFlag(cmd)
			if err != nil {
				return err
			}
			return withApplication(cmd, build, func(ctx context.Context, a *app.Application) error {
				view, err := analyzeURL(ctx, a, args[0])
				if err != nil {
					return err
				}
				return writeView(cmd.OutOrStdout(), format, view)
			})
		},
	}
	addFormatFlag(cmd)
	return cmd
}

// analyzeURL runs one scan and, on a report, one deep analysis in a
// throwaway session.
func analyzeURL(ctx context.Context, a *app.Application, pageURL string) (render.View, error) {
	s, err := a.Orch.CreateSession(nil)
	if err != nil {
		return render.View{}, err
	}
	defer func() { _ = a.Orch.CloseSession(s.ID()) }()

	if _, err := a.Orch.OpenURL(s.ID(), pageURL); err != nil {
		return render.View{}, err
	}
	scan := s.Scan(ctx)
	var analysis *app.AnalysisOutcome
	if scan.Kind == app.OutcomeReport {
		out := s.DeepAnalyze(ctx)
		analysis = &out
	}
	return render.NewView(pageURL, scan, analysis), nil
}
