package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/karandeol-26/VeriCura/internal/app"
	"github.com/karandeol-26/VeriCura/internal/model"
)

// NewHighlightCmd creates the highlight command.
func NewHighlightCmd(build AppBuilder) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "highlight <url>",
		Short: "Show which element a factor or text would highlight",
		Long: `Highlight loads the page, resolves an issue id or a piece of text to
the element the extension would scroll to, and prints how it was found.

Examples:
  vericura highlight --issue no-author https://example.com/article
  vericura highlight --title "Flush toxins myth" https://example.com/article`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := highlightRequest(cmd)
			if err != nil {
				return err
			}
			return withApplication(cmd, build, func(ctx context.Context, a *app.Application) error {
				resp, err := highlightURL(ctx, a, args[0], req)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if resp.OK {
					fmt.Fprintf(out, "found via %s\n", resp.Via)
				} else {
					fmt.Fprintln(out, "no matching element")
				}
				return nil
			})
		},
	}
	cmd.Flags().StringP("issue", "i", "", "Issue id, e.g. no-author or sensational-language")
	cmd.Flags().StringP("title", "t", "", "Short text to match")
	cmd.Flags().String("text", "", "Longer text to match when the title finds nothing")
	return cmd
}

func highlightRequest(cmd *cobra.Command) (model.HighlightRequest, error) {
	var req model.HighlightRequest
	var err error
	if req.IssueID, err = cmd.Flags().GetString("issue"); err != nil {
		return req, err
	}
	if req.TextTitle, err = cmd.Flags().GetString("title"); err != nil {
		return req, err
	}
	if req.TextFull, err = cmd.Flags().GetString("text"); err != nil {
		return req, err
	}
	if req == (model.HighlightRequest{}) {
		return req, errors.New("one of --issue, --title or --text is required")
	}
	return req, nil
}

func highlightURL(ctx context.Context, a *app.Application, pageURL string, req model.HighlightRequest) (model.HighlightResponse, error) {
	s, err := a.Orch.CreateSession(nil)
	if err != nil {
		return model.HighlightResponse{}, err
	}
	defer func() { _ = a.Orch.CloseSession(s.ID()) }()

	if _, err := a.Orch.OpenURL(s.ID(), pageURL); err != nil {
		return model.HighlightResponse{}, err
	}
	if scan := s.Scan(ctx); scan.Kind == app.OutcomeScanFailed {
		return model.HighlightResponse{}, fmt.Errorf("load %s: %s", pageURL, scan.Error)
	}
	return s.HighlightRequest(ctx, req), nil
}
