package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/karandeol-26/VeriCura/internal/app"
	"github.com/karandeol-26/VeriCura/internal/render"
	"github.com/karandeol-26/VeriCura/internal/utils"
)

// NewScanCmd creates the scan command.
func NewScanCmd(build AppBuilder) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan <url>...",
		Short: "Score one or more pages with the heuristic checks",
		Long: `Scan fetches each page and reports its heuristic credibility score,
label and the factors behind it. Pages are fetched concurrently.

Examples:
  vericura scan https://www.cdc.gov/flu/
  vericura scan -f json https://example.com/a https://example.com/b
  vericura scan --crawl health.example.com`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := formatFlag(cmd)
			if err != nil {
				return err
			}
			crawl, _ := cmd.Flags().GetBool("crawl")
			return withApplication(cmd, build, func(ctx context.Context, a *app.Application) error {
				return runScan(ctx, cmd, a, normalizeURLs(args), format, crawl)
			})
		},
	}
	addFormatFlag(cmd)
	cmd.Flags().Bool("crawl", false, "also scan same-site pages linked from each URL")
	return cmd
}

// normalizeURLs lets bare hosts like "example.com/a" stand for https URLs.
// Arguments that do not parse are passed through and fail at fetch time.
func normalizeURLs(args []string) []string {
	out := make([]string, len(args))
	for i, arg := range args {
		u, err := utils.Canonicalize(arg, utils.CanonicalizeOptions{DefaultScheme: "https"})
		if err != nil {
			u = arg
		}
		out[i] = u
	}
	return out
}

func runScan(ctx context.Context, cmd *cobra.Command, a *app.Application, urls []string, format string, crawl bool) error {
	scan := a.Orch.ScanURLs
	if crawl {
		scan = a.Orch.CrawlScan
	}
	results, err := scan(ctx, urls)
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}
	out := cmd.OutOrStdout()
	if format == FormatJSON {
		return writeJSON(out, results)
	}
	for i, r := range results {
		if i > 0 && format == FormatMarkdown {
			fmt.Fprintln(out)
		}
		if err := writeView(out, format, render.NewView(r.URL, r.Outcome, nil)); err != nil {
			return err
		}
	}
	return nil
}
