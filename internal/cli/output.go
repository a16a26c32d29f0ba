package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/karandeol-26/VeriCura/internal/render"
)

// Output formats accepted by --format.
const (
	FormatMarkdown = "md"
	FormatHTML     = "html"
	FormatJSON     = "json"
)

func addFormatFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", FormatMarkdown, "Output format: md, html or json")
}

func formatFlag(cmd *cobra.Command) (string, error) {
	f, err := cmd.Flags().GetString("format")
	if err != nil {
		return "", err
	}
	switch f {
	case FormatMarkdown, FormatHTML, FormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q (want md, html or json)", f)
}

func writeView(w io.Writer, format string, v render.View) error {
	switch format {
	case FormatHTML:
		return render.HTML(w, v)
	case FormatJSON:
		return writeJSON(w, map[string]any{"scan": v.Scan, "analysis": v.Analysis})
	default:
		return render.Markdown(w, v)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
