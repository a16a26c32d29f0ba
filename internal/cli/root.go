// Package cli is the vericura command line: one-off scans and analyses,
// highlight checks, the page agent and the HTTP server.
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/karandeol-26/VeriCura/internal/app"
	"github.com/karandeol-26/VeriCura/internal/logging"
)

// AppBuilder builds the application a command runs against.
type AppBuilder func(cmd *cobra.Command) (*app.Application, error)

// NewRootCmd creates the root command. build may be nil to load the
// configuration from flags, files and the environment.
func NewRootCmd(build AppBuilder) *cobra.Command {
	if build == nil {
		build = LoadApplication
	}
	cmd := &cobra.Command{
		Use:   "vericura",
		Short: "Check how credible a health web page is",
		Long: `VeriCura scores health and medical web pages with fast heuristics
(trusted sources, author credits, sensational or commercial language) and,
when an xAI API key is configured, a deep AI analysis of the page's claims.

Configuration is read from ` + app.DefaultConfigPath() + `
(or --config), then from XAI_API_KEY and VERICURA_* environment variables.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().StringP("config", "c", "", "Configuration file path")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewScanCmd(build))
	cmd.AddCommand(NewAnalyzeCmd(build))
	cmd.AddCommand(NewHighlightCmd(build))
	cmd.AddCommand(NewAgentCmd(build))
	cmd.AddCommand(NewServeCmd(build))
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd(nil).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger logs to the command's stderr; --verbose enables debug entries.
func newLogger(cmd *cobra.Command) logging.Logger {
	level := logging.LevelWarn
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = logging.LevelDebug
	}
	return logging.NewWriterLogger(cmd.ErrOrStderr(), "vericura", level)
}

// LoadApplication is the default AppBuilder.
func LoadApplication(cmd *cobra.Command) (*app.Application, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := app.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return app.NewApplication(cfg, newLogger(cmd))
}

// withApplication builds the application, runs fn and shuts it down.
func withApplication(cmd *cobra.Command, build AppBuilder, fn func(ctx context.Context, a *app.Application) error) error {
	a, err := build(cmd)
	if err != nil {
		return err
	}
	if err := a.Start(); err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := a.Shutdown(ctx); err != nil {
			a.Logger.Warn("shutdown", logging.Field{Key: "error", Value: err.Error()})
		}
	}()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return fn(ctx, a)
}
