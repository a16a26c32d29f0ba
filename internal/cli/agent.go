package cli

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"

	"github.com/karandeol-26/VeriCura/internal/app"
	"github.com/karandeol-26/VeriCura/internal/bridge"
	"github.com/karandeol-26/VeriCura/internal/browser"
	"github.com/karandeol-26/VeriCura/internal/locator"
	"github.com/karandeol-26/VeriCura/internal/logging"
	"github.com/karandeol-26/VeriCura/internal/webclient"
)

// AgentPath is where the agent accepts bridge connections.
const AgentPath = "/bridge"

// NewAgentCmd creates the agent command.
func NewAgentCmd(build AppBuilder) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agent <url>",
		Short: "Serve one page's data and highlights over the bridge",
		Long: `Agent plays the page side of the bridge: it loads the page and answers
page-data and highlight requests on ws://<listen>` + AgentPath + `.
Point a session at it with {"agent": "ws://<listen>` + AgentPath + `"}.

With --browser the page is opened in headless Chrome, so highlights scroll
and pulse a real rendered page. Without it the page is fetched and parsed
in memory.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			listen, err := cmd.Flags().GetString("listen")
			if err != nil {
				return err
			}
			useBrowser, err := cmd.Flags().GetBool("browser")
			if err != nil {
				return err
			}
			return withApplication(cmd, build, func(ctx context.Context, a *app.Application) error {
				handler, closeFn, err := agentPage(ctx, a, args[0], useBrowser)
				if err != nil {
					return err
				}
				defer closeFn()

				agent, err := bridge.NewAgent(handler, a.Logger)
				if err != nil {
					return err
				}
				r := chi.NewRouter()
				r.Handle(AgentPath, agent)
				srv := &http.Server{Addr: listen, Handler: r, ReadHeaderTimeout: 10 * time.Second}
				fmt.Fprintf(cmd.OutOrStdout(), "agent for %s on ws://%s%s\n", args[0], listen, AgentPath)
				return listenUntilSignal(ctx, srv, a.Logger)
			})
		},
	}
	cmd.Flags().StringP("listen", "l", "localhost:9333", "Listen address")
	cmd.Flags().BoolP("browser", "b", false, "Open the page in headless Chrome")
	return cmd
}

// agentPage returns the page handler for pageURL and a function releasing it.
func agentPage(ctx context.Context, a *app.Application, pageURL string, useBrowser bool) (bridge.PageHandler, func(), error) {
	if !useBrowser {
		page := a.Comps.PageForURL(pageURL)
		if _, err := page.PageData(ctx); err != nil {
			return nil, nil, fmt.Errorf("load %s: %w", pageURL, err)
		}
		return page, func() {}, nil
	}

	wcCfg := a.Config.WebClient
	wcCfg.Client = webclient.ClientChromedp
	chrome, err := webclient.NewChromedpClient(wcCfg, a.Logger)
	if err != nil {
		return nil, nil, err
	}
	tab, err := browser.Open(ctx, chrome, pageURL, a.Logger)
	if err != nil {
		_ = chrome.Close()
		return nil, nil, err
	}
	release := func() {
		_ = tab.Close()
		_ = chrome.Close()
	}
	loc, err := locator.New(tab, a.Config.Locator, a.Logger)
	if err != nil {
		release()
		return nil, nil, err
	}
	page, err := bridge.NewPage(tab, loc)
	if err != nil {
		release()
		return nil, nil, fmt.Errorf("agent: browser page: %w", err)
	}
	a.Logger.Info("agent page opened in browser", logging.Field{Key: "url", Value: pageURL})
	return page, release, nil
}
