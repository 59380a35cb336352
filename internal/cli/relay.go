package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/ppiankov/claimcheck/internal/relay"
	"github.com/ppiankov/claimcheck/internal/worker"
)

var (
	relayListen  string
	relayCommand string
	relayNoCache bool
	relayOrigins []string
)

// relayCmd serves web search for the web evidence adapter
var relayCmd = &cobra.Command{
	Use:   "relay",
	Short: "Run the web search relay service",
	Long: `Relay serves web search results over HTTP for the web evidence adapter.

Endpoints:
  GET  /health
  GET  /metrics
  POST /search                  {"query": "..."}
  POST /api/search/duckduckgo   (alias)

Results come from an external search command when one is configured
(relay.command), otherwise from the built-in DuckDuckGo scraper, which
honors robots.txt when relay.respect_robots is set.

Example:
  claimcheck relay
  claimcheck relay --listen :3001 --command ddg-search`,
	Args: cobra.NoArgs,
	RunE: runRelay,
}

func init() {
	rootCmd.AddCommand(relayCmd)

	relayCmd.Flags().StringVar(&relayListen, "listen", "", "listen address (default from config, :3001)")
	relayCmd.Flags().StringVar(&relayCommand, "command", "", "external search command")
	relayCmd.Flags().BoolVar(&relayNoCache, "no-cache", false, "disable the relay result cache")
	relayCmd.Flags().StringSliceVar(&relayOrigins, "cors-origin", nil, "allowed CORS origins (default: any)")
}

func runRelay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if relayListen != "" {
		cfg.Relay.Listen = relayListen
	}
	if relayCommand != "" {
		cfg.Relay.Command = relayCommand
	}
	if cmd.Flags().Changed("no-cache") {
		cfg.Relay.NoCache = relayNoCache
	}

	if !verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend := relay.NewBackend(cfg.Relay, cfg.HTTP, worker.NewLimiterFromConfig(cfg.RateLimiting))
	server := relay.NewServer(backend, relay.ServerOptions{
		Limit:        cfg.Relay.Limit,
		NoCache:      cfg.Relay.NoCache,
		AllowOrigins: relayOrigins,
	})

	fmt.Fprintf(os.Stderr, "claimcheck relay on %s (backend: %s)\n", cfg.Relay.Listen, backend.Name())
	return server.ListenAndServe(ctx, cfg.Relay.Listen)
}
