package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/claimcheck/internal/model"
	"github.com/ppiankov/claimcheck/internal/pipeline"
	"github.com/ppiankov/claimcheck/internal/progress"
	"github.com/ppiankov/claimcheck/internal/report"
)

// Flags shared by the pipeline commands
var (
	inputText   string
	outJSON     string
	outMD       string
	timeout     time.Duration
	noCache     bool
	noFooter    bool
	quiet       bool
	llmProvider string
	llmModel    string
	relayURL    string
	language    string
)

func addPipelineFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&llmProvider, "llm-provider", "", "LLM provider (ollama, openai, anthropic)")
	cmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Minute, "overall timeout")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "hide progress output")
}

func addVerifyFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&outJSON, "json", "", "write JSON report to path")
	cmd.Flags().StringVar(&outMD, "md", "", "write Markdown report to path")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the search result cache")
	cmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	cmd.Flags().StringVar(&relayURL, "relay-url", "", "web search relay URL (empty string keeps the configured value)")
	cmd.Flags().StringVar(&language, "lang", "", "language of verdict explanations for reconciliation (en, ru, all)")
}

// commandConfig loads configuration and applies command-line overrides
func commandConfig(cmd *cobra.Command) (*model.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	if llmProvider != "" {
		cfg.LLM.Provider = llmProvider
		cfg.LLM.APIKey = ""
		applyProviderEnv(cfg)
	}
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}
	if cmd.Flags().Changed("no-cache") {
		cfg.Cache.Enabled = !noCache
	}
	if cmd.Flags().Changed("no-footer") {
		cfg.Output.IncludeFooter = !noFooter
	}
	if cmd.Flags().Changed("relay-url") {
		cfg.Search.Web.RelayURL = relayURL
	}
	if language != "" {
		cfg.Pipeline.Language = language
	}
	if verbose {
		cfg.Output.Verbose = true
	}
	return cfg, nil
}

// newPipeline builds the pipeline and warns when the model endpoint is
// unreachable; the pipeline still degrades to its fallbacks
func newPipeline(ctx context.Context, cfg *model.Config) (*pipeline.Pipeline, error) {
	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return nil, err
	}

	checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if !p.Provider().IsAvailable(checkCtx) {
		fmt.Fprintf(os.Stderr, "⚠ LLM provider %s (%s) is not available; results will rely on fallbacks\n",
			cfg.LLM.Provider, cfg.LLM.Model)
	}
	return p, nil
}

// commandContext returns a context cancelled on interrupt or after timeout
func commandContext() (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	ctx, cancel := context.WithTimeout(ctx, timeout)
	return ctx, func() {
		cancel()
		stop()
	}
}

// progressSink prints progress lines to stderr unless --quiet is set
func progressSink() progress.Sink {
	if quiet {
		return progress.LogSink{}
	}
	return progress.Multi{progress.WriterSink{W: os.Stderr}, progress.LogSink{}}
}

// readInput returns the text to analyze: --text, a file argument, or stdin
func readInput(args []string, stdin io.Reader) (string, error) {
	var text string
	switch {
	case inputText != "":
		text = inputText
	case len(args) > 0 && args[0] != "-":
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		text = string(data)
	default:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		text = string(data)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("no input text")
	}
	return text, nil
}

// renderReport prints the summary and writes the requested report files
func renderReport(w io.Writer, r *model.Report, cfg *model.Config) error {
	renderer := report.NewRenderer(cfg.Output.IncludeFooter)

	if cfg.Output.Verbose {
		if err := renderer.WriteMarkdown(w, r); err != nil {
			return err
		}
	} else {
		renderer.WriteSummary(w, r)
	}

	if outJSON != "" {
		if err := renderer.RenderJSON(r, outJSON); err != nil {
			return fmt.Errorf("write JSON report: %w", err)
		}
		fmt.Fprintf(os.Stderr, "✓ JSON report: %s\n", outJSON)
	}
	if outMD != "" {
		if err := renderer.RenderMarkdown(r, outMD); err != nil {
			return fmt.Errorf("write Markdown report: %w", err)
		}
		fmt.Fprintf(os.Stderr, "✓ Markdown report: %s\n", outMD)
	}
	return nil
}
