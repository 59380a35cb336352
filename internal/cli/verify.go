package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/claimcheck/internal/report"
	"github.com/ppiankov/claimcheck/internal/store"
	"github.com/ppiankov/claimcheck/internal/worker"
)

var claimsFile string

// verifyCmd verifies claims given directly, skipping extraction
var verifyCmd = &cobra.Command{
	Use:   "verify [claim...]",
	Short: "Verify curated claims against sources",
	Long: `Verify publishes the given claims and verifies each one in order.
Claims come from arguments or from --file (one per line, '#' comments
ignored), such as the edited output of 'claimcheck extract'.

Example:
  claimcheck verify "The Eiffel Tower is 324 meters tall."
  claimcheck verify --file claims.txt --md report.md`,
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().StringVarP(&claimsFile, "file", "f", "", "file with one claim per line")
	addPipelineFlags(verifyCmd)
	addVerifyFlags(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	texts := append([]string(nil), args...)
	if claimsFile != "" {
		lines, err := worker.ReadLines(claimsFile)
		if err != nil {
			return fmt.Errorf("read claims: %w", err)
		}
		texts = append(texts, lines...)
	}
	if len(texts) == 0 {
		return fmt.Errorf("no claims given; pass claims as arguments or use --file")
	}

	cfg, err := commandConfig(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	p, err := newPipeline(ctx, cfg)
	if err != nil {
		return err
	}

	s := store.New()
	s.AddExtracted(texts)

	published, err := p.Publish(ctx, s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "⚠ %v\n", err)
	}
	if published == 0 {
		return fmt.Errorf("no claims published")
	}

	if _, err := p.Verify(ctx, s, progressSink()); err != nil {
		return fmt.Errorf("verify failed: %w", err)
	}

	r := report.Build(strings.Join(texts, "\n"), s.List(), p.LLMInfo(), time.Now())
	return renderReport(cmd.OutOrStdout(), r, cfg)
}
