package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/claimcheck/internal/store"
)

var extractJSON bool

// extractCmd lists the claims found in a text without verifying them
var extractCmd = &cobra.Command{
	Use:   "extract [file]",
	Short: "Extract atomic factual claims from text",
	Long: `Extract prints the unique factual claims found in a text, one per line.
The output can be edited and passed to 'claimcheck verify --file'.

Example:
  claimcheck extract article.txt > claims.txt
  claimcheck extract --text "Paris is the capital of France." --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVar(&inputText, "text", "", "text to analyze")
	extractCmd.Flags().BoolVar(&extractJSON, "json", false, "print claims as JSON")
	addPipelineFlags(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	text, err := readInput(args, cmd.InOrStdin())
	if err != nil {
		return err
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

	claims, err := p.Extract(ctx, text, store.New(), progressSink())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if extractJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(claims)
	}
	for _, c := range claims {
		fmt.Fprintln(out, c.Text)
	}
	return nil
}
