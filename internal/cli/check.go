package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// checkCmd runs the whole pipeline
var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Extract claims from text and verify each against sources",
	Long: `Check runs the full pipeline on a text:
- Extract atomic factual claims with the language model
- Publish every extracted claim
- Gather evidence from Wikipedia and the web for each claim
- Ask the model for a verdict grounded in that evidence
- Correct verdicts contradicted by their own explanation

Input is read from the file argument, --text, or stdin.

Example:
  claimcheck check article.txt
  claimcheck check --text "The Eiffel Tower is 324 meters tall."
  cat article.txt | claimcheck check --json report.json --md report.md
  claimcheck check article.txt --llm-provider openai --llm-model gpt-4o-mini`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&inputText, "text", "", "text to check")
	addPipelineFlags(checkCmd)
	addVerifyFlags(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
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

	report, err := p.Check(ctx, text, progressSink())
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	return renderReport(cmd.OutOrStdout(), report, cfg)
}
