// Probe program showing the evidence gathered for sample claims, with the
// authority tier of each source. No language model is involved.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ppiankov/claimcheck/internal/evidence"
	"github.com/ppiankov/claimcheck/internal/evidence/adapters"
	"github.com/ppiankov/claimcheck/internal/model"
	"github.com/ppiankov/claimcheck/internal/util"
	"github.com/ppiankov/claimcheck/internal/worker"
)

func main() {
	fmt.Println("=== Evidence Probe ===")
	fmt.Println()

	claims := os.Args[1:]
	if len(claims) == 0 {
		claims = []string{
			"The Eiffel Tower is 324 meters tall.",
			"Borscht originates from Kyivan Rus.",
		}
	}

	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = false
	// Without a relay the web adapter goes straight to the Instant Answer API
	cfg.Search.Web.RelayURL = os.Getenv("CLAIMCHECK_RELAY_URL")

	client := util.NewHTTPClient(cfg.HTTP, cfg.HTTP.Timeout)
	encyclopedia, web := adapters.NewSearchers(cfg, client, worker.NewLimiterFromConfig(cfg.RateLimiting), nil)
	aggregator := evidence.NewAggregator(encyclopedia, web)
	classifier := evidence.NewAuthorityClassifier(&cfg.Authority)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	for _, claim := range claims {
		fmt.Printf("Claim: %s\n", claim)
		fmt.Printf("  Keywords: %s\n", strings.Join(adapters.ExtractKeywords(claim, cfg.Search.Wikipedia.MaxKeywords), ", "))
		fmt.Println(strings.Repeat("-", 60))

		bundle := aggregator.Gather(ctx, claim, nil)
		if bundle.IsEmpty() {
			fmt.Println("  ✗ No evidence found")
			fmt.Println()
			continue
		}

		fmt.Printf("  ✓ %d records (%d encyclopedia, %d web)\n",
			bundle.Len(), bundle.CountKind(model.SourceEncyclopedia), bundle.CountKind(model.SourceWeb))
		for i, source := range classifier.Sources(bundle) {
			fmt.Printf("    %d. [%s, %s] %s\n", i+1, source.Kind, source.Authority, source.Title)
			if source.URL != "" {
				fmt.Printf("       %s\n", source.URL)
			}
		}
		fmt.Println()
	}

	fmt.Println("=== Probe Complete ===")
}
