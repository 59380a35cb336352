package interpret

import (
	"fmt"
	"strings"

	"github.com/ppiankov/claimcheck/internal/model"
)

const interpretationSystem = `You are a fact-checking expert. You compare a claim with the provided sources and give an objective assessment. You answer with a single JSON object and nothing else.`

const interpretationTemplate = `Analyze the claim based on the provided sources and give an objective assessment.

**CLAIM TO VERIFY:**
"%s"

**FOUND SOURCES:**
%s
**INSTRUCTIONS:**
1. Carefully analyze the claim and compare it with the information from the sources.
2. Determine the status EXACTLY based on factual correspondence:
   - "Verified": The claim FULLY and ACCURATELY MATCHES the sources
   - "Misleading": The claim CONTRADICTS the sources, DISTORTS facts, or contains INACCURACIES
   - "Unverified": Not enough information to determine
3. In the explanation, you MUST specify:
   - What exactly the claim says
   - What the sources show
   - Whether there is a contradiction or correspondence
   - Use words like "contradicts", "does not match", "confirmed", "matches"
4. Assess confidence as an integer from 0 to 100.
5. Write the explanation in English.

**CRITICALLY IMPORTANT - CONTRADICTION CHECK:**
- NEGATION vs AFFIRMATION: "does NOT have" vs "HAS" = Misleading
- DIFFERENT FACTS: "YES" vs "NO", different dates, numbers, names = Misleading
- OPPOSITES: any contradiction between the claim and the sources = Misleading
- DISTORTIONS: even minor factual inaccuracies = Misleading

**ANALYSIS EXAMPLES:**
- Claim: "Elon Musk has no children" + Source: "Elon Musk has children" → Misleading (contradicts sources)
- Claim: "Bitcoin was created in 2009" + Source: "Bitcoin was created in 2008" → Misleading (inaccurate date)
- Claim: "Paris is the capital of France" + Source: "Paris is the capital of France" → Verified (fully matches)

In the explanation, use phrases like:
- "The claim contradicts the sources..."
- "Sources show that..."
- "This claim does not match the facts..."
- "The claim is confirmed by the sources..."

Respond in JSON format:
{
  "status": "Verified | Unverified | Misleading",
  "explanation": "Detailed explanation with clear indication of correspondence/contradiction and references to sources",
  "confidence": <integer from 0 to 100>
}`

// interpretationPrompt renders the prompt for a claim and its bundle. The
// output depends only on its inputs.
func interpretationPrompt(claimText string, bundle model.Bundle) string {
	return fmt.Sprintf(interpretationTemplate, claimText, formatSources(bundle))
}

func formatSources(bundle model.Bundle) string {
	var b strings.Builder
	for i, r := range bundle.Records {
		fmt.Fprintf(&b, "Source %d (%s):\nTitle: %s\nContent: %s\nURL: %s\n\n", i+1, r.Kind, r.Title, r.Snippet, r.URL)
	}
	return b.String()
}
