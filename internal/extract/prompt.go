package extract

import "fmt"

const extractionSystem = "You are an expert in information analysis. You answer with JSON only."

// extractionPrompt asks for atomic, self-contained claims as {"claims": [...]}
func extractionPrompt(text string) string {
	return fmt.Sprintf(`Your task is to extract all verifiable factual claims from the given text. Each claim must be COMPLETE and SELF-CONTAINED with all necessary context for verification.

CRITICAL REQUIREMENTS:
1. Include ALL names, titles, dates, and specific details
2. Never use pronouns (he, she, it, they) - always use the actual names
3. Each claim must be independently verifiable without referring to other claims
4. Include full titles of books, movies, works, etc.
5. Be specific about WHO did WHAT, WHEN, and WHERE
6. Skip opinions, predictions and subjective statements

GOOD Examples:
- "Robert Heinlein wrote the novel 'The Unpleasant Profession of Jonathan Hoag'"
- "The novel 'The Unpleasant Profession of Jonathan Hoag' was first published in October 1942"
- "The Eiffel Tower is 324 meters tall"

BAD Examples (DO NOT DO THIS):
- "The novel is about..." (which novel?)
- "He wrote it in 1942" (who is "he"? what is "it"?)
- "It was published..." (what was published?)

Example Input:
"The novel 'Dune' by Frank Herbert was published in 1965. The book won the Hugo Award. It tells the story of Paul Atreides."

Example Output:
{
  "claims": [
    "Frank Herbert wrote the novel 'Dune'",
    "The novel 'Dune' was published in 1965",
    "The novel 'Dune' won the Hugo Award",
    "The novel 'Dune' tells the story of Paul Atreides"
  ]
}

Respond with a JSON object of the form {"claims": ["..."]}. Use an empty list when the text contains no verifiable facts.

**Text to Analyze:**
"%s"
`, text)
}
