package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	paragraphSplit = regexp.MustCompile(`\n\s*\n|\n`)
	sentenceSplit  = regexp.MustCompile(`[.!?]+`)
)

// minFragmentLen drops sentence fragments too short to carry a claim
const minFragmentLen = 10

// splitParagraphs splits on blank lines and single newlines, dropping empty
// pieces
func splitParagraphs(text string) []string {
	var out []string
	for _, p := range paragraphSplit.Split(text, -1) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// splitChunks returns the units processed by the chunked strategy:
// paragraphs, or sentences when the text is a single paragraph
func splitChunks(text string) []string {
	paragraphs := splitParagraphs(text)
	if len(paragraphs) > 1 {
		return paragraphs
	}

	var sentences []string
	for _, s := range sentenceSplit.Split(text, -1) {
		s = strings.TrimSpace(s)
		if utf8.RuneCountInString(s) > minFragmentLen {
			sentences = append(sentences, s+".")
		}
	}
	return sentences
}

// dedupeClaims removes exact duplicates, keeping first-seen order
func dedupeClaims(claims []string) []string {
	seen := make(map[string]bool, len(claims))
	unique := make([]string, 0, len(claims))

	for _, claim := range claims {
		if !seen[claim] {
			seen[claim] = true
			unique = append(unique, claim)
		}
	}

	return unique
}
