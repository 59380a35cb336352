package reconcile

import (
	"fmt"
	"regexp"
	"strings"
)

// English markers. Explanations are requested in English, so this is the
// default set.
var englishContradictions = []string{
	"contradicts",
	"contradicted",
	"contrary to",
	"does not match",
	"doesn't match",
	"do not match",
	"did not match",
	"inconsistent with",
	"not confirmed",
	"not accurate",
	"not correct",
	"not consistent with",
	"not in agreement with",
	"inaccurate",
	"incorrect",
	"is false",
	"is untrue",
	"is wrong",
	"refutes",
	"refuted",
	"disproves",
	"disproved",
	"debunked",
	"in reality",
	"the opposite",
}

var englishConfirmations = []string{
	"confirmed",
	"confirms",
	"confirm",
	"matches",
	"consistent with",
	"corroborate",
	"accurate",
	"correct",
	"in agreement with",
}

var englishNegations = []string{
	"unconfirmed",
	"cannot be confirmed",
	"could not be confirmed",
	"could not confirm",
	"cannot confirm",
	"unable to confirm",
	"not enough information",
	"not corroborated",
}

// Negated confirmation verbs ("do not confirm", "don't corroborate",
// "nothing in the sources supports") carry no signal either way
var englishNegationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:\bnot|n['’]t|\bnever|\bno\s+longer|\bcannot)\s+(?:\p{L}+\s+)?(?:confirm|corroborat|match|agree|support)\p{L}*`),
	regexp.MustCompile(`\b(?:nothing|none|no\s+sources?)\s+(?:\p{L}+\s+){0,4}?(?:confirm|corroborat|match|agree|support)\p{L}*`),
}

var englishPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:the\s+)?(?:claim|statement)\s+is\s+(?:false|incorrect|inaccurate|wrong|untrue)\b`),
	regexp.MustCompile(`(?i)\b(?:does|do)\s+not\s+(?:match|agree\s+with|correspond\s+to)\s+(?:the\s+)?(?:data|information|facts|sources|evidence)\b`),
	regexp.MustCompile(`(?i)\b(?:in\s+fact|actually),?\s+(?:\p{L}+\s+){0,3}(?:was|were|is|are|has|had)\s+(?:not|never)\b`),
	regexp.MustCompile(`(?i)\bsources?\s+(?:show|shows|indicate|indicates|state|states)\s+(?:that\s+)?(?:\p{L}+\s+){0,4}(?:is|are|was|were|has|have|had|does|do|did)\s+(?:not|never|no)\b`),
}

// Russian markers, for models that answer in Russian regardless of the prompt
var russianContradictions = []string{
	"противоречит",
	"не соответствует",
	"неверно",
	"ложно",
	"ошибочно",
	"неточно",
	"искажает",
	"не подтверждается",
	"опровергается",
	"несоответствие",
	"противоположно",
	"неправильно",
	"не имеет",
	"нет детей",
	"нет жены",
	"нет мужа",
	"отрицает",
	"опровергнуто",
	"фактически неверно",
	"на самом деле",
	"в действительности",
	"показывают обратное",
	"указывают на то, что",
	"свидетельствуют о том, что не",
}

var russianConfirmations = []string{
	"подтверждается",
	"соответствует",
	"верно",
	"правильно",
	"точно",
	"корректно",
	"подтверждают",
	"согласуется",
	"совпадает",
	"подкрепляется",
}

var russianNegations = []string{
	"некорректно",
	"не подтверждают",
	"не согласуется",
	"не совпадает",
}

// Go's \w is ASCII-only, so names are matched with \p{L}
var russianPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:источники?\s+(?:показывают|указывают|утверждают|говорят)\s+(?:что\s+)?(?:у\s+\p{L}+\s+(?:есть|имеется)|существует))`),
	regexp.MustCompile(`(?i)(?:на\s+самом\s+деле|в\s+действительности|фактически)\s+(?:у\s+\p{L}+\s+(?:есть|имеется)|существует)`),
	regexp.MustCompile(`(?i)(?:утверждение\s+(?:неверно|ложно|неточно|противоречит))`),
	regexp.MustCompile(`(?i)(?:не\s+соответствует\s+(?:данным|информации|фактам))`),
}

// English returns the built-in English detector
func English() *KeywordDetector {
	return &KeywordDetector{
		Language:       "en",
		Contradictions: englishContradictions,
		Confirmations:  englishConfirmations,
		Negations:      englishNegations,
		Patterns:       englishPatterns,

		NegationPatterns: englishNegationPatterns,
	}
}

// Russian returns the built-in Russian detector
func Russian() *KeywordDetector {
	return &KeywordDetector{
		Language:       "ru",
		Contradictions: russianContradictions,
		Confirmations:  russianConfirmations,
		Negations:      russianNegations,
		Patterns:       russianPatterns,
	}
}

// ForLanguage returns the detector for "en", "ru" or "all" (both)
func ForLanguage(lang string) (Detector, error) {
	switch strings.ToLower(strings.TrimSpace(lang)) {
	case "", "en", "english":
		return English(), nil
	case "ru", "russian":
		return Russian(), nil
	case "all", "*":
		return MultiDetector{English(), Russian()}, nil
	default:
		return nil, fmt.Errorf("unknown reconciliation language %q (supported: en, ru, all)", lang)
	}
}
