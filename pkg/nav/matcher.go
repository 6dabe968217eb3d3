package nav

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// fuzzyThreshold is the strict lower bound a fuzzy score must exceed before
// an option counts as a match at all.
const fuzzyThreshold = 0.3

// inputSynonyms folds a few common phrasings onto catalog vocabulary before
// any matching happens.
var inputSynonyms = map[string]string{
	"contact us": "contact",
	"profile":    "personal",
	"home page":  "home",
	"about us":   "about",
}

// Resolve finds the single best destination for free text, or reports no
// match. Each step short-circuits: direct path, exact name, alias, then
// fuzzy scoring over name, description, keywords and aliases. Ties on the
// fuzzy score keep the earliest-listed option; catalog order is a documented
// tie-break.
func Resolve(freeText string, catalog Catalog) (Option, bool) {
	input := Normalize(freeText)
	if input == "" {
		return Option{}, false
	}

	for _, opt := range catalog {
		path := strings.ToLower(opt.Path)
		if path == input || path == "/"+input {
			return opt, true
		}
	}

	for _, opt := range catalog {
		if strings.ToLower(opt.Name) == input {
			return opt, true
		}
	}

	for _, opt := range catalog {
		for _, alias := range opt.Aliases {
			if strings.ToLower(alias) == input {
				return opt, true
			}
		}
	}

	var best Option
	bestScore := 0.0
	found := false

	for _, opt := range catalog {
		terms := make([]string, 0, 2+len(opt.Keywords)+len(opt.Aliases))
		terms = append(terms, opt.Name, opt.Description)
		terms = append(terms, opt.Keywords...)
		terms = append(terms, opt.Aliases...)

		max := 0.0
		for _, term := range terms {
			if term == "" {
				continue
			}
			if score := FuzzyScore(input, term); score > max {
				max = score
			}
		}

		if max > bestScore && max > fuzzyThreshold {
			bestScore = max
			best = opt
			found = true
		}
	}

	return best, found
}

// FuzzyScore rates how well query matches text. A substring hit is a full
// 1.0; otherwise every query-word/text-word pair where one contains the
// other adds 0.5, normalized by the query's word count.
func FuzzyScore(query, text string) float64 {
	queryLower := strings.ToLower(query)
	textLower := strings.ToLower(text)

	// An empty term matches nothing. Without this, Split("", " ") yields
	// one empty word that every query word "contains".
	if textLower == "" {
		return 0
	}

	if strings.Contains(textLower, queryLower) {
		return 1.0
	}

	queryWords := strings.Split(queryLower, " ")
	textWords := strings.Split(textLower, " ")

	score := 0.0
	for _, qw := range queryWords {
		for _, tw := range textWords {
			if strings.Contains(tw, qw) || strings.Contains(qw, tw) {
				score += 0.5
			}
		}
	}

	return score / float64(len(queryWords))
}

// Normalize lower-cases, trims, collapses whitespace, strips combining
// marks, and applies the synonym table.
func Normalize(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if cleaned, _, err := transform.String(t, text); err == nil {
		text = cleaned
	}

	text = strings.Join(strings.Fields(text), " ")

	if mapped, ok := inputSynonyms[text]; ok {
		return mapped
	}
	return text
}
