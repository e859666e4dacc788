package interpreter

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// maxSuggestDistance bounds the edit distance of a "did you mean" hint
const maxSuggestDistance = 2

// unknownName builds the error for a name that is not defined, with the
// closest known name as a hint.
func (i *Interpreter) unknownName(what, name string, known []string) *Error {
	if hint := suggest(name, known); hint != "" {
		return newError(ErrName, "can't find %s %s (did you mean %s?)", what, name, hint)
	}
	return newError(ErrName, "can't find %s %s", what, name)
}

// suggest returns the candidate closest to name: fuzzy matches first,
// ranked by distance, then plain edit distance for typos.
func suggest(name string, candidates []string) string {
	if name == "" || len(candidates) == 0 {
		return ""
	}

	ranks := fuzzy.RankFindFold(name, candidates)
	if len(ranks) > 0 {
		sort.Sort(ranks)
		if ranks[0].Distance <= len(name) {
			return ranks[0].Target
		}
	}

	best, bestDistance := "", maxSuggestDistance+1
	for _, c := range candidates {
		if d := fuzzy.LevenshteinDistance(name, c); d < bestDistance {
			best, bestDistance = c, d
		}
	}
	return best
}
