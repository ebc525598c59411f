package cborpath

import (
	"fmt"
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// suggestKey wraps sentinel with a message naming the unrecognized key
// and, when one of candidates looks close enough, a "did you mean"
// suggestion.
func suggestKey(sentinel error, got string, candidates []string) error {
	if match := closestMatch(got, candidates); match != "" {
		return fmt.Errorf("%w: unrecognized key %q, did you mean %q?", sentinel, got, match)
	}
	return fmt.Errorf("%w: unrecognized key %q", sentinel, got)
}

func closestMatch(target string, candidates []string) string {
	ranks := fuzzy.RankFindFold(target, candidates)
	if len(ranks) == 0 {
		return ""
	}
	sort.Sort(ranks)
	return ranks[0].Target
}
