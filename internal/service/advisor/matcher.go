package advisor

import "strings"

// Matcher decides which stocked models are similar to a queried model.
type Matcher interface {
	Match(query string, candidates []string) []string
}

// SecondTokenMatcher keeps every candidate containing the second
// whitespace-separated token of the query, e.g. the generation number in
// "iPhone 12 128GB". It is a placeholder heuristic: "iPhone 1" style tokens
// match broadly and single-word queries never match.
type SecondTokenMatcher struct{}

// Match implements Matcher.
func (SecondTokenMatcher) Match(query string, candidates []string) []string {
	out := make([]string, 0)

	tokens := strings.Fields(query)
	if len(tokens) < 2 {
		return out
	}

	for _, candidate := range candidates {
		if strings.Contains(candidate, tokens[1]) {
			out = append(out, candidate)
		}
	}
	return out
}
