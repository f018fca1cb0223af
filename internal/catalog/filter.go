package catalog

import "strings"

// Filter derives the subset of tokens matching the selected categories and
// search query. An empty category selection matches every category. The query
// matches case-insensitively as a substring of the token name only. Input
// order is preserved and the input slice is never modified.
func Filter(tokens []Token, categories map[string]bool, query string) []Token {
	query = strings.ToLower(query)

	out := make([]Token, 0, len(tokens))
	for _, t := range tokens {
		if len(categories) > 0 && !categories[t.Category] {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(t.Name), query) {
			continue
		}
		out = append(out, t)
	}
	return out
}
