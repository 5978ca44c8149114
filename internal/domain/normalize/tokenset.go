package normalize

import "sort"

// TokenSet is an unordered set of normalized tokens.
type TokenSet map[string]struct{}

// NewTokenSet builds a set from tokens.
func NewTokenSet(tokens ...string) TokenSet {
	s := make(TokenSet, len(tokens))
	for _, t := range tokens {
		s[t] = struct{}{}
	}
	return s
}

// Has reports whether tok is in the set.
func (s TokenSet) Has(tok string) bool {
	_, ok := s[tok]
	return ok
}

// Intersect returns the tokens present in both sets, sorted.
func (s TokenSet) Intersect(other TokenSet) []string {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	out := make([]string, 0)
	for t := range small {
		if large.Has(t) {
			out = append(out, t)
		}
	}
	sort.Strings(out)
	return out
}

// Sorted returns the set's tokens in lexical order.
func (s TokenSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
