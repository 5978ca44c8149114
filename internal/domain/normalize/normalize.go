// Package normalize turns free text into the token stream shared by keyword
// scoring, semantic query preparation and the offline index build.
//
// Pipeline: lowercase, strip configured punctuation, collapse whitespace,
// split, resolve single-token aliases (skill before domain), drop stopwords.
// Aliases never span more than one token.
package normalize

import "strings"

// Normalizer is immutable after New and safe for concurrent use.
type Normalizer struct {
	stopwords     map[string]struct{}
	punct         *strings.Replacer
	skillAliases  map[string]string
	domainAliases map[string]string
}

// New compiles rules into a Normalizer.
func New(r Rules) *Normalizer {
	n := &Normalizer{
		stopwords:     make(map[string]struct{}, len(r.Stopwords)),
		skillAliases:  lowerMap(r.SkillAliases),
		domainAliases: lowerMap(r.DomainAliases),
	}
	for _, w := range r.Stopwords {
		n.stopwords[strings.ToLower(w)] = struct{}{}
	}

	pairs := make([]string, 0, 2*len(r.Punctuation))
	for _, p := range r.Punctuation {
		if p == "" {
			continue
		}
		pairs = append(pairs, p, " ")
	}
	if len(pairs) > 0 {
		n.punct = strings.NewReplacer(pairs...)
	}
	return n
}

// Tokens normalizes text into an ordered token sequence.
func (n *Normalizer) Tokens(text string) []string {
	t := strings.ToLower(text)
	if n.punct != nil {
		t = n.punct.Replace(t)
	}

	fields := strings.Fields(t)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		tok := n.resolveAlias(f)
		if tok == "" {
			continue
		}
		if _, stop := n.stopwords[tok]; stop {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// TokenSet normalizes each phrase and unions the tokens. Phrase boundaries are lost.
func (n *Normalizer) TokenSet(phrases []string) TokenSet {
	set := make(TokenSet)
	for _, p := range phrases {
		for _, tok := range n.Tokens(p) {
			set[tok] = struct{}{}
		}
	}
	return set
}

// Text returns the normalized tokens joined by single spaces.
// Query-time and build-time semantic text must both go through Text.
func (n *Normalizer) Text(text string) string {
	return strings.Join(n.Tokens(text), " ")
}

func (n *Normalizer) resolveAlias(tok string) string {
	if v, ok := n.skillAliases[tok]; ok {
		return v
	}
	if v, ok := n.domainAliases[tok]; ok {
		return v
	}
	return tok
}

func lowerMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[strings.ToLower(k)] = strings.ToLower(v)
	}
	return out
}
