package mode

import "fmt"

// Mode is the retrieval strategy.
type Mode string

// Search mode constants.
const (
	// Keyword scores token overlap against candidate bags.
	Keyword Mode = "keyword"
	// Semantic runs nearest-neighbor search over the vector index.
	Semantic Mode = "semantic"
	// Hybrid fuses normalized keyword and semantic scores.
	Hybrid Mode = "hybrid"
)

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	return m == Hybrid || m == Semantic || m == Keyword
}

// Parse validates s as a Mode.
func Parse(s string) (Mode, error) {
	m := Mode(s)
	if !m.IsValid() {
		return "", fmt.Errorf("unknown search mode %q (want keyword, semantic or hybrid)", s)
	}
	return m, nil
}
