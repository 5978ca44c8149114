package generation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kailas-cloud/staffdex/internal/domain/search/result"
)

const systemPrompt = "You are an assistant that recommends employees for internal projects. " +
	"Ground every fact in the provided profiles. Do not invent facts. " +
	"If uncertain or results are weak, ask a clarifying question."

type promptCandidate struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	HybridScore float64 `json:"hybrid_score"`
	Reason      string  `json:"reason"`
}

func candidatesJSON(hits []result.HybridHit) (string, error) {
	payload := make([]promptCandidate, len(hits))
	for i := range hits {
		payload[i] = promptCandidate{
			ID:          hits[i].ID,
			Name:        hits[i].Name,
			HybridScore: hits[i].Score,
			Reason:      hits[i].Reason(),
		}
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode candidates: %w", err)
	}
	return string(data), nil
}

func userPrompt(query, candidates string, k, maxWords int, nextSteps string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Request: %q\n\n", strings.TrimSpace(query))
	fmt.Fprintf(&b, "Top candidates (JSON):\n%s\n\n", candidates)
	b.WriteString("Constraints:\n")
	b.WriteString("- Use only the fields present.\n")
	b.WriteString("- Prefer availability=available, then soon, then unavailable.\n")
	fmt.Fprintf(&b, "- Keep total reply under %d words.\n", maxWords)
	fmt.Fprintf(&b, "- Suggest exactly %d candidates when possible.\n\n", k)
	b.WriteString("Write the response in this format:\n")
	b.WriteString("1) One-line summary of the requirement.\n")
	b.WriteString("2) 2-3 candidate lines (name - why fit - availability).\n")
	fmt.Fprintf(&b, "3) Next steps or a clarifying question if needed. Default next step: %s", nextSteps)
	return b.String()
}

func noMatchText(query string) string {
	return fmt.Sprintf("I couldn't find strong matches for %q. "+
		"Want me to relax constraints (e.g., lower min years or include 'soon' availability)?", query)
}

func fallbackText(hits []result.HybridHit) string {
	lines := make([]string, 0, len(hits)+1)
	lines = append(lines, "Generation failed; showing retrieved candidates:")
	for i := range hits {
		avail := string(hits[i].Availability)
		if avail == "" {
			avail = "n/a"
		}
		lines = append(lines, fmt.Sprintf("- %s (availability: %s): %s", hits[i].Name, avail, hits[i].Reason()))
	}
	return strings.Join(lines, "\n")
}
