package result

import "testing"

func TestMatchedTerms_Total(t *testing.T) {
	m := MatchedTerms{
		Skills:   []string{"aws", "python"},
		Domains:  []string{"ecommerce"},
		Projects: nil,
	}
	if m.Total() != 3 {
		t.Errorf("Total() = %d, want 3", m.Total())
	}
	if (MatchedTerms{}).Total() != 0 {
		t.Error("expected empty total 0")
	}
}

func TestHybridHit_ReasonPrefersKeyword(t *testing.T) {
	h := HybridHit{KeywordReason: "kw", SemanticReason: "sem"}
	if h.Reason() != "kw" {
		t.Errorf("Reason() = %q", h.Reason())
	}
	h.KeywordReason = ""
	if h.Reason() != "sem" {
		t.Errorf("Reason() = %q", h.Reason())
	}
}
