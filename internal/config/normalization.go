package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kailas-cloud/staffdex/internal/domain/normalize"
)

type normalizationDoc struct {
	Stopwords             []string          `json:"stopwords"`
	Punctuation           []string          `json:"punctuation_chars_to_strip"`
	SkillAliases          map[string]string `json:"skill_aliases"`
	DomainAliases         map[string]string `json:"domain_aliases"`
	AvailabilityAliases   orderedAliases    `json:"availability_aliases"`
	MinExperiencePatterns []string          `json:"min_experience_patterns"`
}

// orderedAliases decodes a JSON object into pairs in document order.
type orderedAliases []normalize.AliasPair

// UnmarshalJSON implements json.Unmarshaler.
func (o *orderedAliases) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*o = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("availability_aliases must be an object")
	}

	var out orderedAliases
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)
		var value string
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("availability_aliases[%q]: %w", key, err)
		}
		out = append(out, normalize.AliasPair{Phrase: key, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*o = out
	return nil
}

// LoadNormalization reads config/normalization.json. Alias keys and values
// and stopwords are lowercased; availability aliases keep document order.
func LoadNormalization(path string) (normalize.Rules, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return normalize.Rules{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var doc normalizationDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return normalize.Rules{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	rules := normalize.Rules{
		Stopwords:             lowerAll(doc.Stopwords),
		Punctuation:           doc.Punctuation,
		SkillAliases:          lowerMap(doc.SkillAliases),
		DomainAliases:         lowerMap(doc.DomainAliases),
		MinExperiencePatterns: doc.MinExperiencePatterns,
	}
	for _, a := range doc.AvailabilityAliases {
		rules.AvailabilityAliases = append(rules.AvailabilityAliases, normalize.AliasPair{
			Phrase: strings.ToLower(a.Phrase),
			Value:  strings.ToLower(a.Value),
		})
	}
	return rules, nil
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}

func lowerMap(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[strings.ToLower(k)] = strings.ToLower(v)
	}
	return out
}
