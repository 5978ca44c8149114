package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Baseline is config/baseline.yaml.
type Baseline struct {
	Weights       BaselineWeights
	MinTokenMatch int
	TopK          int
}

// BaselineWeights are per-category multipliers.
type BaselineWeights struct {
	Skills   int
	Domains  int
	Projects int
}

// Semantic is config/semantic.yaml.
type Semantic struct {
	Model         string
	TopK          int
	Outputs       Outputs
	HybridWeights HybridWeights
	FetchK        int
}

// Outputs are the index artifact paths.
type Outputs struct {
	Index string `yaml:"index"`
	Meta  string `yaml:"meta"`
	Stats string `yaml:"stats"`
}

// HybridWeights are the fusion weights.
type HybridWeights struct {
	Semantic float64
	Keyword  float64
}

// Unset fields are nil so an explicit zero survives defaulting.
type baselineDoc struct {
	Weights struct {
		Skills   *int `yaml:"skills"`
		Domains  *int `yaml:"domains"`
		Projects *int `yaml:"projects"`
	} `yaml:"weights"`
	MinTokenMatch *int `yaml:"min_token_match"`
	TopK          int  `yaml:"top_k"`
}

type semanticDoc struct {
	Model         string  `yaml:"model"`
	TopK          int     `yaml:"top_k"`
	Outputs       outputsDoc `yaml:"outputs"`
	HybridWeights struct {
		Semantic *float64 `yaml:"semantic"`
		Keyword  *float64 `yaml:"keyword"`
	} `yaml:"hybrid_weights"`
	FetchK int `yaml:"fetch_k"`
}

// faiss is an older name for index.
type outputsDoc struct {
	Index string `yaml:"index"`
	Faiss string `yaml:"faiss"`
	Meta  string `yaml:"meta"`
	Stats string `yaml:"stats"`
}

// LoadBaseline reads the keyword scoring document. Defaults: weights 3/2/1,
// min_token_match 1, top_k 5.
func LoadBaseline(path string) (Baseline, error) {
	var doc baselineDoc
	if err := readYAML(path, &doc); err != nil {
		return Baseline{}, err
	}

	b := Baseline{
		Weights: BaselineWeights{
			Skills:   intOr(doc.Weights.Skills, 3),
			Domains:  intOr(doc.Weights.Domains, 2),
			Projects: intOr(doc.Weights.Projects, 1),
		},
		MinTokenMatch: intOr(doc.MinTokenMatch, 1),
		TopK:          doc.TopK,
	}
	if b.TopK <= 0 {
		b.TopK = 5
	}
	if b.Weights.Skills < 0 || b.Weights.Domains < 0 || b.Weights.Projects < 0 {
		return Baseline{}, fmt.Errorf("%s: weights must not be negative", path)
	}
	if b.MinTokenMatch < 0 {
		return Baseline{}, fmt.Errorf("%s: min_token_match must not be negative", path)
	}
	return b, nil
}

// LoadSemantic reads the semantic and hybrid document. Relative output paths
// are kept as written. Defaults: text-embedding-3-large, top_k 5, 0.6/0.4, fetch_k 10.
func LoadSemantic(path string) (Semantic, error) {
	var doc semanticDoc
	if err := readYAML(path, &doc); err != nil {
		return Semantic{}, err
	}

	s := Semantic{
		Model:   doc.Model,
		TopK:    doc.TopK,
		Outputs: Outputs{
			Index: doc.Outputs.Index,
			Meta:  doc.Outputs.Meta,
			Stats: doc.Outputs.Stats,
		},
		HybridWeights: HybridWeights{
			Semantic: floatOr(doc.HybridWeights.Semantic, 0.6),
			Keyword:  floatOr(doc.HybridWeights.Keyword, 0.4),
		},
		FetchK: doc.FetchK,
	}
	if s.Model == "" {
		s.Model = "text-embedding-3-large"
	}
	if s.TopK <= 0 {
		s.TopK = 5
	}
	if s.FetchK <= 0 {
		s.FetchK = 10
	}
	if s.Outputs.Index == "" {
		s.Outputs.Index = doc.Outputs.Faiss
	}
	if s.Outputs.Index == "" {
		s.Outputs.Index = "data/employee_index.bin"
	}
	if s.Outputs.Meta == "" {
		s.Outputs.Meta = "data/employee_meta.json"
	}
	if s.Outputs.Stats == "" {
		s.Outputs.Stats = "data/employee_index.stats.json"
	}
	if s.HybridWeights.Semantic < 0 || s.HybridWeights.Keyword < 0 {
		return Semantic{}, fmt.Errorf("%s: hybrid_weights must not be negative", path)
	}
	return s, nil
}

func readYAML(path string, v any) error {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

func intOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

func floatOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}
