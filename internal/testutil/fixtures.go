// Package testutil provides shared fixtures for retrieval tests.
package testutil

import (
	"github.com/kailas-cloud/staffdex/internal/domain/employee"
	"github.com/kailas-cloud/staffdex/internal/domain/normalize"
)

// Rules returns a small rules document shaped like config/normalization.json.
func Rules() normalize.Rules {
	return normalize.Rules{
		Stopwords: []string{
			"a", "an", "and", "the", "with", "in", "of", "for", "on", "to",
			"years", "year", "yrs", "yr", "experience", "need", "someone", "who",
		},
		Punctuation: []string{",", ".", ";", ":", "!", "?", "(", ")", "/", "\"", "'"},
		SkillAliases: map[string]string{
			"js":         "javascript",
			"golang":     "go",
			"k8s":        "kubernetes",
			"postgresql": "postgres",
			"py":         "python",
			"ml":         "machinelearning",
			"amazon web": "aws",
		},
		DomainAliases: map[string]string{
			"e-commerce": "ecommerce",
			"fintech":    "finance",
			"healthtech": "healthcare",
			"ml":         "mlops",
		},
		AvailabilityAliases: []normalize.AliasPair{
			{Phrase: "available now", Value: "available"},
			{Phrase: "immediately", Value: "available"},
			{Phrase: "not available", Value: "unavailable"},
			{Phrase: "next month", Value: "soon"},
			{Phrase: "on leave", Value: "unavailable"},
		},
		MinExperiencePatterns: []string{
			`(\d+)\s*\+\s*(?:years?|yrs?)`,
			`(?:at least|min(?:imum)?)\s+(\d+)\s*(?:years?|yrs?)`,
			`(\d+)\s*(?:years?|yrs?)`,
		},
	}
}

// Employees returns a dataset covering every ranking key.
func Employees() []employee.Employee {
	return []employee.Employee{
		{
			ID: 1, Name: "Alice Johnson", ExperienceYears: 4, Availability: employee.Available,
			Skills:   []string{"Python", "AWS", "Docker"},
			Projects: []string{"E-commerce Platform Migration"},
			Domains:  []string{"E-commerce"},
		},
		{
			ID: 2, Name: "Bob Smith", ExperienceYears: 2, Availability: employee.Available,
			Skills:   []string{"Python", "AWS"},
			Projects: []string{"Checkout API"},
			Domains:  []string{"E-commerce"},
		},
		{
			ID: 3, Name: "Carol Diaz", ExperienceYears: 7, Availability: employee.Soon,
			Skills:   []string{"Golang", "Kubernetes", "PostgreSQL"},
			Projects: []string{"Payments Ledger"},
			Domains:  []string{"Fintech"},
		},
		{
			ID: 4, Name: "Dan Wu", ExperienceYears: 7, Availability: employee.Available,
			Skills:   []string{"Go", "K8s"},
			Projects: []string{"Fraud Scoring"},
			Domains:  []string{"Fintech"},
		},
		{
			ID: 5, Name: "Eve Park", ExperienceYears: 7, Availability: employee.Available,
			Skills:   []string{"golang", "kubernetes"},
			Projects: []string{"Risk Engine"},
			Domains:  []string{"Finance"},
		},
		{
			ID: 6, Name: "Frank Olsen", ExperienceYears: 10, Availability: employee.Unavailable,
			Skills:   []string{"React", "JS"},
			Projects: []string{"Patient Portal"},
			Domains:  []string{"Healthtech"},
		},
	}
}
