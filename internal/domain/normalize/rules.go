package normalize

// AliasPair maps one phrase to its canonical value. Availability aliases are
// kept as an ordered slice because the first matching phrase wins.
type AliasPair struct {
	Phrase string
	Value  string
}

// Rules is the normalization rules document, loaded once at startup.
type Rules struct {
	Stopwords             []string
	Punctuation           []string
	SkillAliases          map[string]string
	DomainAliases         map[string]string
	AvailabilityAliases   []AliasPair
	MinExperiencePatterns []string
}
