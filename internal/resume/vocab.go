package resume

// Vocabulary holds the heuristic tables the extractor matches against.
// The tables are read-only once constructed; tests substitute smaller ones.
type Vocabulary struct {
	// SectionHeaders is the full canonical header set used to bound sections.
	SectionHeaders []string

	WorkHeaders     []string
	EducationHeaders []string
	SkillsHeaders   []string
	CertHeaders     []string
	LanguageHeaders []string

	// HeaderNoiseWords disqualify a header-block line from being the name.
	HeaderNoiseWords []string

	CloudKeywords []string
	ToolHints     []string

	// Seniority is an ordered rule table; the first whole-word match wins.
	Seniority []SeniorityRule

	// DomainTriggers map phrase hits to a domain and a paired industry tag.
	DomainTriggers []DomainTrigger
}

// SeniorityRule maps a title keyword to a normalized career level.
type SeniorityRule struct {
	Keyword string
	Level   string
}

// DomainTrigger contributes one domain and one industry when its phrase
// occurs anywhere in the document text.
type DomainTrigger struct {
	Phrase   string
	Domain   string
	Industry string
}

// DefaultVocabulary returns the production heuristic tables.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		SectionHeaders: []string{
			"professional summary", "summary", "work experience", "experience",
			"education", "skills", "certifications", "certification",
			"languages", "language",
		},
		WorkHeaders:      []string{"work experience", "experience"},
		EducationHeaders: []string{"education"},
		SkillsHeaders:    []string{"skills"},
		CertHeaders:      []string{"certifications", "certification"},
		LanguageHeaders:  []string{"languages", "language"},

		HeaderNoiseWords: []string{
			"summary", "experience", "education", "skills", "certification", "languages",
		},

		CloudKeywords: []string{
			"aws", "amazon web services", "azure", "gcp", "google cloud",
			"google cloud platform",
		},
		ToolHints: []string{
			"figma", "photoshop", "illustrator", "autocad", "solidworks",
			"blender", "sketch", "jira", "confluence",
		},

		Seniority: []SeniorityRule{
			{"intern", "intern"},
			{"junior", "junior"},
			{"jr", "junior"},
			{"associate", "associate"},
			{"mid", "mid"},
			{"senior", "senior"},
			{"sr", "senior"},
			{"lead", "lead"},
			{"principal", "principal"},
			{"staff", "staff"},
			{"manager", "manager"},
			{"head", "head"},
			{"director", "director"},
			{"vp", "vp"},
			{"chief", "c-level"},
			{"cto", "c-level"},
			{"cpo", "c-level"},
			{"coo", "c-level"},
			{"ceo", "c-level"},
		},

		DomainTriggers: []DomainTrigger{
			{"exhibition design", "exhibition design", "design"},
			{"print production", "print production", "printing"},
			{"librarian", "library sciences", "education"},
		},
	}
}
