// Package resume infers a structured candidate profile from the extracted
// text of one resume document. Everything here is deterministic, rule-based
// heuristics over lines and fixed vocabularies: a miss is an absent field,
// never an error, so extraction always completes with whatever it found.
package resume

import (
	"math"
	"strings"
	"time"
)

// Extractor assembles a Profile from a document's full text. The vocabulary
// is fixed at construction; the clock is only consulted for open-ended
// experience windows.
type Extractor struct {
	vocab Vocabulary
	now   func() time.Time
}

// NewExtractor returns an extractor over the given heuristic tables.
func NewExtractor(vocab Vocabulary) *Extractor {
	return &Extractor{vocab: vocab, now: time.Now}
}

// Extract runs every field extractor over the full document text and
// assembles one profile. The same text always produces the same profile.
func (e *Extractor) Extract(fullText string) Profile {
	lines := nonBlankLines(fullText)

	email := extractEmail(fullText)
	phone := extractPhone(fullText)
	linkedin, portfolio := extractLinks(fullText)

	// Name, title, and location cluster near the top of the document.
	headerBlk := strings.Join(lines[:min(headerBlockSize, len(lines))], "\n")
	fullName := e.guessName(headerBlk)
	currentTitle := guessTitle(headerBlk)
	city, country := guessCityCountry(headerBlk)

	workSection := e.section(lines, e.vocab.WorkHeaders)
	eduSection := e.section(lines, e.vocab.EducationHeaders)
	skillsSection := e.section(lines, e.vocab.SkillsHeaders)
	certsSection := e.section(lines, e.vocab.CertHeaders)
	langsSection := e.section(lines, e.vocab.LanguageHeaders)

	roles := parseRoles(workSection)
	education := parseEducation(eduSection)
	certs := parseListSection(certsSection)
	langs := parseListSection(langsSection)

	primary, secondary, tools, clouds, domains, industries := e.parseSkills(skillsSection, fullText)

	seniority := e.inferSeniority(currentTitle)

	yoe := 0
	if years, ok := computeYOE(roles, e.now()); ok {
		yoe = int(math.Round(years))
	}

	keywords := normalizedKeywords(primary, secondary, tools, clouds, langs, domains, industries)

	return Profile{
		FullName:           fullName,
		Email:              email,
		Phone:              phone,
		City:               city,
		Country:            country,
		YOE:                yoe,
		CurrentTitle:       currentTitle,
		Seniority:          seniority,
		LinkedinURL:        linkedin,
		PortfolioURL:       portfolio,
		Langs:              langs,
		SkillsPrimary:      primary,
		SkillsSecondary:    secondary,
		Tools:              tools,
		Domains:            domains,
		Industries:         industries,
		Clouds:             clouds,
		Roles:              roles,
		Education:          education,
		Certs:              certs,
		NormalizedKeywords: keywords,
		SkillsetHash:       skillsetHash(keywords),
	}
}
