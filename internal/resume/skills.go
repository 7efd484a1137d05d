package resume

import (
	"regexp"
	"sort"
	"strings"
)

var skillSplitRE = regexp.MustCompile(`,|\|`)

// parseSkills classifies terms from the skills section and the whole text.
// The section's first non-empty line carries the primary skills, later lines
// the secondary ones. Tools and cloud providers are whole-word vocabulary
// hits against the entire document, and domain triggers contribute paired
// domain/industry tags. Every returned list is deduplicated.
func (e *Extractor) parseSkills(section []string, fullText string) (primary, secondary, tools, clouds, domains, industries []string) {
	var lines []string
	for _, l := range section {
		if l != "" {
			lines = append(lines, l)
		}
	}

	if len(lines) > 0 {
		primary = splitSkillLine(lines[0])
		for _, l := range lines[1:] {
			secondary = append(secondary, splitSkillLine(l)...)
		}
	}

	for _, t := range e.vocab.ToolHints {
		if containsWord(fullText, t) {
			tools = append(tools, t)
		}
	}
	sort.Strings(tools)

	for _, c := range e.vocab.CloudKeywords {
		if containsWord(fullText, c) {
			clouds = append(clouds, c)
		}
	}
	sort.Strings(clouds)

	for _, trig := range e.vocab.DomainTriggers {
		if hasPhrase(fullText, trig.Phrase) {
			domains = append(domains, trig.Domain)
			industries = append(industries, trig.Industry)
		}
	}

	return uniqFold(primary), uniqFold(secondary), uniqFold(tools),
		uniqFold(clouds), uniqFold(domains), uniqFold(industries)
}

func splitSkillLine(line string) []string {
	var out []string
	for _, part := range skillSplitRE.Split(line, -1) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// inferSeniority tests the ordered seniority table against the lowercased
// title; the first whole-word hit wins, table order breaking ties.
func (e *Extractor) inferSeniority(title string) string {
	if title == "" {
		return ""
	}
	t := strings.ToLower(title)
	for _, rule := range e.vocab.Seniority {
		if containsWord(t, rule.Keyword) {
			return rule.Level
		}
	}
	return ""
}
