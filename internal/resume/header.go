package resume

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// headerBlockSize bounds identity guessing to the top of the document, where
// resumes put the name, title and location.
const headerBlockSize = 8

// guessName picks the first header-block line with at least two words, no
// contact tokens, no section-header words, and at least two capitalized
// word-starts.
func (e *Extractor) guessName(headerBlk string) string {
	for _, line := range strings.Split(headerBlk, "\n") {
		if emailRE.MatchString(line) || urlRE.MatchString(line) || phoneRE.MatchString(line) {
			continue
		}
		lower := strings.ToLower(line)
		noisy := false
		for _, w := range e.vocab.HeaderNoiseWords {
			if strings.Contains(lower, w) {
				noisy = true
				break
			}
		}
		if noisy {
			continue
		}
		words := strings.Fields(line)
		if len(words) < 2 || strings.TrimSpace(strings.ReplaceAll(line, "-", "")) == "" {
			continue
		}
		caps := 0
		for _, w := range words {
			r, _ := utf8.DecodeRuneInString(w)
			if unicode.IsUpper(r) {
				caps++
			}
		}
		if caps >= 2 {
			return strings.TrimSpace(line)
		}
	}
	return ""
}

// guessTitle scans the lines after the presumed name for a short line with no
// contact pattern. Titles sit right under the name on most resumes.
func guessTitle(headerBlk string) string {
	var lines []string
	for _, l := range strings.Split(headerBlk, "\n") {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) == 0 {
		return ""
	}
	for _, line := range lines[1:min(4, len(lines))] {
		if emailRE.MatchString(line) || urlRE.MatchString(line) || phoneRE.MatchString(line) {
			continue
		}
		if n := len(strings.Fields(line)); n >= 2 && n <= 6 {
			return strings.TrimSpace(line)
		}
	}
	return ""
}

// guessCityCountry finds the first "X, Y" pair in the header block. Very
// short sides are treated as noise.
func guessCityCountry(headerBlk string) (city, country string) {
	m := cityCountryRE.FindStringSubmatch(headerBlk)
	if m == nil {
		return "", ""
	}
	city = strings.TrimSpace(m[1])
	country = strings.TrimSpace(m[2])
	if len(city) < 2 || len(country) < 2 {
		return "", ""
	}
	return city, country
}
