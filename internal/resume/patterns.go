package resume

import (
	"regexp"
	"strings"
	"time"
)

var (
	isoDateRE = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
	emailRE   = regexp.MustCompile(`(?i)[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}`)
	phoneRE   = regexp.MustCompile(`(?:\+?\d{1,3}[-.\s]?)?(?:\(?\d{2,4}\)?[-.\s]?)?\d{3,4}[-.\s]?\d{4,}(?:x\d+)?`)
	urlRE     = regexp.MustCompile(`(?i)\bhttps?://\S+\b`)
	linkedinRE = regexp.MustCompile(`(?i)https?://(?:www\.)?linkedin\.com/\S+`)
	cityCountryRE = regexp.MustCompile(`\b([A-Za-z .'-]+),\s*([A-Za-z .'-]+)\b`)

	nonDigitRE   = regexp.MustCompile(`\D`)
	yearOnlyRE   = regexp.MustCompile(`^\d{4}$`)
	yearCharsRE  = regexp.MustCompile(`[^0-9-]`)
	whitespaceRE = regexp.MustCompile(`\s+`)
)

// parseISODate returns the first valid ISO-8601 date in s. Calendar-invalid
// matches (2024-13-40) are dropped, not propagated.
func parseISODate(s string) (time.Time, bool) {
	m := isoDateRE.FindString(s)
	if m == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", m)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// containsWord reports a case-insensitive whole-word occurrence of phrase.
func containsWord(text, phrase string) bool {
	re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(phrase) + `\b`)
	if err != nil {
		return false
	}
	return re.MatchString(text)
}

// hasPhrase matches a phrase prefix at a word boundary, anywhere in text.
func hasPhrase(text, phrase string) bool {
	re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(phrase))
	if err != nil {
		return false
	}
	return re.MatchString(text)
}

// digitCount counts decimal digits in s.
func digitCount(s string) int {
	return len(nonDigitRE.ReplaceAllString(s, ""))
}

// collapseSpace lowercases s and collapses internal whitespace runs.
func collapseSpace(s string) string {
	return whitespaceRE.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), " ")
}

// uniqFold deduplicates case-insensitively, preserving first-occurrence order.
func uniqFold(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	var out []string
	for _, it := range items {
		k := strings.ToLower(it)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, it)
	}
	return out
}
