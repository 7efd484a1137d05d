package resume

import "strings"

// extractEmail returns the first email-looking match in the text.
func extractEmail(text string) string {
	return emailRE.FindString(text)
}

// extractPhone returns the first phone-like match whose digit count is
// plausible for a phone number. The [7,18] digit gate filters out IDs and
// dates the loose pattern also captures.
func extractPhone(text string) string {
	for _, c := range phoneRE.FindAllString(text, -1) {
		s := strings.TrimSpace(c)
		if n := digitCount(s); n >= 7 && n <= 18 {
			return s
		}
	}
	return ""
}

// extractLinks returns the first LinkedIn URL and the first other URL that is
// not a substring of it.
func extractLinks(text string) (linkedin, portfolio string) {
	linkedin = linkedinRE.FindString(text)
	for _, u := range urlRE.FindAllString(text, -1) {
		if linkedin != "" && strings.Contains(strings.ToLower(linkedin), strings.ToLower(u)) {
			continue
		}
		portfolio = u
		break
	}
	return linkedin, portfolio
}
