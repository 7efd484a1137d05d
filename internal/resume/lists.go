package resume

import "strings"

// parseListSection handles list-style sections (certifications, languages):
// bullet lines are stripped of their glyph, comma-separated lines are split
// into individual items, anything else is kept verbatim. Duplicates are
// suppressed case-insensitively, first occurrence wins.
func parseListSection(section []string) []string {
	var items []string
	for _, line := range section {
		l := strings.TrimSuffix(strings.TrimSpace(line), ",")
		if l == "" {
			continue
		}
		switch {
		case strings.IndexAny(l, "•-–*") == 0:
			items = append(items, trimBullet(l))
		case strings.Contains(l, ","):
			for _, part := range strings.Split(l, ",") {
				if p := strings.TrimSpace(part); p != "" {
					items = append(items, p)
				}
			}
		default:
			items = append(items, l)
		}
	}
	return uniqFold(items)
}
