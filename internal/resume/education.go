package resume

import "strings"

// parseEducation mirrors the role state machine with two line classes:
//
//	University Name - Degree
//	Graduated: 1973
//
// A bare 4-digit line counts as a graduation year. Items without an
// institution are discarded at flush.
func parseEducation(section []string) []EducationItem {
	var items []EducationItem
	var cur *EducationItem

	flush := func() {
		if cur != nil && cur.Institution != "" {
			items = append(items, *cur)
		}
		cur = nil
	}

	for _, line := range section {
		if strings.Contains(line, "-") && !isoDateRE.MatchString(line) {
			inst, deg, _ := strings.Cut(line, "-")
			flush()
			cur = &EducationItem{
				Institution: strings.TrimSpace(inst),
				Degree:      strings.TrimSpace(deg),
			}
			continue
		}

		if strings.Contains(strings.ToLower(line), "graduated:") {
			_, after, _ := strings.Cut(line, ":")
			year := strings.TrimSpace(yearCharsRE.ReplaceAllString(after, ""))
			if cur != nil {
				cur.End = year
			} else {
				cur = &EducationItem{End: year}
			}
			continue
		}

		if yearOnlyRE.MatchString(strings.TrimSpace(line)) {
			y := strings.TrimSpace(line)
			if cur != nil {
				cur.End = y
			} else {
				cur = &EducationItem{End: y}
			}
			continue
		}
	}

	flush()
	return items
}
