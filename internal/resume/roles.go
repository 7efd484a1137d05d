package resume

import "strings"

// lineKind tags one line of a work-history section. The rules are ordered:
// a dash-bearing line with no date is a role header even when it starts with
// a dash glyph, so the header rule is tested first.
type lineKind int

const (
	lineOther lineKind = iota
	lineRoleHeader
	lineBullet
	lineDateOnly
)

const bulletGlyphs = "•-–* "

func classifyRoleLine(line string) lineKind {
	switch {
	case strings.Contains(line, "-") && !isoDateRE.MatchString(line):
		return lineRoleHeader
	case strings.HasPrefix(strings.TrimLeft(line, " "), "•"),
		strings.HasPrefix(strings.TrimLeft(line, " "), "-"),
		strings.HasPrefix(strings.TrimLeft(line, " "), "–"),
		strings.HasPrefix(strings.TrimLeft(line, " "), "*"):
		return lineBullet
	case isoDateRE.MatchString(line):
		return lineDateOnly
	default:
		return lineOther
	}
}

func trimBullet(line string) string {
	return strings.TrimSpace(strings.TrimLeft(strings.TrimLeft(line, " "), bulletGlyphs))
}

// parseRoles runs the role state machine over a section's lines with one
// line of lookahead. Expected shape:
//
//	Title - Company, Location
//	2016-10-09 - 2025-05-28
//	• bullet
//
// The in-progress role is flushed when a new header starts and at section
// end; a role with no title, company, dates, or bullets is discarded.
func parseRoles(section []string) []Role {
	var roles []Role
	var cur *Role

	flush := func() {
		if cur != nil && !cur.empty() {
			roles = append(roles, *cur)
		}
		cur = nil
	}

	for i := 0; i < len(section); i++ {
		line := section[i]

		switch classifyRoleLine(line) {
		case lineRoleHeader:
			title, rest, _ := strings.Cut(line, "-")
			title = strings.TrimSpace(title)
			rest = strings.TrimSpace(rest)

			var company, location string
			if c, l, ok := strings.Cut(rest, ","); ok {
				company = strings.TrimSpace(c)
				location = strings.TrimSpace(l)
			} else {
				company = rest
			}

			// The next line may carry the date range; first and last
			// matches in it become start and end.
			var start, end string
			if i+1 < len(section) && isoDateRE.MatchString(section[i+1]) {
				ds := isoDateRE.FindAllString(section[i+1], -1)
				start = ds[0]
				end = ds[len(ds)-1]
				i++
			}

			flush()
			cur = &Role{Title: title, Company: company, Location: location, Start: start, End: end}

		case lineBullet:
			if cur == nil {
				cur = &Role{}
			}
			cur.Bullets = append(cur.Bullets, trimBullet(line))

		case lineDateOnly:
			ds := isoDateRE.FindAllString(line, -1)
			if cur == nil {
				cur = &Role{}
			}
			// First-seen wins for dates set off a bare date line.
			if cur.Start == "" {
				cur.Start = ds[0]
			}
			if cur.End == "" {
				cur.End = ds[len(ds)-1]
			}

		case lineOther:
			// Continuation text is not reconstructed.
		}
	}

	flush()
	return roles
}
