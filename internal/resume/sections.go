package resume

import "strings"

// section returns the lines belonging to the first section whose header
// starts with one of headers, exclusive of the header line itself. The
// section ends at the first following line that starts with any *other*
// canonical header, or at end of document. Matching is case-insensitive
// prefix matching; the first occurrence of a repeated header wins. No match
// yields nil.
func (e *Extractor) section(lines []string, headers []string) []string {
	headerIdx := -1
	for i, l := range lines {
		ll := strings.ToLower(l)
		for _, h := range headers {
			if strings.HasPrefix(ll, h) {
				headerIdx = i
				break
			}
		}
		if headerIdx >= 0 {
			break
		}
	}
	if headerIdx < 0 {
		return nil
	}

	own := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		own[h] = struct{}{}
	}

	end := len(lines)
scan:
	for j := headerIdx + 1; j < len(lines); j++ {
		lj := strings.ToLower(lines[j])
		for _, h := range e.vocab.SectionHeaders {
			if _, isOwn := own[h]; isOwn {
				continue
			}
			if strings.HasPrefix(lj, h) {
				end = j
				break scan
			}
		}
	}
	return lines[headerIdx+1 : end]
}

// nonBlankLines trims every line and drops the blank ones.
func nonBlankLines(text string) []string {
	var out []string
	for _, l := range strings.Split(text, "\n") {
		l = strings.TrimSpace(l)
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}
