package resume

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"strings"
	"time"
)

// computeYOE derives years of experience from the role date window:
// earliest parseable start to latest parseable end, or now when no role has
// ended. No parseable start, or an end before the start, yields absent.
func computeYOE(roles []Role, now time.Time) (float64, bool) {
	var starts, ends []time.Time
	for _, r := range roles {
		if r.Start != "" {
			if d, ok := parseISODate(r.Start); ok {
				starts = append(starts, d)
			}
		}
		if r.End != "" {
			if d, ok := parseISODate(r.End); ok {
				ends = append(ends, d)
			}
		}
	}
	if len(starts) == 0 {
		return 0, false
	}

	start := starts[0]
	for _, s := range starts[1:] {
		if s.Before(start) {
			start = s
		}
	}
	end := now
	if len(ends) > 0 {
		end = ends[0]
		for _, e := range ends[1:] {
			if e.After(end) {
				end = e
			}
		}
	}

	years := end.Sub(start).Hours() / 24 / 365.25
	if years < 0 {
		return 0, false
	}
	return years, true
}

// normalizedKeywords unions the classified term lists into a lowercase,
// whitespace-collapsed, deduplicated, sorted keyword set.
func normalizedKeywords(lists ...[]string) []string {
	bag := make(map[string]struct{})
	for _, list := range lists {
		for _, x := range list {
			if k := collapseSpace(x); k != "" {
				bag[k] = struct{}{}
			}
		}
	}
	if len(bag) == 0 {
		return nil
	}
	out := make([]string, 0, len(bag))
	for k := range bag {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// skillsetHash fingerprints a keyword set independent of original ordering
// or casing. Empty input yields no hash.
func skillsetHash(keywords []string) string {
	if len(keywords) == 0 {
		return ""
	}
	sorted := make([]string, len(keywords))
	copy(sorted, keywords)
	sort.Strings(sorted)
	sum := sha256.Sum256([]byte(strings.Join(sorted, "|")))
	return fmt.Sprintf("%x", sum)
}
