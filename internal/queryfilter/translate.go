package queryfilter

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	yoeRE   = regexp.MustCompile(`(?i)(\d{1,2})\s*\+?\s*(?:years|yrs|yoe)\b`)
	placeRE = regexp.MustCompile(`(?i)\b(?:in|from|at)\s+([A-Za-z .,'-]+)\b`)
	fileRE  = regexp.MustCompile(`(?i)\bfile\s*:\s*([\w.\- ]+\.pdf)\b`)

	// placeStopRE cuts a captured place before trailing query words that the
	// loose character class also swallows ("Dublin, Ireland with 5+ years").
	placeStopRE = regexp.MustCompile(`(?i)\b(?:with|having|and|using|who|that|where|expert|skills?)\b`)

	// skillStopRE bounds a captured skill span at the first stop word.
	skillStopRE = regexp.MustCompile(`(?i)\b(?:for|in|of|and then|who|that|where)\b`)
	skillSepRE  = regexp.MustCompile(`(?i),|/| and `)
)

// seniorityWords is priority-ordered: the first whole-word hit wins.
var seniorityWords = []string{
	"intern", "junior", "jr", "associate", "mid", "senior", "sr", "lead",
	"principal", "staff", "manager", "head", "director", "vp", "chief",
	"cto", "cpo", "coo", "ceo",
}

var seniorityAliases = map[string]string{"jr": "junior", "sr": "senior"}

// skillTriggers are tested in order; only the first phrase that appears in
// the query contributes terms. A query naming two triggers ("with X using Y")
// honors only the first.
var skillTriggers = []string{"with", "having", "skills", "skill", "expert in", "using"}

// Translator converts free-text queries into Specs. The zero vocabulary is
// the production one; tests may shrink the word lists.
type Translator struct {
	seniority []string
	triggers  []string
}

func NewTranslator() *Translator {
	return &Translator{seniority: seniorityWords, triggers: skillTriggers}
}

// Translate extracts every recognizable constraint from the query. The rules
// run independently, so one query may populate several fields; unrecognized
// text emits nothing.
func (t *Translator) Translate(query string) *Spec {
	spec := &Spec{}
	if strings.TrimSpace(query) == "" {
		return spec
	}

	t.parseYOE(query, spec)
	t.parseSeniority(query, spec)
	t.parseLocation(query, spec)
	t.parseFile(query, spec)
	t.parseSkillTerms(query, spec)

	return spec
}

// parseYOE turns "<n>+ years|yrs|yoe" into a yoe >= n bound.
func (t *Translator) parseYOE(query string, spec *Spec) {
	m := yoeRE.FindStringSubmatch(query)
	if m == nil {
		return
	}
	years, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return
	}
	spec.setField("yoe", Predicate{Gte: &years})
}

func (t *Translator) parseSeniority(query string, spec *Spec) {
	for _, w := range t.seniority {
		re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(w) + `\b`)
		if err != nil || !re.MatchString(query) {
			continue
		}
		norm := w
		if alias, ok := seniorityAliases[w]; ok {
			norm = alias
		}
		spec.setField("seniority", Predicate{Eq: norm})
		return
	}
}

// parseLocation handles "in Dublin" and "in Dublin, Ireland". A comma splits
// city from country, each side becoming an equality predicate; without a
// comma the single place matches either field via the should bucket.
func (t *Translator) parseLocation(query string, spec *Spec) {
	m := placeRE.FindStringSubmatch(query)
	if m == nil {
		return
	}
	place := strings.TrimSpace(placeStopRE.Split(m[1], 2)[0])
	place = strings.Trim(place, " ,")
	if place == "" {
		return
	}

	if city, country, ok := strings.Cut(place, ","); ok {
		if c := strings.TrimSpace(city); c != "" {
			spec.setField("city", Predicate{Eq: c})
		}
		if c := strings.TrimSpace(country); c != "" {
			spec.setField("country", Predicate{Eq: c})
		}
		return
	}

	spec.Should = append(spec.Should,
		Entry{Key: "city", Predicate: Predicate{Eq: place}},
		Entry{Key: "country", Predicate: Predicate{Eq: place}},
	)
}

func (t *Translator) parseFile(query string, spec *Spec) {
	m := fileRE.FindStringSubmatch(query)
	if m == nil {
		return
	}
	spec.setField("file_name", Predicate{Eq: strings.TrimSpace(m[1])})
}

// parseSkillTerms captures the span after the first matching trigger phrase,
// bounded at the first stop word, and splits it into lowercase terms matched
// any-wise against the normalized keyword field.
func (t *Translator) parseSkillTerms(query string, spec *Spec) {
	for _, kw := range t.triggers {
		re, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(kw) + `\s+([A-Za-z0-9+/#., &\-]+)`)
		if err != nil {
			continue
		}
		m := re.FindStringSubmatch(query)
		if m == nil {
			continue
		}

		span := skillStopRE.Split(m[1], 2)[0]
		var terms []string
		for _, part := range skillSepRE.Split(span, -1) {
			if p := strings.ToLower(strings.Trim(part, " ,.&")); p != "" {
				terms = append(terms, p)
			}
		}
		if len(terms) > 0 {
			spec.setField("normalized_keywords", Predicate{Any: terms})
		}
		return
	}
}
