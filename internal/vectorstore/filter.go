package vectorstore

import (
	"sort"
	"strconv"

	"github.com/qdrant/go-client/qdrant"

	"github.com/Ahlawat23/resumekeeper/internal/queryfilter"
)

// BuildFilter lowers a structured filter spec into a Qdrant filter.
// Field predicates become must conditions; the explicit must, should and
// must_not buckets map to their Qdrant counterparts. Returns nil for an
// empty spec so callers can pass it straight to a query.
func BuildFilter(spec queryfilter.Spec) *qdrant.Filter {
	if spec.Empty() {
		return nil
	}

	f := &qdrant.Filter{}

	keys := make([]string, 0, len(spec.Fields))
	for k := range spec.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		f.Must = append(f.Must, lowerPredicate(k, spec.Fields[k])...)
	}

	for _, e := range spec.Must {
		f.Must = append(f.Must, lowerPredicate(e.Key, e.Predicate)...)
	}
	for _, e := range spec.Should {
		f.Should = append(f.Should, lowerPredicate(e.Key, e.Predicate)...)
	}
	for _, e := range spec.MustNot {
		f.MustNot = append(f.MustNot, lowerPredicate(e.Key, e.Predicate)...)
	}
	return f
}

// lowerPredicate translates one predicate into Qdrant conditions. A single
// predicate can yield several conditions: "all" has no native match variant,
// so it expands to one keyword condition per value.
func lowerPredicate(key string, p queryfilter.Predicate) []*qdrant.Condition {
	var conds []*qdrant.Condition

	if p.Eq != "" {
		if n, err := strconv.ParseInt(p.Eq, 10, 64); err == nil {
			conds = append(conds, qdrant.NewMatchInt(key, n))
		} else {
			conds = append(conds, qdrant.NewMatchKeyword(key, p.Eq))
		}
	}
	if len(p.In) > 0 {
		conds = append(conds, qdrant.NewMatchKeywords(key, p.In...))
	}
	if len(p.Any) > 0 {
		conds = append(conds, qdrant.NewMatchKeywords(key, p.Any...))
	}
	for _, v := range p.All {
		conds = append(conds, qdrant.NewMatchKeyword(key, v))
	}
	if p.Gte != nil || p.Lte != nil || p.Gt != nil || p.Lt != nil {
		conds = append(conds, qdrant.NewRange(key, &qdrant.Range{
			Gte: p.Gte,
			Lte: p.Lte,
			Gt:  p.Gt,
			Lt:  p.Lt,
		}))
	}
	if p.Text != "" {
		conds = append(conds, qdrant.NewMatchText(key, p.Text))
	}
	return conds
}
