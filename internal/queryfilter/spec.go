// Package queryfilter translates free-text search queries into structured
// retrieval predicates. The translation is layered heuristics with explicit
// tie-break rules; anything the rules don't recognize stays unconstrained.
package queryfilter

// Predicate is one field constraint. Exactly the operators the retrieval
// store understands: eq, in, any, all, numeric range bounds, and free-text
// match. Zero-valued operators are absent.
type Predicate struct {
	Eq   string   `json:"eq,omitempty"`
	In   []string `json:"in,omitempty"`
	Any  []string `json:"any,omitempty"`
	All  []string `json:"all,omitempty"`
	Gte  *float64 `json:"gte,omitempty"`
	Lte  *float64 `json:"lte,omitempty"`
	Gt   *float64 `json:"gt,omitempty"`
	Lt   *float64 `json:"lt,omitempty"`
	Text string   `json:"text,omitempty"`
}

// Entry is a field+predicate pair inside a boolean bucket.
type Entry struct {
	Key string `json:"key"`
	Predicate
}

// Spec is the structured predicate set for one query. Top-level Fields are
// hard constraints; the buckets carry explicit boolean semantics. A Spec is
// built once per query and handed straight to the retrieval store.
type Spec struct {
	Fields  map[string]Predicate `json:"fields,omitempty"`
	Must    []Entry              `json:"must,omitempty"`
	Should  []Entry              `json:"should,omitempty"`
	MustNot []Entry              `json:"must_not,omitempty"`
}

// Empty reports whether no predicate was extracted.
func (s *Spec) Empty() bool {
	return s == nil || (len(s.Fields) == 0 && len(s.Must) == 0 && len(s.Should) == 0 && len(s.MustNot) == 0)
}

func (s *Spec) setField(key string, p Predicate) {
	if s.Fields == nil {
		s.Fields = make(map[string]Predicate)
	}
	s.Fields[key] = p
}
