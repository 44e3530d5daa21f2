package mitimpact

import "github.com/inodb/mito-vep/internal/annotate"

// Source wraps a Table as an annotate.Source.
type Source struct {
	table Table
}

// NewSource creates an enrichment source backed by the given table.
func NewSource(table Table) *Source {
	return &Source{table: table}
}

func (s *Source) Name() string    { return "mitimpact" }
func (s *Source) Version() string { return "mitimpact.tsv" }

// Annotate attaches the impact score and class when the variant has an
// entry; a miss leaves the variant untouched.
func (s *Source) Annotate(av *annotate.AnnotatedVariant) {
	if r, ok := s.table.Lookup(av.Call.Key()); ok {
		av.ImpactScore = r.Score
		av.ImpactClass = r.Class
	}
}
