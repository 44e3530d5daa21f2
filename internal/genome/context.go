package genome

// Context bundles the annotation index and the reference sequence
// table into one immutable value. It is constructed once, before any
// processing starts, and injected into every pipeline stage that
// needs it; nothing downstream mutates it or caches it on variants.
type Context struct {
	Index     *Index
	Sequences *SequenceTable
}

// NewContext builds a Context and validates that every coding interval
// has a reference sequence long enough to cover it.
func NewContext(index *Index, sequences *SequenceTable) (*Context, error) {
	if index == nil || index.Len() == 0 {
		return nil, &ConfigError{Source: "annotation index", Message: "index is empty"}
	}
	if sequences == nil {
		return nil, &ConfigError{Source: "sequence table", Message: "sequence table is nil"}
	}

	for _, iv := range index.CodingIntervals() {
		seq, ok := sequences.Get(iv.Gene)
		if !ok {
			return nil, &ConfigError{
				Source:  "sequence table",
				Message: "no sequence for coding gene " + iv.Gene,
			}
		}
		if int64(len(seq)) < iv.Length() {
			return nil, &ConfigError{
				Source:  "sequence table",
				Message: "sequence for gene " + iv.Gene + " is shorter than its annotated interval",
			}
		}
	}

	return &Context{Index: index, Sequences: sequences}, nil
}
