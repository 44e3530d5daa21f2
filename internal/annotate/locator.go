package annotate

import (
	"strings"

	"go.uber.org/zap"

	"github.com/inodb/mito-vep/internal/genome"
	"github.com/inodb/mito-vep/internal/vcf"
)

// IntervalLookup defines the overlap queries the locator needs.
// *genome.Index satisfies it.
type IntervalLookup interface {
	Overlaps(pos int64) []genome.Interval
	CodingOverlaps(pos int64) []genome.Interval
}

// Locator maps variant calls to overlapping annotation intervals and
// derives gene-local coding coordinates and codon indices.
//
// Ambiguity rule: when several intervals overlap a position, the gene
// and region come from the first hit in the index's deterministic
// order, and the full candidate list is kept on OverlapGenes. Local
// coordinates come from the first *coding* hit in that same order, so
// whenever Region is coding the same interval supplies every derived
// field.
type Locator struct {
	index  IntervalLookup
	logger *zap.Logger
}

// NewLocator creates a locator over the given annotation index.
func NewLocator(index IntervalLookup) *Locator {
	return &Locator{
		index:  index,
		logger: zap.NewNop(),
	}
}

// SetLogger sets the logger for warning and info messages.
func (l *Locator) SetLogger(logger *zap.Logger) {
	l.logger = logger
}

// LocateCall wraps a raw call and locates it.
func (l *Locator) LocateCall(call *vcf.Variant) *AnnotatedVariant {
	return l.Locate(NewAnnotatedVariant(call))
}

// Locate fills the annotation fields of av. Locating never fails for
// well-formed input: a variant with no overlap is a valid output with
// empty gene and region. Idempotent: an already-located variant is
// returned unchanged.
func (l *Locator) Locate(av *AnnotatedVariant) *AnnotatedVariant {
	if av.Located {
		return av
	}

	pos := av.Call.Pos
	hits := l.index.Overlaps(pos)

	if len(hits) > 0 {
		av.Gene = hits[0].Gene
		av.Region = hits[0].Region
		if len(hits) > 1 {
			names := make([]string, len(hits))
			for i, h := range hits {
				names[i] = h.Gene
			}
			av.OverlapGenes = strings.Join(names, ",")
			l.logger.Debug("ambiguous overlap resolved by first hit",
				zap.Int64("pos", pos),
				zap.String("genes", av.OverlapGenes))
		}
	}

	// Coding membership is decided against coding intervals only. The
	// local coordinates are offsets on the annotated (heavy) strand and
	// are deliberately not strand-corrected.
	if coding := l.index.CodingOverlaps(pos); len(coding) > 0 {
		m := coding[0]
		av.LocalStart = pos - m.Start
		av.LocalEnd = pos + int64(len(av.Call.Ref)) - 1 - m.Start
		av.StartCodon = av.LocalStart / 3
		av.EndCodon = av.LocalEnd / 3
	}

	av.Located = true
	return av
}

// LocateSet locates every call of a set in input order. With
// filterLowQuality set, calls that did not pass upstream filtering are
// dropped entirely rather than emitted unannotated.
func (l *Locator) LocateSet(set *vcf.VariantSet, filterLowQuality bool) []*AnnotatedVariant {
	out := make([]*AnnotatedVariant, 0, len(set.Calls))
	for _, call := range set.Calls {
		if filterLowQuality && !call.Pass {
			continue
		}
		out = append(out, l.LocateCall(call))
	}
	return out
}
