// Package annotate implements the mitochondrial annotation-and-consequence
// engine: region location, codon coordinate mapping, codon-aligned edit
// decomposition, and amino-acid consequence prediction.
package annotate

import (
	"github.com/inodb/mito-vep/internal/genome"
	"github.com/inodb/mito-vep/internal/vcf"
)

// Consequence classes.
const (
	ClassSynonymous  = "synonymous"
	ClassMissense    = "missense"
	ClassNonsense    = "nonsense"
	ClassReadthrough = "readthrough"
	ClassFrameshift  = "frameshift"
	ClassUnknown     = "unknown"
)

// AnnotatedVariant is a variant call extended with genic/region context
// and gene-local coding coordinates. Local coordinates are 0-based
// offsets from the gene start; -1 means the variant has no overlapping
// coding interval.
type AnnotatedVariant struct {
	Call *vcf.Variant

	Gene         string        // First overlapping feature, "" if intergenic
	OverlapGenes string        // Comma-joined gene names when several features overlap
	Region       genome.Region // Region class of the first hit, "" if intergenic

	LocalStart int64 // 0-based offset from the coding gene start, -1 if non-coding
	LocalEnd   int64 // 0-based offset of the last reference base, -1 if non-coding
	StartCodon int64 // LocalStart / 3, -1 if non-coding
	EndCodon   int64 // LocalEnd / 3, -1 if non-coding

	// Enrichment from external pathogenicity sources; zero values mean
	// no data was available.
	ImpactScore float64
	ImpactClass string

	// Located guards idempotence: a located variant is returned as-is
	// by the locator instead of being recomputed.
	Located bool
}

// NewAnnotatedVariant wraps a raw call with annotation fields unset.
func NewAnnotatedVariant(call *vcf.Variant) *AnnotatedVariant {
	return &AnnotatedVariant{
		Call:       call,
		LocalStart: -1,
		LocalEnd:   -1,
		StartCodon: -1,
		EndCodon:   -1,
	}
}

// InCoding reports whether the variant landed in a coding region with
// defined local coordinates.
func (av *AnnotatedVariant) InCoding() bool {
	return av.Region == genome.RegionCoding && av.LocalStart >= 0
}

// DecomposedEdit is a single codon-scoped edit derived from an
// annotated variant. A variant wholly within one codon yields one
// edit; a span crossing codon boundaries yields one per affected
// codon. AltCodon is the reconstructed alternate sequence for the
// codon's slot: always a full triplet except for the trailing codon of
// a length-changing edit, which carries the remainder of the edited
// window so that concatenated AltCodons reproduce it exactly.
type DecomposedEdit struct {
	Gene       string
	CodonIndex int64
	RefCodon   string
	AltCodon   string
	Frameshift bool // Edit shifts the reading frame downstream
}

// ConsequenceAnnotation is the predicted amino-acid level effect of a
// single decomposed edit.
type ConsequenceAnnotation struct {
	Gene       string
	CodonIndex int64
	RefAA      byte
	AltAA      byte
	Class      string
}

// AAChange formats the amino-acid change, e.g. "L11F". Codon indices
// are 0-based internally; the conventional 1-based protein position is
// used for display.
func (c *ConsequenceAnnotation) AAChange() string {
	if c.RefAA == 0 || c.AltAA == 0 {
		return ""
	}
	return string(c.RefAA) + formatInt64(c.CodonIndex+1) + string(c.AltAA)
}

func formatInt64(n int64) string {
	if n == 0 {
		return "0"
	}

	var digits []byte
	negative := n < 0
	if negative {
		n = -n
	}

	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}

	if negative {
		digits = append([]byte{'-'}, digits...)
	}

	return string(digits)
}
