package annotate

import (
	"github.com/inodb/mito-vep/internal/genome"
	"github.com/inodb/mito-vep/internal/vcf"
)

// Decomposer splits variant edits into codon-aligned units so that
// consequence prediction always sees whole codons, even when an edit
// spans a codon boundary.
type Decomposer struct {
	sequences *genome.SequenceTable
}

// NewDecomposer creates a decomposer over the given reference
// sequence table.
func NewDecomposer(sequences *genome.SequenceTable) *Decomposer {
	return &Decomposer{sequences: sequences}
}

// Decompose derives the codon-scoped edits for a located variant.
// Non-coding variants yield an empty list. A variant whose gene has no
// reference sequence yields *genome.UnknownGeneError; a variant whose
// declared reference allele disagrees with the stored sequence yields
// *vcf.MalformedVariantError.
//
// Edits that change the sequence length by a non-multiple of three set
// Frameshift on every emitted unit; codons past the edited span are
// not re-derived here.
func (d *Decomposer) Decompose(av *AnnotatedVariant) ([]DecomposedEdit, error) {
	if !av.InCoding() {
		return nil, nil
	}

	seq, ok := d.sequences.Get(av.Gene)
	if !ok {
		return nil, &genome.UnknownGeneError{Gene: av.Gene}
	}

	call := av.Call
	ls, le := av.LocalStart, av.LocalEnd
	if le >= int64(len(seq)) {
		return nil, &vcf.MalformedVariantError{
			Chrom:   call.Chrom,
			Pos:     call.Pos,
			Message: "reference allele runs past the end of gene " + av.Gene,
		}
	}
	if seq[ls:le+1] != call.Ref {
		return nil, &vcf.MalformedVariantError{
			Chrom:   call.Chrom,
			Pos:     call.Pos,
			Message: "reference allele " + call.Ref + " disagrees with gene sequence " + seq[ls:le+1],
		}
	}

	shift := len(call.Alt) - len(call.Ref)
	frameshift := shift%3 != 0

	// Codon-aligned window covering StartCodon..EndCodon, and the same
	// window on the edited sequence. The edited window absorbs the
	// length change so its slices line up with the reference window.
	s3 := av.StartCodon * 3
	e3 := (av.EndCodon + 1) * 3
	if e3 > int64(len(seq)) {
		// Gene length not divisible by three: the trailing codon is
		// completed by polyadenylation and cannot be reconstructed here.
		e3 = int64(len(seq))
	}

	edited := seq[:ls] + call.Alt + seq[le+1:]
	refWindow := seq[s3:e3]
	altEnd := e3 + int64(shift)
	if altEnd > int64(len(edited)) {
		altEnd = int64(len(edited))
	}
	altWindow := edited[s3:altEnd]

	nCodons := av.EndCodon - av.StartCodon + 1
	edits := make([]DecomposedEdit, 0, nCodons)
	for i := int64(0); i < nCodons; i++ {
		rs := i * 3
		re := rs + 3
		if re > int64(len(refWindow)) {
			re = int64(len(refWindow))
		}

		var altCodon string
		if i == nCodons-1 {
			// Last affected codon carries the remainder of the edited
			// window, keeping the round-trip invariant exact.
			if rs < int64(len(altWindow)) {
				altCodon = altWindow[rs:]
			}
		} else {
			// Deletions can leave the edited window shorter than the
			// reference window; clamp so slots drained by the deletion
			// come out empty.
			as, ae := rs, rs+3
			if as > int64(len(altWindow)) {
				as = int64(len(altWindow))
			}
			if ae > int64(len(altWindow)) {
				ae = int64(len(altWindow))
			}
			altCodon = altWindow[as:ae]
		}

		edits = append(edits, DecomposedEdit{
			Gene:       av.Gene,
			CodonIndex: av.StartCodon + i,
			RefCodon:   refWindow[rs:re],
			AltCodon:   altCodon,
			Frameshift: frameshift,
		})
	}

	return edits, nil
}
