// Package vcf parses mitochondrial variant calls produced by an
// upstream caller and models them for annotation.
package vcf

import "fmt"

// RCRSLength is the length of the revised Cambridge Reference Sequence,
// the single mitochondrial contig this pipeline operates on.
const RCRSLength = 16569

// Variant represents a single variant call from the upstream caller.
// Immutable once parsed.
type Variant struct {
	Chrom string // Contig name (e.g., "MT", "chrM")
	Pos   int64  // 1-based genomic position
	Ref   string // Reference allele
	Alt   string // Alternate allele (single allele after splitting)
	Depth int    // Read depth at the site (INFO DP), 0 if absent
	Pass  bool   // Cleared upstream quality thresholds (FILTER column)
}

// IsSNV returns true if the variant is a single nucleotide variant.
func (v *Variant) IsSNV() bool {
	return len(v.Ref) == 1 && len(v.Alt) == 1
}

// IsIndel returns true if the variant is an insertion or deletion.
func (v *Variant) IsIndel() bool {
	return len(v.Ref) != len(v.Alt)
}

// IsInsertion returns true if the variant is an insertion.
func (v *Variant) IsInsertion() bool {
	return len(v.Alt) > len(v.Ref)
}

// IsDeletion returns true if the variant is a deletion.
func (v *Variant) IsDeletion() bool {
	return len(v.Ref) > len(v.Alt)
}

// NormalizeChrom returns the contig name without a "chr" prefix.
func (v *Variant) NormalizeChrom() string {
	if len(v.Chrom) > 3 && v.Chrom[:3] == "chr" {
		return v.Chrom[3:]
	}
	return v.Chrom
}

// InReference reports whether the variant span lies within the
// mitochondrial reference contig.
func (v *Variant) InReference() bool {
	chrom := v.NormalizeChrom()
	if chrom != "MT" && chrom != "M" {
		return false
	}
	end := v.Pos + int64(len(v.Ref)) - 1
	return v.Pos >= 1 && end <= RCRSLength
}

// Key formats the position-keyed identifier used for external lookups,
// e.g. "MT:3308 A>G".
func (v *Variant) Key() string {
	return fmt.Sprintf("%s:%d %s>%s", v.NormalizeChrom(), v.Pos, v.Ref, v.Alt)
}

// VariantSet is an ordered collection of calls belonging to one
// sample. It is the unit of parallel processing: sets are processed in
// full isolation from each other.
type VariantSet struct {
	Sample string
	Calls  []*Variant
}
