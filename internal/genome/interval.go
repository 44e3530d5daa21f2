// Package genome provides the mitochondrial annotation index and
// reference sequence tables shared read-only by the annotation pipeline.
package genome

// Region classifies an annotated genomic interval.
type Region string

// Region classes recognized in the annotation table.
const (
	RegionCoding    Region = "coding"
	RegionTRNA      Region = "tRNA"
	RegionRRNA      Region = "rRNA"
	RegionControl   Region = "control"
	RegionNoncoding Region = "noncoding"
)

// ParseRegion validates a region tag from the annotation table.
func ParseRegion(s string) (Region, bool) {
	switch Region(s) {
	case RegionCoding, RegionTRNA, RegionRRNA, RegionControl, RegionNoncoding:
		return Region(s), true
	}
	return "", false
}

// Interval is a single annotated stretch of the mitochondrial genome.
// Intervals are immutable after index construction; overlapping
// intervals are legal (mitochondrial genes legitimately overlap).
type Interval struct {
	Chrom  string // Contig name (e.g., "MT", "chrM")
	Start  int64  // 1-based start, inclusive
	End    int64  // 1-based end, inclusive
	Strand int8   // +1 or -1
	Gene   string // Gene or feature name (e.g., "MT-ND1")
	Region Region // Region class
}

// Contains returns true if the given position falls within the interval.
func (iv *Interval) Contains(pos int64) bool {
	return pos >= iv.Start && pos <= iv.End
}

// IsCoding returns true for protein-coding intervals.
func (iv *Interval) IsCoding() bool {
	return iv.Region == RegionCoding
}

// Length returns the interval span in bases.
func (iv *Interval) Length() int64 {
	return iv.End - iv.Start + 1
}
