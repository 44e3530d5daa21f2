package annotate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/mito-vep/internal/genome"
	"github.com/inodb/mito-vep/internal/vcf"
)

func testIndex() *genome.Index {
	return genome.NewIndex([]genome.Interval{
		{Chrom: "MT", Start: 1, End: 576, Strand: 1, Gene: "CR", Region: genome.RegionControl},
		{Chrom: "MT", Start: 577, End: 647, Strand: 1, Gene: "MT-TF", Region: genome.RegionTRNA},
		{Chrom: "MT", Start: 3307, End: 4262, Strand: 1, Gene: "MT-ND1", Region: genome.RegionCoding},
		{Chrom: "MT", Start: 10470, End: 10766, Strand: 1, Gene: "MT-ND4L", Region: genome.RegionCoding},
		{Chrom: "MT", Start: 10760, End: 12137, Strand: 1, Gene: "MT-ND4", Region: genome.RegionCoding},
	})
}

func TestLocate_CodingSNV(t *testing.T) {
	loc := NewLocator(testIndex())

	av := loc.LocateCall(&vcf.Variant{Chrom: "MT", Pos: 3308, Ref: "A", Alt: "G"})
	assert.Equal(t, "MT-ND1", av.Gene)
	assert.Equal(t, genome.RegionCoding, av.Region)
	assert.Equal(t, int64(1), av.LocalStart)
	assert.Equal(t, int64(1), av.LocalEnd)
	assert.Equal(t, int64(0), av.StartCodon)
	assert.Equal(t, int64(0), av.EndCodon)
	assert.True(t, av.InCoding())
	assert.True(t, av.Located)
}

func TestLocate_GeneStart(t *testing.T) {
	loc := NewLocator(testIndex())

	av := loc.LocateCall(&vcf.Variant{Chrom: "MT", Pos: 3307, Ref: "A", Alt: "G"})
	assert.Equal(t, int64(0), av.LocalStart)
	assert.Equal(t, int64(0), av.StartCodon)
}

func TestLocate_SpanningCodonBoundary(t *testing.T) {
	loc := NewLocator(testIndex())

	// Local offsets 32..33 cross the codon 10/11 boundary.
	av := loc.LocateCall(&vcf.Variant{Chrom: "MT", Pos: 3339, Ref: "CT", Alt: "AG"})
	assert.Equal(t, int64(32), av.LocalStart)
	assert.Equal(t, int64(33), av.LocalEnd)
	assert.Equal(t, int64(10), av.StartCodon)
	assert.Equal(t, int64(11), av.EndCodon)
}

func TestLocate_NonCoding(t *testing.T) {
	loc := NewLocator(testIndex())

	av := loc.LocateCall(&vcf.Variant{Chrom: "MT", Pos: 600, Ref: "T", Alt: "C"})
	assert.Equal(t, "MT-TF", av.Gene)
	assert.Equal(t, genome.RegionTRNA, av.Region)
	assert.Equal(t, int64(-1), av.LocalStart)
	assert.Equal(t, int64(-1), av.StartCodon)
	assert.False(t, av.InCoding())
}

func TestLocate_Intergenic(t *testing.T) {
	loc := NewLocator(testIndex())

	av := loc.LocateCall(&vcf.Variant{Chrom: "MT", Pos: 2000, Ref: "A", Alt: "C"})
	assert.Empty(t, av.Gene)
	assert.Empty(t, string(av.Region))
	assert.Empty(t, av.OverlapGenes)
	assert.False(t, av.InCoding())
	assert.True(t, av.Located)
}

func TestLocate_OverlappingGenes(t *testing.T) {
	loc := NewLocator(testIndex())

	// 10763 sits inside both MT-ND4L and MT-ND4; the earlier-starting
	// interval wins and supplies the local coordinates.
	av := loc.LocateCall(&vcf.Variant{Chrom: "MT", Pos: 10763, Ref: "G", Alt: "A"})
	assert.Equal(t, "MT-ND4L", av.Gene)
	assert.Equal(t, "MT-ND4L,MT-ND4", av.OverlapGenes)
	assert.Equal(t, int64(10763-10470), av.LocalStart)
	assert.Equal(t, av.LocalStart/3, av.StartCodon)
}

func TestLocate_Idempotent(t *testing.T) {
	loc := NewLocator(testIndex())

	av := loc.LocateCall(&vcf.Variant{Chrom: "MT", Pos: 3308, Ref: "A", Alt: "G"})
	gene, ls := av.Gene, av.LocalStart

	// Relocating a located variant must not recompute anything.
	av.Gene = "SENTINEL"
	got := loc.Locate(av)
	assert.Same(t, av, got)
	assert.Equal(t, "SENTINEL", got.Gene)

	av2 := loc.Locate(NewAnnotatedVariant(av.Call))
	assert.Equal(t, gene, av2.Gene)
	assert.Equal(t, ls, av2.LocalStart)
}

func TestLocateSet(t *testing.T) {
	loc := NewLocator(testIndex())

	set := &vcf.VariantSet{
		Sample: "s1",
		Calls: []*vcf.Variant{
			{Chrom: "MT", Pos: 3308, Ref: "A", Alt: "G", Pass: true},
			{Chrom: "MT", Pos: 600, Ref: "T", Alt: "C", Pass: false},
			{Chrom: "MT", Pos: 2000, Ref: "A", Alt: "C", Pass: true},
		},
	}

	all := loc.LocateSet(set, false)
	require.Len(t, all, 3)
	assert.Equal(t, "MT-ND1", all[0].Gene)

	filtered := loc.LocateSet(set, true)
	require.Len(t, filtered, 2)
	assert.Equal(t, int64(3308), filtered[0].Call.Pos)
	assert.Equal(t, int64(2000), filtered[1].Call.Pos)
}
