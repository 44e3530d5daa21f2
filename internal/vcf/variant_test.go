package vcf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVariantPredicates(t *testing.T) {
	snv := &Variant{Chrom: "MT", Pos: 3308, Ref: "A", Alt: "G"}
	assert.True(t, snv.IsSNV())
	assert.False(t, snv.IsIndel())

	ins := &Variant{Chrom: "MT", Pos: 3308, Ref: "A", Alt: "ACT"}
	assert.True(t, ins.IsIndel())
	assert.True(t, ins.IsInsertion())
	assert.False(t, ins.IsDeletion())

	del := &Variant{Chrom: "MT", Pos: 3308, Ref: "ACT", Alt: "A"}
	assert.True(t, del.IsIndel())
	assert.True(t, del.IsDeletion())
}

func TestNormalizeChrom(t *testing.T) {
	assert.Equal(t, "MT", (&Variant{Chrom: "chrMT"}).NormalizeChrom())
	assert.Equal(t, "MT", (&Variant{Chrom: "MT"}).NormalizeChrom())
	assert.Equal(t, "M", (&Variant{Chrom: "chrM"}).NormalizeChrom())
}

func TestInReference(t *testing.T) {
	assert.True(t, (&Variant{Chrom: "MT", Pos: 1, Ref: "G"}).InReference())
	assert.True(t, (&Variant{Chrom: "chrM", Pos: 16569, Ref: "G"}).InReference())

	// Span running past the contig end.
	assert.False(t, (&Variant{Chrom: "MT", Pos: 16569, Ref: "GA"}).InReference())
	assert.False(t, (&Variant{Chrom: "MT", Pos: 0, Ref: "G"}).InReference())
	assert.False(t, (&Variant{Chrom: "MT", Pos: 20000, Ref: "G"}).InReference())

	// Wrong contig entirely.
	assert.False(t, (&Variant{Chrom: "12", Pos: 100, Ref: "G"}).InReference())
}

func TestKey(t *testing.T) {
	v := &Variant{Chrom: "chrMT", Pos: 3308, Ref: "A", Alt: "G"}
	assert.Equal(t, "MT:3308 A>G", v.Key())
}
