package annotate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/mito-vep/internal/genome"
	"github.com/inodb/mito-vep/internal/vcf"
)

// cycleSeq builds a deterministic reference sequence so that expected
// codons can be sliced out of it instead of hardcoded.
func cycleSeq(n int) string {
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte("ACGT"[i%4])
	}
	return b.String()
}

func testDecomposer(t *testing.T) (*Locator, *Decomposer, string) {
	t.Helper()
	seq := cycleSeq(956) // MT-ND1 spans 3307..4262
	table := genome.NewSequenceTable(map[string]string{"MT-ND1": seq})
	return NewLocator(testIndex()), NewDecomposer(table), seq
}

func locate(t *testing.T, loc *Locator, pos int64, ref, alt string) *AnnotatedVariant {
	t.Helper()
	av := loc.LocateCall(&vcf.Variant{Chrom: "MT", Pos: pos, Ref: ref, Alt: alt})
	require.True(t, av.Located)
	return av
}

func TestDecompose_SNVWithinCodon(t *testing.T) {
	loc, dec, seq := testDecomposer(t)

	av := locate(t, loc, 3308, seq[1:2], "G")
	edits, err := dec.Decompose(av)
	require.NoError(t, err)
	require.Len(t, edits, 1)

	e := edits[0]
	assert.Equal(t, "MT-ND1", e.Gene)
	assert.Equal(t, int64(0), e.CodonIndex)
	assert.Equal(t, seq[0:3], e.RefCodon)
	assert.Equal(t, string(seq[0])+"G"+string(seq[2]), e.AltCodon)
	assert.False(t, e.Frameshift)
}

func TestDecompose_SpanningCodonBoundary(t *testing.T) {
	loc, dec, seq := testDecomposer(t)

	// Locals 32..33: last base of codon 10 and first base of codon 11.
	av := locate(t, loc, 3339, seq[32:34], "GA")
	edits, err := dec.Decompose(av)
	require.NoError(t, err)
	require.Len(t, edits, 2)

	assert.Equal(t, int64(10), edits[0].CodonIndex)
	assert.Equal(t, int64(11), edits[1].CodonIndex)
	assert.Equal(t, seq[30:33], edits[0].RefCodon)
	assert.Equal(t, seq[33:36], edits[1].RefCodon)
	assert.Equal(t, seq[30:32]+"G", edits[0].AltCodon)
	assert.Equal(t, "A"+seq[34:36], edits[1].AltCodon)

	// Every unit is a full triplet for a same-length substitution.
	for _, e := range edits {
		assert.Len(t, e.AltCodon, 3)
		assert.False(t, e.Frameshift)
	}
}

func TestDecompose_InFrameInsertion(t *testing.T) {
	loc, dec, seq := testDecomposer(t)

	ref := seq[1:2]
	av := locate(t, loc, 3308, ref, ref+"TGA")
	edits, err := dec.Decompose(av)
	require.NoError(t, err)
	require.Len(t, edits, 1)

	e := edits[0]
	assert.False(t, e.Frameshift)
	assert.Equal(t, seq[0:3], e.RefCodon)
	// The single affected codon absorbs the whole inserted run.
	assert.Equal(t, string(seq[0])+ref+"TGA"+string(seq[2]), e.AltCodon)
	assert.Len(t, e.AltCodon, 6)
}

func TestDecompose_FrameshiftInsertion(t *testing.T) {
	loc, dec, seq := testDecomposer(t)

	ref := seq[1:2]
	av := locate(t, loc, 3308, ref, ref+"T")
	edits, err := dec.Decompose(av)
	require.NoError(t, err)
	require.Len(t, edits, 1)
	assert.True(t, edits[0].Frameshift)
}

func TestDecompose_InFrameDeletion(t *testing.T) {
	loc, dec, seq := testDecomposer(t)

	// Locals 1..4, alt keeps the anchor base: net loss of three bases
	// spread over codons 0 and 1.
	av := locate(t, loc, 3308, seq[1:5], seq[1:2])
	edits, err := dec.Decompose(av)
	require.NoError(t, err)
	require.Len(t, edits, 2)

	assert.False(t, edits[0].Frameshift)
	assert.Equal(t, seq[0:3], edits[0].RefCodon)
	assert.Equal(t, seq[3:6], edits[1].RefCodon)

	// Concatenated alternate units reproduce the edited window exactly.
	edited := seq[:1] + seq[1:2] + seq[5:]
	assert.Equal(t, edited[0:3], edits[0].AltCodon+edits[1].AltCodon)
}

func TestDecompose_RoundTripInvariant(t *testing.T) {
	loc, dec, seq := testDecomposer(t)

	cases := []struct {
		pos      int64
		ref, alt string
	}{
		{3308, seq[1:2], "G"},
		{3339, seq[32:34], "TT"},
		{3308, seq[1:2], seq[1:2] + "ACGTA"},
		{3310, seq[3:7], seq[3:4]},
	}

	for _, tc := range cases {
		av := locate(t, loc, tc.pos, tc.ref, tc.alt)
		edits, err := dec.Decompose(av)
		require.NoError(t, err)

		ls := av.LocalStart
		le := av.LocalEnd
		edited := seq[:ls] + tc.alt + seq[le+1:]

		s3 := av.StartCodon * 3
		altEnd := (av.EndCodon+1)*3 + int64(len(tc.alt)-len(tc.ref))
		if altEnd > int64(len(edited)) {
			altEnd = int64(len(edited))
		}

		var joined strings.Builder
		for _, e := range edits {
			joined.WriteString(e.AltCodon)
		}
		assert.Equal(t, edited[s3:altEnd], joined.String(), "%s>%s at %d", tc.ref, tc.alt, tc.pos)
	}
}

func TestDecompose_NonCodingYieldsNothing(t *testing.T) {
	loc, dec, _ := testDecomposer(t)

	av := locate(t, loc, 600, "T", "C")
	edits, err := dec.Decompose(av)
	assert.NoError(t, err)
	assert.Empty(t, edits)
}

func TestDecompose_UnknownGene(t *testing.T) {
	loc, _, _ := testDecomposer(t)
	dec := NewDecomposer(genome.NewSequenceTable(map[string]string{}))

	av := locate(t, loc, 3308, "A", "G")
	_, err := dec.Decompose(av)
	require.Error(t, err)

	var ugErr *genome.UnknownGeneError
	require.ErrorAs(t, err, &ugErr)
	assert.Equal(t, "MT-ND1", ugErr.Gene)
}

func TestDecompose_ReferenceMismatch(t *testing.T) {
	loc, dec, seq := testDecomposer(t)

	wrong := "A"
	if seq[1] == 'A' {
		wrong = "C"
	}
	av := locate(t, loc, 3308, wrong, "G")
	_, err := dec.Decompose(av)
	require.Error(t, err)

	var mvErr *vcf.MalformedVariantError
	require.ErrorAs(t, err, &mvErr)
	assert.Equal(t, int64(3308), mvErr.Pos)
}

func TestDecompose_RefPastGeneEnd(t *testing.T) {
	loc, dec, seq := testDecomposer(t)

	// Last base of MT-ND1 plus one more than the gene holds.
	av := locate(t, loc, 4262, seq[955:]+"A", "G")
	_, err := dec.Decompose(av)
	require.Error(t, err)

	var mvErr *vcf.MalformedVariantError
	require.ErrorAs(t, err, &mvErr)
}
