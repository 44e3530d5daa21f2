package annotate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslateCodon_MitochondrialCode(t *testing.T) {
	// The four codons where the vertebrate mitochondrial code differs
	// from the standard code.
	assert.Equal(t, byte('M'), TranslateCodon("ATA"))
	assert.Equal(t, byte('W'), TranslateCodon("TGA"))
	assert.Equal(t, byte('*'), TranslateCodon("AGA"))
	assert.Equal(t, byte('*'), TranslateCodon("AGG"))
}

func TestTranslateCodon_Standard(t *testing.T) {
	assert.Equal(t, byte('M'), TranslateCodon("ATG"))
	assert.Equal(t, byte('L'), TranslateCodon("CTT"))
	assert.Equal(t, byte('L'), TranslateCodon("CTC"))
	assert.Equal(t, byte('*'), TranslateCodon("TAA"))
	assert.Equal(t, byte('*'), TranslateCodon("TAG"))
	assert.Equal(t, byte('K'), TranslateCodon("AAA"))
}

func TestTranslateCodon_Invalid(t *testing.T) {
	assert.Equal(t, byte('X'), TranslateCodon("AT"))
	assert.Equal(t, byte('X'), TranslateCodon(""))
	assert.Equal(t, byte('X'), TranslateCodon("ANT"))
	assert.Equal(t, byte('X'), TranslateCodon("atg"))
}

func TestIsStopCodon(t *testing.T) {
	for _, codon := range []string{"TAA", "TAG", "AGA", "AGG"} {
		assert.True(t, IsStopCodon(codon), codon)
	}
	// TGA is Trp in mitochondria, not a stop.
	assert.False(t, IsStopCodon("TGA"))
	assert.False(t, IsStopCodon("ATG"))
}

func TestTranslateSequence(t *testing.T) {
	assert.Equal(t, "ML", TranslateSequence("ATGCTT"))
	assert.Equal(t, "M", TranslateSequence("ATGCT")) // partial codon truncated
	assert.Equal(t, "", TranslateSequence(""))
}

func TestValidBases(t *testing.T) {
	assert.True(t, ValidBases("ACGT"))
	assert.True(t, ValidBases(""))
	assert.False(t, ValidBases("ACGN"))
	assert.False(t, ValidBases("acgt"))
}

func TestGetCodon(t *testing.T) {
	seq := "ATGGCACCC"
	assert.Equal(t, "ATG", GetCodon(seq, 0))
	assert.Equal(t, "CCC", GetCodon(seq, 2))
	assert.Equal(t, "", GetCodon(seq, 3))
	assert.Equal(t, "", GetCodon(seq, -1))
}
