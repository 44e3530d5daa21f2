package annotate

import "strings"

// Vertebrate mitochondrial genetic code: DNA codon to amino acid
// (single letter). Differs from the standard code at four codons:
// ATA encodes Met, TGA encodes Trp, and AGA/AGG are stops.
var codonTable = map[string]byte{
	"TTT": 'F', "TTC": 'F', "TTA": 'L', "TTG": 'L',
	"TCT": 'S', "TCC": 'S', "TCA": 'S', "TCG": 'S',
	"TAT": 'Y', "TAC": 'Y', "TAA": '*', "TAG": '*',
	"TGT": 'C', "TGC": 'C', "TGA": 'W', "TGG": 'W',

	"CTT": 'L', "CTC": 'L', "CTA": 'L', "CTG": 'L',
	"CCT": 'P', "CCC": 'P', "CCA": 'P', "CCG": 'P',
	"CAT": 'H', "CAC": 'H', "CAA": 'Q', "CAG": 'Q',
	"CGT": 'R', "CGC": 'R', "CGA": 'R', "CGG": 'R',

	"ATT": 'I', "ATC": 'I', "ATA": 'M', "ATG": 'M',
	"ACT": 'T', "ACC": 'T', "ACA": 'T', "ACG": 'T',
	"AAT": 'N', "AAC": 'N', "AAA": 'K', "AAG": 'K',
	"AGT": 'S', "AGC": 'S', "AGA": '*', "AGG": '*',

	"GTT": 'V', "GTC": 'V', "GTA": 'V', "GTG": 'V',
	"GCT": 'A', "GCC": 'A', "GCA": 'A', "GCG": 'A',
	"GAT": 'D', "GAC": 'D', "GAA": 'E', "GAG": 'E',
	"GGT": 'G', "GGC": 'G', "GGA": 'G', "GGG": 'G',
}

// TranslateCodon translates a DNA codon to its amino acid.
// Returns 'X' for unknown or partial codons and '*' for stop codons.
// Sequence tables are uppercased at load, so no ToUpper is needed.
func TranslateCodon(codon string) byte {
	if len(codon) != 3 {
		return 'X'
	}
	if aa, ok := codonTable[codon]; ok {
		return aa
	}
	return 'X'
}

// IsStopCodon returns true for the mitochondrial stop codons
// (TAA, TAG, AGA, AGG).
func IsStopCodon(codon string) bool {
	return TranslateCodon(codon) == '*'
}

// TranslateSequence translates a codon-aligned DNA sequence to amino
// acids. A trailing partial codon is truncated.
func TranslateSequence(seq string) string {
	n := (len(seq) / 3) * 3

	var result strings.Builder
	result.Grow(n / 3)
	for i := 0; i < n; i += 3 {
		result.WriteByte(TranslateCodon(seq[i : i+3]))
	}
	return result.String()
}

// ValidBases reports whether every character of seq is an unambiguous
// DNA base. The empty string is valid (a full-codon deletion).
func ValidBases(seq string) bool {
	for i := 0; i < len(seq); i++ {
		switch seq[i] {
		case 'A', 'C', 'G', 'T':
		default:
			return false
		}
	}
	return true
}

// GetCodon extracts the codon at a 0-based codon index from a gene
// sequence, "" if the index runs past the sequence.
func GetCodon(seq string, codonIndex int64) string {
	start := codonIndex * 3
	end := start + 3
	if codonIndex < 0 || end > int64(len(seq)) {
		return ""
	}
	return seq[start:end]
}
