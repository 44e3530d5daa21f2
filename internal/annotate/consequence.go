package annotate

import "strings"

// Predict classifies the amino-acid consequence of a single decomposed
// edit. Pure function, total over all well-formed edits: inputs that
// cannot be classified come back as ClassUnknown, never an error.
//
// The frameshift flag overrides the amino-acid comparison. Ambiguous
// bases (anything outside A/C/G/T) in either codon yield ClassUnknown.
// For in-frame multi-codon alternate units every complete triplet is
// translated; a stop anywhere in the unit counts as gained.
func Predict(edit DecomposedEdit) ConsequenceAnnotation {
	ann := ConsequenceAnnotation{
		Gene:       edit.Gene,
		CodonIndex: edit.CodonIndex,
		RefAA:      TranslateCodon(edit.RefCodon),
	}

	if edit.Frameshift {
		ann.AltAA = firstAA(edit.AltCodon)
		ann.Class = ClassFrameshift
		return ann
	}

	if len(edit.RefCodon) != 3 || !ValidBases(edit.RefCodon) ||
		!ValidBases(edit.AltCodon) ||
		len(edit.AltCodon) == 0 || len(edit.AltCodon)%3 != 0 {
		ann.AltAA = firstAA(edit.AltCodon)
		ann.Class = ClassUnknown
		return ann
	}

	altAAs := TranslateSequence(edit.AltCodon)
	ann.AltAA = firstAA(edit.AltCodon)

	switch {
	case ann.RefAA != '*' && strings.ContainsRune(altAAs, '*'):
		ann.AltAA = '*'
		ann.Class = ClassNonsense
	case ann.RefAA == '*' && !strings.ContainsRune(altAAs, '*'):
		ann.Class = ClassReadthrough
	case altAAs == string(ann.RefAA):
		ann.Class = ClassSynonymous
	default:
		ann.Class = ClassMissense
	}
	return ann
}

// PredictAll maps Predict across a decomposition.
func PredictAll(edits []DecomposedEdit) []ConsequenceAnnotation {
	if len(edits) == 0 {
		return nil
	}
	out := make([]ConsequenceAnnotation, len(edits))
	for i, e := range edits {
		out[i] = Predict(e)
	}
	return out
}

// firstAA translates the first triplet of an alternate unit, 'X' when
// the unit is empty or partial.
func firstAA(altCodon string) byte {
	if len(altCodon) < 3 {
		return 'X'
	}
	return TranslateCodon(altCodon[:3])
}
