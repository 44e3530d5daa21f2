package vcf

import "fmt"

// ParseError reports a structurally invalid line with line context.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("vcf parse error at line %d: %s", e.Line, e.Message)
}

// MalformedVariantError reports a record whose alleles are inconsistent
// with the reference or with the declared variant type. The record is
// skipped and the run continues.
type MalformedVariantError struct {
	Chrom   string
	Pos     int64
	Message string
}

func (e *MalformedVariantError) Error() string {
	return fmt.Sprintf("malformed variant at %s:%d: %s", e.Chrom, e.Pos, e.Message)
}

// ReferenceError reports a variant outside the known mitochondrial
// reference contig. Fatal for the containing variant set only.
type ReferenceError struct {
	Chrom string
	Pos   int64
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("variant at %s:%d is outside the mitochondrial reference (1-%d on MT)",
		e.Chrom, e.Pos, RCRSLength)
}
