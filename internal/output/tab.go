// Package output provides result export formatters.
package output

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/inodb/mito-vep/internal/pipeline"
)

// TabWriter writes annotated results in tab-delimited format, one row
// per codon-level consequence; variants without consequences get a
// single row with placeholder columns.
type TabWriter struct {
	w       *bufio.Writer
	columns []string
}

// NewTabWriter creates a new tab-delimited writer.
func NewTabWriter(w io.Writer) *TabWriter {
	return &TabWriter{
		w: bufio.NewWriter(w),
		columns: []string{
			"#Sample",
			"Location",
			"Ref",
			"Alt",
			"Depth",
			"Filter",
			"Gene",
			"Overlap_genes",
			"Region",
			"Local_start",
			"Local_end",
			"Codon_index",
			"Ref_codon",
			"Alt_codon",
			"AA_change",
			"Class",
			"Impact_score",
			"Impact_class",
		},
	}
}

// WriteHeader writes the header line.
func (tw *TabWriter) WriteHeader() error {
	_, err := tw.w.WriteString(strings.Join(tw.columns, "\t") + "\n")
	return err
}

// WriteResult writes every record of a pipeline result.
func (tw *TabWriter) WriteResult(res *pipeline.Result) error {
	for i := range res.Records {
		if err := tw.writeRecord(res.Sample, &res.Records[i]); err != nil {
			return err
		}
	}
	return nil
}

func (tw *TabWriter) writeRecord(sample string, rec *pipeline.Record) error {
	av := rec.Variant
	v := av.Call

	location := fmt.Sprintf("%s:%d", v.Chrom, v.Pos)

	filter := "lowqual"
	if v.Pass {
		filter = "PASS"
	}

	gene := dash(av.Gene)
	overlap := dash(av.OverlapGenes)
	region := dash(string(av.Region))

	localStart, localEnd := "-", "-"
	if av.LocalStart >= 0 {
		localStart = fmt.Sprintf("%d", av.LocalStart)
		localEnd = fmt.Sprintf("%d", av.LocalEnd)
	}

	impactScore, impactClass := "-", "-"
	if av.ImpactClass != "" {
		impactScore = fmt.Sprintf("%.3f", av.ImpactScore)
		impactClass = av.ImpactClass
	}

	base := []string{
		sample, location, v.Ref, v.Alt,
		fmt.Sprintf("%d", v.Depth), filter,
		gene, overlap, region, localStart, localEnd,
	}

	if len(rec.Consequences) == 0 {
		row := append(base, "-", "-", "-", "-", "-", impactScore, impactClass)
		_, err := tw.w.WriteString(strings.Join(row, "\t") + "\n")
		return err
	}

	for i, cons := range rec.Consequences {
		refCodon, altCodon := "-", "-"
		if i < len(rec.Edits) {
			refCodon = dash(rec.Edits[i].RefCodon)
			altCodon = dash(rec.Edits[i].AltCodon)
		}
		row := append(base[:len(base):len(base)],
			fmt.Sprintf("%d", cons.CodonIndex),
			refCodon,
			altCodon,
			dash(cons.AAChange()),
			cons.Class,
			impactScore,
			impactClass,
		)
		if _, err := tw.w.WriteString(strings.Join(row, "\t") + "\n"); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes any buffered data to the underlying writer.
func (tw *TabWriter) Flush() error {
	return tw.w.Flush()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
