package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	goduckdb "github.com/marcboeker/go-duckdb"

	"github.com/inodb/mito-vep/internal/pipeline"
)

// WriteResults batch-inserts pipeline results using the Appender API.
// Each coding variant contributes one row per codon edit; other
// variants contribute one row with empty codon columns.
func (s *Store) WriteResults(results []pipeline.Result) error {
	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", "variant_results")
		return err
	}); err != nil {
		return fmt.Errorf("create appender: %w", err)
	}
	defer appender.Close()

	for _, res := range results {
		for _, rec := range res.Records {
			if len(rec.Consequences) == 0 {
				if err := appendRow(appender, res.Sample, rec, -1); err != nil {
					return err
				}
				continue
			}
			for i := range rec.Consequences {
				if err := appendRow(appender, res.Sample, rec, i); err != nil {
					return err
				}
			}
		}
	}

	return appender.Flush()
}

// appendRow writes one result row. idx selects the consequence/edit
// pair (PredictAll keeps them aligned); -1 writes a row without codon
// columns.
func appendRow(appender *goduckdb.Appender, sample string, rec pipeline.Record, idx int) error {
	av := rec.Variant
	v := av.Call

	var codonIndex int64 = -1
	var refCodon, altCodon, refAA, altAA, class string
	if idx >= 0 {
		cons := rec.Consequences[idx]
		codonIndex = cons.CodonIndex
		class = cons.Class
		refAA = string(cons.RefAA)
		altAA = string(cons.AltAA)
		if idx < len(rec.Edits) {
			refCodon = rec.Edits[idx].RefCodon
			altCodon = rec.Edits[idx].AltCodon
		}
	}

	if err := appender.AppendRow(
		sample, v.Chrom, v.Pos, v.Ref, v.Alt, int32(v.Depth), v.Pass,
		av.Gene, av.OverlapGenes, string(av.Region),
		av.LocalStart, av.LocalEnd, av.StartCodon, av.EndCodon,
		codonIndex, refCodon, altCodon, refAA, altAA, class,
		av.ImpactScore, av.ImpactClass,
	); err != nil {
		return fmt.Errorf("append variant result: %w", err)
	}
	return nil
}

// ClearResults removes all stored variant results.
func (s *Store) ClearResults() error {
	_, err := s.db.Exec("DELETE FROM variant_results")
	return err
}

// Count returns the number of stored result rows.
func (s *Store) Count() (int64, error) {
	var count int64
	err := s.db.QueryRow("SELECT COUNT(*) FROM variant_results").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count variant results: %w", err)
	}
	return count, nil
}

// ResultRow is a flattened stored result for lookups.
type ResultRow struct {
	Sample     string
	Chrom      string
	Pos        int64
	Ref        string
	Alt        string
	Gene       string
	Region     string
	CodonIndex int64
	RefAA      string
	AltAA      string
	Class      string
}

// LookupVariant queries stored results for a specific variant.
func (s *Store) LookupVariant(chrom string, pos int64, ref, alt string) ([]ResultRow, error) {
	rows, err := s.db.Query(`SELECT
		sample, chrom, pos, ref, alt, gene, region, codon_index, ref_aa, alt_aa, class
		FROM variant_results
		WHERE chrom=? AND pos=? AND ref=? AND alt=?`,
		chrom, pos, ref, alt)
	if err != nil {
		return nil, fmt.Errorf("query variant: %w", err)
	}
	defer rows.Close()

	return scanResultRows(rows)
}

// SearchByGene queries stored results for a gene.
func (s *Store) SearchByGene(gene string) ([]ResultRow, error) {
	rows, err := s.db.Query(`SELECT
		sample, chrom, pos, ref, alt, gene, region, codon_index, ref_aa, alt_aa, class
		FROM variant_results
		WHERE gene=?`, gene)
	if err != nil {
		return nil, fmt.Errorf("query by gene: %w", err)
	}
	defer rows.Close()

	return scanResultRows(rows)
}

func scanResultRows(rows *sql.Rows) ([]ResultRow, error) {
	var out []ResultRow
	for rows.Next() {
		var r ResultRow
		if err := rows.Scan(
			&r.Sample, &r.Chrom, &r.Pos, &r.Ref, &r.Alt,
			&r.Gene, &r.Region, &r.CodonIndex, &r.RefAA, &r.AltAA, &r.Class,
		); err != nil {
			return nil, fmt.Errorf("scan variant result: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate variant results: %w", err)
	}
	return out, nil
}
