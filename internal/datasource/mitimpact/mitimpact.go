// Package mitimpact provides pathogenicity-impact lookups from a
// MitImpact-style TSV export, keyed by genomic position string.
package mitimpact

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Record holds the impact data for one variant.
type Record struct {
	Score float64
	Class string // e.g. "Pathogenic", "Polymorphic"
}

// Table maps a position key ("MT:3308 A>G") to its impact record.
type Table map[string]Record

// Lookup returns the impact record for a position key. A miss is not
// an error: it degrades to "no impact data".
func (t Table) Lookup(key string) (Record, bool) {
	r, ok := t[key]
	return r, ok
}

// UnavailableError reports that the impact table could not be loaded.
// Callers treat it as absent enrichment, never as a run failure.
type UnavailableError struct {
	Path string
	Err  error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("impact data unavailable (%s): %v", e.Path, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// Load reads a MitImpact TSV export. The header must carry the
// columns "Chr", "Pos", "Ref", "Alt", "Score" and "Class"; extra
// columns are ignored.
func Load(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &UnavailableError{Path: path, Err: err}
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)

	if !scanner.Scan() {
		return nil, &UnavailableError{Path: path, Err: fmt.Errorf("empty file")}
	}
	header := strings.Split(scanner.Text(), "\t")

	cols := map[string]int{}
	for i, col := range header {
		cols[strings.TrimSpace(col)] = i
	}
	for _, name := range []string{"Chr", "Pos", "Ref", "Alt", "Score", "Class"} {
		if _, ok := cols[name]; !ok {
			return nil, &UnavailableError{Path: path, Err: fmt.Errorf("missing %q column", name)}
		}
	}

	table := make(Table)
	for scanner.Scan() {
		fields := strings.Split(scanner.Text(), "\t")
		if len(fields) <= cols["Class"] {
			continue
		}

		chrom := strings.TrimPrefix(strings.TrimSpace(fields[cols["Chr"]]), "chr")
		pos := strings.TrimSpace(fields[cols["Pos"]])
		ref := strings.TrimSpace(fields[cols["Ref"]])
		alt := strings.TrimSpace(fields[cols["Alt"]])
		if chrom == "" || pos == "" {
			continue
		}

		score, err := strconv.ParseFloat(strings.TrimSpace(fields[cols["Score"]]), 64)
		if err != nil {
			continue
		}

		key := chrom + ":" + pos + " " + ref + ">" + alt
		table[key] = Record{
			Score: score,
			Class: strings.TrimSpace(fields[cols["Class"]]),
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &UnavailableError{Path: path, Err: err}
	}

	return table, nil
}
