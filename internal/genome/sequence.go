package genome

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
)

// SequenceTable maps gene names to their coding-strand nucleotide
// sequence, gene-local and 0-based. Built once and shared read-only
// across concurrent pipeline workers.
type SequenceTable struct {
	sequences map[string]string
}

// NewSequenceTable creates a table from an existing gene → sequence map.
// Sequences are uppercased so codon lookups never need case handling.
func NewSequenceTable(seqs map[string]string) *SequenceTable {
	t := &SequenceTable{sequences: make(map[string]string, len(seqs))}
	for gene, seq := range seqs {
		t.sequences[gene] = strings.ToUpper(seq)
	}
	return t
}

// Get returns the sequence for a gene.
func (t *SequenceTable) Get(gene string) (string, bool) {
	seq, ok := t.sequences[gene]
	return seq, ok
}

// Has reports whether a sequence exists for the gene.
func (t *SequenceTable) Has(gene string) bool {
	_, ok := t.sequences[gene]
	return ok
}

// Len returns the number of loaded sequences.
func (t *SequenceTable) Len() int {
	return len(t.sequences)
}

// LoadSequences reads gene sequences from a FASTA file (plain or
// gzipped). The record ID up to the first whitespace or '|' is the
// gene name. An empty file is a configuration error.
func LoadSequences(path string) (*SequenceTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ConfigError{Source: path, Message: fmt.Sprintf("open FASTA file: %v", err)}
	}
	defer f.Close()

	var reader io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, &ConfigError{Source: path, Message: fmt.Sprintf("open gzip reader: %v", err)}
		}
		defer gz.Close()
		reader = gz
	}

	return ParseSequences(reader, path)
}

// ParseSequences parses FASTA content from a reader.
func ParseSequences(r io.Reader, source string) (*SequenceTable, error) {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)

	seqs := make(map[string]string)
	var currentGene string
	var currentSeq strings.Builder

	flush := func() {
		if currentGene != "" && currentSeq.Len() > 0 {
			seqs[currentGene] = strings.ToUpper(currentSeq.String())
		}
	}

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		if strings.HasPrefix(line, ">") {
			flush()
			currentGene = parseFASTAHeader(line)
			if currentGene == "" {
				return nil, &ConfigError{Source: source, Line: lineNo, Message: "FASTA header has no record ID"}
			}
			currentSeq.Reset()
			continue
		}
		currentSeq.WriteString(strings.TrimSpace(line))
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, &ConfigError{Source: source, Message: fmt.Sprintf("scan FASTA: %v", err)}
	}
	if len(seqs) == 0 {
		return nil, &ConfigError{Source: source, Message: "no sequences found"}
	}

	return &SequenceTable{sequences: seqs}, nil
}

// parseFASTAHeader extracts the record ID from a FASTA header line.
// Handles both ">MT-ND1 description" and ">MT-ND1|..." forms.
func parseFASTAHeader(header string) string {
	header = strings.TrimPrefix(header, ">")
	if idx := strings.IndexAny(header, " \t|"); idx != -1 {
		header = header[:idx]
	}
	return strings.TrimSpace(header)
}
