package vcf

import (
	"bufio"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Parser reads variant calls from caller output in VCF format.
type Parser struct {
	reader     *bufio.Reader
	file       *os.File
	gzipReader *gzip.Reader
	lineNumber int
	header     []string
	sampleName string
}

// NewParser creates a parser for the given file. Supports plain and
// gzipped input; "-" reads from stdin.
func NewParser(path string) (*Parser, error) {
	if path == "-" {
		return NewParserFromReader(os.Stdin)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open variant file: %w", err)
	}

	p := &Parser{file: file}

	// Check for gzip magic bytes
	buf := make([]byte, 2)
	_, err = file.Read(buf)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("read variant file header: %w", err)
	}
	if _, err := file.Seek(0, 0); err != nil {
		file.Close()
		return nil, fmt.Errorf("seek variant file: %w", err)
	}

	if buf[0] == 0x1f && buf[1] == 0x8b {
		p.gzipReader, err = gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("create gzip reader: %w", err)
		}
		p.reader = bufio.NewReader(p.gzipReader)
	} else {
		p.reader = bufio.NewReader(file)
	}

	if err := p.parseHeader(); err != nil {
		p.Close()
		return nil, err
	}

	return p, nil
}

// NewParserFromReader creates a parser from an io.Reader (e.g., stdin).
func NewParserFromReader(r io.Reader) (*Parser, error) {
	p := &Parser{reader: bufio.NewReader(r)}
	if err := p.parseHeader(); err != nil {
		return nil, err
	}
	return p, nil
}

// parseHeader reads and stores header lines up to #CHROM.
func (p *Parser) parseHeader() error {
	for {
		line, err := p.reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				break
			}
			return fmt.Errorf("read header: %w", err)
		}
		p.lineNumber++

		line = strings.TrimRight(line, "\r\n")

		if strings.HasPrefix(line, "##") {
			p.header = append(p.header, line)
			continue
		}

		if strings.HasPrefix(line, "#CHROM") {
			p.header = append(p.header, line)
			// First sample column, if present (index 9)
			fields := strings.Split(line, "\t")
			if len(fields) > 9 {
				p.sampleName = fields[9]
			}
			return nil
		}

		return &ParseError{Line: p.lineNumber, Message: "expected #CHROM header line"}
	}

	return &ParseError{Line: p.lineNumber, Message: "no #CHROM header line found"}
}

// Next reads the next variant call. Returns nil, nil at end of input.
// Multi-allelic records are split by the caller via SplitMultiAllelic.
func (p *Parser) Next() (*Variant, error) {
	line, err := p.reader.ReadString('\n')
	if err != nil {
		if err != io.EOF {
			return nil, fmt.Errorf("read variant line: %w", err)
		}
		// A final line without a trailing newline still counts.
		if line == "" {
			return nil, nil
		}
	}
	p.lineNumber++

	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return p.Next() // Skip empty lines
	}

	return p.parseLine(line)
}

// ReadSet drains the parser into a VariantSet, splitting multi-allelic
// records. Per-record parse errors are collected and returned alongside
// the set rather than aborting the read; only I/O failures are fatal.
// The sample name comes from the #CHROM header when present, otherwise
// the given fallback is used.
func (p *Parser) ReadSet(fallbackSample string) (*VariantSet, []error, error) {
	sample := p.sampleName
	if sample == "" {
		sample = fallbackSample
	}

	set := &VariantSet{Sample: sample}
	var skipped []error
	for {
		v, err := p.Next()
		if err != nil {
			var perr *ParseError
			if errors.As(err, &perr) {
				skipped = append(skipped, err)
				continue
			}
			return nil, skipped, err
		}
		if v == nil {
			break
		}
		set.Calls = append(set.Calls, SplitMultiAllelic(v)...)
	}

	return set, skipped, nil
}

// parseLine parses a single data line into a Variant.
func (p *Parser) parseLine(line string) (*Variant, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < 8 {
		return nil, &ParseError{
			Line:    p.lineNumber,
			Message: fmt.Sprintf("expected at least 8 columns, found %d", len(fields)),
		}
	}

	pos, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return nil, &ParseError{
			Line:    p.lineNumber,
			Message: fmt.Sprintf("invalid position: %s", fields[1]),
		}
	}

	ref := strings.ToUpper(fields[3])
	alt := strings.ToUpper(fields[4])
	if ref == "" || ref == "." {
		return nil, &ParseError{Line: p.lineNumber, Message: "missing reference allele"}
	}

	filter := fields[6]

	return &Variant{
		Chrom: fields[0],
		Pos:   pos,
		Ref:   ref,
		Alt:   alt,
		Depth: parseDepth(fields[7]),
		Pass:  filter == "PASS" || filter == ".",
	}, nil
}

// parseDepth extracts the DP key from the INFO field, 0 if absent.
func parseDepth(info string) int {
	if info == "." {
		return 0
	}
	for _, kv := range strings.Split(info, ";") {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) == 2 && parts[0] == "DP" {
			if d, err := strconv.Atoi(parts[1]); err == nil {
				return d
			}
		}
	}
	return 0
}

// SplitMultiAllelic splits a multi-allelic record into one Variant per
// alternate allele.
func SplitMultiAllelic(v *Variant) []*Variant {
	alts := strings.Split(v.Alt, ",")
	if len(alts) == 1 {
		return []*Variant{v}
	}

	variants := make([]*Variant, len(alts))
	for i, alt := range alts {
		variants[i] = &Variant{
			Chrom: v.Chrom,
			Pos:   v.Pos,
			Ref:   v.Ref,
			Alt:   alt,
			Depth: v.Depth,
			Pass:  v.Pass,
		}
	}
	return variants
}

// Header returns the header lines.
func (p *Parser) Header() []string {
	return p.header
}

// SampleName returns the first sample column name, "" if none.
func (p *Parser) SampleName() string {
	return p.sampleName
}

// LineNumber returns the current line number being processed.
func (p *Parser) LineNumber() int {
	return p.lineNumber
}

// Close closes the parser and underlying file.
func (p *Parser) Close() error {
	if p.gzipReader != nil {
		p.gzipReader.Close()
	}
	if p.file != nil {
		return p.file.Close()
	}
	return nil
}
