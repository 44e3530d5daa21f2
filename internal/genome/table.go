package genome

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// LoadTable reads an annotation table and builds the overlap index.
// The table is tab-delimited with six columns:
//
//	chrom  start  end  strand  gene  region
//
// Lines starting with '#' are comments. Coordinates are 1-based and
// inclusive; strand is "+" or "-"; region must be one of the known
// region classes. Any malformed row fails the whole load.
func LoadTable(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ConfigError{Source: path, Message: fmt.Sprintf("open annotation table: %v", err)}
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

	intervals, err := ParseTable(reader, path)
	if err != nil {
		return nil, err
	}
	return NewIndex(intervals), nil
}

// ParseTable parses annotation-table rows from a reader.
// The source argument is used for error messages only.
func ParseTable(r io.Reader, source string) ([]Interval, error) {
	scanner := bufio.NewScanner(r)

	var intervals []Interval
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		iv, err := parseTableRow(line)
		if err != nil {
			return nil, &ConfigError{Source: source, Line: lineNo, Message: err.Error()}
		}
		intervals = append(intervals, iv)
	}
	if err := scanner.Err(); err != nil {
		return nil, &ConfigError{Source: source, Message: fmt.Sprintf("reading table: %v", err)}
	}

	if len(intervals) == 0 {
		return nil, &ConfigError{Source: source, Message: "annotation table is empty"}
	}
	return intervals, nil
}

func parseTableRow(line string) (Interval, error) {
	fields := strings.Split(line, "\t")
	if len(fields) != 6 {
		return Interval{}, fmt.Errorf("expected 6 columns, found %d", len(fields))
	}

	start, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return Interval{}, fmt.Errorf("invalid start coordinate %q", fields[1])
	}
	end, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return Interval{}, fmt.Errorf("invalid end coordinate %q", fields[2])
	}
	if start < 1 || end < start {
		return Interval{}, fmt.Errorf("invalid interval [%d, %d]", start, end)
	}

	var strand int8
	switch fields[3] {
	case "+", "1", "+1":
		strand = 1
	case "-", "-1":
		strand = -1
	default:
		return Interval{}, fmt.Errorf("invalid strand %q", fields[3])
	}

	gene := strings.TrimSpace(fields[4])
	if gene == "" {
		return Interval{}, fmt.Errorf("missing gene name")
	}

	region, ok := ParseRegion(fields[5])
	if !ok {
		return Interval{}, fmt.Errorf("unknown region tag %q", fields[5])
	}

	return Interval{
		Chrom:  fields[0],
		Start:  start,
		End:    end,
		Strand: strand,
		Gene:   gene,
		Region: region,
	}, nil
}
