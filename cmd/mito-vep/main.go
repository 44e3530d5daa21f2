// Package main provides the mito-vep command-line tool.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/inodb/mito-vep/internal/datasource/mitimpact"
	"github.com/inodb/mito-vep/internal/duckdb"
	"github.com/inodb/mito-vep/internal/genome"
	"github.com/inodb/mito-vep/internal/output"
	"github.com/inodb/mito-vep/internal/pipeline"
	"github.com/inodb/mito-vep/internal/vcf"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitUsage   = 2
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	var showVersion bool
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.Parse()

	if showVersion {
		fmt.Printf("mito-vep version %s (%s) built %s\n", version, commit, date)
		return ExitSuccess
	}

	initConfig()

	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		return ExitUsage
	}

	switch args[0] {
	case "annotate":
		return runAnnotate(args[1:])
	case "config":
		cmd := newConfigCmd()
		cmd.SetArgs(args[1:])
		if err := cmd.Execute(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return ExitError
		}
		return ExitSuccess
	case "help":
		printUsage()
		return ExitSuccess
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", args[0])
		printUsage()
		return ExitUsage
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `mito-vep - Mitochondrial Variant Effect Predictor

Usage:
  mito-vep [options] <command> [arguments]

Commands:
  annotate    Annotate mitochondrial variant calls
  config      Manage mito-vep configuration
  help        Show this help message

Global Options:
  --version   Show version information

Examples:
  # Annotate one sample (uses rCRS gene annotation table and FASTA)
  mito-vep annotate --table mt-genes.tsv --fasta mt-cds.fa sample1.vcf

  # Annotate several samples in parallel, PASS calls only
  mito-vep annotate --table mt-genes.tsv --fasta mt-cds.fa \
      --parallel --pass-only sample1.vcf sample2.vcf sample3.vcf

  # With MitImpact enrichment and a queryable result store
  mito-vep annotate --table mt-genes.tsv --fasta mt-cds.fa \
      --mitimpact mitimpact.tsv --results-db results.duckdb sample1.vcf

For more information on a command, use:
  mito-vep <command> --help
`)
}

func runAnnotate(args []string) int {
	fs := flag.NewFlagSet("annotate", flag.ExitOnError)

	var (
		tablePath    string
		fastaPath    string
		outputFile   string
		mitimpactTSV string
		resultsDB    string
		parallel     bool
		workers      int
		passOnly     bool
		noAA         bool
	)

	fs.StringVar(&tablePath, "table", viper.GetString("annotate.table"), "Annotation table TSV (chrom, start, end, strand, gene, region)")
	fs.StringVar(&fastaPath, "fasta", viper.GetString("annotate.fasta"), "Per-gene coding sequence FASTA")
	fs.StringVar(&outputFile, "o", "", "Output file (default: stdout)")
	fs.StringVar(&outputFile, "output", "", "Output file (default: stdout)")
	fs.StringVar(&mitimpactTSV, "mitimpact", viper.GetString("annotate.mitimpact"), "MitImpact TSV for pathogenicity enrichment (optional)")
	fs.StringVar(&resultsDB, "results-db", "", "DuckDB file to persist results (optional)")
	fs.BoolVar(&parallel, "parallel", false, "Process input files concurrently")
	fs.IntVar(&workers, "workers", viper.GetInt("annotate.workers"), "Worker cap for --parallel (default: NumCPU)")
	fs.BoolVar(&passOnly, "pass-only", false, "Drop calls that failed upstream filtering")
	fs.BoolVar(&noAA, "no-aa", false, "Skip amino-acid consequence prediction")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Annotate mitochondrial variant calls with genic context and
amino-acid consequences.

Usage:
  mito-vep annotate [options] <input-file>...

Arguments:
  <input-file>  One or more caller VCF files, each one sample
                (use '-' for stdin)

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  mito-vep annotate --table mt-genes.tsv --fasta mt-cds.fa sample1.vcf
  mito-vep annotate --table mt-genes.tsv --fasta mt-cds.fa --parallel s1.vcf s2.vcf
  cat sample1.vcf | mito-vep annotate --table mt-genes.tsv --fasta mt-cds.fa -
`)
	}

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: at least one input file argument required\n\n")
		fs.Usage()
		return ExitUsage
	}
	if tablePath == "" || fastaPath == "" {
		fmt.Fprintf(os.Stderr, "Error: --table and --fasta are required\n\n")
		fs.Usage()
		return ExitUsage
	}

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		return ExitError
	}
	defer logger.Sync()

	// Configuration failures are fatal before any processing begins.
	index, err := genome.LoadTable(tablePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	sequences, err := genome.LoadSequences(fastaPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	gctx, err := genome.NewContext(index, sequences)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	fmt.Fprintf(os.Stderr, "Loaded %d annotation intervals, %d gene sequences\n",
		index.Len(), sequences.Len())

	opts := pipeline.Options{
		ComputeAAChanges: !noAA,
		Parallel:         parallel,
		Workers:          workers,
		FilterLowQuality: passOnly,
	}

	// Impact data degrades gracefully: a load failure is a warning,
	// not a run failure.
	if mitimpactTSV != "" {
		table, err := mitimpact.Load(mitimpactTSV)
		if err != nil {
			logger.Warn("impact enrichment unavailable", zap.Error(err))
		} else {
			opts.Sources = append(opts.Sources, mitimpact.NewSource(table))
			fmt.Fprintf(os.Stderr, "Loaded %d impact records\n", len(table))
		}
	}

	sets, readErrs := readSets(fs.Args())
	for _, e := range readErrs {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", e)
	}
	if len(sets) == 0 {
		fmt.Fprintf(os.Stderr, "Error: no readable input files\n")
		return ExitError
	}

	orch := pipeline.NewOrchestrator(gctx)
	orch.SetLogger(logger)
	results, setErrs := orch.Run(sets, opts)

	var out *os.File
	if outputFile == "" {
		out = os.Stdout
	} else {
		out, err = os.Create(outputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
			return ExitError
		}
		defer out.Close()
	}

	writer := output.NewTabWriter(out)
	if err := writer.WriteHeader(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing header: %v\n", err)
		return ExitError
	}
	for i := range results {
		if err := writer.WriteResult(&results[i]); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			return ExitError
		}
	}
	if err := writer.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "Error flushing output: %v\n", err)
		return ExitError
	}

	if resultsDB != "" {
		if err := persistResults(resultsDB, results); err != nil {
			fmt.Fprintf(os.Stderr, "Error persisting results: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(os.Stderr, "Persisted results to %s\n", resultsDB)
	}

	// A completed run always reports its failures; they never vanish.
	for i := range results {
		for _, e := range results[i].Skipped {
			fmt.Fprintf(os.Stderr, "Skipped record in %s: %v\n", results[i].Sample, e)
		}
	}
	for _, se := range setErrs {
		fmt.Fprintf(os.Stderr, "Failed set %d (%s): %v\n", se.Index, se.Sample, se.Err)
	}
	if len(setErrs) > 0 {
		return ExitError
	}
	return ExitSuccess
}

// readSets parses each input file into one variant set. Unreadable
// files are reported and skipped; per-record parse errors inside a
// file are reported as warnings.
func readSets(paths []string) ([]*vcf.VariantSet, []error) {
	var sets []*vcf.VariantSet
	var errs []error

	for _, path := range paths {
		parser, err := vcf.NewParser(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		set, skipped, err := parser.ReadSet(sampleFromPath(path))
		parser.Close()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		errs = append(errs, skipped...)
		sets = append(sets, set)
	}
	return sets, errs
}

// sampleFromPath derives a sample name from a file path when the VCF
// header carries no sample column.
func sampleFromPath(path string) string {
	if path == "-" {
		return "stdin"
	}
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, ".gz")
	base = strings.TrimSuffix(base, ".vcf")
	return base
}

// persistResults writes results to a DuckDB store.
func persistResults(path string, results []pipeline.Result) error {
	store, err := duckdb.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.WriteResults(results)
}
