// Package pipeline orchestrates quality filtering, region location,
// edit decomposition, and consequence prediction over collections of
// variant sets.
package pipeline

import (
	"errors"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/inodb/mito-vep/internal/annotate"
	"github.com/inodb/mito-vep/internal/genome"
	"github.com/inodb/mito-vep/internal/vcf"
)

// Options configures a pipeline run.
type Options struct {
	ComputeAAChanges bool // Decompose and predict consequences for coding variants
	Parallel         bool // Fan out over variant sets
	Workers          int  // Worker cap for Parallel, runtime.NumCPU() if 0
	FilterLowQuality bool // Drop calls that failed upstream filtering
	Sources          []annotate.Source
}

// Record pairs one annotated variant with its decomposition and
// predicted consequences.
type Record struct {
	Variant      *annotate.AnnotatedVariant
	Edits        []annotate.DecomposedEdit
	Consequences []annotate.ConsequenceAnnotation
}

// Result holds the outcome for a single variant set.
type Result struct {
	Sample  string
	Records []Record
	Skipped []error // per-record failures, reported but non-fatal
}

// Variants returns the annotated variants of the result in input order.
func (r *Result) Variants() []*annotate.AnnotatedVariant {
	out := make([]*annotate.AnnotatedVariant, len(r.Records))
	for i := range r.Records {
		out[i] = r.Records[i].Variant
	}
	return out
}

// Consequences returns all consequence annotations of the result,
// flattened in variant order.
func (r *Result) Consequences() []annotate.ConsequenceAnnotation {
	var out []annotate.ConsequenceAnnotation
	for i := range r.Records {
		out = append(out, r.Records[i].Consequences...)
	}
	return out
}

// SetError reports a failure that aborted one variant set. Sibling
// sets are unaffected.
type SetError struct {
	Index  int
	Sample string
	Err    error
}

func (e *SetError) Error() string {
	return "variant set " + e.Sample + ": " + e.Err.Error()
}

func (e *SetError) Unwrap() error { return e.Err }

// Orchestrator drives locate → decompose → predict per variant set.
// The genome context is shared read-only across workers; each run owns
// its results.
type Orchestrator struct {
	locator    *annotate.Locator
	decomposer *annotate.Decomposer
	logger     *zap.Logger
}

// NewOrchestrator creates an orchestrator over an explicit genome
// context. The context is injected here once; nothing is loaded on
// demand during a run.
func NewOrchestrator(ctx *genome.Context) *Orchestrator {
	return &Orchestrator{
		locator:    annotate.NewLocator(ctx.Index),
		decomposer: annotate.NewDecomposer(ctx.Sequences),
		logger:     zap.NewNop(),
	}
}

// SetLogger sets the logger for warning and info messages.
func (o *Orchestrator) SetLogger(logger *zap.Logger) {
	o.logger = logger
	o.locator.SetLogger(logger)
}

// Run processes the given variant sets and returns one result per
// set, order-preserving regardless of Options.Parallel. A failure in
// one set is reported in the returned SetError list and does not
// abort sibling sets. Results for failed sets are zero-valued apart
// from the sample name.
func (o *Orchestrator) Run(sets []*vcf.VariantSet, opts Options) ([]Result, []*SetError) {
	results := make([]Result, len(sets))
	errs := make([]error, len(sets))

	if opts.Parallel && len(sets) > 1 {
		workers := opts.Workers
		if workers <= 0 {
			workers = runtime.NumCPU()
		}

		var g errgroup.Group
		g.SetLimit(workers)
		for i, set := range sets {
			i, set := i, set
			g.Go(func() error {
				results[i], errs[i] = o.runSet(set, opts)
				// Per-set failures live in errs; returning them here
				// would cancel sibling sets.
				return nil
			})
		}
		g.Wait()
	} else {
		for i, set := range sets {
			results[i], errs[i] = o.runSet(set, opts)
		}
	}

	var setErrs []*SetError
	for i, err := range errs {
		if err != nil {
			setErrs = append(setErrs, &SetError{Index: i, Sample: sets[i].Sample, Err: err})
			o.logger.Warn("variant set failed",
				zap.Int("index", i),
				zap.String("sample", sets[i].Sample),
				zap.Error(err))
		}
	}
	return results, setErrs
}

// runSet processes a single variant set to completion.
func (o *Orchestrator) runSet(set *vcf.VariantSet, opts Options) (Result, error) {
	res := Result{Sample: set.Sample}

	for _, call := range set.Calls {
		if opts.FilterLowQuality && !call.Pass {
			continue
		}
		if !call.InReference() {
			return Result{Sample: set.Sample}, &vcf.ReferenceError{Chrom: call.Chrom, Pos: call.Pos}
		}

		rec := Record{Variant: o.locator.LocateCall(call)}

		if opts.ComputeAAChanges && rec.Variant.InCoding() {
			edits, err := o.decomposer.Decompose(rec.Variant)
			if err != nil {
				var malformed *vcf.MalformedVariantError
				if errors.As(err, &malformed) {
					// Skip the record, keep the set going.
					res.Skipped = append(res.Skipped, err)
					o.logger.Warn("skipping malformed variant",
						zap.String("sample", set.Sample),
						zap.Int64("pos", call.Pos),
						zap.Error(err))
					continue
				}
				// Unknown gene sequence: the set cannot be annotated
				// coherently without its reference.
				return Result{Sample: set.Sample}, err
			}
			rec.Edits = edits
			rec.Consequences = annotate.PredictAll(edits)
		}

		for _, src := range opts.Sources {
			src.Annotate(rec.Variant)
		}

		res.Records = append(res.Records, rec)
	}

	return res, nil
}
