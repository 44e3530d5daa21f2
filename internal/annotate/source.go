package annotate

// Source adds external enrichment data to annotated variants. Sources
// are strictly additive: a miss or an unavailable backend leaves the
// variant untouched and never fails the run.
type Source interface {
	Name() string    // e.g. "mitimpact"
	Version() string // e.g. "mitimpact.tsv"
	Annotate(av *AnnotatedVariant)
}
