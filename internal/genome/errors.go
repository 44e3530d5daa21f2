package genome

import "fmt"

// ConfigError reports a missing or malformed annotation table or
// reference sequence. It is fatal: no variant can be correctly located
// without a valid configuration, so callers surface it before any
// processing begins.
type ConfigError struct {
	Source  string // file or input that failed
	Line    int    // 1-based line number, 0 if not line-scoped
	Message string
}

func (e *ConfigError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("config error in %s at line %d: %s", e.Source, e.Line, e.Message)
	}
	return fmt.Sprintf("config error in %s: %s", e.Source, e.Message)
}

// UnknownGeneError reports a coding variant whose gene has no entry in
// the reference sequence table. Fatal for the containing variant set
// only; sibling sets continue.
type UnknownGeneError struct {
	Gene string
}

func (e *UnknownGeneError) Error() string {
	return fmt.Sprintf("no reference sequence for gene %q", e.Gene)
}
