package result

import "fmt"

// Severity classifies a lint message. Off disables a rule entirely;
// a message with severity off never reaches a Result.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
	SeverityHint    Severity = "hint"
	SeverityOff     Severity = "off"
)

// ParseSeverity validates a severity string from configuration.
func ParseSeverity(s string) (Severity, error) {
	switch Severity(s) {
	case SeverityError, SeverityWarning, SeverityInfo, SeverityHint, SeverityOff:
		return Severity(s), nil
	}
	return "", fmt.Errorf("invalid severity %q (valid: error, warning, info, hint, off)", s)
}

// Message is a single finding reported by one of the delegated engines,
// normalized into one record shape regardless of which engine produced it.
type Message struct {
	// Path locates the finding in the document as a sequence of keys/indices.
	Path []string
	// Message is the human-readable description.
	Message string
	// Rule identifies the rule that produced the finding.
	Rule string
	// Line is the 1-based line number in the original file.
	Line int
	// Severity is the configured severity for the rule.
	Severity Severity
	// Fingerprint is a deduplication key computed by the engine adapter,
	// so the same underlying issue surfaced by overlapping rule sets is
	// merged before it reaches the result.
	Fingerprint uint64
}

// Result is the unified lint outcome for one file, keyed by severity.
// Immutable once returned by Merge.
type Result struct {
	// Version is the document's declared openapi/swagger version string.
	Version  string
	Errors   []Message
	Warnings []Message
	Infos    []Message
	Hints    []Message
}

// Total returns the number of messages across all four buckets.
func (r *Result) Total() int {
	return len(r.Errors) + len(r.Warnings) + len(r.Infos) + len(r.Hints)
}

// FileResult pairs a linted file with its result.
type FileResult struct {
	File   string
	Result *Result
}
