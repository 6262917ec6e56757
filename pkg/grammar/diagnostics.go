package grammar

import (
	"bytes"
	"fmt"
)

// DiagnosticKind classifies a problem found while scanning schema source
type DiagnosticKind int

const (
	// MalformedStatement is a content line with the wrong shape
	MalformedStatement DiagnosticKind = iota
	// UndefinedPrimitive is a key bound to a type missing from the primitive table
	UndefinedPrimitive
	// DanglingContent is a content line with no tag in scope
	DanglingContent
	// UnbalancedClose is a close tag with nothing open
	UnbalancedClose
	// MismatchedClose is a close tag naming a different tag than the one open
	MismatchedClose
	// UnclosedTag is a tag still open at the end of the source
	UnclosedTag
	// UndefinedTag is a tag that was referenced but never defined
	UndefinedTag
)

func (k DiagnosticKind) String() string {
	switch k {
	case MalformedStatement:
		return "malformed"
	case UndefinedPrimitive:
		return "undefined-primitive"
	case DanglingContent:
		return "dangling"
	case UnbalancedClose:
		return "unbalanced-close"
	case MismatchedClose:
		return "mismatched-close"
	case UnclosedTag:
		return "unclosed"
	case UndefinedTag:
		return "undefined-tag"
	default:
		return "unknown"
	}
}

// Severity separates problems that lose schema information from notices
// about bracket structure that the scanner tolerates.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// severityOf is fixed per kind
func severityOf(k DiagnosticKind) Severity {
	switch k {
	case MalformedStatement, UndefinedPrimitive, DanglingContent:
		return SeverityError
	default:
		return SeverityWarning
	}
}

// Diagnostic is one advisory message produced by a parse pass
type Diagnostic struct {
	Line     int            // 1-based line in the parsed text (0 when not tied to a line)
	Kind     DiagnosticKind // What went wrong
	Severity Severity       // Derived from Kind
	Message  string         // Human readable description
	Text     string         // The offending source line, trimmed
}

// Error returns a formatted diagnostic message
func (d Diagnostic) Error() string {
	if d.Line > 0 {
		return fmt.Sprintf("line %d: %s: %s", d.Line, d.Severity, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Severity, d.Message)
}

// Diagnostics is the ordered list of diagnostics from one pass
type Diagnostics []Diagnostic

// Error returns all diagnostics formatted with clear separation
func (ds Diagnostics) Error() string {
	if len(ds) == 0 {
		return "no diagnostics"
	}
	if len(ds) == 1 {
		return ds[0].Error()
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "found %d schema problems:\n", len(ds))
	for i, d := range ds {
		fmt.Fprintf(&buf, "  %d. %s\n", i+1, d.Error())
	}
	return buf.String()
}

// HasErrors reports whether any diagnostic has error severity
func (ds Diagnostics) HasErrors() bool {
	for _, d := range ds {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Count returns the number of diagnostics of the given kind
func (ds Diagnostics) Count(kind DiagnosticKind) int {
	n := 0
	for _, d := range ds {
		if d.Kind == kind {
			n++
		}
	}
	return n
}

// Errors returns the error-severity diagnostics as an error, or nil
func (ds Diagnostics) Errors() error {
	var errs Diagnostics
	for _, d := range ds {
		if d.Severity == SeverityError {
			errs = append(errs, d)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
