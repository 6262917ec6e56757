package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostic_Error(t *testing.T) {
	d := Diagnostic{Line: 4, Kind: MalformedStatement, Severity: SeverityError, Message: "bad"}
	assert.Equal(t, "line 4: error: bad", d.Error())

	d = Diagnostic{Kind: UndefinedTag, Severity: SeverityWarning, Message: "never defined"}
	assert.Equal(t, "warning: never defined", d.Error())
}

func TestDiagnostics_Error(t *testing.T) {
	assert.Equal(t, "no diagnostics", Diagnostics(nil).Error())

	ds := Diagnostics{
		{Line: 1, Kind: UnbalancedClose, Severity: SeverityWarning, Message: "first"},
		{Line: 9, Kind: DanglingContent, Severity: SeverityError, Message: "second"},
	}
	msg := ds.Error()
	assert.Contains(t, msg, "found 2 schema problems")
	assert.Contains(t, msg, "1. line 1: warning: first")
	assert.Contains(t, msg, "2. line 9: error: second")
}

func TestDiagnostics_Errors(t *testing.T) {
	warnings := Diagnostics{{Kind: UnclosedTag, Severity: SeverityWarning}}
	assert.False(t, warnings.HasErrors())
	assert.NoError(t, warnings.Errors())

	mixed := append(warnings, Diagnostic{Line: 2, Kind: UndefinedPrimitive, Severity: SeverityError, Message: "x"})
	assert.True(t, mixed.HasErrors())

	err := mixed.Errors()
	require.Error(t, err)
	errs, ok := err.(Diagnostics)
	require.True(t, ok)
	assert.Len(t, errs, 1)
}

func TestSeverityOf(t *testing.T) {
	tests := []struct {
		kind DiagnosticKind
		want Severity
	}{
		{MalformedStatement, SeverityError},
		{UndefinedPrimitive, SeverityError},
		{DanglingContent, SeverityError},
		{UnbalancedClose, SeverityWarning},
		{MismatchedClose, SeverityWarning},
		{UnclosedTag, SeverityWarning},
		{UndefinedTag, SeverityWarning},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, severityOf(tt.kind))
		})
	}
}
