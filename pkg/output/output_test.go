package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

// captureOutput redirects output during test execution
func captureOutput(t *testing.T, f func()) string {
	t.Helper()
	var buf bytes.Buffer
	prev := SetWriter(&buf)
	t.Cleanup(func() { SetWriter(prev) })

	f()
	return buf.String()
}

func TestMessages(t *testing.T) {
	tests := []struct {
		name   string
		call   func(string)
		marker string
	}{
		{"success", Success, "✔"},
		{"error", Error, "✖"},
		{"warn", Warn, "!"},
		{"info", Info, "ℹ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := captureOutput(t, func() { tt.call("schema loaded") })
			assert.Contains(t, got, tt.marker)
			assert.Contains(t, got, "schema loaded")
		})
	}
}

func TestStep(t *testing.T) {
	got := captureOutput(t, func() { Step("cd myapp") })
	assert.Contains(t, got, "   cd myapp")
}

func TestVerbose(t *testing.T) {
	t.Cleanup(func() { SetVerbose(false) })

	SetVerbose(false)
	assert.Empty(t, captureOutput(t, func() { Verbose("hidden") }))

	SetVerbose(true)
	assert.True(t, IsVerbose())
	assert.Contains(t, captureOutput(t, func() { Verbose("shown") }), "shown")
}

func TestPlain(t *testing.T) {
	assert.Equal(t, "raw: text\n", captureOutput(t, func() { Plain("raw: text\n") }))
}
