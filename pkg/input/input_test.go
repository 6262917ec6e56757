package input

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrompt(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		def      string
		expected string
	}{
		{name: "answer", in: "schemas/\n", def: "data/schema.cfg", expected: "schemas/"},
		{name: "trimmed", in: "  schemas/  \n", def: "data/schema.cfg", expected: "schemas/"},
		{name: "empty uses default", in: "\n", def: "data/schema.cfg", expected: "data/schema.cfg"},
		{name: "eof uses default", in: "", def: "data/schema.cfg", expected: "data/schema.cfg"},
		{name: "no trailing newline", in: "x.cfg", def: "", expected: "x.cfg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := New(strings.NewReader(tt.in), &out)
			assert.Equal(t, tt.expected, p.Prompt("Schema path", tt.def))
			assert.Contains(t, out.String(), "Schema path")
		})
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		name       string
		in         string
		defaultYes bool
		expected   bool
	}{
		{name: "y", in: "y\n", expected: true},
		{name: "YES", in: "YES\n", expected: true},
		{name: "no", in: "no\n", defaultYes: true, expected: false},
		{name: "other word", in: "sure\n", expected: false},
		{name: "empty default yes", in: "\n", defaultYes: true, expected: true},
		{name: "empty default no", in: "\n", expected: false},
		{name: "eof", in: "", defaultYes: true, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := New(strings.NewReader(tt.in), &out)
			assert.Equal(t, tt.expected, p.Confirm("Overwrite?", tt.defaultYes))
		})
	}
}

func TestPrompter_Sequence(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("defs/\n\ny\n"), &out)

	assert.Equal(t, "defs/", p.Prompt("Schema path", "data/schema.cfg"))
	assert.Equal(t, ".cfg", p.Prompt("Extension", ".cfg"))
	assert.True(t, p.Confirm("Write?", false))
	assert.Contains(t, out.String(), "[y/N]")
}
