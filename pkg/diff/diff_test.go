package diff

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/firebird-suite/wren/pkg/grammar"
	"github.com/simonhull/firebird-suite/wren/pkg/logger"
)

func parse(source string) *grammar.Grammar {
	p := grammar.NewParser(grammar.WithLogger(logger.NewSilentLogger()))
	return p.Parse(source, false)
}

func TestLines_Identical(t *testing.T) {
	assert.Empty(t, Lines("a", "b", "[x]\n[/x]\n", "[x]\n[/x]\n", nil))
}

func TestLines_AddedLine(t *testing.T) {
	oldText := "[a]\n\tx=int\n[/a]\n"
	newText := "[a]\n\tx=int\n\ty=string\n[/a]\n"

	out := Lines("old.cfg", "new.cfg", oldText, newText, nil)

	assert.Contains(t, out, "--- old.cfg")
	assert.Contains(t, out, "+++ new.cfg")
	assert.Contains(t, out, "@@ -1,3 +1,4 @@")
	assert.Contains(t, out, "+    y=string")
	assert.Contains(t, out, "     x=int", "unchanged lines keep a leading space")
}

func TestLines_RemovedLine(t *testing.T) {
	out := Lines("old", "new", "[a]\n\tgone=int\n[/a]\n", "[a]\n[/a]\n", nil)
	assert.Contains(t, out, "-    gone=int")
	assert.Contains(t, out, "@@ -1,3 +1,2 @@")
}

func TestLines_SeparateHunks(t *testing.T) {
	var oldLines, newLines []string
	for i := 0; i < 20; i++ {
		line := fmt.Sprintf("k%d=int", i)
		oldLines = append(oldLines, line)
		switch i {
		case 2:
			newLines = append(newLines, "changed_a=int")
		case 17:
			newLines = append(newLines, "changed_b=int")
		default:
			newLines = append(newLines, line)
		}
	}

	out := Lines("old", "new",
		strings.Join(oldLines, "\n")+"\n",
		strings.Join(newLines, "\n")+"\n",
		&Options{ContextLines: 1})

	assert.Equal(t, 2, strings.Count(out, "@@ -"))
	assert.Contains(t, out, "@@ -2,3 +2,3 @@")
	assert.Contains(t, out, "@@ -17,3 +17,3 @@")
}

func TestLines_LineNumbers(t *testing.T) {
	out := Lines("old", "new", "a\nb\n", "a\nc\n", &Options{ShowLineNums: true})
	assert.Contains(t, out, "   2 -b")
	assert.Contains(t, out, "     +c")
}

func TestGrammars(t *testing.T) {
	base := "[schema]\nint=integer\n[/schema]\n[unit]\nhp=(required int)\n[/unit]\n"
	changed := "[schema]\nint=integer\n[/schema]\n[unit]\nhp=(required int)\nxp=(optional int)\n[/unit]\n"

	assert.Empty(t, Grammars("a", "b", parse(base), parse(base)))

	out := Grammars("before", "after", parse(base), parse(changed))
	require.NotEmpty(t, out)
	assert.Contains(t, out, "+    xp=(optional int)")
	assert.NotContains(t, out, "-    hp=(required int)")
}

func TestGrammars_OutlineCoversWholeGrammar(t *testing.T) {
	tests := []struct {
		name    string
		oldSrc  string
		newSrc  string
		removed string
		added   string
	}{
		{
			name:    "key cardinality",
			oldSrc:  "[schema]\nint=integer\n[/schema]\n[unit]\nhp=(required int)\n[/unit]\n",
			newSrc:  "[schema]\nint=integer\n[/schema]\n[unit]\nhp=(forbidden int)\n[/unit]\n",
			removed: "-    hp=(required int)",
			added:   "+    hp=(forbidden int)",
		},
		{
			name:    "primitive descriptor",
			oldSrc:  "[schema]\nint=integer\n[/schema]\n[unit]\nhp=(required int)\n[/unit]\n",
			newSrc:  "[schema]\nint=\"enum a,b\"\n[/schema]\n[unit]\nhp=(required int)\n[/unit]\n",
			removed: "-primitive int=integer",
			added:   "+primitive int=\"enum a,b\"",
		},
		{
			name:    "tag reference cardinality",
			oldSrc:  "[unit]\n_side=(optional side)\n[/unit]\n[side]\n[/side]\n",
			newSrc:  "[unit]\n_side=(repeated side)\n[/unit]\n[side]\n[/side]\n",
			removed: "-[side] optional",
			added:   "+[side] repeated",
		},
		{
			name:    "extended name",
			oldSrc:  "[unit:Unit]\n[/unit]\n",
			newSrc:  "[unit:Troop]\n[/unit]\n",
			removed: "-[unit:Unit]",
			added:   "+[unit:Troop]",
		},
		{
			name:    "key inside reference cycle",
			oldSrc:  "[then]\n_if=(optional if)\n[/then]\n[if]\n_then=(optional then)\na=(required int)\n[/if]\n",
			newSrc:  "[then]\n_if=(optional if)\n[/then]\n[if]\n_then=(optional then)\nb=(required int)\nc=(required int)\n[/if]\n",
			removed: "-    a=(required int)",
			added:   "+    c=(required int)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Grammars("old", "new", parse(tt.oldSrc), parse(tt.newSrc))
			require.NotEmpty(t, out)
			assert.Contains(t, out, tt.removed)
			assert.Contains(t, out, tt.added)
		})
	}
}

func TestGrammars_IgnoresTagOrderAndComments(t *testing.T) {
	a := "[schema]\nint=integer\n[/schema]\n[a]\nx=(required int)\n[/a]\n[b]\ny=(optional int)\n[/b]\n"
	b := "# reordered\n[b]\ny=(optional int) # note\n[/b]\n[schema]\nint=integer\n[/schema]\n[a]\nx=(required int)\n[/a]\n"
	assert.Empty(t, Grammars("a", "b", parse(a), parse(b)))
}

func TestGrammars_Nil(t *testing.T) {
	out := Grammars("none", "some", nil, parse("[a]\n[/a]\n"))
	assert.Contains(t, out, "+[a]")
}

func TestExpandTabs(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"\tx", "    x"},
		{"ab\tx", "ab  x"},
		{"none", "none"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, expandTabs(tt.in, 4))
	}
}

func TestTruncateLine(t *testing.T) {
	assert.Equal(t, "short", truncateLine("short", 10))
	assert.Equal(t, "abcdefg...", truncateLine("abcdefghijklmnop", 10))
	assert.Equal(t, "..", truncateLine("abcdef", 2))
}
