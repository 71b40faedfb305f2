package splitter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"only whitespace", "   ", nil},
		{"single word", "open", []string{"open"}},
		{"two words", "open example.com", []string{"open", "example.com"}},
		{"tabs and spaces", "open\texample.com  foo", []string{"open", "example.com", "foo"}},
		{"double quotes removed", `echo "a b" c`, []string{"echo", "a b", "c"}},
		{"single quotes removed", `echo 'a b' c`, []string{"echo", "a b", "c"}},
		{"escaped quote in double quotes", `"a\"b"`, []string{`a"b`}},
		{"backslash literal in single quotes", `'a\b'`, []string{`a\b`}},
		{"escaped backslash in double quotes", `"a\\b"`, []string{`a\b`}},
		{"invalid escape in double quotes keeps backslash", `"a\xb"`, []string{`a\xb`}},
		{"escaped space outside quotes", `a\ b`, []string{"a b"}},
		{"mixed quoted and unquoted", `a"b c"d`, []string{"ab cd"}},
		{"empty quoted string", `''`, []string{""}},
		{"empty double quoted string", `""`, []string{""}},
		{"unterminated single quote", `'abc`, []string{"abc"}},
		{"unterminated double quote", `"a b`, []string{"a b"}},
		{"trailing escape becomes literal", `a\`, []string{`a\`}},
		{"lone escape", `\`, []string{`\`}},
		{"leading whitespace", "  a b", []string{"a", "b"}},
		{"carriage return is whitespace", "a\rb", []string{"a", "b"}},
		{"newline is an ordinary character", "a\nb", []string{"a\nb"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Split(tt.input, Options{}))
		})
	}
}

func TestSplitKeep(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"only whitespace", "  ", []string{"  "}},
		{"single word", "open", []string{"open"}},
		{"spaces reattached to following token", "a  b", []string{"a", "  b"}},
		{"quotes preserved", `echo "a b" c`, []string{"echo", ` "a b"`, " c"}},
		{"single quotes preserved", `echo 'a b'`, []string{"echo", ` 'a b'`}},
		{"escape preserved", `a\ b`, []string{`a\ b`}},
		{"escape in double quotes preserved", `"a\"b"`, []string{`"a\"b"`}},
		{"trailing whitespace is own token", "a b  ", []string{"a", " b", "  "}},
		{"trailing escape preserved structurally", `a\`, []string{`a\`}},
		{"unterminated quote preserved", `"ab`, []string{`"ab`}},
		{"mixed segments", `a"b c"d e`, []string{`a"b c"d`, " e"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Split(tt.input, Options{Keep: true})
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.input, strings.Join(got, ""),
				"keep mode must reconstruct the source by concatenation")
		})
	}
}

func TestSplitPlaceholder(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"bare word collapses", "gvim", []string{Marker}},
		{"quoted segment collapses with quotes kept", `"file name"`, []string{`"{}"`}},
		{"editor template", `gvim -f "{}"`, []string{Marker, " " + Marker, ` "{}"`}},
		{"single quoted marker", `vim '{}'`, []string{Marker, ` '{}'`}},
		{"unquoted marker is just a word", "vim {}", []string{Marker, " " + Marker}},
		{"whitespace positions survive", "a  b", []string{Marker, "  " + Marker}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Split(tt.input, Options{Placeholder: true}))
		})
	}
}

// Placeholder forces keep semantics no matter what the caller passed for
// Keep. The promotion is documented on Options.
func TestPlaceholderImpliesKeep(t *testing.T) {
	inputs := []string{``, `a b`, `a "b c" d`, `x\ y`, `  spaced  `}
	for _, input := range inputs {
		withKeep := Split(input, Options{Keep: true, Placeholder: true})
		withoutKeep := Split(input, Options{Keep: false, Placeholder: true})
		assert.Equal(t, withKeep, withoutKeep, "input %q", input)
	}
}

func TestSplitDeterminism(t *testing.T) {
	input := `open "some page" 'with quotes' and\ escapes  `
	for _, opts := range []Options{{}, {Keep: true}, {Placeholder: true}} {
		first := Split(input, opts)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, Split(input, opts))
		}
	}
}

func TestLexerSinglePass(t *testing.T) {
	lexer := NewLexer("a b", Options{})

	var fragments []string
	for {
		frag, ok := lexer.Next()
		if !ok {
			break
		}
		fragments = append(fragments, frag)
	}
	require.Equal(t, []string{"a", "b"}, fragments)

	// Exhausted lexers stay exhausted.
	_, ok := lexer.Next()
	assert.False(t, ok)
	_, ok = lexer.Next()
	assert.False(t, ok)
}

func TestLexerWhitespaceFragments(t *testing.T) {
	lexer := NewLexer("a  b", Options{Keep: true})

	var fragments []string
	for {
		frag, ok := lexer.Next()
		if !ok {
			break
		}
		fragments = append(fragments, frag)
	}
	// Each whitespace character is its own fragment before merging.
	assert.Equal(t, []string{"a", " ", " ", "b"}, fragments)
}

func BenchmarkSplit(b *testing.B) {
	input := `open -t "https://example.com/some path" 'second arg' trailing\ word`
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		Split(input, Options{})
	}
}
