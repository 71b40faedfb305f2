package splitter

import (
	"strings"
	"testing"
	"unicode/utf8"
)

// FuzzSplit checks the splitter's contract over arbitrary inputs: it never
// panics, it is deterministic, keep mode round-trips, and placeholder mode
// forces keep semantics.
func FuzzSplit(f *testing.F) {
	seeds := []string{
		"",
		"   ",
		"open example.com",
		`echo "a b" c`,
		`"a\"b"`,
		`'a\b'`,
		`a"b c"d`,
		`gvim -f "{}"`,
		`'abc`,
		`a\`,
		"\\",
		"''",
		"a\t\rb",
		`\x`,
		`"unterminated \`,
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		if !utf8.ValidString(input) {
			// The lexer works on runes; invalid UTF-8 cannot round-trip.
			t.Skip()
		}
		for _, opts := range []Options{{}, {Keep: true}, {Placeholder: true}} {
			first := Split(input, opts)
			second := Split(input, opts)
			if len(first) != len(second) {
				t.Fatalf("non-deterministic split of %q: %v vs %v", input, first, second)
			}
			for i := range first {
				if first[i] != second[i] {
					t.Fatalf("non-deterministic split of %q: %v vs %v", input, first, second)
				}
			}
		}

		kept := Split(input, Options{Keep: true})
		if got := strings.Join(kept, ""); got != input {
			t.Errorf("keep round-trip failed: %q -> %v -> %q", input, kept, got)
		}

		forced := Split(input, Options{Placeholder: true})
		explicit := Split(input, Options{Keep: true, Placeholder: true})
		if len(forced) != len(explicit) {
			t.Errorf("placeholder did not force keep for %q", input)
		}
	})
}
