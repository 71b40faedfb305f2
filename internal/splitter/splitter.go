// Package splitter implements shell-like splitting of command strings.
//
// The rules are a deliberately small subset of POSIX shell quoting: single
// and double quotes group text, backslash escapes the next character (but is
// a literal inside single quotes), and whitespace separates tokens. There is
// no globbing, variable expansion, or command substitution.
//
// Two extensions exist beyond plain word splitting. Keep mode preserves
// whitespace and quote characters verbatim so that concatenating the
// returned tokens reproduces the input string exactly. Placeholder mode
// collapses the content of every word and quoted segment to the literal
// marker "{}" while leaving the quoting structure in place; it is used to
// locate the placeholder slot in external command templates such as
// `gvim -f "{}"`.
//
// Splitting is total: unbalanced quotes and trailing escape characters are
// resolved at end of input instead of being reported as errors.
package splitter

import (
	"strings"
	"unicode"
)

// Marker is the literal that replaces word and quoted-segment content in
// placeholder mode.
const Marker = "{}"

const (
	escapeChar = '\\'
	whitespace = " \t\r"
	quotes     = `'"`
	// Backslash is only an escape character inside these quotes. Inside
	// single quotes it is literal data.
	escapedQuotes = `"`
)

// Options configures one splitting pass.
type Options struct {
	// Keep preserves whitespace and quote characters in the output so the
	// source string can be reconstructed by concatenating the tokens.
	Keep bool

	// Placeholder replaces the content of every word and quoted segment
	// with Marker. Placeholder implies Keep: whitespace runs must stay
	// observable so the marker's position relative to the surrounding text
	// is meaningful. A Keep value of false is promoted, not rejected.
	Placeholder bool
}

// normalized applies the Placeholder -> Keep promotion in one place so the
// lexer never has to reason about the combination.
func (o Options) normalized() Options {
	if o.Placeholder {
		o.Keep = true
	}
	return o
}

// lexState identifies what the lexer is currently inside of.
type lexState int

const (
	stateIdle    lexState = iota // between tokens
	stateWord                    // inside an unquoted token
	stateQuoted                  // inside a quoted segment, quoteChar holds the open quote
	stateEscaped                 // the next character is escape-consumed
)

// Lexer splits a single string into raw fragments: completed tokens and, in
// keep mode, standalone whitespace runs. A Lexer is consumed exactly once;
// create a new one for every scan.
type Lexer struct {
	input []rune
	pos   int
	opts  Options

	state     lexState
	quoteChar rune     // open quote, valid while state == stateQuoted
	escReturn lexState // state to resume after stateEscaped
	quoted    bool     // whether the current token ever opened a quote
	buf       []rune   // accumulator for the current token
	pending   []string // fragments ready to be returned
	finished  bool
}

// NewLexer creates a lexer over s. Options are normalized (Placeholder
// implies Keep).
func NewLexer(s string, opts Options) *Lexer {
	return &Lexer{
		input: []rune(s),
		opts:  opts.normalized(),
		state: stateIdle,
	}
}

// Next returns the next raw fragment. The second return value is false once
// the input is exhausted.
func (l *Lexer) Next() (string, bool) {
	for len(l.pending) == 0 && l.pos < len(l.input) {
		l.step(l.input[l.pos])
		l.pos++
	}
	if len(l.pending) == 0 && !l.finished {
		l.finished = true
		l.finish()
	}
	if len(l.pending) == 0 {
		return "", false
	}
	frag := l.pending[0]
	l.pending = l.pending[1:]
	return frag, true
}

// emit yields the accumulator as a completed token and resets per-token
// state. The fragment may be empty when the token was an empty quoted
// string, e.g. ''.
func (l *Lexer) emit() {
	l.pending = append(l.pending, string(l.buf))
	l.buf = l.buf[:0]
	l.quoted = false
	l.state = stateIdle
}

func (l *Lexer) step(c rune) {
	switch l.state {
	case stateIdle:
		l.stepIdle(c)
	case stateQuoted:
		l.stepQuoted(c)
	case stateEscaped:
		l.stepEscaped(c)
	case stateWord:
		l.stepWord(c)
	}
}

func (l *Lexer) stepIdle(c rune) {
	if l.opts.Keep && !l.opts.Placeholder {
		// Preserve inter-token characters verbatim for reconstruction.
		l.buf = append(l.buf, c)
	}
	switch {
	case isWhitespace(c):
		if l.opts.Placeholder {
			l.buf = append(l.buf, c)
		}
		if len(l.buf) > 0 || l.quoted {
			l.emit()
		}
	case c == escapeChar:
		l.escReturn = stateWord
		l.state = stateEscaped
	case isQuote(c):
		if l.opts.Placeholder {
			l.buf = append(l.buf, c)
		}
		l.quoteChar = c
		l.state = stateQuoted
	default:
		if l.opts.Placeholder {
			l.buf = append(l.buf[:0], []rune(Marker)...)
		} else {
			l.buf = append(l.buf[:0], c)
		}
		l.state = stateWord
	}
}

func (l *Lexer) stepQuoted(c rune) {
	l.quoted = true
	switch {
	case c == l.quoteChar:
		if l.opts.Placeholder {
			l.buf = append(l.buf, []rune(Marker)...)
		}
		if l.opts.Keep {
			l.buf = append(l.buf, c)
		}
		// A token may close a quote and keep accumulating unquoted
		// characters, so a"b c"d stays one token.
		l.state = stateWord
	case c == escapeChar && isEscapedQuote(l.quoteChar):
		if l.opts.Keep && !l.opts.Placeholder {
			l.buf = append(l.buf, c)
		}
		l.escReturn = stateQuoted
		l.state = stateEscaped
	default:
		if !l.opts.Placeholder {
			l.buf = append(l.buf, c)
		}
	}
}

func (l *Lexer) stepEscaped(c rune) {
	// Inside quotes only the quote itself or the escape character may be
	// escaped. Anything else keeps the backslash as literal data. Keep mode
	// already preserved it on entry to the escaped state.
	if l.escReturn == stateQuoted && c != escapeChar && c != l.quoteChar && !l.opts.Keep {
		l.buf = append(l.buf, escapeChar)
	}
	if !l.opts.Placeholder {
		l.buf = append(l.buf, c)
	}
	l.state = l.escReturn
}

func (l *Lexer) stepWord(c rune) {
	switch {
	case isWhitespace(c):
		l.state = stateIdle
		if len(l.buf) > 0 || l.quoted {
			l.emit()
		}
		if l.opts.Keep {
			// The whitespace character becomes its own fragment so exact
			// inter-token spacing stays observable downstream.
			l.pending = append(l.pending, string(c))
		}
	case isQuote(c):
		if l.opts.Keep {
			l.buf = append(l.buf, c)
		}
		l.quoteChar = c
		l.state = stateQuoted
	case c == escapeChar:
		if l.opts.Keep && !l.opts.Placeholder {
			l.buf = append(l.buf, c)
		}
		l.escReturn = stateWord
		l.state = stateEscaped
	default:
		if !l.opts.Placeholder {
			l.buf = append(l.buf, c)
		}
	}
}

// finish resolves the end-of-input edge cases: a trailing escape character
// becomes a literal backslash (keep mode already preserved it), and an
// unterminated quote yields whatever content accumulated.
func (l *Lexer) finish() {
	if l.state == stateEscaped && !l.opts.Keep {
		l.buf = append(l.buf, escapeChar)
	}
	if len(l.buf) > 0 || l.quoted {
		l.emit()
	}
}

// Split splits s into tokens.
//
// With zero-value options this behaves like a small shlex.Split: quotes and
// escapes are consumed, whitespace separates tokens. With Keep set, tokens
// carry their quotes and each token is prefixed with the whitespace that
// preceded it, so strings.Join(tokens, "") == s. With Placeholder set, word
// and segment contents collapse to Marker (and Keep is implied).
//
// Split never fails; see the package comment for how unbalanced input is
// resolved.
func Split(s string, opts Options) []string {
	opts = opts.normalized()
	lexer := NewLexer(s, opts)

	var fragments []string
	for {
		frag, ok := lexer.Next()
		if !ok {
			break
		}
		fragments = append(fragments, frag)
	}
	if len(fragments) == 0 {
		return nil
	}

	// Merge whitespace-only fragments into the leading edge of the next
	// real token. Trailing whitespace with no following token becomes one
	// final token of its own.
	out := make([]string, 0, len(fragments))
	var spaces strings.Builder
	for _, frag := range fragments {
		if isAllWhitespace(frag) {
			spaces.WriteString(frag)
		} else {
			out = append(out, spaces.String()+frag)
			spaces.Reset()
		}
	}
	if spaces.Len() > 0 {
		out = append(out, spaces.String())
	}
	return out
}

func isWhitespace(c rune) bool { return strings.ContainsRune(whitespace, c) }
func isQuote(c rune) bool      { return strings.ContainsRune(quotes, c) }
func isEscapedQuote(c rune) bool {
	return strings.ContainsRune(escapedQuotes, c)
}

// isAllWhitespace reports whether s is non-empty and consists entirely of
// whitespace. An empty fragment (from an empty quoted string) is a real
// token, not whitespace.
func isAllWhitespace(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if !unicode.IsSpace(c) {
			return false
		}
	}
	return true
}
