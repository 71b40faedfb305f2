package command

import (
	"strings"

	"github.com/conneroisu/webnav/internal/errors"
	"github.com/conneroisu/webnav/internal/splitter"
)

// Marker is the placeholder literal a template must contain exactly once,
// e.g. the file-name slot in `gvim -f "{}"`.
const Marker = splitter.Marker

// Template is a parsed external-command template with a single placeholder
// slot. The placeholder may appear bare, or inside single or double quotes;
// the surrounding quoting is preserved on substitution so the resolved
// string can be re-serialized into config.
type Template struct {
	raw   string
	parts []string // keep-mode tokens, concatenation == raw
	index int      // token carrying the placeholder
}

// ParseTemplate validates raw and locates its placeholder.
//
// The placeholder token is found by comparing the keep-mode split against
// the placeholder-mode split: for ordinary words the two disagree (content
// collapses to the marker), while for the one token whose content literally
// is the marker they coincide. This respects quote and escape boundaries,
// so a "{}" hidden inside other word content is not accepted as a slot.
func ParseTemplate(raw string) (*Template, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, errors.New(errors.ErrorTypeValidation, "empty_template",
			"command template is empty")
	}

	parts := splitter.Split(raw, splitter.Options{Keep: true})
	skeleton := splitter.Split(raw, splitter.Options{Placeholder: true})

	index := -1
	for i := range parts {
		if i >= len(skeleton) {
			break
		}
		if parts[i] != skeleton[i] || !strings.Contains(parts[i], Marker) {
			continue
		}
		if index >= 0 {
			return nil, errors.Newf(errors.ErrorTypeValidation, "multiple_placeholders",
				"command template %q contains more than one %s placeholder", raw, Marker)
		}
		index = i
	}
	if index < 0 {
		return nil, errors.Newf(errors.ErrorTypeValidation, "missing_placeholder",
			"command template %q needs to contain a %s placeholder", raw, Marker)
	}

	return &Template{raw: raw, parts: parts, index: index}, nil
}

// String returns the raw template.
func (t *Template) String() string {
	return t.raw
}

// PlaceholderIndex returns the index of the token carrying the placeholder,
// counted over the keep-mode token list.
func (t *Template) PlaceholderIndex() int {
	return t.index
}

// Resolve substitutes value into the placeholder slot and returns the full
// command string with the original whitespace, quoting, and escaping intact.
func (t *Template) Resolve(value string) string {
	var b strings.Builder
	for i, part := range t.parts {
		if i == t.index {
			part = strings.Replace(part, Marker, value, 1)
		}
		b.WriteString(part)
	}
	return b.String()
}

// Argv substitutes value into the placeholder slot and returns the command
// as an argument vector ready for exec, with quotes and escapes consumed.
// The value is substituted after splitting, so whitespace or quotes in it
// stay inside a single argument.
func (t *Template) Argv(value string) []string {
	// Raw fragments are emitted at the same points in every mode, so the
	// i-th plain fragment corresponds to the i-th keep token. The whitespace
	// merge can collapse fragments (a quoted blank like " " is whitespace
	// once its quotes are consumed), so the slot is tracked through the
	// merge instead of reusing the keep-mode index directly.
	lexer := splitter.NewLexer(t.raw, splitter.Options{})
	var frags []string
	for {
		frag, ok := lexer.Next()
		if !ok {
			break
		}
		frags = append(frags, frag)
	}

	argv := make([]string, 0, len(frags))
	slot := -1
	spaces := ""
	for i, frag := range frags {
		if frag != "" && strings.TrimSpace(frag) == "" {
			spaces += frag
			continue
		}
		argv = append(argv, spaces+frag)
		spaces = ""
		if i == t.index {
			slot = len(argv) - 1
		}
	}
	if spaces != "" {
		argv = append(argv, spaces)
	}
	if slot >= 0 {
		argv[slot] = strings.Replace(argv[slot], Marker, value, 1)
	}
	return argv
}
