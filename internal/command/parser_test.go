package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/webnav/internal/errors"
)

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	reg := NewRegistry()
	require.NoError(t, reg.Register(&Command{
		Name:    "open",
		Aliases: []string{"o"},
		MinArgs: 0,
		MaxArgs: -1,
		Handler: func(ctx context.Context, args []string) error { return nil },
	}))
	require.NoError(t, reg.Register(&Command{
		Name:    "set",
		MinArgs: 2,
		MaxArgs: 3,
		Handler: func(ctx context.Context, args []string) error { return nil },
	}))
	return reg
}

func TestParse(t *testing.T) {
	parser := NewParser(testRegistry(t))

	tests := []struct {
		name     string
		text     string
		wantName string
		wantArgs []string
	}{
		{"plain command", "open example.com", "open", []string{"example.com"}},
		{"with prefix", ":open example.com", "open", []string{"example.com"}},
		{"alias", "o example.com", "open", nil},
		{"quoted argument", `open "a b"`, "open", []string{"a b"}},
		{"no arguments", "open", "open", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, err := parser.Parse(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, inv.Command.Name)
			if tt.wantArgs != nil {
				assert.Equal(t, tt.wantArgs, inv.Args)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	parser := NewParser(testRegistry(t))

	tests := []struct {
		name string
		text string
		code string
	}{
		{"empty", "", "empty_command"},
		{"whitespace only", "   ", "empty_command"},
		{"unknown", "opne foo", "unknown_command"},
		{"too few args", "set general.editor", "missing_argument"},
		{"too many args", "set a b c d", "too_many_arguments"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.Parse(tt.text)
			require.Error(t, err)
			var structured *errors.Error
			require.ErrorAs(t, err, &structured)
			assert.Equal(t, tt.code, structured.Code)
		})
	}
}

func TestRegistryDuplicates(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(&Command{Name: "open", Aliases: []string{"o"}}))

	err := reg.Register(&Command{Name: "open"})
	assert.Error(t, err)

	// Alias collisions with existing commands are rejected too.
	err = reg.Register(&Command{Name: "other", Aliases: []string{"open"}})
	assert.Error(t, err)
}

func TestRegistryNames(t *testing.T) {
	reg := testRegistry(t)
	assert.Equal(t, []string{"open", "set"}, reg.Names())
}

func TestRun(t *testing.T) {
	reg := NewRegistry()
	var got []string
	require.NoError(t, reg.Register(&Command{
		Name:    "open",
		MaxArgs: -1,
		Handler: func(ctx context.Context, args []string) error {
			got = args
			return nil
		},
	}))

	parser := NewParser(reg)
	require.NoError(t, parser.Run(context.Background(), `open example.com "second arg"`))
	assert.Equal(t, []string{"example.com", "second arg"}, got)
}

func TestParts(t *testing.T) {
	assert.Equal(t, []string{""}, Parts("", false))
	assert.Equal(t, []string{"  "}, Parts("  ", false))
	assert.Equal(t, []string{"open", "a"}, Parts("open a", false))
	assert.Equal(t, []string{"open", " a"}, Parts("open a", true))
}

func TestCursorPart(t *testing.T) {
	// Positions:      0123456789
	// Text:           open ex fo
	text := "open ex fo"

	assert.Equal(t, 0, CursorPart(text, 0))
	assert.Equal(t, 0, CursorPart(text, 4))  // end of "open"
	assert.Equal(t, 1, CursorPart(text, 6))  // inside "ex"
	assert.Equal(t, 2, CursorPart(text, 10)) // end of text
}
