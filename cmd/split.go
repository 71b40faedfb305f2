package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/conneroisu/webnav/internal/splitter"
)

var (
	splitKeep        bool
	splitPlaceholder bool
	splitJSON        bool
)

// splitCmd exposes the tokenizer directly, mainly for debugging quoting
// behavior and for scripts.
var splitCmd = &cobra.Command{
	Use:     "split <text>",
	Aliases: []string{"sp"},
	Short:   "Split a command string into tokens",
	Long: `Split tokenizes its argument with webnav's shell-like rules and prints
one token per line.

Examples:
  webnav split 'echo "a b" c'
  webnav split --keep 'echo "a b" c'
  webnav split --placeholder 'gvim -f "{}"'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSplitCommand,
}

func init() {
	rootCmd.AddCommand(splitCmd)
	splitCmd.Flags().BoolVar(&splitKeep, "keep", false,
		"preserve whitespace and quote characters")
	splitCmd.Flags().BoolVar(&splitPlaceholder, "placeholder", false,
		"collapse token contents to the {} marker (implies --keep)")
	splitCmd.Flags().BoolVar(&splitJSON, "json", false,
		"output tokens as a JSON array")
}

func runSplitCommand(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	tokens := splitter.Split(text, splitter.Options{
		Keep:        splitKeep,
		Placeholder: splitPlaceholder,
	})

	if splitJSON {
		out, err := json.Marshal(tokens)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	}

	for _, token := range tokens {
		fmt.Fprintf(cmd.OutOrStdout(), "%q\n", token)
	}
	return nil
}
