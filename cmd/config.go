package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/conneroisu/webnav/internal/config"
	"github.com/conneroisu/webnav/internal/errors"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and manage configuration",
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all options with their current values",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		for _, line := range cfg.Describe() {
			fmt.Fprintln(cmd.OutOrStdout(), line)
		}
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <section.option>",
	Short: "Print one option value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		section, name, err := splitKey(args[0])
		if err != nil {
			return err
		}
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		value, err := cfg.Store().Get(section, name)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), value)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <section.option> <value>",
	Short: "Validate a value against an option",
	Long: `Set validates a value against the option's type the way a running
instance would before applying it. Persisting values belongs in the config
file; this command is a dry run for checking them.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		section, name, err := splitKey(args[0])
		if err != nil {
			return err
		}
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if err := cfg.Store().Set(config.LayerTemp, section, name, args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s.%s = %s is valid\n", section, name, args[1])
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ".webnav.yml"
		if err := config.WriteDefault(path); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Wrote", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
}

func splitKey(key string) (section, name string, err error) {
	parts := strings.SplitN(key, ".", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", errors.Newf(errors.ErrorTypeConfig, "invalid_key",
			"option key must look like section.option, got %q", key)
	}
	return parts[0], parts[1], nil
}
