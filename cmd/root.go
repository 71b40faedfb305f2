// Package cmd provides the webnav command-line interface.
//
// Configuration System:
//
//	Values are resolved through multiple sources with clear precedence:
//	1. Command-line flags - highest priority
//	2. WEBNAV_CONFIG_FILE environment variable - custom config file path
//	3. Individual environment variables (WEBNAV_GENERAL_AUTO_SEARCH, ...)
//	4. Configuration file (.webnav.yml) - lowest priority
//
// On top of these, a running instance keeps per-option layered values:
// temporary overrides shadow the loaded configuration, which shadows the
// built-in defaults.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/conneroisu/webnav/internal/logging"
)

var (
	cfgFile  string
	logLevel string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "webnav",
	Short: "A single-instance URL opener and command dispatcher",
	Long: `Webnav resolves user input into URLs or search queries and hands them
to a configured browser command, keeping a single running instance that
later invocations talk to over a local socket.

Quick Start:
  webnav serve                  Start the single-instance server
  webnav open example.com       Open a URL (or hand it to the running instance)
  webnav open what is a monad   Open a search for the input
  webnav config init            Write the default configuration file

Command Aliases (for faster typing):
  open (o), serve (s), split (sp)`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Accept underscores in flag names, e.g. --log_level for --log-level.
	rootCmd.PersistentFlags().SetNormalizeFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is .webnav.yml, can also use WEBNAV_CONFIG_FILE env var)")
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "info",
		"log level (debug, info, warn, error)")
	_ = viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// initConfig initializes the configuration sources.
//
// Loading priority (highest to lowest):
//  1. --config flag: explicitly specified config file path
//  2. WEBNAV_CONFIG_FILE environment variable
//  3. Default: .webnav.yml in the current directory or $HOME
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv("WEBNAV_CONFIG_FILE"); envConfigFile != "" {
		viper.SetConfigFile(envConfigFile)
	} else {
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigType("yaml")
		viper.SetConfigName(".webnav")
	}

	// Enable automatic environment variable binding with WEBNAV_ prefix,
	// e.g. WEBNAV_GENERAL_AUTO_SEARCH, WEBNAV_NETWORK_PROXY.
	viper.SetEnvPrefix("WEBNAV")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	// A missing config file is fine; defaults cover everything.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newLogger builds the process logger from the --log-level flag.
func newLogger() logging.Logger {
	return logging.NewLogger(&logging.Config{
		Level:  logging.ParseLevel(viper.GetString("log-level")),
		Format: "text",
		Output: os.Stderr,
	})
}
