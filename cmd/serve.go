package cmd

import (
	"context"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/conneroisu/webnav/internal/command"
	"github.com/conneroisu/webnav/internal/config"
	"github.com/conneroisu/webnav/internal/ipc"
	"github.com/conneroisu/webnav/internal/urlutil"
	"github.com/conneroisu/webnav/internal/watcher"
)

// serveCmd runs the single-instance server: it owns the IPC socket,
// dispatches handed-over commands, and reloads configuration on change.
var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"s"},
	Short:   "Run the single-instance server",
	Long: `Serve starts the long-running webnav instance. It listens on the
per-user IPC socket for arguments handed over by later invocations,
dispatches them as commands (currently: open), and watches the
configuration file for changes.`,
	RunE: runServeCommand,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServeCommand(cmd *cobra.Command, args []string) error {
	logger := newLogger().WithComponent("serve")

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	initial, err := config.Load()
	if err != nil {
		return err
	}

	// The live configuration. Dispatch runs on the server goroutine while
	// reloads run on the watcher goroutine, so the pointer is swapped
	// atomically instead of mutating a shared struct.
	var current atomic.Pointer[config.Config]
	current.Store(initial)

	// The dispatcher for argument lists received over IPC. The registry is
	// small on purpose; it grows with the features the server offers.
	registry := command.NewRegistry()
	if err := registry.Register(&command.Command{
		Name:    "open",
		Aliases: []string{"o"},
		MinArgs: 0,
		MaxArgs: -1,
		Handler: func(ctx context.Context, cmdArgs []string) error {
			cfg := current.Load()
			resolver := urlutil.NewResolver(cfg.AutoSearch(), cfg.SearchEngines())
			target, err := resolver.FuzzyURL(joinArgs(cmdArgs, cfg))
			if err != nil {
				return err
			}
			return launchBrowser(ctx, cfg, target)
		},
	}); err != nil {
		return err
	}
	parser := command.NewParser(registry)

	server, err := ipc.Listen(ipc.SocketPath(initial.SocketName()), func(received []string) {
		if len(received) == 0 {
			return
		}
		text := joinShellWords(received)
		if err := parser.Run(ctx, text); err != nil {
			logger.Warn(ctx, err, "dispatch failed", "args", received)
		}
	}, logger)
	if err != nil {
		return err
	}

	// Reload configuration when the config file changes. Without a config
	// file there is nothing to watch.
	if path := viper.ConfigFileUsed(); path != "" {
		w, err := watcher.New(path, 0, func() {
			fresh, err := reloadConfig()
			if err != nil {
				logger.Warn(ctx, err, "config reload failed")
				return
			}
			current.Store(fresh)
			logger.Info(ctx, "configuration reloaded")
		}, logger)
		if err != nil {
			logger.Warn(ctx, err, "config watching disabled")
		} else {
			go func() { _ = w.Watch(ctx) }()
		}
	}

	return server.Serve(ctx)
}

// reloadConfig re-reads the config file from disk before rebuilding the
// store. Load alone only sees what viper already holds in memory, so a
// change to .webnav.yml would never be picked up without the re-read.
func reloadConfig() (*config.Config, error) {
	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}
	return config.Load()
}

func joinArgs(args []string, cfg *config.Config) string {
	joined := ""
	for i, arg := range args {
		if i > 0 {
			joined += " "
		}
		joined += arg
	}
	if joined == "" {
		return cfg.StartPage()
	}
	return joined
}

// joinShellWords rebuilds a command string from an argument vector so it
// survives the splitter: arguments containing whitespace get quoted.
func joinShellWords(args []string) string {
	out := ""
	for i, arg := range args {
		if i > 0 {
			out += " "
		}
		out += quoteShellWord(arg)
	}
	return out
}

func quoteShellWord(arg string) string {
	if arg == "" {
		return `""`
	}
	needsQuoting := false
	for _, c := range arg {
		switch c {
		case ' ', '\t', '\r', '\'', '"', '\\':
			needsQuoting = true
		}
	}
	if !needsQuoting {
		return arg
	}
	escaped := ""
	for _, c := range arg {
		if c == '"' || c == '\\' {
			escaped += `\`
		}
		escaped += string(c)
	}
	return `"` + escaped + `"`
}
