package cmd

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"github.com/conneroisu/webnav/internal/config"
	"github.com/conneroisu/webnav/internal/ipc"
	"github.com/conneroisu/webnav/internal/urlutil"
)

var openPrint bool

// openCmd resolves input into a URL and either hands it to a running
// instance or launches the configured browser command.
var openCmd = &cobra.Command{
	Use:     "open [url-or-search-term...]",
	Aliases: []string{"o"},
	Short:   "Open a URL or search for the given input",
	Long: `Open resolves its arguments into a target URL.

Input that looks like a URL is opened directly; anything else is turned
into a search using the configured search engines. Bang syntax selects an
engine, e.g.:

  webnav open example.com
  webnav open what is a monad
  webnav open !wiki shell lexer

If a webnav instance is already running (webnav serve), the arguments are
handed over to it; otherwise the browser command from the configuration is
launched directly.`,
	RunE: runOpenCommand,
}

func init() {
	rootCmd.AddCommand(openCmd)
	openCmd.Flags().BoolVar(&openPrint, "print", false,
		"print the resolved URL instead of opening it")
}

func runOpenCommand(cmd *cobra.Command, args []string) error {
	logger := newLogger().WithComponent("open")
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	input := strings.Join(args, " ")
	if strings.TrimSpace(input) == "" {
		input = cfg.StartPage()
	}

	resolver := urlutil.NewResolver(cfg.AutoSearch(), cfg.SearchEngines())
	target, err := resolver.FuzzyURL(input)
	if err != nil {
		return err
	}
	logger.Debug(ctx, "resolved input", "input", input, "url", target)

	if openPrint {
		fmt.Fprintln(cmd.OutOrStdout(), target)
		return nil
	}

	// Prefer the running instance so it keeps owning the browser session.
	socket := ipc.SocketPath(cfg.SocketName())
	sent, err := ipc.SendToRunningInstance(socket, []string{"open", target})
	if err != nil {
		return err
	}
	if sent {
		logger.Info(ctx, "opened in existing instance", "url", target)
		return nil
	}

	return launchBrowser(ctx, cfg, target)
}

// launchBrowser runs the configured browser command template with the URL
// substituted into its placeholder slot. The network.proxy setting is
// applied through the browser's environment.
func launchBrowser(ctx context.Context, cfg *config.Config, target string) error {
	tmpl, err := cfg.Browser()
	if err != nil {
		return err
	}
	argv := tmpl.Argv(target)
	execCmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	if env := proxyEnv(cfg.Proxy()); env != nil {
		execCmd.Env = append(os.Environ(), env...)
	}
	return execCmd.Start()
}

// proxyEnv translates the network.proxy value into proxy environment
// variables for the launched browser. "system" inherits the caller's
// environment untouched.
func proxyEnv(proxy string) []string {
	switch proxy {
	case "", "system":
		return nil
	case "none":
		return []string{"NO_PROXY=*", "no_proxy=*"}
	default:
		return []string{
			"HTTP_PROXY=" + proxy,
			"HTTPS_PROXY=" + proxy,
			"http_proxy=" + proxy,
			"https_proxy=" + proxy,
		}
	}
}
