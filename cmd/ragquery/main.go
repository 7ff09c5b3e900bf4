package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/csheth/ragquery/internal/api"
	"github.com/csheth/ragquery/internal/config"
	"github.com/csheth/ragquery/internal/tui"
)

var (
	flagConfig      string
	flagEndpoint    string
	flagTopK        int
	flagRemote      bool
	flagTimeout     int
	flagNoAltScreen bool
)

var rootCmd = &cobra.Command{
	Use:   "ragquery",
	Short: "Terminal client for a retrieval-augmented generation service",
	Long: `ragquery collects a natural-language question, sends it to the
generate endpoint of a RAG service, and renders the answer.

Keys:
  Enter    Submit the query
  Tab / b  Toggle local vs. remote backend
  + / -    Adjust retrieval depth (top_k)
  a / c    About and contacts panels
  ?        Key legend
  Ctrl+C   Quit`,
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "path to the TOML config file (default ~/.ragquery/config.toml)")
	rootCmd.Flags().StringVar(&flagEndpoint, "endpoint", "", "answer service base URL (eg. http://127.0.0.1:8000)")
	rootCmd.Flags().IntVar(&flagTopK, "top-k", 0, "default retrieval depth, 1-20")
	rootCmd.Flags().BoolVar(&flagRemote, "remote", false, "start with the remote LLM backend selected")
	rootCmd.Flags().IntVar(&flagTimeout, "timeout", 0, "HTTP timeout in seconds")
	rootCmd.Flags().BoolVar(&flagNoAltScreen, "no-alt-screen", false, "disable the alternate screen buffer")
}

// resolved holds the effective runtime settings after precedence: flags beat
// the config file, and an empty endpoint falls through to the env fallback
// inside api.New.
type resolved struct {
	endpoint string
	timeout  time.Duration
	depth    int
	remote   bool
}

func resolveSettings(flags *pflag.FlagSet, settings config.Settings) resolved {
	r := resolved{
		endpoint: settings.Endpoint,
		timeout:  time.Duration(settings.TimeoutSeconds) * time.Second,
		depth:    settings.TopK,
		remote:   settings.RemoteBackend,
	}
	if flags.Changed("endpoint") {
		r.endpoint, _ = flags.GetString("endpoint")
	}
	if flags.Changed("timeout") {
		seconds, _ := flags.GetInt("timeout")
		r.timeout = time.Duration(seconds) * time.Second
	}
	if flags.Changed("top-k") {
		r.depth, _ = flags.GetInt("top-k")
	}
	if flags.Changed("remote") {
		r.remote, _ = flags.GetBool("remote")
	}
	return r
}

func run(cmd *cobra.Command, args []string) error {
	settings, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	r := resolveSettings(cmd.Flags(), settings)

	client := api.New(api.Config{Endpoint: r.endpoint, Timeout: r.timeout})

	opts := []tea.ProgramOption{}
	if !flagNoAltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	program := tea.NewProgram(
		tui.New(tui.Config{
			Client:        client,
			DefaultDepth:  r.depth,
			RemoteBackend: r.remote,
		}),
		opts...,
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
