package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mscrnt/wmiq/pkg/agent"
	"github.com/mscrnt/wmiq/pkg/llm"
	"github.com/spf13/cobra"
)

func agentCmd() *cobra.Command {
	var (
		query    string
		provider string
		model    string
		endpoint string
		verbose  bool
	)

	cmd := &cobra.Command{
		Use:   "agent",
		Short: "Ask WMI questions in natural language",
		Long: `Chat with an agent that answers by calling WMI tools through an
OpenAI-compatible model.

Providers: ollama (default, local inference) and azure (Azure OpenAI).
Settings resolve flags over environment over ~/.wmiq/agent.toml:
  AGENT_PROVIDER, OLLAMA_MODEL, OLLAMA_ENDPOINT,
  AZURE_OPENAI_ENDPOINT, AZURE_OPENAI_DEPLOYMENT,
  AZURE_OPENAI_API_KEY, AZURE_OPENAI_API_VERSION.

Examples:
  # Interactive chat against local Ollama
  wmiq agent

  # One-shot question
  wmiq agent --query "which services are stopped but set to auto-start?"

  # Azure OpenAI deployment
  wmiq agent --provider azure --model gpt-4o

  # Show tool calls as they happen
  wmiq agent --verbose`,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := llm.LoadConfig(llm.DefaultConfigPath(), provider, model, endpoint)
			if err != nil {
				return err
			}
			if verbose {
				cfg.Verbose = true
			}

			client, err := newClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			registry := agent.NewRegistry()
			agent.RegisterBuiltins(registry, client, nil)

			loop := agent.NewLoop(llm.NewClient(cfg), registry, cfg.MaxIterations, cfg.Verbose, os.Stderr)

			logger := func(session, prompt string, duration time.Duration, runErr error) {
				e := historyEntry("agent", prompt, time.Now().Add(-duration), 0, runErr)
				e.SessionID = session
				recordHistory(e)
			}

			repl := agent.NewREPL(loop, os.Stdin, os.Stdout, cfg.Provider, cfg.Model, logger)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if query != "" {
				return repl.RunOnce(ctx, query)
			}
			return repl.Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Ask one question and exit")
	cmd.Flags().StringVar(&provider, "provider", "", "Model provider: ollama or azure")
	cmd.Flags().StringVar(&model, "model", "", "Model name (azure: deployment name)")
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "Provider endpoint URL")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print tool calls to stderr")

	return cmd
}
