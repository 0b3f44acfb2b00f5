package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mscrnt/wmiq/pkg/llm"
)

// PromptLogger records an executed prompt. A nil logger disables history.
type PromptLogger func(session, prompt string, duration time.Duration, runErr error)

// REPL is the interactive chat over a loop. The conversation keeps its
// context between turns; /clear resets it.
type REPL struct {
	loop     *Loop
	in       io.Reader
	out      io.Writer
	logger   PromptLogger
	provider string
	model    string

	session  string
	messages []llm.Message
}

// NewREPL builds the interactive chat. Each REPL gets a fresh session id
// and starts from the system prompt.
func NewREPL(loop *Loop, in io.Reader, out io.Writer, provider, model string, logger PromptLogger) *REPL {
	return &REPL{
		loop:     loop,
		in:       in,
		out:      out,
		logger:   logger,
		provider: provider,
		model:    model,
		session:  uuid.New().String(),
		messages: []llm.Message{llm.SystemMessage(SystemPrompt)},
	}
}

// Session returns the conversation's session id.
func (r *REPL) Session() string {
	return r.session
}

// Run drives the interactive chat until /exit, /quit, or EOF.
func (r *REPL) Run(ctx context.Context) error {
	fmt.Fprintf(r.out, "Initializing WMI agent...\n")
	fmt.Fprintf(r.out, "  Provider: %s\n", r.provider)
	fmt.Fprintf(r.out, "  Model: %s\n\n", r.model)
	r.printHelp()

	scanner := bufio.NewScanner(r.in)
	for {
		fmt.Fprint(r.out, "You: ")
		if !scanner.Scan() {
			fmt.Fprintln(r.out, "\nExiting...")
			return scanner.Err()
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			switch strings.ToLower(input) {
			case "/exit", "/quit":
				fmt.Fprintln(r.out, "Goodbye!")
				return nil
			case "/help":
				r.printHelp()
			case "/clear":
				r.messages = []llm.Message{llm.SystemMessage(SystemPrompt)}
				fmt.Fprintln(r.out, "Conversation cleared.")
			default:
				fmt.Fprintf(r.out, "Unknown command: %s\n", input)
				fmt.Fprintln(r.out, "Type /help for available commands")
			}
			continue
		}

		r.ask(ctx, input)
	}
}

// RunOnce answers a single query and returns.
func (r *REPL) RunOnce(ctx context.Context, query string) error {
	fmt.Fprintf(r.out, "Query: %s\n\n", query)

	start := time.Now()
	answer, messages, err := r.loop.Run(ctx, r.messages, query)
	r.log(query, time.Since(start), err)
	if err != nil {
		return err
	}
	r.messages = messages

	fmt.Fprintf(r.out, "Agent: %s\n", answer)
	return nil
}

func (r *REPL) ask(ctx context.Context, input string) {
	start := time.Now()
	answer, messages, err := r.loop.Run(ctx, r.messages, input)
	r.log(input, time.Since(start), err)
	if err != nil {
		fmt.Fprintf(r.out, "\nError: %v\n\n", err)
		return
	}
	r.messages = messages
	fmt.Fprintf(r.out, "\nAgent: %s\n\n", answer)
}

func (r *REPL) log(prompt string, duration time.Duration, runErr error) {
	if r.logger != nil {
		r.logger(r.session, prompt, duration, runErr)
	}
}

func (r *REPL) printHelp() {
	line := strings.Repeat("=", 60)
	fmt.Fprintln(r.out, line)
	fmt.Fprintln(r.out, "WMI Agent - Natural Language Windows Management")
	fmt.Fprintln(r.out, line)
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, "Available Commands:")
	fmt.Fprintln(r.out, "  /help    - Show this help message")
	fmt.Fprintln(r.out, "  /exit    - Exit the chat")
	fmt.Fprintln(r.out, "  /quit    - Exit the chat")
	fmt.Fprintln(r.out, "  /clear   - Clear the conversation")
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, "Example Queries:")
	fmt.Fprintln(r.out, "  - What's my current memory usage?")
	fmt.Fprintln(r.out, "  - Show me running services")
	fmt.Fprintln(r.out, "  - What's the CPU usage?")
	fmt.Fprintln(r.out, "  - List disk drives and their space")
	fmt.Fprintln(r.out, "  - Show network adapter configuration")
	fmt.Fprintln(r.out, "  - What processes are using the most memory?")
	fmt.Fprintln(r.out, "  - Get system uptime")
	fmt.Fprintln(r.out, "  - Am I running as administrator?")
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, "Tip: You can ask questions in natural language!")
	fmt.Fprintln(r.out, line)
	fmt.Fprintln(r.out)
}
