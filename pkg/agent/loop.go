package agent

import (
	"context"
	"fmt"
	"io"

	"github.com/mscrnt/wmiq/pkg/llm"
)

// Chatter is the slice of the model client the loop needs.
type Chatter interface {
	Chat(ctx context.Context, messages []llm.Message, tools []llm.ToolDefinition) (*llm.ChatResponse, error)
}

// Loop drives one conversation turn: ask the model, run the tools it
// requests, feed results back, and stop when it answers in plain text.
type Loop struct {
	chat          Chatter
	registry      *Registry
	maxIterations int
	verbose       bool
	debugOut      io.Writer
}

// NewLoop creates a loop bounded by maxIterations model calls per turn.
func NewLoop(chat Chatter, registry *Registry, maxIterations int, verbose bool, debugOut io.Writer) *Loop {
	if maxIterations <= 0 {
		maxIterations = llm.DefaultMaxIterations
	}
	return &Loop{
		chat:          chat,
		registry:      registry,
		maxIterations: maxIterations,
		verbose:       verbose,
		debugOut:      debugOut,
	}
}

// Run appends the user input to the history and works the conversation to
// a final answer. It returns the answer and the grown history. On a model
// error the original history comes back unchanged.
func (l *Loop) Run(ctx context.Context, history []llm.Message, userInput string) (string, []llm.Message, error) {
	messages := append(append([]llm.Message{}, history...), llm.UserMessage(userInput))
	defs := l.registry.Definitions()

	for i := 0; i < l.maxIterations; i++ {
		resp, err := l.chat.Chat(ctx, messages, defs)
		if err != nil {
			return "", history, err
		}

		msg := resp.Choices[0].Message
		messages = append(messages, msg)

		if len(msg.ToolCalls) == 0 {
			return msg.Content, messages, nil
		}

		for _, call := range msg.ToolCalls {
			if l.verbose && l.debugOut != nil {
				fmt.Fprintf(l.debugOut, "[tool] %s(%s)\n", call.Function.Name, call.Function.Arguments)
			}
			result := l.registry.Execute(ctx, call.Function.Name, call.Function.Arguments)
			messages = append(messages, llm.ToolResult(call.ID, result))
		}
	}

	return "", messages, fmt.Errorf("no final answer after %d tool iterations", l.maxIterations)
}
