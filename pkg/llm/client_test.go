package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func ollamaTestConfig(endpoint string) *Config {
	return &Config{
		Provider:      ProviderOllama,
		Model:         "gpt-oss:120b",
		Endpoint:      endpoint,
		APIKey:        "ollama",
		MaxIterations: DefaultMaxIterations,
	}
}

func TestChatOllama(t *testing.T) {
	var gotPath, gotAuth string
	var gotReq ChatRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(ChatResponse{
			Choices: []Choice{{
				Message:      Message{Role: RoleAssistant, Content: "two services are running"},
				FinishReason: "stop",
			}},
			Usage: &Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
		})
	}))
	defer server.Close()

	client := NewClient(ollamaTestConfig(server.URL))
	resp, err := client.Chat(context.Background(),
		[]Message{SystemMessage("you are a test"), UserMessage("how many services run?")},
		[]ToolDefinition{{Type: "function", Function: ToolFunction{Name: "list_services"}}},
	)
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}

	if gotPath != "/chat/completions" {
		t.Errorf("request path = %q, want /chat/completions", gotPath)
	}
	if gotAuth != "Bearer ollama" {
		t.Errorf("Authorization = %q, want Bearer ollama", gotAuth)
	}
	if gotReq.Model != "gpt-oss:120b" {
		t.Errorf("request model = %q", gotReq.Model)
	}
	if len(gotReq.Messages) != 2 || len(gotReq.Tools) != 1 {
		t.Errorf("request carried %d messages and %d tools, want 2 and 1",
			len(gotReq.Messages), len(gotReq.Tools))
	}
	if resp.Choices[0].Message.Content != "two services are running" {
		t.Errorf("response content = %q", resp.Choices[0].Message.Content)
	}
}

func TestChatAzureURL(t *testing.T) {
	var gotPath, gotVersion, gotKey string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotVersion = r.URL.Query().Get("api-version")
		gotKey = r.Header.Get("api-key")
		_ = json.NewEncoder(w).Encode(ChatResponse{
			Choices: []Choice{{Message: Message{Role: RoleAssistant, Content: "ok"}}},
		})
	}))
	defer server.Close()

	client := NewClient(&Config{
		Provider:      ProviderAzure,
		Model:         "gpt-4o",
		Deployment:    "gpt-4o",
		Endpoint:      server.URL + "/",
		APIKey:        "secret",
		APIVersion:    "2024-08-01-preview",
		MaxIterations: DefaultMaxIterations,
	})

	if _, err := client.Chat(context.Background(), []Message{UserMessage("hi")}, nil); err != nil {
		t.Fatalf("Chat() error = %v", err)
	}

	if gotPath != "/openai/deployments/gpt-4o/chat/completions" {
		t.Errorf("request path = %q", gotPath)
	}
	if gotVersion != "2024-08-01-preview" {
		t.Errorf("api-version = %q", gotVersion)
	}
	if gotKey != "secret" {
		t.Errorf("api-key header = %q", gotKey)
	}
}

func TestChatToolCalls(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(ChatResponse{
			Choices: []Choice{{
				Message: Message{
					Role: RoleAssistant,
					ToolCalls: []ToolCall{{
						ID:   "call_1",
						Type: "function",
						Function: FunctionCall{
							Name:      "list_services",
							Arguments: `{"state":"Running"}`,
						},
					}},
				},
				FinishReason: "tool_calls",
			}},
		})
	}))
	defer server.Close()

	client := NewClient(ollamaTestConfig(server.URL))
	resp, err := client.Chat(context.Background(), []Message{UserMessage("list running services")}, nil)
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}

	calls := resp.Choices[0].Message.ToolCalls
	if len(calls) != 1 || calls[0].Function.Name != "list_services" {
		t.Fatalf("ToolCalls = %+v, want one list_services call", calls)
	}

	var args map[string]interface{}
	if err := json.Unmarshal([]byte(calls[0].Function.Arguments), &args); err != nil {
		t.Fatalf("arguments are not valid JSON: %v", err)
	}
	if args["state"] != "Running" {
		t.Errorf("arguments = %v, want state=Running", args)
	}
}

func TestChatHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(ollamaTestConfig(server.URL))
	_, err := client.Chat(context.Background(), []Message{UserMessage("hi")}, nil)
	if err == nil {
		t.Fatal("Chat() expected error on 404, got nil")
	}
	if !strings.Contains(err.Error(), "404") || !strings.Contains(err.Error(), "model not found") {
		t.Errorf("error = %v, want status and body in message", err)
	}
}

func TestChatAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(ChatResponse{
			Error: &APIError{Message: "context length exceeded", Type: "invalid_request_error"},
		})
	}))
	defer server.Close()

	client := NewClient(ollamaTestConfig(server.URL))
	_, err := client.Chat(context.Background(), []Message{UserMessage("hi")}, nil)
	if err == nil || !strings.Contains(err.Error(), "context length exceeded") {
		t.Errorf("Chat() error = %v, want the embedded API error", err)
	}
}

func TestChatNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(ChatResponse{})
	}))
	defer server.Close()

	client := NewClient(ollamaTestConfig(server.URL))
	if _, err := client.Chat(context.Background(), []Message{UserMessage("hi")}, nil); err == nil {
		t.Fatal("Chat() expected error on empty choices, got nil")
	}
}
