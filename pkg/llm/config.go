package llm

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Supported providers.
const (
	ProviderOllama = "ollama"
	ProviderAzure  = "azure"
)

// DefaultMaxIterations caps the agent loop; each iteration is one model
// call.
const DefaultMaxIterations = 10

// Config contains the model provider configuration
type Config struct {
	Provider      string `toml:"provider"`       // "ollama" or "azure"
	Model         string `toml:"model"`          // Model name (ollama)
	Endpoint      string `toml:"endpoint"`       // API base URL
	APIKey        string `toml:"api_key"`        // API key; Ollama accepts a dummy value
	Deployment    string `toml:"deployment"`     // Deployment name (azure)
	APIVersion    string `toml:"api_version"`    // API version (azure)
	MaxIterations int    `toml:"max_iterations"` // Agent loop bound
	Verbose       bool   `toml:"verbose"`        // Log tool calls to stderr
}

// DefaultConfigPath returns the TOML config location, next to the history
// database.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".wmiq", "agent.toml")
	}
	return filepath.Join(home, ".wmiq", "agent.toml")
}

// LoadConfig builds the provider configuration. Explicit provider, model,
// and endpoint values win over environment variables, which win over the
// TOML file, which wins over defaults. For the azure provider the model
// value names the deployment.
//
// Environment variables:
//
//	AGENT_PROVIDER            "ollama" or "azure" (default "ollama")
//	OLLAMA_MODEL              model name (default "gpt-oss:120b")
//	OLLAMA_ENDPOINT           endpoint (default "http://localhost:11434/v1")
//	AZURE_OPENAI_ENDPOINT     required for azure
//	AZURE_OPENAI_DEPLOYMENT   required for azure
//	AZURE_OPENAI_API_KEY      required for azure
//	AZURE_OPENAI_API_VERSION  default "2024-08-01-preview"
func LoadConfig(path, provider, model, endpoint string) (*Config, error) {
	cfg := &Config{MaxIterations: DefaultMaxIterations}

	if path == "" {
		path = DefaultConfigPath()
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = DefaultMaxIterations
	}

	cfg.Provider = pick(provider, os.Getenv("AGENT_PROVIDER"), cfg.Provider, ProviderOllama)

	switch cfg.Provider {
	case ProviderOllama:
		cfg.Model = pick(model, os.Getenv("OLLAMA_MODEL"), cfg.Model, "gpt-oss:120b")
		cfg.Endpoint = pick(endpoint, os.Getenv("OLLAMA_ENDPOINT"), cfg.Endpoint, "http://localhost:11434/v1")
		// Ollama does not validate keys, but the protocol requires one.
		cfg.APIKey = pick(cfg.APIKey, "ollama")
	case ProviderAzure:
		cfg.Deployment = pick(model, os.Getenv("AZURE_OPENAI_DEPLOYMENT"), cfg.Deployment)
		cfg.Endpoint = pick(endpoint, os.Getenv("AZURE_OPENAI_ENDPOINT"), cfg.Endpoint)
		cfg.APIKey = pick(os.Getenv("AZURE_OPENAI_API_KEY"), cfg.APIKey)
		cfg.APIVersion = pick(os.Getenv("AZURE_OPENAI_API_VERSION"), cfg.APIVersion, "2024-08-01-preview")
		cfg.Model = cfg.Deployment
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderOllama:
		if c.Model == "" {
			return fmt.Errorf("model is required")
		}
		if c.Endpoint == "" {
			return fmt.Errorf("endpoint is required")
		}
	case ProviderAzure:
		if c.Endpoint == "" {
			return fmt.Errorf("for the azure provider, AZURE_OPENAI_ENDPOINT is required")
		}
		if c.Deployment == "" {
			return fmt.Errorf("for the azure provider, AZURE_OPENAI_DEPLOYMENT is required")
		}
		if c.APIKey == "" {
			return fmt.Errorf("for the azure provider, AZURE_OPENAI_API_KEY is required")
		}
	default:
		return fmt.Errorf("unsupported provider: %q (use %q or %q)", c.Provider, ProviderOllama, ProviderAzure)
	}

	if c.MaxIterations <= 0 {
		return fmt.Errorf("max iterations must be positive")
	}

	return nil
}

// pick returns the first non-empty value.
func pick(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
