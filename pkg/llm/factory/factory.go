package factory

import (
	"time"

	"ai-debtchat-be/pkg/llm"
	"ai-debtchat-be/pkg/llm/openaicompat"
)

const (
	xaiBaseURL  = "https://api.x.ai/v1"
	groqBaseURL = "https://api.groq.com/openai/v1"

	defaultXAIModel  = "grok-3"
	defaultGroqModel = "llama-3.1-70b-versatile"
)

// Config carries the backend credentials. An empty key disables that backend.
type Config struct {
	XAIAPIKey  string
	XAIModel   string
	GroqAPIKey string
	GroqModel  string
	Timeout    time.Duration
}

// NewProviderChain builds the ordered list of generative backends: xAI first,
// then Groq. Backends without credentials are skipped, so the chain may be
// empty, in which case callers fall back to templated responses.
func NewProviderChain(cfg Config) []llm.Provider {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	var chain []llm.Provider

	if cfg.XAIAPIKey != "" {
		model := cfg.XAIModel
		if model == "" {
			model = defaultXAIModel
		}
		chain = append(chain, openaicompat.New(xaiBaseURL, cfg.XAIAPIKey, model, "xai", timeout))
	}

	if cfg.GroqAPIKey != "" {
		model := cfg.GroqModel
		if model == "" {
			model = defaultGroqModel
		}
		chain = append(chain, openaicompat.New(groqBaseURL, cfg.GroqAPIKey, model, "groq", timeout))
	}

	return chain
}
