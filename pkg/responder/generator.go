package responder

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ai-debtchat-be/internal/constant"
	"ai-debtchat-be/internal/pkg/logger"
	"ai-debtchat-be/pkg/intent"
	"ai-debtchat-be/pkg/language"
	"ai-debtchat-be/pkg/llm"
)

const (
	historyWindow = 10

	// Confidence only signals provenance, it is not a measured probability.
	ConfidenceBackend  = 0.9
	ConfidenceFallback = 0.5
)

// SubjectContext is the debtor/account snapshot the generator interpolates
// into the system instruction.
type SubjectContext struct {
	Name          string
	AccountNumber string
	Outstanding   float64
	DueDate       string
	Status        string
}

// HistoryEntry is one prior turn of the conversation, oldest first.
type HistoryEntry struct {
	Sender  string // "user", "bot", "agent"
	Content string
}

type Input struct {
	Message  string
	Subject  SubjectContext
	History  []HistoryEntry
	Language language.Tag
}

type Response struct {
	Content          string
	Language         language.Tag
	Intent           intent.Intent
	Entities         intent.Entities
	Confidence       float64
	SuggestedActions []string
	Backend          string // provider name, or "fallback"
}

// Generator produces replies by trying generative backends in priority order
// and degrading to deterministic templates when none are available.
type Generator struct {
	providers []llm.Provider
	timeout   time.Duration
	logger    logger.ILogger
}

func NewGenerator(providers []llm.Provider, timeout time.Duration, log logger.ILogger) *Generator {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Generator{
		providers: providers,
		timeout:   timeout,
		logger:    log,
	}
}

// Generate never returns an error: every failure path ends in the templated
// fallback for the requested language.
func (g *Generator) Generate(ctx context.Context, in Input) Response {
	detected := intent.Classify(in.Message)
	entities := intent.ExtractEntities(in.Message)

	content, backend := g.tryBackends(ctx, in)
	confidence := ConfidenceBackend
	if content == "" {
		content = FallbackContent(in.Message, in.Subject, in.Language)
		backend = "fallback"
		confidence = ConfidenceFallback
	}

	return Response{
		Content:          content,
		Language:         in.Language,
		Intent:           detected,
		Entities:         entities,
		Confidence:       confidence,
		SuggestedActions: intent.SuggestedActions(detected),
		Backend:          backend,
	}
}

func (g *Generator) tryBackends(ctx context.Context, in Input) (string, string) {
	if len(g.providers) == 0 {
		return "", ""
	}

	history := g.buildContext(in)

	for _, provider := range g.providers {
		callCtx, cancel := context.WithTimeout(ctx, g.timeout)
		reply, err := provider.Chat(callCtx, history)
		cancel()

		if err != nil {
			if g.logger != nil {
				g.logger.Warn("Responder", "Backend failed, trying next", map[string]interface{}{
					"backend": provider.Name(),
					"error":   err.Error(),
				})
			}
			continue
		}
		if strings.TrimSpace(reply) == "" {
			continue
		}
		return strings.TrimSpace(reply), provider.Name()
	}

	return "", ""
}

// buildContext assembles system instruction + last N history turns + the
// current message, chronological order.
func (g *Generator) buildContext(in Input) []llm.Message {
	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: systemInstruction(in.Language, in.Subject)},
	}

	history := in.History
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}
	for _, h := range history {
		role := llm.RoleAssistant
		if h.Sender == "user" {
			role = llm.RoleUser
		}
		messages = append(messages, llm.Message{Role: role, Content: h.Content})
	}

	return append(messages, llm.Message{Role: llm.RoleUser, Content: in.Message})
}

func systemInstruction(tag language.Tag, subject SubjectContext) string {
	var base string
	switch tag {
	case language.TagHindi, language.TagMarathi:
		base = constant.SystemPromptHindiV1
	case language.TagHinglish:
		base = constant.SystemPromptHinglishV1
	default:
		base = constant.SystemPromptEnglishV1
	}

	context := fmt.Sprintf(constant.SystemPromptContextV1,
		orDefault(subject.Name, "N/A"),
		orDefault(subject.AccountNumber, "N/A"),
		FormatAmount(subject.Outstanding),
		orDefault(subject.DueDate, "N/A"),
		orDefault(subject.Status, "N/A"),
	)

	return base + "\n" + context
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
