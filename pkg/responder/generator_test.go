package responder

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ai-debtchat-be/pkg/intent"
	"ai-debtchat-be/pkg/language"
	"ai-debtchat-be/pkg/llm"
)

type stubProvider struct {
	name  string
	reply string
	err   error
	calls int
}

func (s *stubProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	s.calls++
	return s.reply, s.err
}

func (s *stubProvider) Name() string { return s.name }

func subject() SubjectContext {
	return SubjectContext{
		Name:          "Ramesh Kumar",
		AccountNumber: "LN-2044",
		Outstanding:   36000,
		DueDate:       "2026-09-15",
		Status:        "overdue",
	}
}

func TestGenerateFallbackWhenNoBackends(t *testing.T) {
	g := NewGenerator(nil, 0, nil)

	res := g.Generate(context.Background(), Input{
		Message:  "hello",
		Subject:  subject(),
		Language: language.TagEnglish,
	})

	if res.Content == "" {
		t.Fatal("fallback content is empty")
	}
	if res.Confidence != ConfidenceFallback {
		t.Errorf("Confidence = %v, want %v", res.Confidence, ConfidenceFallback)
	}
	if res.Backend != "fallback" {
		t.Errorf("Backend = %q, want fallback", res.Backend)
	}
	if !strings.Contains(res.Content, "Ramesh Kumar") {
		t.Errorf("greeting should address the debtor, got %q", res.Content)
	}
}

func TestGenerateBackendPriorityOrder(t *testing.T) {
	first := &stubProvider{name: "xai", err: errors.New("timeout")}
	second := &stubProvider{name: "groq", reply: "We can arrange an EMI plan."}

	g := NewGenerator([]llm.Provider{first, second}, 0, nil)
	res := g.Generate(context.Background(), Input{
		Message:  "I need help",
		Subject:  subject(),
		Language: language.TagEnglish,
	})

	if first.calls != 1 {
		t.Errorf("first backend calls = %d, want 1", first.calls)
	}
	if res.Backend != "groq" {
		t.Errorf("Backend = %q, want groq", res.Backend)
	}
	if res.Content != "We can arrange an EMI plan." {
		t.Errorf("Content = %q", res.Content)
	}
	if res.Confidence != ConfidenceBackend {
		t.Errorf("Confidence = %v, want %v", res.Confidence, ConfidenceBackend)
	}
}

func TestGenerateEmptyBackendReplySkipped(t *testing.T) {
	empty := &stubProvider{name: "xai", reply: "   "}

	g := NewGenerator([]llm.Provider{empty}, 0, nil)
	res := g.Generate(context.Background(), Input{
		Message:  "what are my options",
		Subject:  subject(),
		Language: language.TagHinglish,
	})

	if res.Backend != "fallback" {
		t.Errorf("Backend = %q, want fallback after empty reply", res.Backend)
	}
	if res.Content == "" {
		t.Error("fallback content empty")
	}
}

func TestGenerateHindiEMIRequest(t *testing.T) {
	g := NewGenerator(nil, 0, nil)

	res := g.Generate(context.Background(), Input{
		Message:  "मुझे EMI चाहिए",
		Subject:  subject(),
		Language: language.TagHindi,
	})

	if res.Intent != intent.EMIRequest {
		t.Errorf("Intent = %s, want emi_request", res.Intent)
	}

	hasEMIAction := false
	for _, a := range res.SuggestedActions {
		if strings.Contains(a, "emi") {
			hasEMIAction = true
		}
	}
	if !hasEMIAction {
		t.Errorf("SuggestedActions = %v, want an EMI action", res.SuggestedActions)
	}

	// 36000 across 3/6/12 months.
	for _, want := range []string{"12,000.00", "6,000.00", "3,000.00"} {
		if !strings.Contains(res.Content, want) {
			t.Errorf("fallback EMI content missing %q: %q", want, res.Content)
		}
	}
}

func TestBuildContextWindow(t *testing.T) {
	g := NewGenerator(nil, 0, nil)

	var history []HistoryEntry
	for i := 0; i < 25; i++ {
		history = append(history, HistoryEntry{Sender: "user", Content: "older"})
	}
	history = append(history, HistoryEntry{Sender: "bot", Content: "newest"})

	msgs := g.buildContext(Input{
		Message:  "current",
		Subject:  subject(),
		History:  history,
		Language: language.TagEnglish,
	})

	// system + 10 history + current
	if len(msgs) != historyWindow+2 {
		t.Fatalf("context length = %d, want %d", len(msgs), historyWindow+2)
	}
	if msgs[0].Role != llm.RoleSystem {
		t.Errorf("first message role = %s, want system", msgs[0].Role)
	}
	if msgs[len(msgs)-2].Content != "newest" || msgs[len(msgs)-2].Role != llm.RoleAssistant {
		t.Errorf("last history entry = %+v, want newest assistant turn", msgs[len(msgs)-2])
	}
	if msgs[len(msgs)-1].Content != "current" {
		t.Errorf("final message = %+v, want current user message", msgs[len(msgs)-1])
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{36000, "36,000.00"},
		{1234567.5, "1,234,567.50"},
		{999, "999.00"},
		{0, "0.00"},
	}
	for _, tt := range tests {
		if got := FormatAmount(tt.in); got != tt.want {
			t.Errorf("FormatAmount(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
