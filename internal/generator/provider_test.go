package generator

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// stubProvider returns fixed content or a fixed error
type stubProvider struct {
	name    string
	content string
	err     error
	calls   int
}

func (p *stubProvider) Name() string { return p.name }

func (p *stubProvider) Generate(_ context.Context, _ Params) (string, error) {
	p.calls++
	if p.err != nil {
		return "", p.err
	}
	return p.content, nil
}

func TestChainFirstProviderWins(t *testing.T) {
	first := &stubProvider{name: "first", content: "from first"}
	second := &stubProvider{name: "second", content: "from second"}
	chain := NewChain(first, second)

	content, provider, err := chain.Generate(context.Background(), Params{Topic: "ai"})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if content != "from first" || provider != "first" {
		t.Errorf("Expected first provider to win, got %q from %q", content, provider)
	}
	if second.calls != 0 {
		t.Error("Second provider should not be called when the first succeeds")
	}
}

func TestChainFallsThroughOnFailure(t *testing.T) {
	first := &stubProvider{name: "first", err: errors.New("rate limited")}
	second := &stubProvider{name: "second", content: "from second"}
	chain := NewChain(first, second)

	content, provider, err := chain.Generate(context.Background(), Params{Topic: "ai"})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if content != "from second" || provider != "second" {
		t.Errorf("Expected fallback to second provider, got %q from %q", content, provider)
	}
}

func TestChainAllFailed(t *testing.T) {
	chain := NewChain(
		&stubProvider{name: "first", err: errors.New("down")},
		&stubProvider{name: "second", err: errors.New("also down")},
	)

	_, _, err := chain.Generate(context.Background(), Params{Topic: "ai"})
	if !errors.Is(err, ErrAllProvidersFailed) {
		t.Errorf("Expected ErrAllProvidersFailed, got: %v", err)
	}
}

func TestMockDeterministic(t *testing.T) {
	mock := NewMock()
	params := Params{Topic: "AI in SaaS", Tone: "founder", Length: "medium"}

	first, err := mock.Generate(context.Background(), params)
	if err != nil {
		t.Fatalf("Mock must never fail, got: %v", err)
	}
	second, _ := mock.Generate(context.Background(), params)
	if first != second {
		t.Error("Mock output must be deterministic for identical params")
	}

	if !strings.Contains(first, "AI in SaaS") {
		t.Error("Mock content should mention the topic")
	}
	if !strings.Contains(first, "?") {
		t.Error("Mock content should include a question")
	}
}

func TestMockEmptyTopic(t *testing.T) {
	content, err := NewMock().Generate(context.Background(), Params{})
	if err != nil {
		t.Fatalf("Mock must never fail, got: %v", err)
	}
	if strings.TrimSpace(content) == "" {
		t.Error("Mock must produce content even for empty params")
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := buildPrompt(Params{
		Topic:        "AI in SaaS",
		Tone:         "founder",
		Length:       "short",
		Audience:     "startup founders",
		CallToAction: "comment below",
	})

	for _, fragment := range []string{"AI in SaaS", "founder", "under 100 words", "startup founders", "comment below"} {
		if !strings.Contains(prompt, fragment) {
			t.Errorf("Prompt should contain %q, got: %s", fragment, prompt)
		}
	}
}
