package motion

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hazzler78/sd-motion-generator/internal/llm"
	"github.com/hazzler78/sd-motion-generator/internal/statistics"
)

// fakeProvider replays scripted responses and records every request.
type fakeProvider struct {
	responses []string
	errs      []error
	requests  []llm.CompletionRequest
}

func (f *fakeProvider) Complete(ctx context.Context, req llm.CompletionRequest) (llm.CompletionResponse, error) {
	i := len(f.requests)
	f.requests = append(f.requests, req)
	if i < len(f.errs) && f.errs[i] != nil {
		return llm.CompletionResponse{}, f.errs[i]
	}
	content := "svar"
	if i < len(f.responses) {
		content = f.responses[i]
	}
	return llm.CompletionResponse{Content: content, FinishReason: "stop"}, nil
}

func (f *fakeProvider) Name() string { return "fake" }

func newTestPipeline(t *testing.T, provider llm.Provider) *Pipeline {
	t.Helper()
	p, err := NewPipeline(Options{Provider: provider})
	if err != nil {
		t.Fatalf("NewPipeline() error = %v", err)
	}
	return p
}

func TestPipeline_Generate_ThreeStages(t *testing.T) {
	provider := &fakeProvider{responses: []string{"förslag", "utkast", "färdig motion"}}
	p := newTestPipeline(t, provider)

	stats := []statistics.Statistic{
		{Type: statistics.TypeBefolkning, Text: "Karlstad har 95 000 invånare (2024)", Available: true},
	}

	result, err := p.Generate(context.Background(), "trygghet", stats)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if result.Motion != "färdig motion" {
		t.Errorf("Motion = %q, want output of the final stage", result.Motion)
	}
	if len(provider.requests) != 3 {
		t.Fatalf("provider called %d times, want 3", len(provider.requests))
	}

	// Stage 1 receives the raw topic, stage 2 the suggestion, stage 3 the
	// draft plus the statistics summary.
	if provider.requests[0].Messages[1].Content != "trygghet" {
		t.Errorf("stage 1 prompt = %q", provider.requests[0].Messages[1].Content)
	}
	if provider.requests[1].Messages[1].Content != "förslag" {
		t.Errorf("stage 2 prompt = %q", provider.requests[1].Messages[1].Content)
	}
	final := provider.requests[2].Messages[1].Content
	if !strings.Contains(final, "utkast") || !strings.Contains(final, "95 000 invånare") {
		t.Errorf("stage 3 prompt missing draft or statistics: %q", final)
	}
}

func TestPipeline_Generate_NoStatisticsSkipsImprovement(t *testing.T) {
	provider := &fakeProvider{responses: []string{"förslag", "utkast"}}
	p := newTestPipeline(t, provider)

	result, err := p.Generate(context.Background(), "trygghet", nil)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if result.Motion != "utkast" {
		t.Errorf("Motion = %q, want the draft unchanged", result.Motion)
	}
	if len(provider.requests) != 2 {
		t.Errorf("provider called %d times, want 2", len(provider.requests))
	}
}

func TestPipeline_Generate_UnavailableStatisticsFiltered(t *testing.T) {
	provider := &fakeProvider{responses: []string{"förslag", "utkast"}}
	p := newTestPipeline(t, provider)

	stats := []statistics.Statistic{
		{Type: statistics.TypeBefolkning, Text: "inte tillgänglig", Available: false},
	}

	result, err := p.Generate(context.Background(), "trygghet", stats)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if len(result.Statistics) != 0 {
		t.Errorf("Statistics = %d entries, want 0", len(result.Statistics))
	}
	if len(provider.requests) != 2 {
		t.Errorf("provider called %d times, want 2 (improvement skipped)", len(provider.requests))
	}
}

func TestPipeline_Generate_TrendIncludedInSummary(t *testing.T) {
	provider := &fakeProvider{responses: []string{"förslag", "utkast", "motion"}}
	p := newTestPipeline(t, provider)

	stats := []statistics.Statistic{
		{
			Type:      statistics.TypeBefolkning,
			Text:      "Karlstad har 95 000 invånare (2024)",
			Trend:     "Befolkningsutveckling: 94 000 → 95 000",
			Available: true,
		},
	}

	if _, err := p.Generate(context.Background(), "trygghet", stats); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	final := provider.requests[2].Messages[1].Content
	if !strings.Contains(final, "Trend: Befolkningsutveckling") {
		t.Errorf("trend missing from improvement prompt: %q", final)
	}
}

func TestPipeline_Complete_RetriesThenSucceeds(t *testing.T) {
	provider := &fakeProvider{
		errs:      []error{errors.New("rate limited"), nil},
		responses: []string{"", "förslag", "utkast"},
	}
	p := newTestPipeline(t, provider)

	result, err := p.Generate(context.Background(), "trygghet", nil)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if result.Motion != "utkast" {
		t.Errorf("Motion = %q", result.Motion)
	}
}

func TestPipeline_Complete_AllAttemptsFail(t *testing.T) {
	boom := errors.New("unavailable")
	provider := &fakeProvider{errs: []error{boom, boom, boom}}
	p := newTestPipeline(t, provider)

	_, err := p.Generate(context.Background(), "trygghet", nil)
	if err == nil {
		t.Fatal("expected error after exhausted retries")
	}
	if !errors.Is(err, boom) {
		t.Errorf("error chain lost the cause: %v", err)
	}
	if len(provider.requests) != 3 {
		t.Errorf("provider called %d times, want 3", len(provider.requests))
	}
}

func TestPipeline_Probe(t *testing.T) {
	provider := &fakeProvider{responses: []string{"OK"}}
	p := newTestPipeline(t, provider)

	if err := p.Probe(context.Background()); err != nil {
		t.Errorf("Probe() error = %v", err)
	}
	if len(provider.requests) != 1 {
		t.Fatalf("provider called %d times, want 1", len(provider.requests))
	}
	if provider.requests[0].Messages[0].Role != llm.RoleSystem {
		t.Errorf("probe first message role = %q, want system", provider.requests[0].Messages[0].Role)
	}
}

func TestNewPipeline_RequiresProvider(t *testing.T) {
	if _, err := NewPipeline(Options{}); err == nil {
		t.Error("expected error without a provider")
	}
}
