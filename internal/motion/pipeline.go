// Package motion generates municipal motion documents through a staged
// LLM pipeline: suggest a direction, draft the motion, then rework the
// draft around the fetched statistics.
package motion

import (
	"context"
	"fmt"
	"strings"

	"github.com/hazzler78/sd-motion-generator/internal/llm"
	"github.com/hazzler78/sd-motion-generator/internal/logger"
	"github.com/hazzler78/sd-motion-generator/internal/metrics"
	"github.com/hazzler78/sd-motion-generator/internal/statistics"
)

const defaultTemperature = 0.7

// Options configures the pipeline.
type Options struct {
	Provider    llm.Provider
	MaxRetries  int     // attempts per LLM call, default 3
	Temperature float64 // default 0.7
}

// Pipeline runs the three generation stages against a single provider.
type Pipeline struct {
	provider    llm.Provider
	maxRetries  int
	temperature float64
}

// NewPipeline creates a motion pipeline.
func NewPipeline(opts Options) (*Pipeline, error) {
	if opts.Provider == nil {
		return nil, fmt.Errorf("motion pipeline requires a provider")
	}
	maxRetries := opts.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}
	temperature := opts.Temperature
	if temperature == 0 {
		temperature = defaultTemperature
	}
	return &Pipeline{
		provider:    opts.Provider,
		maxRetries:  maxRetries,
		temperature: temperature,
	}, nil
}

// Result is a generated motion plus the statistics that informed it.
type Result struct {
	Motion     string                 `json:"motion"`
	Model      string                 `json:"model"`
	Statistics []statistics.Statistic `json:"statistics,omitempty"`
}

// Generate runs the full pipeline for a topic. Only statistics that
// actually resolved are woven into the improvement stage; an empty list
// returns the draft as-is.
func (p *Pipeline) Generate(ctx context.Context, topic string, stats []statistics.Statistic) (Result, error) {
	suggestion, err := p.suggest(ctx, topic)
	if err != nil {
		return Result{}, fmt.Errorf("suggestion stage: %w", err)
	}

	draft, err := p.draft(ctx, suggestion)
	if err != nil {
		return Result{}, fmt.Errorf("draft stage: %w", err)
	}

	available := make([]statistics.Statistic, 0, len(stats))
	for _, stat := range stats {
		if stat.Available {
			available = append(available, stat)
		}
	}

	motion, err := p.improve(ctx, draft, available)
	if err != nil {
		return Result{}, fmt.Errorf("improvement stage: %w", err)
	}

	metrics.MotionsGenerated.Inc()
	return Result{
		Motion:     motion,
		Model:      p.provider.Name(),
		Statistics: available,
	}, nil
}

func (p *Pipeline) suggest(ctx context.Context, topic string) (string, error) {
	return p.complete(ctx, suggestionRole, topic)
}

func (p *Pipeline) draft(ctx context.Context, suggestion string) (string, error) {
	return p.complete(ctx, draftRole, suggestion)
}

func (p *Pipeline) improve(ctx context.Context, draft string, stats []statistics.Statistic) (string, error) {
	if len(stats) == 0 {
		return draft, nil
	}

	var summary strings.Builder
	summary.WriteString("\n\nStatistiskt underlag och ekonomisk analys:\n")
	for _, stat := range stats {
		summary.WriteString("\n• " + stat.Text)
		if stat.Trend != "" {
			summary.WriteString("\n  Trend: " + stat.Trend)
			summary.WriteString("\n  Implikationer för förslaget: [Analysera hur trenden påverkar motionens genomförbarhet]")
		}
	}

	prompt := fmt.Sprintf("Motion:\n%s\n\nStatistik och ekonomisk analys:%s", draft, summary.String())
	return p.complete(ctx, improveRole, prompt)
}

// Probe sends a minimal request to verify the provider responds.
func (p *Pipeline) Probe(ctx context.Context) error {
	_, err := p.complete(ctx, healthProbeRole, "test")
	return err
}

// complete sends one system+user exchange, retrying transient failures.
func (p *Pipeline) complete(ctx context.Context, role, prompt string) (string, error) {
	req := llm.CompletionRequest{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: role},
			{Role: llm.RoleUser, Content: prompt},
		},
		Temperature: p.temperature,
	}

	var lastErr error
	for attempt := 1; attempt <= p.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		resp, err := p.provider.Complete(ctx, req)
		if err == nil && resp.Content != "" {
			metrics.LLMCalls.WithLabelValues(p.provider.Name(), "ok").Inc()
			return resp.Content, nil
		}
		if err == nil {
			err = fmt.Errorf("empty completion")
		}
		metrics.LLMCalls.WithLabelValues(p.provider.Name(), "error").Inc()
		logger.Warn("LLM call failed",
			"provider", p.provider.Name(), "attempt", attempt, "error", err)
		lastErr = err
	}

	return "", fmt.Errorf("all %d attempts failed: %w", p.maxRetries, lastErr)
}
