package commands

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/hazzler78/sd-motion-generator/internal/bra"
	"github.com/hazzler78/sd-motion-generator/internal/config"
	"github.com/hazzler78/sd-motion-generator/internal/fetch"
	"github.com/hazzler78/sd-motion-generator/internal/kolada"
	"github.com/hazzler78/sd-motion-generator/internal/llm"
	"github.com/hazzler78/sd-motion-generator/internal/logger"
	"github.com/hazzler78/sd-motion-generator/internal/motion"
	"github.com/hazzler78/sd-motion-generator/internal/statistics"
)

// app bundles the wired components shared by the serve, stats and motion
// commands.
type app struct {
	cfg        *config.Config
	kolada     *kolada.Client
	statistics *statistics.Service
	pipeline   *motion.Pipeline
	fetcher    fetch.Fetcher
}

// newApp loads configuration and wires every component. withLLM skips the
// provider setup for commands that never generate text.
func newApp(withLLM bool) (*app, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}

	logger.Init(logger.Options{Debug: cfg.Debug, Quiet: cfg.Quiet})

	registry := statistics.NewRegistry()
	if cfg.KPIOverrides != "" {
		if err := registry.LoadOverrides(cfg.KPIOverrides); err != nil {
			return nil, err
		}
	}

	koladaClient := kolada.NewClient(kolada.Config{
		BaseURL:           cfg.Kolada.BaseURL,
		Timeout:           cfg.Kolada.Timeout,
		RequestsPerSecond: cfg.Kolada.RequestsPerSecond,
	})
	resolver := kolada.NewResolver(koladaClient)

	fetchCfg := fetch.Config{
		UserAgent:         cfg.Scraper.UserAgent,
		Timeout:           cfg.Scraper.Timeout,
		RequestsPerSecond: cfg.Scraper.RequestsPerSecond,
	}
	var fetcher fetch.Fetcher
	switch cfg.Scraper.Mode {
	case "dynamic":
		fetcher, err = fetch.NewDynamicFetcher(fetchCfg)
		if err != nil {
			return nil, fmt.Errorf("creating dynamic fetcher: %w", err)
		}
	default:
		fetcher = fetch.NewStaticFetcher(fetchCfg)
	}

	scraper := bra.NewScraper(fetcher, cfg.Scraper.PageURL)
	statsService := statistics.NewService(registry, resolver, scraper, cfg.Kolada.MaxFallbackYears)

	a := &app{
		cfg:        cfg,
		kolada:     koladaClient,
		statistics: statsService,
		fetcher:    fetcher,
	}

	if withLLM {
		providerName := cfg.LLM.Provider
		apiKey := cfg.LLM.APIKey
		if apiKey == "" {
			detected, key := llm.DetectProvider()
			if detected != "" {
				providerName, apiKey = detected, key
			}
		}

		provider, err := llm.NewProvider(providerName, llm.ProviderConfig{
			APIKey:     apiKey,
			BaseURL:    cfg.LLM.BaseURL,
			Model:      cfg.LLM.Model,
			MaxRetries: cfg.LLM.MaxRetries,
			Timeout:    cfg.LLM.Timeout,
		})
		if err != nil {
			return nil, err
		}

		a.pipeline, err = motion.NewPipeline(motion.Options{
			Provider:    provider,
			MaxRetries:  cfg.LLM.MaxRetries,
			Temperature: cfg.LLM.Temperature,
		})
		if err != nil {
			return nil, err
		}
	}

	return a, nil
}

// Close releases the fetcher resources.
func (a *app) Close() error {
	if a.fetcher != nil {
		return a.fetcher.Close()
	}
	return nil
}
