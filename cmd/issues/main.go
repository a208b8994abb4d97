package main

import (
	"context"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"IssueStore/internal/config"
	"IssueStore/internal/issues"
	"IssueStore/pkg/kit"
)

func main() {
	service := "issues"

	cfg, err := config.Load(os.Getenv("ISSUES_CONFIG"))
	if err != nil {
		log := kit.NewLogger(service, "")
		log.Fatal("load config failed", zap.Error(err))
	}

	log := kit.NewLogger(service, cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	ctx := context.Background()
	store := issues.NewMemStore()

	if cfg.SeedFile != "" {
		seed, err := issues.LoadSeed(cfg.SeedFile)
		if err != nil {
			log.Fatal("load seed failed", zap.Error(err), zap.String("path", cfg.SeedFile))
		}
		res, err := issues.ApplySeed(ctx, store, seed)
		if err != nil {
			log.Fatal("apply seed failed", zap.Error(err), zap.String("path", cfg.SeedFile))
		}
		log.Info("registry seeded",
			zap.String("path", cfg.SeedFile),
			zap.Int("issues", res.Issues),
			zap.Int("articles", res.Articles),
			zap.Int("duplicates", res.Duplicates),
		)
	}

	s := &issues.Server{Store: store, Log: log}

	reg := prometheus.NewRegistry()
	h := issues.NewHandler(s, issues.HTTPDeps{
		Log:              log,
		Service:          service,
		Registry:         reg,
		MetricsEnabled:   cfg.MetricsEnabled,
		MetricsToken:     cfg.MetricsToken,
		Tokens:           kit.NewTokenMaker(cfg.LoaderSecret),
		WriteLimitPerMin: cfg.WriteLimitPerMin,
	})

	if err := kit.RunHTTPServer(ctx, ":"+cfg.Port, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}
