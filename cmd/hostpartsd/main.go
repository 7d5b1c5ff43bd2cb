package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/haukened/hostparts/internal/psl/common/clock"
	"github.com/haukened/hostparts/internal/psl/common/log"
	"github.com/haukened/hostparts/internal/psl/config"
	"github.com/haukened/hostparts/internal/psl/domain"
	"github.com/haukened/hostparts/internal/psl/gateways/httpapi"
	"github.com/haukened/hostparts/internal/psl/repos/partscache"
	"github.com/haukened/hostparts/internal/psl/repos/rules"
	"github.com/haukened/hostparts/internal/psl/repos/rules/bolt"
	"github.com/haukened/hostparts/internal/psl/services/parser"
)

const (
	version = "0.1.0-dev"
	appName = "hostpartsd"
)

// Application holds all the components of the lookup daemon.
type Application struct {
	config    *config.AppConfig
	transport *httpapi.Server
	service   *parser.Service
	holder    *rules.Holder
	cache     partscache.Cache
	clk       clock.Clock
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	if err := log.Configure(cfg.Env, cfg.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Logging configuration error: %v\n", err)
		os.Exit(1)
	}

	log.Info(map[string]any{
		"version":         version,
		"env":             cfg.Env,
		"log_level":       cfg.LogLevel,
		"port":            cfg.Port,
		"cache_size":      cfg.CacheSize,
		"list_path":       cfg.ListPath,
		"include_private": cfg.IncludePrivate,
		"snapshot_path":   cfg.SnapshotPath,
	}, "Starting hostparts lookup daemon")

	app, err := buildApplication(cfg)
	if err != nil {
		// An unreadable rule source is a startup failure, not a runtime error.
		log.Fatal(map[string]any{"error": err}, "Failed to build application")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	go func() {
		for sig := range sigChan {
			if sig == syscall.SIGHUP {
				log.Info(nil, "Reload signal received")
				if err := app.Reload(); err != nil {
					log.Error(map[string]any{"error": err.Error()}, "List reload failed, keeping previous list")
				}
				continue
			}
			log.Info(map[string]any{"signal": sig.String()}, "Shutdown signal received")
			cancel()
			return
		}
	}()

	if err := app.Run(ctx); err != nil {
		log.Fatal(map[string]any{"error": err}, "Server failed")
	}

	log.Info(nil, "hostparts daemon stopped gracefully")
}

// buildApplication constructs all components and wires them together.
func buildApplication(cfg *config.AppConfig) (*Application, error) {
	clk := clock.RealClock{}
	logger := log.GetLogger()

	store, err := loadRules(cfg, clk, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load suffix rules: %w", err)
	}
	holder := rules.NewHolder(domain.NewSuffixList(store), clk)

	cacheSize := cfg.CacheSize
	if cfg.DisableCache {
		cacheSize = 0
		log.Info(map[string]any{"disabled": true}, "Parse result caching disabled")
	}
	cache, err := partscache.New(cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create parts cache: %w", err)
	}

	service := parser.New(parser.Options{
		Lists:  holder,
		Cache:  cache,
		Logger: logger,
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	transport := httpapi.New(addr, logger)

	log.Info(map[string]any{
		"rules":   store.Len(),
		"address": addr,
	}, "Suffix rules loaded")

	return &Application{
		config:    cfg,
		transport: transport,
		service:   service,
		holder:    holder,
		cache:     cache,
		clk:       clk,
	}, nil
}

// loadRules builds the rule store, preferring a configured snapshot database
// and falling back to list text (file or bundled). A fresh text parse is
// written back to the snapshot for the next start.
func loadRules(cfg *config.AppConfig, clk clock.Clock, logger log.Logger) (domain.RuleStore, error) {
	if cfg.SnapshotPath == "" {
		return loadRulesText(cfg, logger)
	}

	snap, err := bolt.Open(cfg.SnapshotPath)
	if err != nil {
		return domain.RuleStore{}, fmt.Errorf("failed to open snapshot db: %w", err)
	}
	defer snap.Close()

	store, ok, err := snap.Load()
	if err != nil {
		return domain.RuleStore{}, fmt.Errorf("failed to read snapshot: %w", err)
	}
	if ok {
		log.Info(map[string]any{
			"snapshot": cfg.SnapshotPath,
			"rules":    store.Len(),
		}, "Warm-started from rule snapshot")
		return store, nil
	}

	store, err = loadRulesText(cfg, logger)
	if err != nil {
		return domain.RuleStore{}, err
	}
	if err := snap.Save(store, clk.Now()); err != nil {
		log.Warn(map[string]any{"error": err.Error()}, "Failed to write rule snapshot")
	}
	return store, nil
}

// loadRulesText parses the configured list file, or the bundled snapshot when
// no path is configured.
func loadRulesText(cfg *config.AppConfig, logger log.Logger) (domain.RuleStore, error) {
	if cfg.ListPath != "" {
		return rules.LoadFile(cfg.ListPath, cfg.IncludePrivate, logger)
	}
	return rules.Default(cfg.IncludePrivate, logger)
}

// Reload re-parses the list text, swaps it into the holder, clears the parts
// cache, and refreshes the snapshot when configured. The previous list stays
// active if parsing fails.
func (app *Application) Reload() error {
	logger := log.GetLogger()

	store, err := loadRulesText(app.config, logger)
	if err != nil {
		return err
	}

	app.holder.Replace(domain.NewSuffixList(store))
	app.cache.Purge()

	if app.config.SnapshotPath != "" {
		snap, err := bolt.Open(app.config.SnapshotPath)
		if err != nil {
			log.Warn(map[string]any{"error": err.Error()}, "Failed to open snapshot db for refresh")
		} else {
			defer snap.Close()
			if err := snap.Save(store, app.clk.Now()); err != nil {
				log.Warn(map[string]any{"error": err.Error()}, "Failed to refresh rule snapshot")
			}
		}
	}

	log.Info(map[string]any{"rules": store.Len()}, "Suffix list reloaded")
	return nil
}

// Run starts the HTTP transport and blocks until context is cancelled.
func (app *Application) Run(ctx context.Context) error {
	if err := app.transport.Start(ctx, app.service); err != nil {
		return fmt.Errorf("failed to start http transport: %w", err)
	}

	log.Info(map[string]any{
		"address":   app.transport.Address(),
		"transport": "HTTP",
	}, "Lookup daemon started")

	<-ctx.Done()

	log.Info(nil, "Shutdown initiated")
	return app.transport.Stop()
}
