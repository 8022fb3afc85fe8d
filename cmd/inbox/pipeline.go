package main

import (
	"context"
	"database/sql"
	"fmt"

	"inbox/internal/app"
	"inbox/internal/llm/google"

	"google.golang.org/genai"
)

// pipeline bundles what the processing commands share
type pipeline struct {
	cfg       *app.Config
	db        *sql.DB
	processor *app.Processor
}

// loadConfig reads the environment and applies flag overrides
func loadConfig() (*app.Config, error) {
	cfg, err := app.LoadConfig(envFile)
	if err != nil {
		return nil, err
	}
	if model != "" {
		cfg.Model = model
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if timeout > 0 {
		cfg.Timeout = timeout
	}
	return cfg, nil
}

// openStore opens the event log under the configured data directory
func openStore(cfg *app.Config) (*sql.DB, *app.EventStore, error) {
	db, err := app.InitDB(cfg.DBPath())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return db, app.NewEventStore(db), nil
}

func newPipeline(ctx context.Context) (*pipeline, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	adapter, err := google.NewAdapter(ctx, cfg.Model, &genai.ClientConfig{APIKey: cfg.APIKey})
	if err != nil {
		return nil, err
	}

	db, store, err := openStore(cfg)
	if err != nil {
		return nil, err
	}

	processor := app.NewProcessor(adapter,
		app.WithLogger(logger),
		app.WithRecorder(store),
		app.WithSession(app.NewSession(cfg.MaxHighPriority)),
	)

	return &pipeline{cfg: cfg, db: db, processor: processor}, nil
}

func (p *pipeline) Close() error {
	return p.db.Close()
}

// process runs one input under the configured timeout
func (p *pipeline) process(ctx context.Context, inputID, input string) ([]app.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()
	return p.processor.Process(ctx, inputID, input)
}
