package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/abhisek/courtside/internal/api"
	"github.com/abhisek/courtside/internal/assessment"
	"github.com/abhisek/courtside/internal/config"
	"github.com/abhisek/courtside/internal/interview"
	"github.com/abhisek/courtside/internal/store"
	"github.com/abhisek/courtside/internal/telemetry"
)

// deps is everything a front end needs, built once per command.
type deps struct {
	cfg        config.Config
	logger     *slog.Logger
	store      *store.Store
	client     api.Client
	engine     assessment.Engine
	permission assessment.Permission
	defects    interview.DefectReporter
}

// buildDeps initialises logging, telemetry and the event log, then wires
// the API client through the question cache and the request recorder.
// source tags defect events with the front end that saw them.
func buildDeps(ctx context.Context, cfg config.Config, source string, echo io.Writer) (*deps, func(), error) {
	var cleanups []func()
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	logger, closeLog, err := telemetry.InitLogger(cfg.LogDir, slog.LevelInfo, echo)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	cleanups = append(cleanups, closeLog)

	shutdown, err := telemetry.InitTelemetry(ctx, cfg.LogDir, buildVersion())
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("init telemetry: %w", err)
	}
	cleanups = append(cleanups, shutdown)

	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	cleanups = append(cleanups, func() { st.Close() })

	cached, err := api.WithQuestionCache(api.NewHTTPClient(cfg.ServerURL, cfg.Timeout), api.DefaultQuestionCacheSize)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("question cache: %w", err)
	}
	repo := st.EventRepo()

	d := &deps{
		cfg:        cfg,
		logger:     logger,
		store:      st,
		client:     api.WithEvents(cached, repo, logger),
		engine:     assessment.NewUnavailable(),
		permission: assessment.CameraPermission{Device: cfg.CameraDevice},
		defects:    interview.StoreDefects{Repo: repo, Source: source, Logger: logger},
	}
	logger.Info("courtside starting", "version", buildVersion(), "server", cfg.ServerURL, "db", dbPath, "frontend", source)
	return d, cleanup, nil
}
