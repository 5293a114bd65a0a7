package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/sayanitariq-techno/Tariq/internal/cli"
	"github.com/sayanitariq-techno/Tariq/internal/config"
	"github.com/sayanitariq-techno/Tariq/internal/db"
	"github.com/sayanitariq-techno/Tariq/internal/predictor"
	"github.com/sayanitariq-techno/Tariq/internal/repository"
	"github.com/sayanitariq-techno/Tariq/internal/scheduler"
	"github.com/sayanitariq-techno/Tariq/internal/service"
	"github.com/sayanitariq-techno/Tariq/internal/store"
)

const appName = "tariq"

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	configPath, dbPath, err := config.DefaultPaths()
	if err != nil {
		return err
	}
	cfg, err := config.Load(configPath, config.Default(dbPath))
	if err != nil {
		return fmt.Errorf("loading config %s: %w", configPath, err)
	}

	logger, closeLog, err := newRuntimeLogger(os.Stderr, cfg.Logging)
	if err != nil {
		return err
	}
	defer closeLog()

	database, err := db.OpenDB(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	snapshots := repository.NewSQLiteSnapshotStore(database, db.NewSQLiteUnitOfWork(database))

	var clock store.Clock = store.SystemClock{}
	fixed, err := cfg.Clock.FixedNow()
	if err != nil {
		return err
	}
	if fixed != nil {
		clock = store.FixedClock{T: fixed.UTC()}
		logger.Info("clock pinned", "as_of", fixed.Format(time.RFC3339))
	}

	st := store.New(store.WithPersister(snapshots), store.WithClock(clock))
	if err := st.Load(ctx, snapshots); err != nil {
		return fmt.Errorf("loading schedule: %w", err)
	}
	logger.Debug("schedule loaded", "db", cfg.Database.Path,
		"packages", len(st.Packages()), "activities", len(st.Activities()))

	observer := service.NewLogUseCaseObserver(logger.WithPrefix("service"))

	reportOpts := []service.ReportOption{service.WithReportObserver(observer)}
	if cfg.Predictor.Enabled {
		pcfg := predictor.DefaultConfig()
		pcfg.Enabled = true
		pcfg.Endpoint = cfg.Predictor.Endpoint
		pcfg.Model = cfg.Predictor.Model
		pcfg.TimeoutMs = cfg.Predictor.TimeoutMs
		pcfg.MaxRetries = cfg.Predictor.MaxRetries

		client := predictor.NewOllamaClient(pcfg, predictor.NewLogObserver(logger.WithPrefix("predictor")))
		band := scheduler.Band{Lower: cfg.Estimator.LowerBand, Upper: cfg.Estimator.UpperBand}
		reportOpts = append(reportOpts, service.WithExternalEstimator(predictor.NewEstimator(pcfg, client), band))
	}

	app := &cli.App{
		Schedule: service.NewScheduleService(st, observer),
		Reports:  service.NewReportService(st, reportOpts...),
		Import:   service.NewImportService(st, observer),
		Logger:   logger,
		Tick:     cfg.Clock.Tick(),
	}

	// Detect interactive terminal for prompts, spinners and the dashboard.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}

// newRuntimeLogger builds the process logger. Output always goes to stderr so
// the MCP transport on stdout stays clean. A configured file receives the same
// records in logfmt.
func newRuntimeLogger(stderr io.Writer, cfg config.LoggingConfig) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("parse logging level %q: %w", cfg.Level, err)
	}
	if stderr == nil {
		stderr = io.Discard
	}

	if cfg.File == "" {
		logger := log.NewWithOptions(stderr, log.Options{
			Level:           level,
			Prefix:          appName,
			ReportTimestamp: true,
			TimeFormat:      time.RFC3339,
			Formatter:       log.TextFormatter,
		})
		return logger, func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := log.NewWithOptions(io.MultiWriter(stderr, f), log.Options{
		Level:           level,
		Prefix:          appName,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Formatter:       log.LogfmtFormatter,
	})
	return logger, func() { _ = f.Close() }, nil
}
