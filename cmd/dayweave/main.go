package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/dayweave/internal/cli"
	"github.com/alexanderramin/dayweave/internal/config"
	"github.com/alexanderramin/dayweave/internal/db"
	"github.com/alexanderramin/dayweave/internal/repository"
	"github.com/alexanderramin/dayweave/internal/service"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A .env in the working directory may set DAYWEAVE_CONFIG or DAYWEAVE_DB.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	eventRepo := repository.NewSQLiteEventRepo(database)
	todoRepo := repository.NewSQLiteTodoRepo(database)
	templateRepo := repository.NewSQLiteTemplateRepo(database)
	settingsRepo := repository.NewSQLiteSettingsRepo(database)
	learningRepo := repository.NewSQLiteLearningRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	// Use case timings are only interesting when debugging.
	var observers []service.UseCaseObserver
	if cfg.SlogLevel() <= slog.LevelDebug {
		observers = append(observers, service.NewSlogUseCaseObserver(logger))
	}

	app := &cli.App{
		Events:    service.NewEventService(eventRepo, uow, observers...),
		Todos:     service.NewTodoService(todoRepo, observers...),
		Templates: service.NewTemplateService(templateRepo, observers...),
		Settings:  service.NewSettingsService(settingsRepo),
		Learning:  service.NewLearningService(learningRepo, uow, observers...),
		Schedule:  service.NewScheduleService(eventRepo, templateRepo, settingsRepo, learningRepo, uow, observers...),
		Export:    service.NewExportService(eventRepo, observers...),
		Config:    cfg,
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
