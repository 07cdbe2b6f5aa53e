package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"label-image-tool/config"
	"label-image-tool/internal/api/rest"
	"label-image-tool/internal/api/telegram"
	"label-image-tool/internal/container"
	"label-image-tool/internal/domain/port"
	"label-image-tool/internal/infrastructure/files"
	"label-image-tool/internal/infrastructure/resources"
	"label-image-tool/internal/infrastructure/storage"
	"label-image-tool/internal/infrastructure/tensorflow"
	"label-image-tool/internal/infrastructure/vision"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	defaults, err := config.LoadPluginDefaults(cfg.PluginPropertiesPath)
	if err != nil {
		log.Fatalf("Failed to load plugin properties: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	forms, workflow, err := newFormData(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to init form data: %v", err)
	}

	fileStore, err := newFileStore(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to init file store: %v", err)
	}

	// Собираем сервисы приложения
	appContainer := container.New(container.Ports{
		Sessions:   storage.NewMemorySessionRepository(),
		Forms:      forms,
		Files:      fileStore,
		Workflow:   workflow,
		Bundle:     resources.NewDirBundle(cfg.ResourcesDir),
		Classifier: newClassifier(cfg),
	}, logger)

	g, gctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           rest.NewHandler(appContainer.LabelImageTool, logger).Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	g.Go(func() error {
		logger.Info("http server listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if cfg.TelegramToken != "" {
		bot, err := telegram.NewBot(cfg.TelegramToken, appContainer.SessionService,
			appContainer.LabelImageTool, defaults.Properties, logger)
		if err != nil {
			log.Fatalf("Failed to create bot: %v", err)
		}
		g.Go(func() error {
			logger.Info("bot is running")
			return bot.Run(gctx)
		})
	}

	if err := g.Wait(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func newFormData(ctx context.Context, cfg *config.Config, logger *slog.Logger) (port.FormDataService, port.WorkflowManager, error) {
	if cfg.RecordsBackend == config.BackendPostgres {
		db, err := storage.OpenPostgres(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		store := storage.NewPostgresFormStore(db, logger)
		if err := store.Migrate(ctx); err != nil {
			return nil, nil, err
		}
		return store, store, nil
	}

	store := storage.NewMemoryFormStore()
	if err := store.LoadSeed(cfg.RecordsSeed); err != nil {
		return nil, nil, err
	}
	logger.Warn("using in-memory form data, changes are lost on restart", "seed", cfg.RecordsSeed)
	return store, store, nil
}

func newFileStore(cfg *config.Config, logger *slog.Logger) (port.FileStore, error) {
	if cfg.FilesBackend == config.FilesAzure {
		store, err := files.NewAzureStore(cfg.AzureConnectionString, cfg.AzureContainer, logger)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
	return files.NewLocalStore(cfg.FilesDir), nil
}

func newClassifier(cfg *config.Config) port.Classifier {
	if cfg.ClassifierEngine == config.EngineTensorFlow {
		return tensorflow.NewGraphClassifier()
	}
	return vision.NewDNNClassifier()
}
