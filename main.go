package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/b0gochort/spamwarden/internal/agent"
	"github.com/b0gochort/spamwarden/internal/auth"
	"github.com/b0gochort/spamwarden/internal/classifier"
	"github.com/b0gochort/spamwarden/internal/config"
	"github.com/b0gochort/spamwarden/internal/crypto"
	"github.com/b0gochort/spamwarden/internal/dataset"
	"github.com/b0gochort/spamwarden/internal/httpapi"
	"github.com/b0gochort/spamwarden/internal/lock"
	"github.com/b0gochort/spamwarden/internal/lock/mutex"
	"github.com/b0gochort/spamwarden/internal/lock/redislock"
	"github.com/b0gochort/spamwarden/internal/models"
	"github.com/b0gochort/spamwarden/internal/queue"
	"github.com/b0gochort/spamwarden/internal/review"
	"github.com/b0gochort/spamwarden/internal/scoring"
	"github.com/b0gochort/spamwarden/internal/simulator"
	"github.com/b0gochort/spamwarden/internal/store"
	"github.com/b0gochort/spamwarden/internal/store/postgres"
	"github.com/b0gochort/spamwarden/internal/store/sqlite"
	"github.com/b0gochort/spamwarden/internal/telemetry"
	"github.com/b0gochort/spamwarden/internal/training"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	cfgPath := "configs/config.yml"
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	var cryptor *crypto.Cryptor
	if cfg.Database.EncryptAtRest {
		cryptor, err = crypto.NewCryptor()
		if err != nil {
			logger.Fatal("failed to initialize cryptor", zap.Error(err))
		}
	}

	st, err := openStore(cfg, logger, cryptor)
	if err != nil {
		logger.Fatal("failed to open store", zap.Error(err))
	}
	defer st.Close()

	if err := seedSettings(context.Background(), st, cfg); err != nil {
		logger.Fatal("failed to seed settings from config", zap.Error(err))
	}

	if err := os.MkdirAll(cfg.ModelsDirectory, 0o755); err != nil {
		logger.Fatal("failed to create models directory", zap.Error(err))
	}

	importer := dataset.New(st)
	result, err := importer.Import(context.Background(), cfg.DatasetPath, false)
	if err != nil {
		logger.Warn("dataset import failed, continuing with existing data", zap.Error(err))
	} else if result.Skipped {
		logger.Info("dataset already imported, skipping")
	} else {
		logger.Info("dataset imported",
			zap.Int("train_pool", result.TrainPoolSize),
			zap.Int("validation_holdout", result.ValidationSize),
			zap.Int("skipped_lines", result.SkippedLines))
	}

	classifierImpl := classifier.NewNaiveBayes()
	scoringSvc := scoring.New(st, classifierImpl, cfg.ModelsDirectory)
	queueSvc := queue.New(st)
	reviewSvc := review.New(st)
	trainingSvc := training.New(st, classifierImpl, cfg.ModelsDirectory, scoringSvc)

	locker, err := buildLocker(cfg, logger)
	if err != nil {
		logger.Fatal("failed to build retrain locker", zap.Error(err))
	}

	metrics, err := telemetry.New(context.Background(), cfg.Telemetry.OTLPEndpoint, logger)
	if err != nil {
		logger.Fatal("failed to initialize telemetry", zap.Error(err))
	}

	observer := agent.NewMetricsObserver(metrics)

	scoringRunner := agent.NewScoringAgentRunner(queueSvc, scoringSvc, observer, scoringDelaysFromConfig(cfg), logger)
	retrainRunner := agent.NewRetrainAgentRunner(reviewSvc, trainingSvc, locker, models.TrainTemplate(cfg.Retrain.DefaultTemplate), observer, retrainDelaysFromConfig(cfg), logger)

	authSvc := auth.New(cfg.Auth.ModeratorUsername, cfg.Auth.ModeratorPasswordHash, cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute)

	httpServer := httpapi.New(httpapi.Deps{
		Store:   st,
		Queue:   queueSvc,
		Review:  reviewSvc,
		Scoring: scoringSvc,
		Retrain: retrainRunner,
		Auth:    authSvc,
		Metrics: metrics,
		Logger:  logger,
		Addr:    cfg.Server.Port,
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	for i := 0; i < cfg.Scoring.Workers; i++ {
		g.Go(func() error {
			scoringRunner.Run(gctx)
			return nil
		})
	}

	g.Go(func() error {
		retrainRunner.Run(gctx)
		return nil
	})

	g.Go(func() error {
		metrics.StartSnapshotLoop(gctx, 30*time.Second)
		return nil
	})

	if cfg.Simulator.Enabled {
		feeder := simulator.New(queueSvc, time.Duration(cfg.Simulator.IntervalMs)*time.Millisecond, cfg.Simulator.BatchSize, logger)
		g.Go(func() error {
			feeder.Run(gctx)
			return nil
		})
	}

	g.Go(func() error {
		return httpServer.Run(gctx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("application exited with error", zap.Error(err))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := metrics.Shutdown(shutdownCtx); err != nil {
		logger.Warn("telemetry shutdown failed", zap.Error(err))
	}

	logger.Info("application stopped")
}

// seedSettings applies the config-controlled thresholds and retrain policy
// to the singleton settings row on every startup. UpdateSettings touches only
// these four columns, so it never disturbs the active model version or the
// runtime-managed gold counter.
func seedSettings(ctx context.Context, st store.Store, cfg *config.Config) error {
	return st.UpdateSettings(ctx, &models.SystemSettings{
		ID:                   1,
		ThresholdAllow:       cfg.Thresholds.Allow,
		ThresholdBlock:       cfg.Thresholds.Block,
		RetrainGoldThreshold: cfg.Retrain.GoldThreshold,
		AutoRetrainEnabled:   cfg.Retrain.AutoEnabled,
	})
}

func openStore(cfg *config.Config, logger *zap.Logger, cryptor *crypto.Cryptor) (store.Store, error) {
	switch cfg.Database.Driver {
	case "sqlite":
		db, err := sqlite.Open(cfg.Database.URL)
		if err != nil {
			return nil, err
		}
		return sqlite.New(db, cryptor), nil
	default:
		db, err := postgres.Connect(cfg.Database.URL, logger)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(db, logger); err != nil {
			return nil, err
		}
		return postgres.New(db, logger, cryptor), nil
	}
}

func buildLocker(cfg *config.Config, logger *zap.Logger) (lock.Locker, error) {
	switch cfg.Retrain.SerializationMode {
	case "none":
		logger.Info("retrain serialization disabled: concurrent trainings may race")
		return nil, nil
	case "redis":
		opts, err := redis.ParseURL(cfg.Retrain.RedisURL)
		if err != nil {
			return nil, err
		}
		return redislock.New(redis.NewClient(opts)), nil
	default:
		return mutex.New(), nil
	}
}

func scoringDelaysFromConfig(cfg *config.Config) agent.ScoringDelays {
	return agent.ScoringDelays{
		NotReady: time.Duration(cfg.Scoring.NotReadyDelayMs) * time.Millisecond,
		Idle:     time.Duration(cfg.Scoring.IdleDelayMs) * time.Millisecond,
		Busy:     time.Duration(cfg.Scoring.BusyDelayMs) * time.Millisecond,
		Error:    time.Duration(cfg.Scoring.ErrorDelayMs) * time.Millisecond,
	}
}

func retrainDelaysFromConfig(cfg *config.Config) agent.RetrainDelays {
	return agent.RetrainDelays{
		CheckInterval: time.Duration(cfg.Retrain.CheckIntervalMs) * time.Millisecond,
		ErrorBackoff:  time.Duration(cfg.Retrain.ErrorBackoffMs) * time.Millisecond,
	}
}
