package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/bryanwahyu/didim-interview/internal/application"
	appai "github.com/bryanwahyu/didim-interview/internal/application/ai"
	appanalysis "github.com/bryanwahyu/didim-interview/internal/application/analysis"
	appevaluation "github.com/bryanwahyu/didim-interview/internal/application/evaluation"
	appuploads "github.com/bryanwahyu/didim-interview/internal/application/uploads"
	"github.com/bryanwahyu/didim-interview/internal/config"
	"github.com/bryanwahyu/didim-interview/internal/domain/ai"
	"github.com/bryanwahyu/didim-interview/internal/domain/analysis"
	"github.com/bryanwahyu/didim-interview/internal/domain/evaluation"
	"github.com/bryanwahyu/didim-interview/internal/domain/uploads"
	"github.com/bryanwahyu/didim-interview/internal/infra/ai/openai"
	"github.com/bryanwahyu/didim-interview/internal/infra/analysis/awsjobs"
	mysqlp "github.com/bryanwahyu/didim-interview/internal/infra/db/mysql"
	"github.com/bryanwahyu/didim-interview/internal/infra/db/postgres"
	"github.com/bryanwahyu/didim-interview/internal/infra/httpserver"
	"github.com/bryanwahyu/didim-interview/internal/infra/storage"
	"github.com/bryanwahyu/didim-interview/internal/logger"
	"github.com/bryanwahyu/didim-interview/internal/middleware"
)

type uploadRepository interface {
	uploads.Repository
	EnsureSchema(ctx context.Context) error
}

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load error: %v\n", err)
		os.Exit(1)
	}
	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	log := logger.Component("api")
	awsLog := logger.Component("aws")
	evalLog := logger.Component("evaluation")

	ctx := context.Background()

	db, repo, err := openRepository(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Database.Driver).Msg("database connect error")
	}
	defer db.Close()
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("schema init error")
	}

	s3 := cfg.AWS.S3
	recordings, err := storage.New(s3.Endpoint, cfg.AWS.Region, s3.RecordingBucket, cfg.AWS.AccessKey, cfg.AWS.SecretKey, s3.UseSSL, awsLog)
	if err != nil {
		log.Fatal().Err(err).Msg("storage init error")
	}
	results := recordings.WithBucket(s3.AnalysisBucket)
	if !strings.HasSuffix(s3.Endpoint, "amazonaws.com") {
		// MinIO lokal: pastikan bucket ada
		for _, st := range []*storage.Store{recordings, results, recordings.WithBucket(s3.ProfileBucket)} {
			if err := st.EnsureBucket(ctx); err != nil {
				log.Fatal().Err(err).Str("bucket", st.Bucket()).Msg("bucket init error")
			}
		}
	}

	var (
		transcriber analysis.Transcriber   = awsjobs.Disabled{}
		video       analysis.VideoAnalyzer = awsjobs.Disabled{}
		source      analysis.ResultSource
	)
	if cfg.AWSConfigured() {
		clients, err := awsjobs.NewClients(cfg.AWS.Region, cfg.AWS.AccessKey, cfg.AWS.SecretKey, s3.AnalysisBucket, awsLog)
		if err != nil {
			log.Fatal().Err(err).Msg("aws init error")
		}
		transcriber, video = clients.Transcribe, clients.Rekognition
		source = awsjobs.ResultSource{Documents: results, Faces: clients.Rekognition}
	} else {
		log.Warn().Msg("aws credentials missing, analysis jobs disabled and evaluation falls back to demo documents")
	}

	engine, err := buildEngine(cfg.Evaluation.RulesetPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Evaluation.RulesetPath).Msg("ruleset load error")
	}

	var coach ai.Coach
	if cfg.OpenAI.APIKey != "" {
		coach = openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	}

	clock := application.SystemClock{}
	uploadSvc := &appuploads.Service{
		Repo:          repo,
		Store:         recordings,
		Clock:         clock,
		PresignExpiry: s3.PresignExpiry,
		Log:           awsLog,
	}
	analysisSvc := &appanalysis.Service{
		Transcriber: transcriber,
		Video:       video,
		Media:       recordings,
		Clock:       clock,
		Log:         awsLog,
	}
	evaluationSvc := &appevaluation.Service{
		Engine:  engine,
		Results: source,
		Coach:   appai.NewService(coach, evalLog),
		Clock:   clock,
		Log:     evalLog,
	}

	var limiter *middleware.RateLimiter
	if cfg.RateLimit.Capacity > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimit.Capacity, cfg.RateLimit.RefillPerSecond)
		defer limiter.Close()
	}

	health := middleware.HealthHandler(middleware.Environment{
		AWSRegion:     cfg.AWS.Region,
		AWSConfigured: cfg.AWSConfigured(),
		Buckets: middleware.Buckets{
			Video:    s3.RecordingBucket,
			Analysis: s3.AnalysisBucket,
			Profile:  s3.ProfileBucket,
		},
	}, map[string]middleware.HealthChecker{
		"db":      &middleware.DatabaseHealthChecker{DB: db},
		"storage": recordings,
	})

	handler := httpserver.NewRouter(uploadSvc, analysisSvc, evaluationSvc, httpserver.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		APIKeys:        cfg.Auth.APIKeys,
		Limiter:        limiter,
		MaxUploadBytes: cfg.Upload.MaxBytes,
		Health:         health,
		Log:            log,
	})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info().Str("addr", addr).Bool("aws", cfg.AWSConfigured()).Bool("aiCoach", coach != nil).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Info().Msg("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
}

func openRepository(ctx context.Context, cfg *config.Config) (*sql.DB, uploadRepository, error) {
	switch cfg.Database.Driver {
	case "postgres":
		db, err := postgres.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			return nil, nil, err
		}
		return db, postgres.NewUploadRepository(db), nil
	default:
		db, err := mysqlp.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			return nil, nil, err
		}
		return db, mysqlp.NewUploadRepository(db), nil
	}
}

func buildEngine(rulesetPath string) (*evaluation.Engine, error) {
	if rulesetPath == "" {
		return evaluation.DefaultEngine(), nil
	}
	rs, err := evaluation.LoadRuleset(rulesetPath)
	if err != nil {
		return nil, err
	}
	return evaluation.NewEngine(rs)
}
