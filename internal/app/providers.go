package app

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"tubescribe/internal/api/server"
	v1routes "tubescribe/internal/api/v1/routes"
	"tubescribe/internal/api/v1/services"
	"tubescribe/internal/app/document"
	"tubescribe/internal/app/media"
	"tubescribe/internal/app/metrics"
	"tubescribe/internal/app/pipeline"
	"tubescribe/internal/app/storage"
	"tubescribe/internal/app/transcribe"
	"tubescribe/internal/config"
)

func provideObjectStore(cfg *config.Config) (storage.ObjectStore, error) {
	return storage.NewMinioStore(context.Background(), storage.MinioConfig{
		Endpoint:  cfg.Minio.Endpoint,
		AccessKey: cfg.Minio.AccessKey,
		SecretKey: cfg.Minio.SecretKey,
		UseSSL:    cfg.Minio.UseSSL,
		Buckets:   []string{cfg.WorkingBucket, cfg.DocumentBucket},
	})
}

func provideFetcher(cfg *config.Config, logger *slog.Logger) media.Fetcher {
	return media.NewYTDLPFetcher(cfg.YTDLPBinary, logger)
}

func provideJobClient(cfg *config.Config) (transcribe.JobClient, error) {
	return transcribe.NewHTTPJobClient(cfg.Transcribe.Endpoint, cfg.Transcribe.APIKey)
}

func provideMetrics() *metrics.Metrics {
	return metrics.New(prometheus.DefaultRegisterer)
}

func provideMaterializer(objects storage.ObjectStore, cfg *config.Config) *document.Materializer {
	return document.NewMaterializer(objects, cfg.WorkingBucket, cfg.DocumentBucket)
}

func provideDocumentStore(objects storage.ObjectStore, cfg *config.Config) *document.Store {
	return document.NewStore(objects, cfg.DocumentBucket)
}

func provideOrchestrator(
	objects storage.ObjectStore,
	fetcher media.Fetcher,
	jobs transcribe.JobClient,
	materializer *document.Materializer,
	cfg *config.Config,
	logger *slog.Logger,
	m *metrics.Metrics,
) *pipeline.Orchestrator {
	return pipeline.NewOrchestrator(objects, fetcher, jobs, materializer, pipeline.Config{
		WorkingBucket:   cfg.WorkingBucket,
		DocumentBucket:  cfg.DocumentBucket,
		PollInterval:    cfg.PollInterval,
		MaxPollAttempts: cfg.MaxPollAttempts,
		MaxPollFailures: cfg.MaxPollFailures,
	}, logger, m)
}

func provideServiceContainer(
	orchestrator *pipeline.Orchestrator,
	store *document.Store,
) *v1routes.ServiceContainer {
	return &v1routes.ServiceContainer{
		TranscribeService: services.NewTranscribeService(orchestrator),
		DocumentService:   services.NewDocumentService(store),
	}
}

func provideServerConfig(cfg *config.Config) server.Config {
	return server.Config{
		Host:         cfg.HTTP.Host,
		Port:         cfg.HTTP.Port,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Environment:  cfg.Environment,
	}
}
