package bootstrap

import (
	"context"
	"fmt"

	"github.com/rpzk/clindoc/internal/config"
	"github.com/rpzk/clindoc/internal/core/analysis"
	"github.com/rpzk/clindoc/internal/core/ports"
	"github.com/rpzk/clindoc/internal/core/registration"
	"github.com/rpzk/clindoc/internal/core/usecase"
	"github.com/rpzk/clindoc/internal/infrastructure/export/excel"
	"github.com/rpzk/clindoc/internal/infrastructure/extractor/pdftext"
	"github.com/rpzk/clindoc/internal/infrastructure/extractor/plaintext"
	"github.com/rpzk/clindoc/internal/infrastructure/queue/nats"
	"github.com/rpzk/clindoc/internal/infrastructure/repository/postgres"
	"github.com/rpzk/clindoc/internal/infrastructure/resilience"
	"github.com/rpzk/clindoc/internal/infrastructure/storage/localfs"
)

type App struct {
	Config config.Config

	Queue    ports.MessageQueue
	Repo     ports.DocumentRepository
	Patients ports.PatientRepository

	IngestUC   ports.DocumentIngestor
	AnalyzeUC  ports.DocumentAnalyzer
	RegisterUC ports.RegistrationImporter
	Exporter   *excel.Writer

	closeFn func()
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	repo := postgres.NewDocumentRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure documents schema: %w", err)
	}
	patients := postgres.NewPatientRepository(db)
	if err := patients.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure patients schema: %w", err)
	}

	storage, err := localfs.New(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	executor := resilience.NewExecutor(resilience.DefaultConfig())
	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: executor,
	})
	if err != nil {
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	lib, err := buildLibrary(cfg)
	if err != nil {
		return nil, err
	}
	engine := analysis.NewEngine(lib, analysis.DefaultWeights())
	regExtractor := registration.NewExtractor(lib, registration.DefaultBudget())

	extractor := pdftext.NewExtractor(storage, plaintext.NewExtractor(storage))

	ingestUC := usecase.NewIngestDocumentUseCase(repo, storage, queue)
	analyzeUC := usecase.NewAnalyzeDocumentUseCase(repo, extractor, engine)
	registerUC := usecase.NewRegisterPatientUseCase(patients, regExtractor)

	return &App{
		Config:   cfg,
		Queue:    queue,
		Repo:     repo,
		Patients: patients,

		IngestUC:   ingestUC,
		AnalyzeUC:  analyzeUC,
		RegisterUC: registerUC,
		Exporter:   excel.NewWriter(),

		closeFn: func() {
			queue.Close()
			_ = db.Close()
		},
	}, nil
}

func buildLibrary(cfg config.Config) (analysis.Library, error) {
	lib := analysis.DefaultLibrary()
	if cfg.PatternOverlayPath == "" {
		return lib, nil
	}
	overlay, err := analysis.LoadOverlay(cfg.PatternOverlayPath)
	if err != nil {
		return analysis.Library{}, fmt.Errorf("load pattern overlay: %w", err)
	}
	lib, err = lib.ApplyOverlay(overlay)
	if err != nil {
		return analysis.Library{}, fmt.Errorf("apply pattern overlay: %w", err)
	}
	return lib, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
