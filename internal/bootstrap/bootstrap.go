// Package bootstrap wires infrastructure adapters into the use cases for the
// api binary.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/worawit/lawgraph/internal/config"
	"github.com/worawit/lawgraph/internal/core/graph"
	"github.com/worawit/lawgraph/internal/core/ports"
	"github.com/worawit/lawgraph/internal/core/usecase"
	"github.com/worawit/lawgraph/internal/infrastructure/chunking"
	"github.com/worawit/lawgraph/internal/infrastructure/embeddings/ollama"
	"github.com/worawit/lawgraph/internal/infrastructure/extractor"
	neo4jgraph "github.com/worawit/lawgraph/internal/infrastructure/graph/neo4j"
	"github.com/worawit/lawgraph/internal/infrastructure/queue/nats"
	"github.com/worawit/lawgraph/internal/infrastructure/repository/postgres"
	"github.com/worawit/lawgraph/internal/infrastructure/resilience"
	"github.com/worawit/lawgraph/internal/observability/metrics"
)

type App struct {
	Config config.Config

	IngestUC  ports.CaseIngestor
	SearchUC  ports.CaseSearcher
	AskUC     ports.QuestionAnswerer
	FactsUC   ports.FactReader
	ChunksUC  ports.ChunkReader
	Extractor ports.TextExtractor
	Chunker   ports.Chunker

	Metrics *metrics.HTTPServerMetrics

	closeFn func(ctx context.Context)
}

func New(ctx context.Context, cfg config.Config, log *slog.Logger) (*App, error) {
	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	chunkRepo := postgres.NewChunkRepository(db)
	if err := chunkRepo.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	exec := resilience.NewExecutor(resilience.DefaultConfig(), neo4jgraph.Classifier)
	commander, err := neo4jgraph.NewCommander(ctx, neo4jgraph.Config{
		URI:      cfg.Neo4jURI,
		User:     cfg.Neo4jUser,
		Password: cfg.Neo4jPassword,
		Database: cfg.Neo4jDatabase,
	}, exec)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connect neo4j: %w", err)
	}

	httpMetrics := metrics.NewHTTPServerMetrics("api")
	commander.SetStatementRecorder(func(kind, status string) {
		httpMetrics.RecordGraphStatement("api", kind, status)
	})

	publisher, err := nats.New(cfg.NATSURL, cfg.NATSSubject)
	if err != nil {
		_ = commander.Close(ctx)
		_ = db.Close()
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	var embedder ports.Embedder
	if cfg.EmbeddingsEnabled {
		embedder = ollama.NewEmbedder(cfg.OllamaURL, cfg.OllamaEmbedModel)
	}

	store := graph.NewStore(commander, log)
	ingestUC := usecase.NewIngestCaseUseCase(store, chunkRepo, publisher, log)
	searchUC := usecase.NewSearchCasesUseCase(chunkRepo, store, embedder, log, cfg.MaxVocabSize, cfg.FactLimit)
	askUC := usecase.NewAskQuestionUseCase(searchUC)
	factsUC := usecase.NewCaseFactsUseCase(store)
	chunksUC := usecase.NewCaseChunksUseCase(chunkRepo)

	return &App{
		Config: cfg,

		IngestUC:  ingestUC,
		SearchUC:  searchUC,
		AskUC:     askUC,
		FactsUC:   factsUC,
		ChunksUC:  chunksUC,
		Extractor: extractor.New(),
		Chunker:   chunking.NewSplitter(cfg.ChunkSize, cfg.ChunkOverlap),

		Metrics: httpMetrics,

		closeFn: func(ctx context.Context) {
			publisher.Close()
			_ = commander.Close(ctx)
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close(ctx context.Context) {
	if a.closeFn != nil {
		a.closeFn(ctx)
	}
}
