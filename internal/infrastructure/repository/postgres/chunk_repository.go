package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/worawit/lawgraph/internal/core/domain"
)

// ChunkRepository persists the chunk index. (case_id, page) is the natural
// key, so re-ingesting a batch overwrites the same rows instead of
// appending duplicates.
type ChunkRepository struct {
	db *sql.DB
}

func NewChunkRepository(db *sql.DB) *ChunkRepository {
	return &ChunkRepository{db: db}
}

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func (r *ChunkRepository) EnsureSchema(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serialize bootstrap DDL across concurrent api startups.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026082701)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS doc_chunks (
	case_id TEXT NOT NULL,
	page INTEGER NOT NULL,
	chunk_id TEXT NOT NULL,
	text TEXT NOT NULL,
	section TEXT NOT NULL DEFAULT '',
	updated_at TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (case_id, page)
);

CREATE INDEX IF NOT EXISTS idx_doc_chunks_case_id ON doc_chunks(case_id);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

func (r *ChunkRepository) Save(ctx context.Context, chunks []domain.DocChunk) error {
	if len(chunks) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	now := time.Now().UTC()
	for _, c := range chunks {
		_, err := tx.ExecContext(ctx, `
INSERT INTO doc_chunks (case_id, page, chunk_id, text, section, updated_at)
VALUES ($1,$2,$3,$4,$5,$6)
ON CONFLICT (case_id, page)
DO UPDATE SET chunk_id = EXCLUDED.chunk_id, text = EXCLUDED.text, section = EXCLUDED.section, updated_at = EXCLUDED.updated_at
`, c.CaseID, c.Page, c.ChunkID, c.Text, c.Section, now)
		if err != nil {
			return fmt.Errorf("upsert chunk %s: %w", c.ChunkID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save tx: %w", err)
	}
	return nil
}

func (r *ChunkRepository) ListByCase(ctx context.Context, caseID string) ([]domain.DocChunk, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT case_id, chunk_id, text, page, section
FROM doc_chunks
WHERE case_id = $1
ORDER BY page ASC
`, caseID)
	if err != nil {
		return nil, fmt.Errorf("query chunks by case: %w", err)
	}
	defer rows.Close()
	return scanChunks(rows)
}

func (r *ChunkRepository) ListAll(ctx context.Context) ([]domain.DocChunk, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT case_id, chunk_id, text, page, section
FROM doc_chunks
ORDER BY case_id ASC, page ASC
`)
	if err != nil {
		return nil, fmt.Errorf("query all chunks: %w", err)
	}
	defer rows.Close()
	return scanChunks(rows)
}

func scanChunks(rows *sql.Rows) ([]domain.DocChunk, error) {
	chunks := make([]domain.DocChunk, 0, 16)
	for rows.Next() {
		var c domain.DocChunk
		if err := rows.Scan(&c.CaseID, &c.ChunkID, &c.Text, &c.Page, &c.Section); err != nil {
			return nil, fmt.Errorf("scan chunk: %w", err)
		}
		chunks = append(chunks, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chunks: %w", err)
	}
	return chunks, nil
}
