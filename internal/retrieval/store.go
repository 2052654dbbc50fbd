package retrieval

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
	pgxvector "github.com/pgvector/pgvector-go/pgx"
	"golang.org/x/sync/errgroup"
)

// embeddingDim matches the text-embedding-004 output size.
const embeddingDim = 768

// Store is a pgvector-backed knowledge store.
type Store struct {
	pool     *pgxpool.Pool
	embedder Embedder
}

// Connect opens a connection pool to the knowledge database and registers
// the vector type on every connection.
func Connect(ctx context.Context, databaseURL string, embedder Embedder) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database url: %w", err)
	}
	cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return pgxvector.RegisterTypes(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{pool: pool, embedder: embedder}, nil
}

// Close closes the connection pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// EnsureSchema creates the vector extension and knowledge table when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS market_knowledge (
			id UUID PRIMARY KEY,
			collection TEXT NOT NULL,
			content TEXT NOT NULL,
			metadata JSONB,
			embedding vector(%d) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`, embeddingDim),
		`CREATE INDEX IF NOT EXISTS market_knowledge_collection_idx ON market_knowledge (collection)`,
	}
	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}

// AddDocuments embeds and inserts docs. Embeddings run concurrently; a
// failure on any document aborts the batch.
func (s *Store) AddDocuments(ctx context.Context, docs []Document) error {
	vectors := make([]pgvector.Vector, len(docs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i := range docs {
		g.Go(func() error {
			floats, err := s.embedder.Embed(gctx, docs[i].Content)
			if err != nil {
				return fmt.Errorf("failed to embed document %s: %w", docs[i].ID, err)
			}
			vectors[i] = pgvector.NewVector(floats)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return &Error{Op: "embed", Cause: err}
	}

	for i, doc := range docs {
		id := doc.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		metadata, err := json.Marshal(doc.Metadata)
		if err != nil {
			return &Error{Op: "insert", Cause: err}
		}
		_, err = s.pool.Exec(ctx,
			`INSERT INTO market_knowledge (id, collection, content, metadata, embedding)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (id) DO UPDATE SET content = $3, metadata = $4, embedding = $5`,
			id, doc.Collection, doc.Content, metadata, vectors[i],
		)
		if err != nil {
			return &Error{Op: "insert", Cause: err}
		}
	}
	return nil
}

// Search embeds the query and returns the closest documents by cosine
// similarity, dropping results below opts.MinScore.
func (s *Store) Search(ctx context.Context, query string, opts SearchOptions) ([]SearchResult, error) {
	if opts.Limit <= 0 {
		opts.Limit = 5
	}

	floats, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, &Error{Op: "embed", Cause: err}
	}
	embedding := pgvector.NewVector(floats)

	rows, err := s.pool.Query(ctx,
		`SELECT content, metadata, 1 - (embedding <=> $1) AS score
		 FROM market_knowledge
		 WHERE collection = $2
		 ORDER BY embedding <=> $1
		 LIMIT $3`,
		embedding, opts.Collection, opts.Limit,
	)
	if err != nil {
		return nil, &Error{Op: "search", Cause: err}
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var r SearchResult
		var metadata []byte
		if err := rows.Scan(&r.Content, &metadata, &r.Score); err != nil {
			return nil, &Error{Op: "search", Cause: err}
		}
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &r.Metadata); err != nil {
				return nil, &Error{Op: "search", Cause: err}
			}
		}
		if r.Score < opts.MinScore {
			continue
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
