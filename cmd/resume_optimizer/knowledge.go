package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-optimizer/internal/ingestion"
	"github.com/jonathan/resume-optimizer/internal/retrieval"
)

var knowledgeCommand = &cobra.Command{
	Use:   "knowledge",
	Short: "Manage the market-knowledge store",
}

var knowledgeIngestCommand = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest documents from a directory into the knowledge store",
	Long:  "Reads every .txt, .md and .html file in --dir, embeds the contents and upserts them into the pgvector-backed knowledge store.",
	RunE:  runKnowledgeIngestCmd,
}

var (
	knowledgeDir         string
	knowledgeCollection  string
	knowledgeDatabaseURL string
	knowledgeAPIKey      string
)

func init() {
	knowledgeIngestCommand.Flags().StringVarP(&knowledgeDir, "dir", "d", "", "Directory with knowledge documents (required)")
	knowledgeIngestCommand.Flags().StringVarP(&knowledgeCollection, "collection", "c", "mercado_tech", "Target collection name")
	knowledgeIngestCommand.Flags().StringVar(&knowledgeDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	knowledgeIngestCommand.Flags().StringVar(&knowledgeAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	_ = knowledgeIngestCommand.MarkFlagRequired("dir")

	knowledgeCommand.AddCommand(knowledgeIngestCommand)
	rootCmd.AddCommand(knowledgeCommand)
}

func runKnowledgeIngestCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	apiKey := knowledgeAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}

	databaseURL := knowledgeDatabaseURL
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable or --db-url flag is required")
	}

	docs, err := ingestion.LoadKnowledgeDir(knowledgeDir, knowledgeCollection)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return fmt.Errorf("no ingestible documents found in %s", knowledgeDir)
	}

	embedder, err := retrieval.NewGeminiEmbedder(ctx, apiKey, "")
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}
	defer func() { _ = embedder.Close() }()

	store, err := retrieval.Connect(ctx, databaseURL, embedder)
	if err != nil {
		return fmt.Errorf("failed to connect to knowledge store: %w", err)
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		return err
	}
	if err := store.AddDocuments(ctx, docs); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Ingested %d documents into collection %q\n", len(docs), knowledgeCollection)
	return nil
}
