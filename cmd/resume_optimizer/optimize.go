package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-optimizer/internal/compat"
	"github.com/jonathan/resume-optimizer/internal/config"
	"github.com/jonathan/resume-optimizer/internal/creative"
	"github.com/jonathan/resume-optimizer/internal/ingestion"
	"github.com/jonathan/resume-optimizer/internal/language"
	"github.com/jonathan/resume-optimizer/internal/llm"
	"github.com/jonathan/resume-optimizer/internal/logging"
	"github.com/jonathan/resume-optimizer/internal/observability"
	"github.com/jonathan/resume-optimizer/internal/optimization"
	"github.com/jonathan/resume-optimizer/internal/pipeline"
	"github.com/jonathan/resume-optimizer/internal/rendering"
	"github.com/jonathan/resume-optimizer/internal/retrieval"
)

var optimizeCommand = &cobra.Command{
	Use:   "optimize",
	Short: "Optimize a resume for a job posting",
	Long: `Runs the full optimization pipeline: compatibility analysis -> standard/pivot optimization or creative construction -> PDF rendering -> report.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runOptimizeCmd,
}

var (
	optConfigPath     string
	optResume         string
	optJob            string
	optJobURL         string
	optAPIKey         string
	optDatabaseURL    string
	optCollection     string
	optRAGLimit       int
	optRAGMinScore    float64
	optOutputDir      string
	optChromePath     string
	optTemplateID     string
	optTargetLanguage string
	optPDF            bool
	optVerbose        bool
	optJSONLogs       bool
	optDebug          bool
)

func init() {
	// Config file flag (processed first)
	optimizeCommand.Flags().StringVar(&optConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	optimizeCommand.Flags().StringVarP(&optResume, "resume", "r", "", "Path to resume text/HTML file")
	optimizeCommand.Flags().StringVarP(&optJob, "job", "j", "", "Path to job posting file (mutually exclusive with --job-url)")
	optimizeCommand.Flags().StringVar(&optJobURL, "job-url", "", "URL to fetch job posting from (mutually exclusive with --job)")
	optimizeCommand.Flags().StringVar(&optDatabaseURL, "db-url", "", "PostgreSQL connection URL for the knowledge store (optional, defaults to DATABASE_URL env var)")
	optimizeCommand.Flags().StringVar(&optCollection, "collection", "", "Knowledge collection to search")
	optimizeCommand.Flags().IntVar(&optRAGLimit, "rag-limit", 0, "Max knowledge snippets spliced into the prompt")
	optimizeCommand.Flags().Float64Var(&optRAGMinScore, "rag-min-score", 0, "Minimum similarity score for knowledge snippets")
	optimizeCommand.Flags().StringVar(&optOutputDir, "output-dir", "", "Directory for generated PDFs")
	optimizeCommand.Flags().StringVar(&optChromePath, "chrome-path", "", "Headless browser binary (optional, defaults to CHROME_PATH env var)")
	optimizeCommand.Flags().StringVarP(&optTemplateID, "template", "t", "", "Resume template name")
	optimizeCommand.Flags().StringVar(&optTargetLanguage, "language", "", `Force document language ("pt" or "en")`)
	optimizeCommand.Flags().BoolVar(&optPDF, "pdf", false, "Render the optimized resume to PDF (requires a Chromium-based browser)")
	optimizeCommand.Flags().BoolVarP(&optVerbose, "verbose", "v", false, "Print stage summaries")
	optimizeCommand.Flags().BoolVar(&optJSONLogs, "json-logs", false, "Structured JSON log output")
	optimizeCommand.Flags().BoolVar(&optDebug, "debug", false, "Debug-level logging")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	optimizeCommand.Flags().StringVar(&optAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	rootCmd.AddCommand(optimizeCommand)
}

func runOptimizeCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Step 1: Load config file if provided
	var cfg config.Config
	if optConfigPath != "" {
		loadedCfg, err := config.LoadConfig(optConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loadedCfg.Validate(); err != nil {
			return err
		}
		cfg = *loadedCfg
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	if cmd.Flags().Changed("resume") {
		cfg.Resume = optResume
	}
	if cmd.Flags().Changed("job") {
		cfg.Job = optJob
	}
	if cmd.Flags().Changed("job-url") {
		cfg.JobURL = optJobURL
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = optAPIKey
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = optDatabaseURL
	}
	if cmd.Flags().Changed("collection") {
		cfg.Collection = optCollection
	}
	if cmd.Flags().Changed("rag-limit") {
		cfg.RAGLimit = optRAGLimit
	}
	if cmd.Flags().Changed("rag-min-score") {
		cfg.RAGMinScore = optRAGMinScore
	}
	if cmd.Flags().Changed("output-dir") {
		cfg.OutputDir = optOutputDir
	}
	if cmd.Flags().Changed("chrome-path") {
		cfg.ChromePath = optChromePath
	}
	if cmd.Flags().Changed("template") {
		cfg.TemplateID = optTemplateID
	}
	if cmd.Flags().Changed("language") {
		cfg.TargetLanguage = optTargetLanguage
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = optVerbose
	}
	if cmd.Flags().Changed("json-logs") {
		cfg.JSONLogs = optJSONLogs
	}
	if cmd.Flags().Changed("debug") {
		cfg.Debug = optDebug
	}

	// Step 3: Apply defaults for unset values
	cfg = cfg.MergeWithDefaults(config.Config{
		Collection: "mercado_tech",
		OutputDir:  "storage",
		TemplateID: "default",
	})

	// Step 4: Validate required fields
	if cfg.Resume == "" {
		return fmt.Errorf("--resume must be provided (via flag or config)")
	}
	if cfg.Job == "" && cfg.JobURL == "" {
		return fmt.Errorf("either --job or --job-url must be provided (via flag or config)")
	}
	if cfg.Job != "" && cfg.JobURL != "" {
		return fmt.Errorf("--job and --job-url are mutually exclusive; provide only one")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Step 5: Environment fallbacks
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.ChromePath == "" {
		cfg.ChromePath = os.Getenv("CHROME_PATH")
	}

	logger, err := logging.New(cfg.JSONLogs, cfg.Debug)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	// Step 6: Load inputs
	resumeText, err := ingestion.ReadFile(cfg.Resume)
	if err != nil {
		return err
	}
	jobSource := cfg.Job
	if jobSource == "" {
		jobSource = cfg.JobURL
	}
	jobText, err := ingestion.ReadJobPosting(ctx, jobSource)
	if err != nil {
		return err
	}

	// Step 7: Assemble the pipeline
	modelConfig := llm.DefaultGeminiConfig()
	if cfg.ModelLite != "" {
		modelConfig = modelConfig.WithModel(llm.TierLite, cfg.ModelLite)
	}
	if cfg.ModelStandard != "" {
		modelConfig = modelConfig.WithModel(llm.TierStandard, cfg.ModelStandard)
	}
	if cfg.ModelAdvanced != "" {
		modelConfig = modelConfig.WithModel(llm.TierAdvanced, cfg.ModelAdvanced)
	}

	client, err := llm.NewClient(ctx, modelConfig, cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	var retriever retrieval.Retriever
	if cfg.DatabaseURL != "" {
		embedder, err := retrieval.NewGeminiEmbedder(ctx, cfg.APIKey, "")
		if err != nil {
			return fmt.Errorf("failed to create embedder: %w", err)
		}
		defer func() { _ = embedder.Close() }()

		store, err := retrieval.Connect(ctx, cfg.DatabaseURL, embedder)
		if err != nil {
			return fmt.Errorf("failed to connect to knowledge store: %w", err)
		}
		defer store.Close()
		retriever = store
	}

	detector, err := language.NewDetector(language.DefaultDetectorConfig())
	if err != nil {
		return fmt.Errorf("failed to build language detector: %w", err)
	}

	var renderStage *rendering.Stage
	if optPDF {
		renderer, err := rendering.NewChromedpRenderer(cfg.OutputDir, cfg.ChromePath)
		if err != nil {
			return fmt.Errorf("failed to create renderer: %w", err)
		}
		translator := language.NewTranslator(client, logger)
		renderStage = rendering.NewStage(renderer, detector, translator, logger, cfg.TemplateID)
	}

	var printer *observability.Printer
	if cfg.Verbose {
		printer = observability.NewPrinter(os.Stdout)
	}

	p := pipeline.New(
		compat.NewClassifier(client, logger),
		optimization.NewOptimizer(client, retriever, logger, optimization.Options{
			Collection:  cfg.Collection,
			RAGLimit:    cfg.RAGLimit,
			RAGMinScore: cfg.RAGMinScore,
		}),
		creative.NewBuilder(client, logger),
		renderStage,
		printer,
		logger,
	)

	// Step 8: Run
	result := p.Run(ctx, pipeline.Request{
		ResumeText:     resumeText,
		JobText:        jobText,
		TargetLanguage: language.Language(cfg.TargetLanguage),
	})

	fmt.Fprintln(os.Stdout, result.Content)

	if !result.Success {
		logger.Error("pipeline finished unsuccessfully", zap.String("mode", string(result.Mode)))
		return fmt.Errorf("optimization did not complete")
	}
	return nil
}
