package trafficqa

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vietlaw/trafficqa"
	"github.com/vietlaw/trafficqa/pkg/config"
	"github.com/vietlaw/trafficqa/pkg/embedder"
	"github.com/vietlaw/trafficqa/pkg/graph"
	qalogger "github.com/vietlaw/trafficqa/pkg/logger"
	"github.com/vietlaw/trafficqa/pkg/server"
	"github.com/vietlaw/trafficqa/pkg/telemetry"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the TrafficQA HTTP server",
	Long: `Start the TrafficQA HTTP server to provide REST API access to the QA engine.

The server provides endpoints for:
- Asking questions about traffic violations
- Listing similar violations for a behavior
- Graph statistics
- Health checks

Configuration can be provided through config files, environment variables, or command-line flags.`,
	RunE: runServer,
}

var (
	serverHost string
	serverPort int
	serverMode string
)

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().StringVar(&serverHost, "host", "localhost", "Server host")
	serverCmd.Flags().IntVar(&serverPort, "port", 8080, "Server port")
	serverCmd.Flags().StringVar(&serverMode, "mode", "debug", "Server mode (debug, release, test)")

	serverCmd.Flags().String("embedding-model", "text-embedding-3-small", "Embedding model")
	serverCmd.Flags().String("embedding-api-key", "", "Embedding API key")
	serverCmd.Flags().String("embedding-base-url", "", "Embedding base URL")

	serverCmd.Flags().String("telemetry-parquet-path", "", "Path to directory for the Parquet query log")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	overrideConfigWithFlags(cmd, cfg)

	if err := validateServerConfig(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	client, cleanup, err := initializeClient(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize client: %w", err)
	}
	defer cleanup()

	srv := server.New(cfg, client)
	srv.Setup()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			serverErrChan <- err
		}
	}()

	select {
	case err := <-serverErrChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		fmt.Printf("\nReceived signal: %v\n", sig)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Stop(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}

		fmt.Println("Server stopped gracefully")
		return nil
	}
}

func overrideConfigWithFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("host") {
		cfg.Server.Host = serverHost
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = serverPort
	}
	if cmd.Flags().Changed("mode") {
		cfg.Server.Mode = serverMode
	}

	if cmd.Flags().Changed("embedding-model") {
		cfg.Embedding.Model, _ = cmd.Flags().GetString("embedding-model")
	}
	if cmd.Flags().Changed("embedding-api-key") {
		cfg.Embedding.APIKey, _ = cmd.Flags().GetString("embedding-api-key")
	}
	if cmd.Flags().Changed("embedding-base-url") {
		cfg.Embedding.BaseURL, _ = cmd.Flags().GetString("embedding-base-url")
	}

	if cmd.Flags().Changed("telemetry-parquet-path") {
		cfg.Telemetry.ParquetPath, _ = cmd.Flags().GetString("telemetry-parquet-path")
	}
}

func validateServerConfig(cfg *config.Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", cfg.Server.Port)
	}
	if cfg.Corpus.Path == "" {
		return fmt.Errorf("corpus path is required")
	}
	return nil
}

// initializeClient builds the graph, the embedder and the QA client from
// configuration. The returned cleanup closes telemetry and external
// connections.
func initializeClient(cfg *config.Config) (*trafficqa.Client, func(), error) {
	logger := qalogger.NewDefaultLogger(parseLevel(cfg.Log.Level))

	records, err := graph.LoadRecords(cfg.Corpus.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("load corpus: %w", err)
	}

	store := graph.NewStore()
	if err := store.Build(records); err != nil {
		return nil, nil, fmt.Errorf("build graph: %w", err)
	}
	stats := store.Stats()
	logger.Info("knowledge graph built", "nodes", stats.TotalNodes, "edges", stats.TotalEdges)

	var cleanups []func()
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	// Mirror the graph into Neo4j when configured. The in-memory store stays
	// authoritative for answering.
	if cfg.Neo4j.Enabled {
		loader, err := graph.NewNeo4jLoader(cfg.Neo4j.URI, cfg.Neo4j.Username, cfg.Neo4j.Password, cfg.Neo4j.Database)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("connect neo4j: %w", err)
		}
		cleanups = append(cleanups, func() { loader.Close(context.Background()) })

		loadCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		if err := loader.BulkLoad(loadCtx, store); err != nil {
			logger.Warn("neo4j bulk load failed", "error", err)
		} else {
			logger.Info("graph mirrored to neo4j", "uri", cfg.Neo4j.URI)
		}
		cancel()
	}

	var emb embedder.Client
	if cfg.Embedding.APIKey != "" {
		base := embedder.NewOpenAIEmbedder(cfg.Embedding.APIKey, embedder.Config{
			Model:   cfg.Embedding.Model,
			BaseURL: cfg.Embedding.BaseURL,
		})
		if cfg.CircuitBreaker.Enabled {
			emb = embedder.NewCircuitBreakerClient(base, embedder.BreakerConfig{
				MaxRequests:      cfg.CircuitBreaker.MaxRequests,
				Interval:         time.Duration(cfg.CircuitBreaker.Interval) * time.Second,
				Timeout:          time.Duration(cfg.CircuitBreaker.Timeout) * time.Second,
				ReadyToTripRatio: cfg.CircuitBreaker.ReadyToTripRatio,
			})
		} else {
			emb = base
		}
		cleanups = append(cleanups, func() { emb.Close() })
	} else {
		logger.Warn("no embedding API key configured, running in keyword-only mode")
	}

	opts := []trafficqa.Option{trafficqa.WithLogger(logger)}
	if cfg.Telemetry.ParquetPath != "" {
		recorder, err := telemetry.NewRecorder(cfg.Telemetry.ParquetPath)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("init telemetry: %w", err)
		}
		cleanups = append(cleanups, func() { recorder.Close() })
		opts = append(opts, trafficqa.WithRecorder(recorder))
	}

	qaConfig := &trafficqa.Config{
		SimilarityThreshold: cfg.Reasoning.SimilarityThreshold,
		HighConfidence:      cfg.Reasoning.HighConfidence,
		MediumConfidence:    cfg.Reasoning.MediumConfidence,
		TopK:                cfg.Reasoning.TopK,
		SimilarLimit:        cfg.Reasoning.SimilarLimit,
	}

	client, err := trafficqa.NewClient(store, emb, qaConfig, opts...)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	if emb != nil {
		indexCtx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		err := client.Index(indexCtx)
		cancel()
		if err != nil {
			// keyword fallback keeps the server usable
			logger.Warn("corpus indexing failed, keyword fallback active", "error", err)
		}
	}

	return client, cleanup, nil
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
