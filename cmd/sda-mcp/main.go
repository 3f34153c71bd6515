// Command sda-mcp bridges the Sudan Digital Archive API into MCP tools.
// It serves the tool catalogue over stdio by default; logs go to stderr
// so stdout stays reserved for the protocol channel.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/sudandigitalarchive/sda-mcp/internal/archive"
	"github.com/sudandigitalarchive/sda-mcp/internal/bridge"
	"github.com/sudandigitalarchive/sda-mcp/internal/config"
	"github.com/sudandigitalarchive/sda-mcp/internal/telemetry"
)

var (
	version   = "dev"
	gitCommit = ""
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath    string
		apiKey        string
		baseURL       string
		timeout       time.Duration
		transport     string
		listen        string
		metricsListen string
		logLevel      string
		allowlistCSV  string
		showVersion   bool
	)

	cmd := &cobra.Command{
		Use:           "sda-mcp",
		Short:         "MCP server for the Sudan Digital Archive API",
		Long:          "sda-mcp exposes the Sudan Digital Archive's accession and subject operations as MCP tools, translating each tool call into one authenticated HTTP request.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if showVersion {
				fmt.Printf("sda-mcp %s", version)
				if gitCommit != "" {
					fmt.Printf(" (%s)", gitCommit)
				}
				fmt.Println()
				return nil
			}

			cfg := config.Default()
			if configPath != "" {
				if err := config.LoadFile(configPath, &cfg); err != nil {
					return err
				}
			}
			cfg.FromEnv()

			// Flags set explicitly on the command line win over
			// file and env values.
			flags := cmd.Flags()
			if flags.Changed("api-key") {
				cfg.APIKey = apiKey
			}
			if flags.Changed("base-url") {
				cfg.BaseURL = baseURL
			}
			if flags.Changed("timeout") {
				cfg.Timeout = timeout
			}
			if flags.Changed("transport") {
				cfg.Transport = transport
			}
			if flags.Changed("listen") {
				cfg.Listen = listen
			}
			if flags.Changed("metrics-listen") {
				cfg.MetricsListen = metricsListen
			}
			if flags.Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if flags.Changed("tool-allowlist") {
				cfg.ToolAllowlist = config.SplitCSV(allowlistCSV)
			}

			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to a YAML config file")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "archive API key (env: SDA_API_KEY)")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "archive API base URL (default: production endpoint)")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "per-call HTTP timeout")
	cmd.Flags().StringVar(&transport, "transport", config.TransportStdio, "serving transport: stdio or http")
	cmd.Flags().StringVar(&listen, "listen", "127.0.0.1:8420", "bind address for the http transport")
	cmd.Flags().StringVar(&metricsListen, "metrics-listen", "", "bind address for the diagnostics server (disabled when empty)")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, or error")
	cmd.Flags().StringVar(&allowlistCSV, "tool-allowlist", "", "comma-separated tool names to expose (default: all)")
	cmd.Flags().BoolVar(&showVersion, "version", false, "print version and exit")

	return cmd
}

func run(cfg config.Config) error {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}))
	logger.Info("starting sda-mcp", "version", version)
	logger.Info("effective config", "config", cfg.Redacted())

	client := archive.NewClient(cfg.BaseURL, cfg.APIKey, archive.WithTimeout(cfg.Timeout))
	handlers := bridge.NewHandlers(client, logger)

	srv := server.NewMCPServer(
		"sda-mcp",
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions("This server provides tools to interact with the Sudan Digital Archive API."),
	)
	if err := bridge.Register(srv, handlers, cfg.ToolAllowlist); err != nil {
		return err
	}

	errCh := make(chan error, 2)

	var metricsSrv *telemetry.Server
	if cfg.MetricsListen != "" {
		metricsSrv = telemetry.NewServer(cfg.MetricsListen, logger)
		go func() { errCh <- metricsSrv.ListenAndServe() }()
	}

	var httpSrv *server.StreamableHTTPServer
	switch cfg.Transport {
	case config.TransportHTTP:
		httpSrv = server.NewStreamableHTTPServer(srv)
		logger.Info("mcp server starting", "transport", "http", "addr", cfg.Listen)
		go func() { errCh <- httpSrv.Start(cfg.Listen) }()
	default:
		logger.Info("mcp server starting", "transport", "stdio")
		go func() { errCh <- server.ServeStdio(srv) }()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("shutting down", "signal", sig.String())
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", "err", err)
			return err
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if httpSrv != nil {
		httpSrv.Shutdown(ctx)
	}
	if metricsSrv != nil {
		metricsSrv.Shutdown(ctx)
	}
	logger.Info("shutdown complete")
	return nil
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
