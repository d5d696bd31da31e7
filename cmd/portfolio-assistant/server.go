package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/wastrilith2k/portfolio-assistant/internal/anthropic"
	"github.com/wastrilith2k/portfolio-assistant/internal/api"
	"github.com/wastrilith2k/portfolio-assistant/internal/assistant"
	"github.com/wastrilith2k/portfolio-assistant/internal/composer"
	"github.com/wastrilith2k/portfolio-assistant/internal/config"
	"github.com/wastrilith2k/portfolio-assistant/internal/portfolio"
	"github.com/wastrilith2k/portfolio-assistant/internal/storage"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the assistant server (foreground)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running assistant server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return stopServer()
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show assistant system status",
	RunE: func(cmd *cobra.Command, args []string) error {
		return showStatus()
	},
}

func pidFilePath(dataDir string) string {
	return filepath.Join(dataDir, "portfolio-assistant.pid")
}

func writePIDFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())), 0o644)
}

func readPIDFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(string(data)))
}

func removePIDFile(path string) {
	os.Remove(path)
}

func runServer() error {
	fmt.Fprintf(os.Stderr, "portfolio-assistant version %s\n", version)

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logLevel := slog.LevelInfo
	if strings.EqualFold(cfg.Log.Level, "debug") {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	if cfg.Anthropic.APIKey == "" {
		return fmt.Errorf("missing Anthropic API key: set PORTFOLIO_ANTHROPIC_API_KEY or add it to the platform secret store")
	}
	if cfg.Admin.Token == "" {
		printWarning("no admin token configured; the admin API is disabled")
	}

	// Check for an already-running instance via the health endpoint before
	// claiming the PID file.
	pidPath := pidFilePath(cfg.Storage.DataDir)
	healthURL := fmt.Sprintf("http://127.0.0.1:%d/health", cfg.Server.Port)
	healthClient := &http.Client{Timeout: 2 * time.Second}
	if resp, err := healthClient.Get(healthURL); err == nil {
		resp.Body.Close()
		if pid, pidErr := readPIDFile(pidPath); pidErr == nil {
			printWarning("portfolio-assistant is already running (PID %d)", pid)
			return fmt.Errorf("server already running (PID %d)", pid)
		}
		printWarning("portfolio-assistant is already running on port %d", cfg.Server.Port)
		return fmt.Errorf("server already running on port %d", cfg.Server.Port)
	}
	if err := writePIDFile(pidPath); err != nil {
		return fmt.Errorf("writing PID file: %w", err)
	}
	defer removePIDFile(pidPath)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := storage.Open(cfg.Storage.DataDir)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: closing storage: %v\n", err)
		}
	}()

	manager := portfolio.NewManager(store)

	var client *anthropic.Client
	if cfg.Anthropic.BaseURL != "" {
		client = anthropic.NewClientWithBaseURL(cfg.Anthropic.APIKey, cfg.Anthropic.Model, cfg.Anthropic.BaseURL)
	} else {
		client = anthropic.NewClient(cfg.Anthropic.APIKey, cfg.Anthropic.Model)
	}

	asst := assistant.New(client, manager, composer.New(0), store)

	handler := api.NewHandler(api.Deps{
		Assistant:  asst,
		Portfolio:  manager,
		Store:      store,
		AdminToken: cfg.Admin.Token,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	})

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// MCP server over stdio, alongside the HTTP API.
	mcpSrv := api.NewMCPServer(api.MCPDeps{
		Assistant: asst,
		Portfolio: manager,
		Store:     store,
	})
	stdioSrv := server.NewStdioServer(mcpSrv)
	go func() {
		if err := stdioSrv.Listen(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("MCP stdio server error", "error", err)
		}
	}()
	slog.Info("MCP server started (stdio transport)")

	errCh := make(chan error, 1)
	go func() {
		slog.Info("serving chat API", "addr", addr, "model", client.Model())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		fmt.Fprintln(os.Stderr, "shutting down...")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func stopServer() error {
	cfg, err := config.Load()
	if err != nil {
		printError("could not load config: %v", err)
		return err
	}

	pidPath := pidFilePath(cfg.Storage.DataDir)
	pid, err := readPIDFile(pidPath)
	if err != nil {
		printError("portfolio-assistant is not running (no PID file)")
		return fmt.Errorf("not running: %w", err)
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		printError("could not find process %d", pid)
		return err
	}

	if err := process.Signal(syscall.SIGTERM); err != nil {
		printError("could not stop portfolio-assistant (PID %d): %v", pid, err)
		removePIDFile(pidPath)
		return err
	}

	printSuccess("Sent stop signal to portfolio-assistant (PID %d)", pid)
	return nil
}

func showStatus() error {
	cfg, err := config.Load()
	if err != nil {
		printError("config error: %v", err)
		return nil
	}

	serverURL := fmt.Sprintf("http://127.0.0.1:%d", cfg.Server.Port)
	client := &http.Client{Timeout: 2 * time.Second}

	resp, err := client.Get(serverURL + "/health")
	running := false
	if err != nil {
		printStatus("Server", "stopped")
	} else {
		resp.Body.Close()
		if resp.StatusCode == 200 {
			running = true
			printStatus("Server", "running on port %d", cfg.Server.Port)
		} else {
			printStatus("Server", "error (HTTP %d)", resp.StatusCode)
		}
	}

	printStatus("Model", "%s", cfg.Anthropic.Model)
	if cfg.Anthropic.APIKey == "" {
		printStatus("Anthropic key", "missing")
	} else {
		printStatus("Anthropic key", "configured")
	}
	if cfg.Admin.Token == "" {
		printStatus("Admin API", "disabled (no token)")
	} else {
		printStatus("Admin API", "enabled")
	}

	if running && cfg.Admin.Token != "" {
		req, _ := http.NewRequest("GET", serverURL+"/api/admin/interactions?limit=100", nil)
		req.Header.Set("Authorization", "Bearer "+cfg.Admin.Token)
		if ixResp, err := client.Do(req); err == nil {
			var interactions []json.RawMessage
			if json.NewDecoder(ixResp.Body).Decode(&interactions) == nil {
				printStatus("Interactions", "%s", countLabel(len(interactions), 100))
			}
			ixResp.Body.Close()
		}
	}

	printStatus("Data dir", "%s", cfg.Storage.DataDir)
	return nil
}

func countLabel(count, limit int) string {
	if count >= limit {
		return fmt.Sprintf("%d+", count)
	}
	return fmt.Sprintf("%d", count)
}
