// ABOUTME: CLI entrypoint for the Miravalle marketing site server.
// ABOUTME: Wires the content store, edit sessions, inquiry store, HTTP server, dashboard TUI, and signal handling.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/miravalle/website/content"
	"github.com/miravalle/website/editor"
	"github.com/miravalle/website/inquiry"
	"github.com/miravalle/website/site"
	"github.com/miravalle/website/tui"
)

var version = "dev"

const (
	maxEditSessions = 1000
	sessionTTL      = 24 * time.Hour
	cleanupInterval = 10 * time.Minute
)

func main() {
	loadDotEnv(".env")

	cfg := ConfigFromEnv()

	var (
		tuiMode     bool
		showVersion bool
	)

	fs := flag.NewFlagSet("miravalle", flag.ContinueOnError)
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "Listen address")
	fs.StringVar(&cfg.InquiryPath, "inquiries", cfg.InquiryPath, "SQLite file for contact inquiries (:memory: for none)")
	fs.StringVar(&cfg.ManifestPath, "content", cfg.ManifestPath, "Slot manifest YAML to load and live-reload (default: embedded)")
	fs.BoolVar(&tuiMode, "tui", false, "Run with the interactive content dashboard")
	fs.BoolVar(&showVersion, "version", false, "Print version and exit")

	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(2)
	}

	if showVersion {
		fmt.Printf("miravalle %s\n", version)
		os.Exit(0)
	}

	os.Exit(run(cfg, tuiMode))
}

// run builds the full server stack and serves until interrupted.
// Returns an exit code: 0 for success, 1 for failure.
func run(cfg *Config, tuiMode bool) int {
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	manifest, err := loadManifest(cfg.ManifestPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	registry := content.NewRegistry(manifest)

	// Live-reload only makes sense for a manifest on disk.
	if cfg.ManifestPath != "" {
		stop, err := registry.Watch(cfg.ManifestPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: manifest watch disabled: %v\n", err)
		} else {
			defer stop()
		}
	}

	contents := content.NewStore()

	sessions := editor.NewStore(maxEditSessions, sessionTTL)
	stopCleanup := sessions.StartCleanup(cleanupInterval)
	defer stopCleanup()

	inquiries, err := inquiry.Open(cfg.InquiryPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: open inquiry store: %v\n", err)
		return 1
	}
	defer inquiries.Close()

	server, err := site.NewServer(contents, registry, sessions, inquiries)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	httpServer := &http.Server{
		Addr:    cfg.Addr,
		Handler: server,
	}

	// Set up context with signal handling for graceful shutdown.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nInterrupted, shutting down...")
		cancel()
	}()

	if tuiMode {
		return serveWithDashboard(ctx, httpServer, contents, registry, inquiries, cfg.Addr)
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			httpServer.Close()
		}
	}()

	log.Printf("miravalle listening addr=%s inquiries=%s", cfg.Addr, cfg.InquiryPath)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	return 0
}

// serveWithDashboard runs the HTTP server in the background and the Bubble Tea
// dashboard in the foreground. Quitting the dashboard stops the server.
func serveWithDashboard(ctx context.Context, httpServer *http.Server, contents *content.Store, registry *content.Registry, inquiries *inquiry.SqliteStore, addr string) int {
	serverErr := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	model := tui.NewDashboardModel(contents, registry, inquiries, addr)
	p := tea.NewProgram(model, tea.WithAltScreen())

	// A signal or a server failure tears the dashboard down too.
	go func() {
		select {
		case <-ctx.Done():
			p.Quit()
		case err := <-serverErr:
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			p.Quit()
		}
	}()

	code := 0
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		code = 1
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		httpServer.Close()
	}

	return code
}

// loadManifest reads the slot manifest from disk, or falls back to the
// embedded defaults when no path was given.
func loadManifest(path string) (*content.Manifest, error) {
	if path == "" {
		return content.DefaultManifest()
	}
	return content.LoadManifestFile(path)
}
