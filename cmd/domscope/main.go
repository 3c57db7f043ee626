// Command domscope inspects component ownership in hybrid server-driven UIs.
//
// Usage:
//
//	domscope -html page.html -selector "#cart"            # chain for an element
//	domscope -url https://app.example.com -selector main  # fetch, then chain
//	domscope -url https://app.example.com -live -selector main
//	domscope -html page.html -selector span -contains "#cart"  # containment test
//	domscope -serve                                       # HTTP daemon (chi)
//	domscope -mcp                                         # MCP server on stdio
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hazyhaar/domscope/inspector"
)

func main() {
	configPath := flag.String("config", "", "path to domscope.yaml config file")
	htmlPath := flag.String("html", "", "inspect a local HTML snapshot file")
	pageURL := flag.String("url", "", "inspect a page fetched over HTTP")
	live := flag.Bool("live", false, "render -url in Chrome instead of a plain fetch")
	selector := flag.String("selector", "", "CSS selector of the element to resolve")
	containsRef := flag.String("contains", "", "test containment against this reference selector instead of resolving a chain")
	serve := flag.Bool("serve", false, "run the HTTP daemon")
	mcpMode := flag.Bool("mcp", false, "serve MCP tools on stdio")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	var level slog.Level
	switch *logLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := &inspector.Config{}
	if *configPath != "" {
		loaded, err := inspector.LoadConfigFile(*configPath)
		if err != nil {
			logger.Error("domscope: config", "error", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	insp := inspector.New(cfg, logger)
	defer insp.Close()

	var err error
	switch {
	case *serve:
		err = runServe(ctx, logger, cfg, insp)
	case *mcpMode:
		err = runMCP(ctx, insp)
	case *htmlPath != "" || *pageURL != "":
		err = runOnce(ctx, insp, *htmlPath, *pageURL, *live, *selector, *containsRef)
	default:
		fmt.Fprintln(os.Stderr, "usage: domscope -html <file> | -url <url> [-live] -selector <sel> [-contains <sel>] | -serve | -mcp")
		os.Exit(1)
	}
	if err != nil {
		logger.Error("domscope: fatal", "error", err)
		os.Exit(1)
	}
}

func runOnce(ctx context.Context, insp *inspector.Inspector, htmlPath, pageURL string, live bool, selector, containsRef string) error {
	if selector == "" {
		return fmt.Errorf("-selector is required")
	}

	var doc *inspector.Document
	var err error
	switch {
	case htmlPath != "":
		var src []byte
		src, err = os.ReadFile(htmlPath)
		if err != nil {
			return fmt.Errorf("read %s: %w", htmlPath, err)
		}
		doc, err = insp.LoadHTML(src)
	case live:
		doc, err = insp.LoadLive(ctx, pageURL)
	default:
		doc, err = insp.LoadURL(ctx, pageURL)
	}
	if err != nil {
		return err
	}

	var result any
	if containsRef != "" {
		contained, cErr := insp.Contains(doc, containsRef, selector)
		if cErr != nil {
			return cErr
		}
		result = map[string]bool{"contained": contained}
	} else {
		chain, cErr := insp.Chain(doc, selector)
		if cErr != nil {
			return cErr
		}
		result = map[string]any{"chain": chain}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func runServe(ctx context.Context, logger *slog.Logger, cfg *inspector.Config, insp *inspector.Inspector) error {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	insp.RegisterHTTP(r)

	srv := &http.Server{Addr: cfg.Server.Addr, Handler: r}

	go func() {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutCtx); err != nil {
			logger.Warn("domscope: shutdown", "error", err)
		}
	}()

	logger.Info("domscope: serving", "addr", cfg.Server.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

func runMCP(ctx context.Context, insp *inspector.Inspector) error {
	srv := mcp.NewServer(&mcp.Implementation{
		Name:    "domscope",
		Version: "1.0.0",
	}, nil)
	insp.RegisterMCP(srv)
	return srv.Run(ctx, &mcp.StdioTransport{})
}
