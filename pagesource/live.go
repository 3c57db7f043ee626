package pagesource

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hazyhaar/domscope/pagesource/internal/browser"
)

// LiveConfig configures a Live capture source.
type LiveConfig struct {
	// RemoteURL is the WebSocket URL of an external Chrome. Empty = launch
	// a local headless Chrome.
	RemoteURL string
	// Stealth applies stealth evasions to capture pages.
	Stealth bool
	// NavTimeout bounds navigation. Default 30s.
	NavTimeout time.Duration
}

// Live captures rendered pages through Chrome. Use it for pages whose
// component markup and shadow roots only exist after client-side rendering.
type Live struct {
	mgr    *browser.Manager
	logger *slog.Logger
}

// NewLive creates a Live source. Chrome starts on the first Capture.
func NewLive(cfg LiveConfig, logger *slog.Logger) *Live {
	if logger == nil {
		logger = slog.Default()
	}
	return &Live{
		mgr: browser.NewManager(browser.Config{
			RemoteURL:  cfg.RemoteURL,
			Stealth:    cfg.Stealth,
			NavTimeout: cfg.NavTimeout,
			Logger:     logger,
		}),
		logger: logger,
	}
}

// Capture renders pageURL in Chrome and returns the serialized snapshot,
// open shadow roots included.
func (l *Live) Capture(ctx context.Context, pageURL string) (*Snapshot, error) {
	if err := l.mgr.Start(ctx); err != nil {
		return nil, err
	}

	html, err := l.mgr.CaptureHTML(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("pagesource: capture %s: %w", pageURL, err)
	}

	l.logger.Debug("pagesource: captured", "url", pageURL, "size", len(html))

	return &Snapshot{
		ID:        uuid.NewString(),
		PageURL:   pageURL,
		HTML:      html,
		FetchedAt: time.Now(),
	}, nil
}

// Close shuts down the browser.
func (l *Live) Close() {
	l.mgr.Close()
}
