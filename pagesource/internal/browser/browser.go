// Package browser manages a Chrome instance via Rod for snapshot capture:
// launch or connect, open a (optionally stealth) page, serialize the
// rendered DOM including open shadow roots, close.
package browser

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
)

// Config configures the browser manager.
type Config struct {
	// RemoteURL is the WebSocket URL of an external Chrome instance.
	// Empty = launch a local headless Chrome via launcher.
	RemoteURL string

	// Stealth applies the stealth evasions to new pages.
	Stealth bool

	// NavTimeout bounds navigation and load waiting. Default: 30s.
	NavTimeout time.Duration

	Logger *slog.Logger
}

func (c *Config) defaults() {
	if c.NavTimeout <= 0 {
		c.NavTimeout = 30 * time.Second
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Manager owns the Chrome lifecycle.
type Manager struct {
	cfg     Config
	mu      sync.Mutex
	browser *rod.Browser
	lnch    *launcher.Launcher
	closed  bool
}

// NewManager creates a Manager. Call Start to launch or connect Chrome.
func NewManager(cfg Config) *Manager {
	cfg.defaults()
	return &Manager{cfg: cfg}
}

// Start launches Chrome (or connects to RemoteURL) lazily on first use.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return fmt.Errorf("browser: manager is closed")
	}
	if m.browser != nil {
		return nil
	}

	controlURL := m.cfg.RemoteURL
	if controlURL == "" {
		l := launcher.New().Headless(true)
		u, err := l.Launch()
		if err != nil {
			return fmt.Errorf("browser: launch: %w", err)
		}
		m.lnch = l
		controlURL = u
	}

	b := rod.New().ControlURL(controlURL).Context(ctx)
	if err := b.Connect(); err != nil {
		return fmt.Errorf("browser: connect: %w", err)
	}
	m.browser = b
	m.cfg.Logger.Info("browser: connected", "remote", m.cfg.RemoteURL != "")
	return nil
}

// CaptureHTML navigates a fresh tab to pageURL and returns the rendered DOM
// serialized as HTML with open shadow roots emitted as declarative
// <template shadowrootmode="open"> subtrees. Closed shadow roots are not
// reachable from page JS and are omitted, as they are in any serialization.
func (m *Manager) CaptureHTML(ctx context.Context, pageURL string) ([]byte, error) {
	m.mu.Lock()
	b := m.browser
	m.mu.Unlock()
	if b == nil {
		return nil, fmt.Errorf("browser: not started")
	}

	var page *rod.Page
	var err error
	if m.cfg.Stealth {
		page, err = stealth.Page(b)
	} else {
		page, err = b.Page(proto.TargetCreateTarget{URL: ""})
	}
	if err != nil {
		return nil, fmt.Errorf("browser: create tab: %w", err)
	}
	defer page.Close()

	navCtx, cancel := context.WithTimeout(ctx, m.cfg.NavTimeout)
	defer cancel()

	if err := page.Context(navCtx).Navigate(pageURL); err != nil {
		return nil, fmt.Errorf("browser: navigate %s: %w", pageURL, err)
	}
	if err := page.Context(navCtx).WaitLoad(); err != nil {
		m.cfg.Logger.Warn("browser: wait load timeout", "url", pageURL, "error", err)
	}

	res, err := page.Context(navCtx).Eval(serializeJS)
	if err != nil {
		return nil, fmt.Errorf("browser: serialize DOM: %w", err)
	}
	return []byte(res.Value.Str()), nil
}

// Close shuts down the browser and the local Chrome process if one was
// launched.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}
	m.closed = true

	if m.browser != nil {
		if err := m.browser.Close(); err != nil {
			m.cfg.Logger.Warn("browser: close", "error", err)
		}
		m.browser = nil
	}
	if m.lnch != nil {
		m.lnch.Cleanup()
		m.lnch = nil
	}
}

// serializeJS rebuilds the page's outer HTML, emitting each open shadow root
// as a declarative template so the snapshot round-trips through the HTML
// parser with its shadow trees intact.
const serializeJS = `() => {
	const esc = (s) => s.replace(/&/g, '&amp;').replace(/</g, '&lt;');
	const escAttr = (s) => s.replace(/&/g, '&amp;').replace(/"/g, '&quot;');
	const ser = (node) => {
		if (node.nodeType === Node.TEXT_NODE) return esc(node.textContent);
		if (node.nodeType === Node.COMMENT_NODE) return '<!--' + node.textContent + '-->';
		if (node.nodeType !== Node.ELEMENT_NODE) return '';
		const tag = node.tagName.toLowerCase();
		let out = '<' + tag;
		for (const a of node.attributes) out += ' ' + a.name + '="' + escAttr(a.value) + '"';
		out += '>';
		if (node.shadowRoot) {
			out += '<template shadowrootmode="open">';
			for (const c of node.shadowRoot.childNodes) out += ser(c);
			out += '</template>';
		}
		for (const c of node.childNodes) out += ser(c);
		return out + '</' + tag + '>';
	};
	return '<!DOCTYPE html>' + ser(document.documentElement);
}`
