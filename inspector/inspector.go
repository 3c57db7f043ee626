// Package inspector wires the resolution core to document acquisition and
// exposes it over HTTP and MCP. It answers, for an element of an acquired
// page, which server-managed components own it (outermost first) and whether
// one element's subtree contains another across shadow boundaries.
//
// Usage:
//
//	insp := inspector.New(cfg, logger)
//	defer insp.Close()
//	insp.RegisterHTTP(router)
//	insp.RegisterMCP(mcpServer)
package inspector

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/hazyhaar/domscope/compref"
	"github.com/hazyhaar/domscope/domreg"
	"github.com/hazyhaar/domscope/domtree"
	"github.com/hazyhaar/domscope/pagesource"
)

// ErrNoMatch is returned when a selector matches no element in a document.
var ErrNoMatch = errors.New("inspector: no matching element")

// Inspector is the orchestrator. Create one per daemon or CLI invocation.
type Inspector struct {
	cfg     *Config
	fetcher *pagesource.Fetcher
	live    *pagesource.Live
	logger  *slog.Logger
}

// New creates an Inspector from configuration.
func New(cfg *Config, logger *slog.Logger) *Inspector {
	if cfg == nil {
		cfg = &Config{}
	}
	cfg.applyDefaults()
	if logger == nil {
		logger = slog.Default()
	}

	fetchOpts := []pagesource.Option{
		pagesource.WithLogger(logger),
		pagesource.WithClient(&http.Client{Timeout: cfg.Fetch.Timeout}),
	}
	if cfg.Fetch.UserAgent != "" {
		fetchOpts = append(fetchOpts, pagesource.WithUserAgent(cfg.Fetch.UserAgent))
	}

	return &Inspector{
		cfg:     cfg,
		fetcher: pagesource.NewFetcher(fetchOpts...),
		live: pagesource.NewLive(pagesource.LiveConfig{
			RemoteURL: cfg.Browser.Remote,
			Stealth:   cfg.Browser.Stealth,
		}, logger),
		logger: logger,
	}
}

// Close releases the live browser if one was started.
func (i *Inspector) Close() {
	i.live.Close()
}

// Document is one inspectable snapshot: the parsed tree plus the registry
// environment scanned from it. Valid only for the snapshot it was built
// from; re-acquire after the page changes.
type Document struct {
	Root     *domtree.Node
	Env      *compref.Environment
	PageURL  string
	LoadedAt time.Time
}

// ChainEntry is one resolved component in inspector output.
type ChainEntry struct {
	NodeID int    `json:"node_id"`
	UIID   int    `json:"ui_id"`
	Tag    string `json:"tag"`
	Path   string `json:"path"`
}

// LoadHTML builds a Document from raw snapshot HTML.
func (i *Inspector) LoadHTML(htmlSrc []byte) (*Document, error) {
	root, err := domtree.Parse(bytes.NewReader(htmlSrc))
	if err != nil {
		return nil, err
	}
	return i.newDocument(root, ""), nil
}

// LoadURL fetches a page over plain HTTP and builds its Document.
func (i *Inspector) LoadURL(ctx context.Context, pageURL string) (*Document, error) {
	snap, err := i.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	root, err := domtree.Parse(bytes.NewReader(snap.HTML))
	if err != nil {
		return nil, err
	}
	return i.newDocument(root, pageURL), nil
}

// LoadLive renders a page in Chrome and builds its Document, shadow roots
// included.
func (i *Inspector) LoadLive(ctx context.Context, pageURL string) (*Document, error) {
	snap, err := i.live.Capture(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	root, err := domtree.Parse(bytes.NewReader(snap.HTML))
	if err != nil {
		return nil, err
	}
	return i.newDocument(root, pageURL), nil
}

func (i *Inspector) newDocument(root *domtree.Node, pageURL string) *Document {
	env := domreg.Scan(root, domreg.ScanOptions{
		NodeIDAttr: i.cfg.NodeIDAttr,
		UIIDAttr:   i.cfg.UIIDAttr,
	})
	i.logger.Debug("inspector: document loaded",
		"url", pageURL, "registries", len(env.Handles()))
	return &Document{Root: root, Env: env, PageURL: pageURL, LoadedAt: time.Now()}
}

// Chain resolves the owning-component chain for the first element matching
// selector, outermost first.
func (i *Inspector) Chain(doc *Document, selector string) ([]ChainEntry, error) {
	el := domtree.First(doc.Root, selector)
	if el == nil {
		return nil, fmt.Errorf("%w: %q", ErrNoMatch, selector)
	}

	resolver := compref.NewResolver(doc.Env,
		compref.WithBoundary(compref.TagPrefixBoundary(i.cfg.BoundaryPrefix)))

	refs := resolver.OwningComponents(el)
	entries := make([]ChainEntry, 0, len(refs))
	for _, r := range refs {
		entries = append(entries, ChainEntry{
			NodeID: r.NodeID,
			UIID:   r.UIID,
			Tag:    r.Element.Tag,
			Path:   domtree.Path(r.Element),
		})
	}
	return entries, nil
}

// Contains reports whether the first element matching nodeSelector lies
// within the subtree of the first element matching refSelector, crossing
// shadow boundaries.
func (i *Inspector) Contains(doc *Document, refSelector, nodeSelector string) (bool, error) {
	ref := domtree.First(doc.Root, refSelector)
	if ref == nil {
		return false, fmt.Errorf("%w: %q", ErrNoMatch, refSelector)
	}
	node := domtree.First(doc.Root, nodeSelector)
	if node == nil {
		return false, fmt.Errorf("%w: %q", ErrNoMatch, nodeSelector)
	}
	return domtree.Contains(ref, node), nil
}
