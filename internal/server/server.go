// Package server provides the HTTP surface of the site: the landing page,
// the chat demo stream, the contact form handler and runtime stats.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/raphaelgruber/aisite-go/internal/chat"
	"github.com/raphaelgruber/aisite-go/internal/client"
	"github.com/raphaelgruber/aisite-go/internal/components"
	"github.com/raphaelgruber/aisite-go/internal/metrics"
	"github.com/raphaelgruber/aisite-go/internal/models"
	"github.com/raphaelgruber/aisite-go/internal/search"
)

//go:embed static
var staticFiles embed.FS

const shutdownTimeout = 10 * time.Second

// entryCacheSize bounds the rendered-entry cache shared by all streams.
const entryCacheSize = 1024

// suggestCacheSize bounds the rendered search fragment cache.
const suggestCacheSize = 512

// LeadSubmitter forwards contact-form leads to the lead API.
type LeadSubmitter interface {
	SubmitLead(ctx context.Context, lead client.Lead) (*client.Ack, error)
}

// GroupLister lists the persona groups shown as tabs.
type GroupLister interface {
	Groups() []models.Group
}

// Deps holds the server's collaborators.
type Deps struct {
	Groups       GroupLister
	Timelines    chat.Timelines
	Leads        LeadSubmitter
	Metrics      *metrics.Collector
	Chat         chat.Config
	DefaultGroup models.GroupKey
	Content      components.SiteContent
	// Search defaults to the catalog compiled into the binary.
	Search *search.Catalog
	Logger *slog.Logger
}

// Server serves the site.
type Server struct {
	groups       GroupLister
	timelines    chat.Timelines
	leads        LeadSubmitter
	metrics      *metrics.Collector
	chatCfg      chat.Config
	defaultGroup models.GroupKey
	content      components.SiteContent
	search       *search.Catalog
	logger       *slog.Logger

	router      chi.Router
	upgrader    websocket.Upgrader
	entries     *lru.Cache[string, string]
	suggestions *lru.Cache[string, string]

	closing   chan struct{}
	closeOnce sync.Once
}

// New creates a Server with all routes registered.
func New(d Deps) (*Server, error) {
	if d.Groups == nil || d.Timelines == nil || d.Leads == nil {
		return nil, errors.New("server: groups, timelines and leads are required")
	}
	if d.Metrics == nil {
		d.Metrics = metrics.NewCollector()
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.DefaultGroup == "" {
		d.DefaultGroup = models.DefaultGroup
	}
	if d.Content.Brand == "" {
		d.Content = components.DefaultContent
	}
	if d.Chat.Logger == nil {
		d.Chat.Logger = d.Logger
	}
	if d.Search == nil {
		catalog, err := search.Default()
		if err != nil {
			return nil, fmt.Errorf("load search catalog: %w", err)
		}
		d.Search = catalog
	}

	entries, err := lru.New[string, string](entryCacheSize)
	if err != nil {
		return nil, fmt.Errorf("create entry cache: %w", err)
	}
	suggestions, err := lru.New[string, string](suggestCacheSize)
	if err != nil {
		return nil, fmt.Errorf("create suggestion cache: %w", err)
	}

	s := &Server{
		groups:       d.Groups,
		timelines:    d.Timelines,
		leads:        d.Leads,
		metrics:      d.Metrics,
		chatCfg:      d.Chat,
		defaultGroup: d.DefaultGroup,
		content:      d.Content,
		search:       d.Search,
		logger:       d.Logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		entries:     entries,
		suggestions: suggestions,
		closing:     make(chan struct{}),
	}
	s.router = s.buildRouter()
	return s, nil
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(LoggingMiddleware(s.logger))

	r.Get("/", s.handlePage)
	r.Get("/health", s.handleHealth)
	r.Get("/stats", s.handleStats)
	r.Post("/contact", s.handleContact)

	r.Route("/chat", func(r chi.Router) {
		r.Get("/snapshot", s.handleSnapshot)
		r.Get("/ws", s.handleStream)
	})
	r.Get("/search/suggest", s.handleSuggest)

	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		// The embedded tree is fixed at build time.
		panic(err)
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(sub))))

	return r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
// Open demo streams are told to close when shutdown begins.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	httpServer.RegisterOnShutdown(s.closeStreams)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen %s: %w", addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) closeStreams() {
	s.closeOnce.Do(func() { close(s.closing) })
}
