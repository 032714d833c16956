// Package web serves the capture gallery over HTTP.
package web

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/andresmejia3/smilecam/internal/gallery"
	"github.com/andresmejia3/smilecam/internal/types"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Catalog is the optional database side of the gallery.
type Catalog interface {
	ListCaptures(ctx context.Context) ([]types.Capture, error)
	ListSessions(ctx context.Context) ([]types.Session, error)
	DeleteCapture(ctx context.Context, name string) error
	ClearCaptures(ctx context.Context) error
}

// Server is the gallery API.
type Server struct {
	app     *fiber.App
	gallery *gallery.Gallery
	catalog Catalog
	log     *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithCatalog merges catalog data into listings and keeps it in sync on
// deletes.
func WithCatalog(c Catalog) Option {
	return func(s *Server) { s.catalog = c }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.log = l }
}

// NewServer creates the gallery server. Access logs go to accessLog; nil
// disables them.
func NewServer(g *gallery.Gallery, accessLog io.Writer, opts ...Option) *Server {
	s := &Server{gallery: g, log: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}

	app := fiber.New(fiber.Config{
		AppName:               "smilecam gallery",
		DisableStartupMessage: true,
		ErrorHandler:          s.handleError,
	})

	app.Use(recover.New())
	app.Use(cors.New())
	if accessLog != nil {
		app.Use(logger.New(logger.Config{Output: accessLog}))
	}

	app.Get("/health", s.handleHealth)
	app.Get("/captures/:name", s.handleImage)

	api := app.Group("/api")
	api.Get("/captures", s.handleList)
	api.Delete("/captures/:name", s.handleDelete)
	api.Delete("/captures", s.handleClear)
	api.Get("/sessions", s.handleSessions)

	s.app = app
	return s
}

// App exposes the fiber app, mainly for tests.
func (s *Server) App() *fiber.App { return s.app }

// Listen blocks serving on addr until Shutdown.
func (s *Server) Listen(addr string) error {
	s.log.Info("gallery server listening", "addr", addr, "dir", s.gallery.Dir)
	return s.app.Listen(addr)
}

// Shutdown stops the server, waiting for open requests until ctx is done.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		code = fe.Code
	case errors.Is(err, gallery.ErrInvalidName):
		code = fiber.StatusBadRequest
	case errors.Is(err, gallery.ErrNotFound):
		code = fiber.StatusNotFound
	}
	if code >= fiber.StatusInternalServerError {
		s.log.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
	}
	return c.Status(code).JSON(types.ErrorResult{Error: err.Error()})
}
