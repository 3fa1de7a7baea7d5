package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/kolah/humbler/internal/logz"
	"github.com/kolah/humbler/internal/model"
	"github.com/kolah/humbler/internal/render"
	"go.uber.org/zap"
)

const (
	defaultShutdownTimeout = 15 * time.Second
	requestTimeout         = 60 * time.Second
)

// DocumentFunc loads the document to catalog. It is called once per
// request, so edits to a local spec show up on reload.
type DocumentFunc func(ctx context.Context) (*model.Document, error)

type Settings struct {
	// Title heads the HTML page; the document title is used when empty.
	Title        string
	SwaggerUIURL string
	// Keywords always apply; ?keyword= query parameters add to them.
	Keywords []string
}

type Server struct {
	logger    *zap.Logger
	load      DocumentFunc
	renderer  *render.Renderer
	settings  Settings
	validator *requestValidator
	router    *chi.Mux
}

func New(logger *zap.Logger, load DocumentFunc, renderer *render.Renderer, settings Settings) (*Server, error) {
	v, err := newRequestValidator(OpenAPIDocument)
	if err != nil {
		return nil, err
	}

	s := &Server{
		logger:    logger,
		load:      load,
		renderer:  renderer,
		settings:  settings,
		validator: v,
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)

	// Request scoped logger
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			requestLogger := s.logger.With(zap.String("reqID", chimw.GetReqID(req.Context())))
			ctx := logz.WithLogger(req.Context(), requestLogger)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})

	r.Use(accessLog)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(requestTimeout))

	r.Get("/", s.handlePage)
	r.Get("/openapi.yaml", s.handleOpenAPI)
	r.Route("/api", func(r chi.Router) {
		r.Use(s.validator.Handler)
		r.Get("/operations", s.handleOperations)
	})

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		logz.FromContext(req.Context()).Debug("Unknown request", logz.Path(req.URL.Path))
		http.Error(w, "Unknown request", http.StatusNotFound)
	})

	return r
}

func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, req.ProtoMajor)
		next.ServeHTTP(ww, req)
		logz.FromContext(req.Context()).Info("Request served",
			logz.Method(req.Method),
			logz.Path(req.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	server := &http.Server{
		Handler:           s.router,
		MaxHeaderBytes:    1 << 20,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		defer close(errChan)
		s.logger.Info("Server starting", zap.String("address", ln.Addr().String()))
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("Server context cancelled, shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down server: %w", err)
		}
		s.logger.Info("Server stopped")
		return nil
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("serving http: %w", err)
		}
		return nil
	}
}
