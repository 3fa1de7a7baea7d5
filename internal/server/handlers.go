package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/kolah/humbler/internal/catalog"
	"github.com/kolah/humbler/internal/loader"
	"github.com/kolah/humbler/internal/logz"
	"github.com/kolah/humbler/internal/render"
	"go.uber.org/zap"
)

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	s.serveCatalog(w, r, "html", s.respondWithText)
}

func (s *Server) handleOperations(w http.ResponseWriter, r *http.Request) {
	s.serveCatalog(w, r, "json", s.respondWithJSON)
}

func (s *Server) handleOpenAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(OpenAPIDocument) // nolint
}

type errorResponder func(w http.ResponseWriter, r *http.Request, code int, message string, cause error)

func (s *Server) serveCatalog(w http.ResponseWriter, r *http.Request, format string, respondErr errorResponder) {
	keywords := s.keywords(r)

	page, err := s.page(r.Context(), keywords)
	if err != nil {
		respondErr(w, r, statusFor(err), "cataloging operations failed", err)
		return
	}

	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && limit > 0 && limit < len(page.Rows) {
		page.Rows = page.Rows[:limit]
	}

	target, err := render.NewTarget(format)
	if err != nil {
		respondErr(w, r, http.StatusInternalServerError, "rendering failed", err)
		return
	}

	var buf bytes.Buffer
	if err := s.renderer.Render(&buf, format, page); err != nil {
		respondErr(w, r, http.StatusInternalServerError, "rendering failed", err)
		return
	}

	w.Header().Set("Content-Type", target.ContentType())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes()) // nolint
}

// keywords merges the configured keywords with the request's ?keyword=
// values. Blank values are dropped.
func (s *Server) keywords(r *http.Request) []string {
	keywords := slices.Clone(s.settings.Keywords)
	for _, kw := range r.URL.Query()["keyword"] {
		if kw = strings.TrimSpace(kw); kw != "" {
			keywords = append(keywords, kw)
		}
	}
	return keywords
}

func (s *Server) page(ctx context.Context, keywords []string) (render.Page, error) {
	doc, err := s.load(ctx)
	if err != nil {
		return render.Page{}, err
	}

	infos, err := catalog.Build(doc, s.settings.SwaggerUIURL,
		catalog.WithFilter(keywords...),
		catalog.WithLogger(logz.FromContext(ctx)),
	)
	if err != nil {
		return render.Page{}, err
	}

	title := s.settings.Title
	if title == "" && doc != nil {
		title = doc.Info.Title
	}
	return render.NewPage(title, keywords, infos), nil
}

// statusFor maps a catalog failure onto an HTTP status: the upstream
// document could not be fetched, or it could not be cataloged.
func statusFor(err error) int {
	var buildErr *catalog.BuildError
	switch {
	case errors.Is(err, loader.ErrTransport):
		return http.StatusBadGateway
	case errors.As(err, &buildErr):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func logFailure(r *http.Request, code int, message string, cause error) {
	logger := logz.FromContext(r.Context())
	if code == http.StatusInternalServerError {
		logger.Error(message, zap.Error(cause))
	} else {
		logger.Info(message, zap.Error(cause))
	}
}

func (s *Server) respondWithText(w http.ResponseWriter, r *http.Request, code int, message string, cause error) {
	logFailure(r, code, message, cause)
	http.Error(w, message+": "+cause.Error(), code)
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (s *Server) respondWithJSON(w http.ResponseWriter, r *http.Request, code int, message string, cause error) {
	logFailure(r, code, message, cause)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorBody{Error: cause.Error(), Message: message}) // nolint
}
