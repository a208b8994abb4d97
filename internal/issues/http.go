package issues

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"IssueStore/pkg/kit"
)

const readyTimeout = 1 * time.Second

type Server struct {
	Store   Store
	Log     *zap.Logger
	Metrics *RegistryMetrics
}

func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", s.ready)

	r.Get("/issues", s.listIssues)
	r.Get("/issues/by-article/{uuid}", s.issueByArticle)
	r.Get("/articles", s.listArticles)
	r.Get("/articles/{uuid}", s.article)
	r.Get("/nodes/{number}", s.articleByNode)

	return r
}

// WriteRoutes mounts the insert endpoints on r, which the caller guards.
func (s *Server) WriteRoutes(r chi.Router) {
	r.Post("/issues", s.createIssue)
	r.Post("/articles", s.createArticle)
}

func (s *Server) ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	if err := s.Store.Ping(ctx); err != nil {
		s.warn("readyz failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) listIssues(w http.ResponseWriter, r *http.Request) {
	out, err := s.Store.ListIssues(r.Context())
	if err != nil {
		s.serverError(w, r, "list issues failed", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, out)
}

func (s *Server) listArticles(w http.ResponseWriter, r *http.Request) {
	out, err := s.Store.ListArticles(r.Context())
	if err != nil {
		s.serverError(w, r, "list articles failed", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, out)
}

func (s *Server) issueByArticle(w http.ResponseWriter, r *http.Request) {
	uuid := chi.URLParam(r, "uuid")

	is, ok, err := s.Store.IssueFor(r.Context(), uuid)
	if err != nil {
		s.serverError(w, r, "issue lookup failed", err, zap.String("article_uuid", uuid))
		return
	}
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"article_uuid": uuid})
		return
	}
	kit.WriteJSON(w, http.StatusOK, is)
}

func (s *Server) article(w http.ResponseWriter, r *http.Request) {
	uuid := chi.URLParam(r, "uuid")

	v, ok, err := s.Store.Article(r.Context(), uuid)
	if err != nil {
		s.serverError(w, r, "article lookup failed", err, zap.String("uuid", uuid))
		return
	}
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"uuid": uuid})
		return
	}
	kit.WriteJSON(w, http.StatusOK, v)
}

func (s *Server) articleByNode(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "number")
	node, err := strconv.Atoi(raw)
	if err != nil || node < 0 {
		kit.WriteError(w, r, http.StatusBadRequest, "bad node number", map[string]any{"number": raw})
		return
	}

	m, ok, err := s.Store.ArticleByNode(r.Context(), node)
	if err != nil {
		s.serverError(w, r, "node lookup failed", err, zap.Int("node", node))
		return
	}
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"node": node})
		return
	}
	kit.WriteJSON(w, http.StatusOK, m)
}

func (s *Server) createIssue(w http.ResponseWriter, r *http.Request) {
	var is Issue
	if err := kit.DecodeJSON(w, r, &is); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	if err := s.Store.AddIssue(r.Context(), is); err != nil {
		if errors.Is(err, ErrInvalidInput) {
			s.Metrics.observe(kindIssue, resultInvalid)
			kit.WriteError(w, r, http.StatusBadRequest, "invalid issue", map[string]any{"cause": err.Error()})
			return
		}
		s.serverError(w, r, "add issue failed", err)
		return
	}

	s.Metrics.observe(kindIssue, resultAdded)
	kit.WriteJSON(w, http.StatusCreated, is)
}

func (s *Server) createArticle(w http.ResponseWriter, r *http.Request) {
	var a Article
	if err := kit.DecodeJSON(w, r, &a); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	added, err := s.Store.AddArticle(r.Context(), a)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			s.Metrics.observe(kindArticle, resultInvalid)
			kit.WriteError(w, r, http.StatusBadRequest, "invalid article", map[string]any{"cause": err.Error()})
			return
		}
		s.serverError(w, r, "add article failed", err, zap.String("uuid", a.UUID))
		return
	}

	if !added {
		s.Metrics.observe(kindArticle, resultDuplicate)
		stored, _, err := s.Store.Article(r.Context(), a.UUID)
		if err != nil {
			s.serverError(w, r, "article lookup failed", err, zap.String("uuid", a.UUID))
			return
		}
		kit.WriteJSON(w, http.StatusOK, stored.Article)
		return
	}

	s.Metrics.observe(kindArticle, resultAdded)
	kit.WriteJSON(w, http.StatusCreated, a)
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, msg string, err error, fields ...zap.Field) {
	if s.Log != nil {
		s.Log.Error(msg, append(fields, zap.Error(err))...)
	}
	kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
}

func (s *Server) warn(msg string, fields ...zap.Field) {
	if s.Log != nil {
		s.Log.Warn(msg, fields...)
	}
}
