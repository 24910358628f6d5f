package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/starford/eotext/internal/translator"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(svc *translator.Service, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	r.Post("/convert", h.Convert)
	r.Get("/systems", h.Systems)

	r.Get("/vocabulary", h.ListVocabulary)
	r.Post("/vocabulary", h.AddWord)
	r.Get("/vocabulary/{word}", h.GetWord)

	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
