package api

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/starford/eotext/internal/apperr"
	"github.com/starford/eotext/internal/translator"
	"github.com/starford/eotext/pkg/esperanto"
)

// maxBody limits request bodies for conversion and vocabulary requests.
const maxBody = 10 << 20

// Handler holds API route handlers.
type Handler struct {
	svc *translator.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *translator.Service) *Handler {
	return &Handler{svc: svc}
}

// Convert handles POST /api/convert.
//
//	@Summary		Convert text between writing systems
//	@Tags			convert
//	@Accept			json
//	@Produce		json
//	@Param			body	body		ConvertRequest	true	"Text and systems"
//	@Success		200		{object}	ConvertResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/convert [post]
func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	var req ConvertRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.From == "" || req.To == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("from and to are required"))
		return
	}
	res, err := h.svc.Convert(r.Context(), req.From, req.To, req.Text)
	if err != nil {
		writeError(w, "convert failed", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Systems handles GET /api/systems.
//
//	@Summary		List writing systems and the letter table
//	@Tags			convert
//	@Produce		json
//	@Success		200	{object}	SystemsResponse
//	@Security		BearerAuth
//	@Router			/systems [get]
func (h *Handler) Systems(w http.ResponseWriter, _ *http.Request) {
	conv := h.svc.Converter()
	writeJSON(w, http.StatusOK, SystemsResponse{
		Systems:    systemInfos(),
		MatchMode:  string(conv.Vocabulary().Mode()),
		CapsSuffix: conv.CapsAwareSuffix(),
	})
}

// ListVocabulary handles GET /api/vocabulary.
//
//	@Summary		List vocabulary entries
//	@Tags			vocabulary
//	@Produce		json
//	@Success		200	{object}	VocabularyResponse
//	@Security		BearerAuth
//	@Router			/vocabulary [get]
func (h *Handler) ListVocabulary(w http.ResponseWriter, r *http.Request) {
	items := h.svc.Words(r.Context())
	writeJSON(w, http.StatusOK, VocabularyResponse{
		Entries: items,
		Total:   len(items),
		Version: h.svc.Version(),
	})
}

// GetWord handles GET /api/vocabulary/{word}.
//
//	@Summary		Get a single vocabulary entry
//	@Tags			vocabulary
//	@Produce		json
//	@Param			word	path		string	true	"Entry"
//	@Success		200		{object}	WordItem
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/vocabulary/{word} [get]
func (h *Handler) GetWord(w http.ResponseWriter, r *http.Request) {
	word := chi.URLParam(r, "word")
	if decoded, err := url.PathUnescape(word); err == nil {
		word = decoded
	}
	item, err := h.svc.Word(r.Context(), word)
	if err != nil {
		writeError(w, "get word failed", err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// AddWord handles POST /api/vocabulary.
//
//	@Summary		Add a word to the user vocabulary
//	@Tags			vocabulary
//	@Accept			json
//	@Produce		json
//	@Param			body	body		AddWordRequest	true	"Word to add"
//	@Success		201		{object}	WordItem
//	@Failure		400		{object}	errResponse
//	@Failure		409		{object}	errResponse
//	@Failure		503		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/vocabulary [post]
func (h *Handler) AddWord(w http.ResponseWriter, r *http.Request) {
	var req AddWordRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	item, err := h.svc.AddWord(r.Context(), req.Word)
	if err != nil {
		writeError(w, "add word failed", err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// writeError maps service errors to HTTP status codes.
func writeError(w http.ResponseWriter, msg string, err error) {
	switch {
	case errors.Is(err, apperr.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
	case errors.Is(err, apperr.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
	case errors.Is(err, apperr.ErrAlreadyExists):
		writeJSON(w, http.StatusConflict, errorBody("word already exists"))
	case errors.Is(err, apperr.ErrReadOnly):
		writeJSON(w, http.StatusServiceUnavailable, errorBody(err.Error()))
	default:
		slog.Error(msg, slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}

// diacritics lists the letters shown in the systems table.
const diacritics = "ĉĝĥĵŝŭĈĜĤĴŜŬ"

func systemInfos() []SystemInfo {
	out := make([]SystemInfo, 0, len(esperanto.Systems()))
	for _, sys := range esperanto.Systems() {
		letters := make(map[string]string)
		for _, r := range diacritics {
			d, _ := esperanto.DiacriticToDigraph(r, sys)
			letters[string(r)] = d
		}
		out = append(out, SystemInfo{Code: sys.String(), Name: sys.Name(), Letters: letters})
	}
	return out
}
