package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pribylovaa/go-readlater/internal/service"
	apierrors "github.com/pribylovaa/go-readlater/internal/transport/http/errors"
)

// submitArticleRequest — тело POST /articles/.
type submitArticleRequest struct {
	URL string `json:"url"`
}

// SubmitArticle — POST /articles/: публикует articles.create и отвечает
// 202 с Location на будущий ресурс. Идентификатор детерминирован по
// URL, поэтому Location стабилен между повторными отправками.
func (h *Handlers) SubmitArticle(w http.ResponseWriter, r *http.Request) {
	var in submitArticleRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	id, err := h.service.SubmitArticle(r.Context(), in.URL)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.Header().Set("Location", h.basePath+"/articles/"+id.String())
	w.WriteHeader(http.StatusAccepted)
}

// ReadArticle — GET /articles/{id}: только полностью обработанная
// статья читаема; absent и submitted-incomplete одинаково дают 404.
// Непарсящийся идентификатор — тоже 404: такой ресурс не существует.
func (h *Handlers) ReadArticle(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		apierrors.WriteError(w, r, service.ErrNotFound)
		return
	}

	view, err := h.service.ReadArticle(r.Context(), id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, view)
}

// MutateArticle — PUT/DELETE /articles/{id}: всегда 405, никаких команд
// и мутаций стораджа. Статьи через публичный API неизменяемы.
func (h *Handlers) MutateArticle(w http.ResponseWriter, r *http.Request) {
	apierrors.WriteError(w, r, h.service.MutateArticle(r.Context()))
}
