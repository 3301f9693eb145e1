package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/go-readlater/internal/service"
	apierrors "github.com/pribylovaa/go-readlater/internal/transport/http/errors"
)

// upsertUserRequest — тело PUT /users/{username}.
// Поле username в теле — просьба о переименовании; ключ ресурса всегда
// берётся из пути.
type upsertUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Name     *string `json:"name"`
	Password *string `json:"password"`
}

// UpsertUser — PUT /users/{username}: создание или обновление.
// Успех в обоих случаях — 202: запись принята, но ещё не применена.
func (h *Handlers) UpsertUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if username == "" {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	var in upsertUserRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	err := h.service.UpsertUser(r.Context(), service.UpsertUserInput{
		Username:          username,
		RequestedUsername: in.Username,
		Email:             in.Email,
		Name:              in.Name,
		Password:          in.Password,
		Token:             r.Header.Get("X-Auth-Token"),
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusAccepted)
}

// ReadUser — GET /users/{username}: проекция без поля hash.
func (h *Handlers) ReadUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if username == "" {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	user, err := h.service.ReadUser(r.Context(), username)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, user)
}

// DeleteUser — DELETE /users/{username}: синхронное удаление с той же
// проверкой владения токеном, что и у обновления.
func (h *Handlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if username == "" {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	err := h.service.DeleteUser(r.Context(), username, r.Header.Get("X-Auth-Token"))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
