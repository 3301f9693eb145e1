// errors стандартизирует ответы об ошибках HTTP-слоя front door.
// На вход он принимает ошибку сервисного слоя, а на выход даёт:
//   - стабильный HTTP-статус;
//   - краткое безопасное message без утечки внутренних деталей.
//
// Таксономия (см. сервисный слой):
//
//	ErrNotFound          -> 404 (absent и incomplete на чтении неразличимы)
//	ErrUnauthorized      -> 401 (запись не опубликована)
//	ErrMethodNotAllowed  -> 405 (без побочных эффектов)
//	ErrInvalidArgument   -> 400
//	прочее               -> 500/internal
package errors

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pribylovaa/go-readlater/internal/service"
)

// APIError — единый формат для фронта.
// Code — короткий стабильный код для машиночитаемой обработки.
// Message — безопасное человекочитаемое описание.
// RequestID — прокидывается из X-Request-Id, если есть (для трассировки).
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse — корневой объект в ответе.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// ToHTTP конвертирует ошибку сервисного слоя в HTTP-статус и
// унифицированный ответ. err == nil — программная ошибка вызова:
// возвращаем 500, чтобы не маскировать баг кодом 200.
func ToHTTP(err error) (int, ErrorResponse) {
	switch {
	case err == nil:
		return http.StatusInternalServerError, newResponse("internal", "internal error")
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, newResponse("not_found", "not found")
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized, newResponse("unauthorized", "unauthorized")
	case errors.Is(err, service.ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed, newResponse("method_not_allowed", "method not allowed")
	case errors.Is(err, service.ErrInvalidArgument):
		return http.StatusBadRequest, newResponse("invalid_argument", "invalid argument")
	default:
		return http.StatusInternalServerError, newResponse("internal", "internal error")
	}
}

// WriteError — хелпер для HTTP-хендлеров.
// Пишет корректный статус/тело, добавляет request_id из заголовка, если он есть.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)

	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.Error.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func newResponse(code, msg string) ErrorResponse {
	return ErrorResponse{Error: APIError{Code: code, Message: msg}}
}
