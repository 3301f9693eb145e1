package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/pribylovaa/go-readlater/internal/service"
)

// Handlers агрегирует зависимости HTTP-слоя front door.
type Handlers struct {
	service *service.Service
	// corsOrigin — фиксированное значение Access-Control-Allow-Origin
	// для успешных чтений.
	corsOrigin string
	// basePath — префикс версии ("/v1") для сборки Location.
	basePath string
}

func New(svc *service.Service, corsOrigin, basePath string) *Handlers {
	return &Handlers{service: svc, corsOrigin: corsOrigin, basePath: basePath}
}

// writeJSON — единый ответ JSON с нужным Content-Type и CORS-заголовком
// успешного чтения. Ошибки выводим через apierrors.WriteError.
func (h *Handlers) writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", h.corsOrigin)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля.
// Пустое тело допустимо и эквивалентно пустому объекту (PUT без полей —
// легальное намерение создания).
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(value); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	return nil
}
