// http собирает публичный HTTP-слой front door: chi-роутер, мидлвары и
// маршруты версионированного API.
package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/go-readlater/internal/service"
	"github.com/pribylovaa/go-readlater/internal/transport/http/handlers"
	"github.com/pribylovaa/go-readlater/internal/transport/http/middleware"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger *slog.Logger
	// Version — префикс версии API, например "v1".
	Version string
	// CORSOrigin — фиксированный Access-Control-Allow-Origin успешных чтений.
	CORSOrigin string
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(svc *service.Service, opts Options) http.Handler {
	if opts.Version == "" {
		opts.Version = "v1"
	}
	basePath := "/" + opts.Version

	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),            // безопасно ловим паники
		middleware.RequestID(),          // формируем/прокидываем X-Request-Id (до логирования!)
		middleware.Logging(opts.Logger), // кладём request-scoped логгер в контекст и логируем
		middleware.Metrics(),            // счётчики запросов для /metrics
	)

	h := handlers.New(svc, opts.CORSOrigin, basePath)

	root.Route(basePath, func(r chi.Router) {
		// users
		r.Put("/users/{username}", h.UpsertUser)
		r.Get("/users/{username}", h.ReadUser)
		r.Delete("/users/{username}", h.DeleteUser)

		// articles: создаются и читаются; мутации запрещены контрактом.
		r.Post("/articles/", h.SubmitArticle)
		r.Get("/articles/{id}", h.ReadArticle)
		r.Put("/articles/{id}", h.MutateArticle)
		r.Delete("/articles/{id}", h.MutateArticle)
	})

	return root
}
