package middleware

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// requestsTotal — счётчики запросов front door в дефолтном реестре;
// наружу их отдаёт /metrics служебного сервера.
var requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "blend_http_requests_total",
	Help: "Front door HTTP requests by method and status code.",
}, []string{"method", "code"})

// Metrics считает запросы по методу и коду ответа.
func Metrics() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sw := newStatusWriter(w)
			next.ServeHTTP(sw, r)

			status := sw.status
			if status == 0 {
				// хендлер не писал ни заголовка, ни тела.
				status = http.StatusOK
			}

			requestsTotal.WithLabelValues(r.Method, strconv.Itoa(status)).Inc()
		})
	}
}
