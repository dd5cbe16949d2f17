package http

import (
	"log/slog"
	"net/http"

	"github.com/light-bringer/decant-store/internal/pkg/telemetry"
)

// HealthPath is excluded from tracing.
const HealthPath = "/api/health"

// Handlers groups the handlers the router mounts.
type Handlers struct {
	Products *ProductsHandler
	Health   *HealthHandler
	Pages    *PagesHandler
}

// NewRouter mounts the catalog routes. Only GET (and HEAD) are routed;
// other methods answer 405.
func NewRouter(h Handlers, serviceName string, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/products", h.Products.List)
	mux.HandleFunc("GET /api/products/{slug}", h.Products.Get)
	mux.HandleFunc("GET /api/brands", h.Products.Brands)
	mux.Handle("GET "+HealthPath, h.Health)
	mux.HandleFunc("GET /products", h.Pages.Products)
	mux.HandleFunc("GET /{$}", h.Pages.Home)

	return Chain(mux,
		RequestID(),
		Logging(logger),
		telemetry.Middleware(serviceName, HealthPath),
		Recover(logger),
	)
}
