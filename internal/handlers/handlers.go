package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/nazimov/vmrecon/docs"
	ingesthandlers "github.com/nazimov/vmrecon/internal/handlers/ingest"
	ordershandlers "github.com/nazimov/vmrecon/internal/handlers/orders"
	statshandlers "github.com/nazimov/vmrecon/internal/handlers/stats"
	"github.com/nazimov/vmrecon/internal/metrics"
	"github.com/nazimov/vmrecon/internal/service"
)

type IngestHandler interface {
	UploadFile(w http.ResponseWriter, r *http.Request)
	ReconcileBatch(w http.ResponseWriter, r *http.Request)
}

type OrderHandler interface {
	GetOrders(w http.ResponseWriter, r *http.Request)
}

type StatsHandler interface {
	GetStats(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	IngestHandler IngestHandler
	OrderHandler  OrderHandler
	StatsHandler  StatsHandler

	metrics *metrics.Registry
}

func New(s *service.Services, registry *metrics.Registry) *Handlers {
	return &Handlers{
		IngestHandler: ingesthandlers.New(s.IngestService, s.ReconcileService, registry),
		OrderHandler:  ordershandlers.New(s.QueryService),
		StatsHandler:  statshandlers.New(s.StatsService),
		metrics:       registry,
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Method(http.MethodGet, "/metrics", h.metrics.Handler())
	r.Route("/api", func(r chi.Router) {
		r.Route("/batches/{batchID}", func(r chi.Router) {
			r.Post("/files", h.IngestHandler.UploadFile)
			r.Post("/reconcile", h.IngestHandler.ReconcileBatch)
		})
		r.Get("/orders", h.OrderHandler.GetOrders)
		r.Get("/stats", h.StatsHandler.GetStats)
	})

	return r
}
