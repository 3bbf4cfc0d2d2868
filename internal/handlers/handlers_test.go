package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	_ "github.com/nazimov/vmrecon/docs"
	ingesthandlers "github.com/nazimov/vmrecon/internal/handlers/ingest"
	ordershandlers "github.com/nazimov/vmrecon/internal/handlers/orders"
	statshandlers "github.com/nazimov/vmrecon/internal/handlers/stats"
	"github.com/nazimov/vmrecon/internal/metrics"
	"github.com/nazimov/vmrecon/internal/service"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	services := &service.Services{
		IngestService:    ingesthandlers.NewMockIngestService(ctrl),
		ReconcileService: ingesthandlers.NewMockReconcileService(ctrl),
		QueryService:     ordershandlers.NewMockService(ctrl),
		StatsService:     statshandlers.NewMockService(ctrl),
	}

	h := New(services, metrics.NewRegistry())
	assert.NotNil(t, h, "Handlers should not be nil")
}

func TestInitRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockIngestHandler := NewMockIngestHandler(ctrl)
	mockOrderHandler := NewMockOrderHandler(ctrl)
	mockStatsHandler := NewMockStatsHandler(ctrl)

	mockIngestHandler.EXPECT().UploadFile(gomock.Any(), gomock.Any()).AnyTimes()
	mockIngestHandler.EXPECT().ReconcileBatch(gomock.Any(), gomock.Any()).AnyTimes()
	mockOrderHandler.EXPECT().GetOrders(gomock.Any(), gomock.Any()).AnyTimes()
	mockStatsHandler.EXPECT().GetStats(gomock.Any(), gomock.Any()).AnyTimes()

	h := &Handlers{
		IngestHandler: mockIngestHandler,
		OrderHandler:  mockOrderHandler,
		StatsHandler:  mockStatsHandler,
		metrics:       metrics.NewRegistry(),
	}

	router := chi.NewRouter()
	h.InitRoutes(router)

	tests := []struct {
		method string
		target string
	}{
		{http.MethodPost, "/api/batches/batch-1/files"},
		{http.MethodPost, "/api/batches/batch-1/reconcile"},
		{http.MethodGet, "/api/orders"},
		{http.MethodGet, "/api/stats"},
		{http.MethodGet, "/metrics"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.NotEqual(t, http.StatusNotFound, w.Code)
			assert.NotEqual(t, http.StatusMethodNotAllowed, w.Code)
		})
	}
}
