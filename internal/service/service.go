package service

import (
	"github.com/nazimov/vmrecon/internal/domain"
	"github.com/nazimov/vmrecon/internal/handlers/ingest"
	"github.com/nazimov/vmrecon/internal/handlers/orders"
	"github.com/nazimov/vmrecon/internal/handlers/stats"

	"github.com/nazimov/vmrecon/internal/repo"
	ingestservice "github.com/nazimov/vmrecon/internal/service/ingestservice"
	queryservice "github.com/nazimov/vmrecon/internal/service/queryservice"
	reconcileservice "github.com/nazimov/vmrecon/internal/service/reconcileservice"
)

type Services struct {
	IngestService    ingest.IngestService
	ReconcileService ingest.ReconcileService
	QueryService     orders.Service
	StatsService     stats.Service
}

func New(repo *repo.Repositories, policy domain.Policy) *Services {
	ingestService := ingestservice.New(repo.OrderRepo, repo.UnmatchedRepo, repo.BatchRepo, policy)
	reconcileService := reconcileservice.New(repo.OrderRepo, repo.BatchRepo, policy)
	queryService := queryservice.New(repo.OrderRepo)

	return &Services{
		IngestService:    ingestService,
		ReconcileService: reconcileService,
		QueryService:     queryService,
		StatsService:     reconcileService,
	}
}
