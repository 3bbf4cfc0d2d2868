package reconciler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/nazimov/vmrecon/internal/config"
	"github.com/nazimov/vmrecon/internal/domain"
	"github.com/nazimov/vmrecon/internal/metrics"
)

type BatchRepo interface {
	FindDirty(ctx context.Context, limit uint32) ([]domain.Batch, error)
}

type ReconcileService interface {
	Reconcile(ctx context.Context, batchID string) (*domain.ReconciliationStats, error)
}

// inflightBatches keeps a batch from being swept twice when a sweep
// outlives the ticker interval.
var inflightBatches sync.Map

// Service periodically finalizes dirty batches in the background, so
// ingested rows get classified even when the caller never asks for an
// explicit reconciliation.
type Service struct {
	batchRepo        BatchRepo
	reconcileService ReconcileService
	metrics          *metrics.Registry
	limit            uint32
	workerPool       WorkerPoolI
	sweepInterval    time.Duration
}

func New(cfg *config.Config, batchRepo BatchRepo, reconcileService ReconcileService, registry *metrics.Registry) *Service {
	return &Service{
		batchRepo:        batchRepo,
		reconcileService: reconcileService,
		metrics:          registry,
		limit:            100,
		workerPool:       NewWorkerPool(cfg.ReconcileWorkers),
		sweepInterval:    cfg.ReconcileInterval,
	}
}

func (s *Service) Start(ctx context.Context) {
	zap.L().Info("Reconciler service started")
	go s.run(ctx)
}

func (s *Service) run(ctx context.Context) {
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("Context canceled, stopping reconciler")
			s.workerPool.Close()
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Service) sweep(ctx context.Context) {
	batches, err := s.batchRepo.FindDirty(ctx, atomic.LoadUint32(&s.limit))
	if err != nil {
		zap.L().Error("Failed to fetch dirty batches", zap.Error(err))
		return
	}

	var g errgroup.Group
	for _, batch := range batches {
		batch := batch

		if _, loaded := inflightBatches.LoadOrStore(batch.ID, struct{}{}); loaded {
			continue
		}

		g.Go(func() error {
			err := s.workerPool.AddTask(ctx, func() error {
				defer inflightBatches.Delete(batch.ID)
				return s.handleBatch(ctx, batch)
			})
			if err != nil {
				inflightBatches.Delete(batch.ID)
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		zap.L().Error("Error reconciling batches", zap.Error(err))
	}
}

func (s *Service) handleBatch(ctx context.Context, batch domain.Batch) error {
	started := time.Now()
	stats, err := s.reconcileService.Reconcile(ctx, batch.ID)
	if err != nil {
		return err
	}
	s.metrics.ReconcileDuration.Observe(time.Since(started).Seconds())
	s.metrics.ObserveStats(stats.ByStatus)

	zap.L().Info("Dirty batch finalized",
		zap.String("batch_id", batch.ID), zap.Int("orders", stats.Total))
	return nil
}
