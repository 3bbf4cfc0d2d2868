package repo

import (
	"github.com/nazimov/vmrecon/internal/pg"
	batchrepo "github.com/nazimov/vmrecon/internal/repo/batch-repo"
	orderrepo "github.com/nazimov/vmrecon/internal/repo/order-repo"
	unmatchedrepo "github.com/nazimov/vmrecon/internal/repo/unmatched-repo"
)

type Repositories struct {
	OrderRepo     *orderrepo.Repository
	UnmatchedRepo *unmatchedrepo.Repository
	BatchRepo     *batchrepo.Repository
}

func New(conn pg.Database, txManager pg.TXManager) *Repositories {
	orderRepo := orderrepo.New(conn, txManager)
	unmatchedRepo := unmatchedrepo.New(conn)
	batchRepo := batchrepo.New(conn)

	return &Repositories{
		OrderRepo:     orderRepo,
		UnmatchedRepo: unmatchedRepo,
		BatchRepo:     batchRepo,
	}
}
