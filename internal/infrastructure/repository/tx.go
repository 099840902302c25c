package repository

import (
	"context"

	"gorm.io/gorm"

	domainRepo "github.com/mahakaal/cafepos/internal/domain/repository"
)

type txKey struct{}

type txManager struct {
	db *gorm.DB
}

// NewTxManager creates a Transactor backed by GORM transactions. The
// transaction handle travels in the context, so repositories join the
// transaction without the services knowing anything about GORM.
func NewTxManager(db *gorm.DB) domainRepo.Transactor {
	return &txManager{db: db}
}

func (m *txManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// dbFrom returns the transaction carried by the context if there is one,
// otherwise the repository's own handle bound to the context.
func dbFrom(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return db.WithContext(ctx)
}
