package ports

import (
	"context"

	"github.com/frauddetect/fraud-detection/internal/transaction/core/domain"
)

// ListTransactionsFilter carries query parameters for listing transactions.
type ListTransactionsFilter struct {
	Status domain.TransactionStatus // empty = no filter
	Skip   int64
	Limit  int64
}

// TransactionRepository defines persistence operations for transactions.
type TransactionRepository interface {
	Create(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error)
	FindByID(ctx context.Context, id int64) (*domain.Transaction, error)
	List(ctx context.Context, filter ListTransactionsFilter) ([]*domain.Transaction, error)
	UpdateStatus(ctx context.Context, id int64, status domain.TransactionStatus) (*domain.Transaction, error)
}

// PredictionRepository defines persistence operations for fraud predictions.
type PredictionRepository interface {
	Create(ctx context.Context, p *domain.Prediction) (*domain.Prediction, error)
	// ListByTransaction returns predictions newest-first.
	ListByTransaction(ctx context.Context, transactionID int64) ([]*domain.Prediction, error)
	// FindLatestByTransaction returns the most recent prediction, or
	// (nil, nil) when the transaction has none.
	FindLatestByTransaction(ctx context.Context, transactionID int64) (*domain.Prediction, error)
}
