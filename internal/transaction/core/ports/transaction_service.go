package ports

import (
	"context"
	"time"

	"github.com/frauddetect/fraud-detection/internal/transaction/core/domain"
)

// CreateTransactionInput carries the data needed to record a transaction.
type CreateTransactionInput struct {
	Customer  string
	VendorID  string
	Amount    float64
	Timestamp time.Time // zero = now
	Status    string    // empty = submitted
}

// TransactionDetail is the full view of a transaction including the current
// prediction, when one exists.
type TransactionDetail struct {
	domain.Transaction
	IsFraudulent *bool    `json:"is_fraudulent,omitempty"`
	Confidence   *float64 `json:"confidence,omitempty"`
}

// RecordPredictionInput carries a fraud-model verdict for a transaction.
type RecordPredictionInput struct {
	TransactionID int64
	IsFraudulent  bool
	Confidence    float64
}

// TransactionService defines the use-case operations of the Transaction
// Service.
type TransactionService interface {
	Create(ctx context.Context, input CreateTransactionInput) (*domain.Transaction, error)
	Get(ctx context.Context, id int64) (*TransactionDetail, error)
	List(ctx context.Context, filter ListTransactionsFilter) ([]*domain.Transaction, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*domain.Transaction, error)
	RecordPrediction(ctx context.Context, input RecordPredictionInput) (*domain.Prediction, error)
	ListPredictions(ctx context.Context, transactionID int64) ([]*domain.Prediction, error)
}

// TokenVerifier is the Remote Verification Client as seen by the transport
// layer.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*domain.Identity, error)
}
