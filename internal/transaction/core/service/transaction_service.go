package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/frauddetect/fraud-detection/internal/transaction/core/domain"
	"github.com/frauddetect/fraud-detection/internal/transaction/core/ports"
)

const defaultListLimit = 100

type transactionService struct {
	transactions ports.TransactionRepository
	predictions  ports.PredictionRepository
	log          zerolog.Logger
}

// NewTransactionService returns a TransactionService implementation.
func NewTransactionService(
	transactions ports.TransactionRepository,
	predictions ports.PredictionRepository,
	log zerolog.Logger,
) ports.TransactionService {
	return &transactionService{
		transactions: transactions,
		predictions:  predictions,
		log:          log,
	}
}

func (s *transactionService) Create(ctx context.Context, input ports.CreateTransactionInput) (*domain.Transaction, error) {
	status := domain.StatusSubmitted
	if input.Status != "" {
		status = domain.TransactionStatus(input.Status)
		if !status.Valid() {
			return nil, domain.ErrInvalidStatus
		}
	}

	ts := input.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	tx, err := s.transactions.Create(ctx, &domain.Transaction{
		Customer:  input.Customer,
		VendorID:  input.VendorID,
		Amount:    input.Amount,
		Timestamp: ts,
		Status:    status,
	})
	if err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}

	s.log.Info().
		Int64("id", tx.ID).
		Str("customer", tx.Customer).
		Str("vendor_id", tx.VendorID).
		Msg("transaction created")

	return tx, nil
}

// Get returns the transaction together with its current prediction (most
// recent by timestamp), when one exists.
func (s *transactionService) Get(ctx context.Context, id int64) (*ports.TransactionDetail, error) {
	tx, err := s.transactions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &ports.TransactionDetail{Transaction: *tx}

	latest, err := s.predictions.FindLatestByTransaction(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get transaction %d: latest prediction: %w", id, err)
	}
	if latest != nil {
		detail.IsFraudulent = &latest.IsFraudulent
		detail.Confidence = &latest.Confidence
	}

	return detail, nil
}

func (s *transactionService) List(ctx context.Context, filter ports.ListTransactionsFilter) ([]*domain.Transaction, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	if filter.Limit <= 0 || filter.Limit > defaultListLimit {
		filter.Limit = defaultListLimit
	}
	if filter.Skip < 0 {
		filter.Skip = 0
	}

	return s.transactions.List(ctx, filter)
}

func (s *transactionService) UpdateStatus(ctx context.Context, id int64, status string) (*domain.Transaction, error) {
	next := domain.TransactionStatus(status)
	if !next.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	tx, err := s.transactions.UpdateStatus(ctx, id, next)
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("id", id).Str("status", status).Msg("transaction status updated")
	return tx, nil
}

func (s *transactionService) RecordPrediction(ctx context.Context, input ports.RecordPredictionInput) (*domain.Prediction, error) {
	// The transaction must exist before a verdict can reference it.
	if _, err := s.transactions.FindByID(ctx, input.TransactionID); err != nil {
		return nil, err
	}

	p, err := s.predictions.Create(ctx, &domain.Prediction{
		TransactionID: input.TransactionID,
		IsFraudulent:  input.IsFraudulent,
		Confidence:    input.Confidence,
		Timestamp:     time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("record prediction: %w", err)
	}

	s.log.Info().
		Int64("transaction_id", input.TransactionID).
		Bool("is_fraudulent", input.IsFraudulent).
		Float64("confidence", input.Confidence).
		Msg("prediction recorded")

	return p, nil
}

func (s *transactionService) ListPredictions(ctx context.Context, transactionID int64) ([]*domain.Prediction, error) {
	if _, err := s.transactions.FindByID(ctx, transactionID); err != nil {
		return nil, err
	}
	return s.predictions.ListByTransaction(ctx, transactionID)
}
