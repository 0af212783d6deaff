package service

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/frauddetect/fraud-detection/internal/transaction/core/domain"
	"github.com/frauddetect/fraud-detection/internal/transaction/core/ports"
)

type stubTransactionRepo struct {
	nextID int64
	txs    map[int64]*domain.Transaction

	lastFilter ports.ListTransactionsFilter
}

func newStubTransactionRepo() *stubTransactionRepo {
	return &stubTransactionRepo{txs: make(map[int64]*domain.Transaction)}
}

func (r *stubTransactionRepo) Create(_ context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	r.nextID++
	clone := *tx
	clone.ID = r.nextID
	r.txs[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubTransactionRepo) FindByID(_ context.Context, id int64) (*domain.Transaction, error) {
	tx, ok := r.txs[id]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}
	clone := *tx
	return &clone, nil
}

func (r *stubTransactionRepo) List(_ context.Context, filter ports.ListTransactionsFilter) ([]*domain.Transaction, error) {
	r.lastFilter = filter

	ids := make([]int64, 0, len(r.txs))
	for id := range r.txs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var out []*domain.Transaction
	for _, id := range ids {
		tx := r.txs[id]
		if filter.Status != "" && tx.Status != filter.Status {
			continue
		}
		clone := *tx
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubTransactionRepo) UpdateStatus(_ context.Context, id int64, status domain.TransactionStatus) (*domain.Transaction, error) {
	tx, ok := r.txs[id]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}
	tx.Status = status
	clone := *tx
	return &clone, nil
}

type stubPredictionRepo struct {
	nextID      int64
	predictions map[int64][]*domain.Prediction
}

func newStubPredictionRepo() *stubPredictionRepo {
	return &stubPredictionRepo{predictions: make(map[int64][]*domain.Prediction)}
}

func (r *stubPredictionRepo) Create(_ context.Context, p *domain.Prediction) (*domain.Prediction, error) {
	r.nextID++
	clone := *p
	clone.ID = r.nextID
	r.predictions[clone.TransactionID] = append(r.predictions[clone.TransactionID], &clone)
	out := clone
	return &out, nil
}

func (r *stubPredictionRepo) ListByTransaction(_ context.Context, transactionID int64) ([]*domain.Prediction, error) {
	list := r.predictions[transactionID]
	out := make([]*domain.Prediction, 0, len(list))
	for i := len(list) - 1; i >= 0; i-- {
		clone := *list[i]
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubPredictionRepo) FindLatestByTransaction(_ context.Context, transactionID int64) (*domain.Prediction, error) {
	list := r.predictions[transactionID]
	if len(list) == 0 {
		return nil, nil
	}
	clone := *list[len(list)-1]
	return &clone, nil
}

func newTestService() (ports.TransactionService, *stubTransactionRepo, *stubPredictionRepo) {
	txs := newStubTransactionRepo()
	preds := newStubPredictionRepo()
	return NewTransactionService(txs, preds, zerolog.Nop()), txs, preds
}

func TestCreate_Defaults(t *testing.T) {
	svc, _, _ := newTestService()

	tx, err := svc.Create(context.Background(), ports.CreateTransactionInput{
		Customer: "cust-1",
		VendorID: "vendor-1",
		Amount:   99.5,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if tx.ID == 0 {
		t.Fatalf("expected assigned id")
	}
	if tx.Status != domain.StatusSubmitted {
		t.Fatalf("expected default status submitted, got %s", tx.Status)
	}
	if tx.Timestamp.IsZero() {
		t.Fatalf("expected timestamp to default to now")
	}
}

func TestCreate_ExplicitStatusAndTimestamp(t *testing.T) {
	svc, _, _ := newTestService()

	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tx, err := svc.Create(context.Background(), ports.CreateTransactionInput{
		Customer:  "cust-1",
		VendorID:  "vendor-1",
		Amount:    10,
		Timestamp: ts,
		Status:    "accepted",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if tx.Status != domain.StatusAccepted || !tx.Timestamp.Equal(ts) {
		t.Fatalf("unexpected transaction: %+v", tx)
	}

	if _, err := svc.Create(context.Background(), ports.CreateTransactionInput{Status: "bogus"}); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestGet_JoinsLatestPrediction(t *testing.T) {
	svc, _, _ := newTestService()

	tx, err := svc.Create(context.Background(), ports.CreateTransactionInput{Customer: "c", VendorID: "v", Amount: 1})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// No prediction yet: the detail carries no verdict fields.
	detail, err := svc.Get(context.Background(), tx.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if detail.IsFraudulent != nil || detail.Confidence != nil {
		t.Fatalf("expected no verdict on fresh transaction: %+v", detail)
	}

	for _, p := range []ports.RecordPredictionInput{
		{TransactionID: tx.ID, IsFraudulent: false, Confidence: 0.2},
		{TransactionID: tx.ID, IsFraudulent: true, Confidence: 0.9},
	} {
		if _, err := svc.RecordPrediction(context.Background(), p); err != nil {
			t.Fatalf("record failed: %v", err)
		}
	}

	detail, err = svc.Get(context.Background(), tx.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if detail.IsFraudulent == nil || !*detail.IsFraudulent {
		t.Fatalf("expected latest verdict to win: %+v", detail)
	}
	if detail.Confidence == nil || *detail.Confidence != 0.9 {
		t.Fatalf("expected latest confidence: %+v", detail)
	}
}

func TestGet_NotFound(t *testing.T) {
	svc, _, _ := newTestService()

	if _, err := svc.Get(context.Background(), 42); !errors.Is(err, domain.ErrTransactionNotFound) {
		t.Fatalf("expected ErrTransactionNotFound, got %v", err)
	}
}

func TestList_FilterAndLimits(t *testing.T) {
	svc, txs, _ := newTestService()

	for i := 0; i < 3; i++ {
		if _, err := svc.Create(context.Background(), ports.CreateTransactionInput{Customer: "c", VendorID: "v", Amount: 1}); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}
	if _, err := svc.UpdateStatus(context.Background(), 1, "accepted"); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	out, err := svc.List(context.Background(), ports.ListTransactionsFilter{Status: domain.StatusAccepted})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(out) != 1 || out[0].ID != 1 {
		t.Fatalf("unexpected filtered result: %+v", out)
	}

	if _, err := svc.List(context.Background(), ports.ListTransactionsFilter{Status: "bogus"}); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}

	// Out-of-range paging values are clamped before reaching the repository.
	if _, err := svc.List(context.Background(), ports.ListTransactionsFilter{Skip: -5, Limit: 10000}); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if txs.lastFilter.Skip != 0 || txs.lastFilter.Limit != 100 {
		t.Fatalf("expected clamped filter, got %+v", txs.lastFilter)
	}
}

func TestUpdateStatus(t *testing.T) {
	svc, _, _ := newTestService()

	tx, err := svc.Create(context.Background(), ports.CreateTransactionInput{Customer: "c", VendorID: "v", Amount: 1})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := svc.UpdateStatus(context.Background(), tx.ID, "rejected")
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Status != domain.StatusRejected {
		t.Fatalf("unexpected status: %s", updated.Status)
	}

	if _, err := svc.UpdateStatus(context.Background(), tx.ID, "bogus"); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if _, err := svc.UpdateStatus(context.Background(), 99, "accepted"); !errors.Is(err, domain.ErrTransactionNotFound) {
		t.Fatalf("expected ErrTransactionNotFound, got %v", err)
	}
}

func TestRecordPrediction_RequiresTransaction(t *testing.T) {
	svc, _, _ := newTestService()

	input := ports.RecordPredictionInput{TransactionID: 7, IsFraudulent: true, Confidence: 0.8}
	if _, err := svc.RecordPrediction(context.Background(), input); !errors.Is(err, domain.ErrTransactionNotFound) {
		t.Fatalf("expected ErrTransactionNotFound, got %v", err)
	}

	tx, err := svc.Create(context.Background(), ports.CreateTransactionInput{Customer: "c", VendorID: "v", Amount: 1})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	input.TransactionID = tx.ID
	p, err := svc.RecordPrediction(context.Background(), input)
	if err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if p.ID == 0 || p.Timestamp.IsZero() {
		t.Fatalf("expected assigned id and timestamp: %+v", p)
	}
}

func TestListPredictions(t *testing.T) {
	svc, _, _ := newTestService()

	if _, err := svc.ListPredictions(context.Background(), 7); !errors.Is(err, domain.ErrTransactionNotFound) {
		t.Fatalf("expected ErrTransactionNotFound, got %v", err)
	}

	tx, err := svc.Create(context.Background(), ports.CreateTransactionInput{Customer: "c", VendorID: "v", Amount: 1})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	for _, conf := range []float64{0.1, 0.5, 0.9} {
		if _, err := svc.RecordPrediction(context.Background(), ports.RecordPredictionInput{
			TransactionID: tx.ID,
			Confidence:    conf,
		}); err != nil {
			t.Fatalf("record failed: %v", err)
		}
	}

	list, err := svc.ListPredictions(context.Background(), tx.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 predictions, got %d", len(list))
	}
	// Newest first.
	if list[0].Confidence != 0.9 {
		t.Fatalf("expected newest prediction first, got %+v", list[0])
	}
}
