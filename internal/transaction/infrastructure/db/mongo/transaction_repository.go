package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/frauddetect/fraud-detection/internal/transaction/core/domain"
	"github.com/frauddetect/fraud-detection/internal/transaction/core/ports"
)

const transactionCollection = "transactions"

// TransactionRepository persists transactions in MongoDB with numeric
// sequence IDs.
type TransactionRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewTransactionRepository(db *mongo.Database) *TransactionRepository {
	return &TransactionRepository{db: db, coll: db.Collection(transactionCollection)}
}

type transactionDoc struct {
	ID        int64     `bson:"_id"`
	Customer  string    `bson:"customer"`
	VendorID  string    `bson:"vendor_id"`
	Amount    float64   `bson:"amount"`
	Timestamp time.Time `bson:"timestamp"`
	Status    string    `bson:"status"`
}

func (d transactionDoc) toDomain() *domain.Transaction {
	return &domain.Transaction{
		ID:        d.ID,
		Customer:  d.Customer,
		VendorID:  d.VendorID,
		Amount:    d.Amount,
		Timestamp: d.Timestamp.UTC(),
		Status:    domain.TransactionStatus(d.Status),
	}
}

func (r *TransactionRepository) Create(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	id, err := nextSequence(ctx, r.db, transactionCollection)
	if err != nil {
		return nil, err
	}

	doc := transactionDoc{
		ID:        id,
		Customer:  tx.Customer,
		VendorID:  tx.VendorID,
		Amount:    tx.Amount,
		Timestamp: tx.Timestamp,
		Status:    string(tx.Status),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert transaction: %w", err)
	}

	return doc.toDomain(), nil
}

func (r *TransactionRepository) FindByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	var doc transactionDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("find transaction: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *TransactionRepository) List(ctx context.Context, filter ports.ListTransactionsFilter) ([]*domain.Transaction, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = string(filter.Status)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(filter.Skip).
		SetLimit(filter.Limit)

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer cursor.Close(ctx)

	var out []*domain.Transaction
	for cursor.Next(ctx) {
		var doc transactionDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode transaction: %w", err)
		}
		out = append(out, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	return out, nil
}

func (r *TransactionRepository) UpdateStatus(ctx context.Context, id int64, status domain.TransactionStatus) (*domain.Transaction, error) {
	var doc transactionDoc
	err := r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": string(status)}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("update transaction status: %w", err)
	}

	return doc.toDomain(), nil
}
