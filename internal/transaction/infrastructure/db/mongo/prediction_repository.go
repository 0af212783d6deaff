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
)

const predictionCollection = "predictions"

// PredictionRepository persists fraud predictions in MongoDB.
type PredictionRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewPredictionRepository(db *mongo.Database) *PredictionRepository {
	return &PredictionRepository{db: db, coll: db.Collection(predictionCollection)}
}

type predictionDoc struct {
	ID            int64     `bson:"_id"`
	TransactionID int64     `bson:"transaction_id"`
	IsFraudulent  bool      `bson:"is_fraudulent"`
	Confidence    float64   `bson:"confidence"`
	Timestamp     time.Time `bson:"timestamp"`
}

func (d predictionDoc) toDomain() *domain.Prediction {
	return &domain.Prediction{
		ID:            d.ID,
		TransactionID: d.TransactionID,
		IsFraudulent:  d.IsFraudulent,
		Confidence:    d.Confidence,
		Timestamp:     d.Timestamp.UTC(),
	}
}

func (r *PredictionRepository) Create(ctx context.Context, p *domain.Prediction) (*domain.Prediction, error) {
	id, err := nextSequence(ctx, r.db, predictionCollection)
	if err != nil {
		return nil, err
	}

	doc := predictionDoc{
		ID:            id,
		TransactionID: p.TransactionID,
		IsFraudulent:  p.IsFraudulent,
		Confidence:    p.Confidence,
		Timestamp:     p.Timestamp,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert prediction: %w", err)
	}

	return doc.toDomain(), nil
}

func (r *PredictionRepository) ListByTransaction(ctx context.Context, transactionID int64) ([]*domain.Prediction, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})

	cursor, err := r.coll.Find(ctx, bson.M{"transaction_id": transactionID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list predictions: %w", err)
	}
	defer cursor.Close(ctx)

	var out []*domain.Prediction
	for cursor.Next(ctx) {
		var doc predictionDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode prediction: %w", err)
		}
		out = append(out, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list predictions: %w", err)
	}

	return out, nil
}

func (r *PredictionRepository) FindLatestByTransaction(ctx context.Context, transactionID int64) (*domain.Prediction, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "timestamp", Value: -1}})

	var doc predictionDoc
	err := r.coll.FindOne(ctx, bson.M{"transaction_id": transactionID}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find latest prediction: %w", err)
	}

	return doc.toDomain(), nil
}
