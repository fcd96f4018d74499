package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/example/scholarstream/internal/models"
)

// PaymentRepo persists confirmed payment records.
type PaymentRepo struct {
	coll *mongo.Collection
}

// NewPaymentRepo constructs PaymentRepo.
func NewPaymentRepo(db *mongo.Database) *PaymentRepo {
	return &PaymentRepo{coll: db.Collection("payments")}
}

// FindByTransactionID returns the payment record for the given provider
// reference, or ErrNotFound.
func (r *PaymentRepo) FindByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error) {
	var payment models.Payment
	err := r.coll.FindOne(ctx, bson.M{"transactionId": transactionID}).Decode(&payment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find payment: %w", err)
	}
	return &payment, nil
}

// Insert stores a new payment record. A duplicate transactionId is rejected
// by the unique index and surfaced as ErrDuplicateTransaction.
func (r *PaymentRepo) Insert(ctx context.Context, payment *models.Payment) error {
	if _, err := r.coll.InsertOne(ctx, payment); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateTransaction
		}
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}
