package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spokeworks/gearhub/app/models"
	"github.com/spokeworks/gearhub/pkg/metrics"
)

// PaymentRepository handles the append-only payments collection.
type PaymentRepository struct {
	col *mongo.Collection
}

func NewPaymentRepository(col *mongo.Collection) *PaymentRepository {
	return &PaymentRepository{col: col}
}

// Insert records a completed charge and returns its new id.
func (r *PaymentRepository) Insert(ctx context.Context, payment *models.Payment) (string, error) {
	defer metrics.ObserveStoreOp("payments", "insert", time.Now())

	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = time.Now().UTC()
	}

	res, err := r.col.InsertOne(ctx, payment)
	if err != nil {
		return "", fmt.Errorf("payments: insert: %w", err)
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}
