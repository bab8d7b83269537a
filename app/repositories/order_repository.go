package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spokeworks/gearhub/app/models"
	"github.com/spokeworks/gearhub/pkg/metrics"
)

// OrderRepository handles the orders collection.
type OrderRepository struct {
	col *mongo.Collection
}

func NewOrderRepository(col *mongo.Collection) *OrderRepository {
	return &OrderRepository{col: col}
}

// Find returns one order by id, or nil when absent.
func (r *OrderRepository) Find(ctx context.Context, id string) (*models.Order, error) {
	defer metrics.ObserveStoreOp("orders", "find", time.Now())

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("orders: bad id %q: %w", id, err)
	}

	var order models.Order
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("orders: find: %w", err)
	}
	return &order, nil
}

// ByEmail returns all orders whose email field equals the given email.
// The match is exact and case-sensitive; that equality IS the ownership
// model for orders.
func (r *OrderRepository) ByEmail(ctx context.Context, email string) ([]models.Order, error) {
	defer metrics.ObserveStoreOp("orders", "find", time.Now())

	cur, err := r.col.Find(ctx, bson.M{"email": email})
	if err != nil {
		return nil, fmt.Errorf("orders: find by email: %w", err)
	}
	defer cur.Close(ctx)

	orders := []models.Order{}
	if err := cur.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("orders: decode: %w", err)
	}
	return orders, nil
}

// All returns every order document.
func (r *OrderRepository) All(ctx context.Context) ([]models.Order, error) {
	defer metrics.ObserveStoreOp("orders", "find", time.Now())

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("orders: find all: %w", err)
	}
	defer cur.Close(ctx)

	orders := []models.Order{}
	if err := cur.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("orders: decode: %w", err)
	}
	return orders, nil
}

// Insert adds an order and returns its new id.
func (r *OrderRepository) Insert(ctx context.Context, order *models.Order) (string, error) {
	defer metrics.ObserveStoreOp("orders", "insert", time.Now())

	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC()
	}

	res, err := r.col.InsertOne(ctx, order)
	if err != nil {
		return "", fmt.Errorf("orders: insert: %w", err)
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

// Delete removes the order with the given id. Returns the deleted count.
func (r *OrderRepository) Delete(ctx context.Context, id string) (int64, error) {
	defer metrics.ObserveStoreOp("orders", "delete", time.Now())

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, fmt.Errorf("orders: bad id %q: %w", id, err)
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return 0, fmt.Errorf("orders: delete: %w", err)
	}
	return res.DeletedCount, nil
}

// MarkPaid flips the order to paid and stamps the transaction id.
// Returns the matched count; zero means no such order.
func (r *OrderRepository) MarkPaid(ctx context.Context, id, transactionID string) (int64, error) {
	defer metrics.ObserveStoreOp("orders", "update", time.Now())

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, fmt.Errorf("orders: bad id %q: %w", id, err)
	}

	update := bson.M{"$set": bson.M{"paid": true, "transaction_id": transactionID}}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return 0, fmt.Errorf("orders: mark paid: %w", err)
	}
	return res.MatchedCount, nil
}
