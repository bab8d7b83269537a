package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/spokeworks/gearhub/app/models"
	"github.com/spokeworks/gearhub/pkg/metrics"
)

// ReviewRepository handles the reviews collection.
type ReviewRepository struct {
	col *mongo.Collection
}

func NewReviewRepository(col *mongo.Collection) *ReviewRepository {
	return &ReviewRepository{col: col}
}

// LastN returns the n most recently inserted reviews in insertion order.
// Implemented as count-then-skip over the natural order, so the result is
// the tail of the collection, oldest of the tail first.
func (r *ReviewRepository) LastN(ctx context.Context, n int) ([]models.Review, error) {
	defer metrics.ObserveStoreOp("reviews", "find", time.Now())

	total, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("reviews: count: %w", err)
	}

	skip := total - int64(n)
	if skip < 0 {
		skip = 0
	}

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSkip(skip))
	if err != nil {
		return nil, fmt.Errorf("reviews: find: %w", err)
	}
	defer cur.Close(ctx)

	reviews := []models.Review{}
	if err := cur.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("reviews: decode: %w", err)
	}
	return reviews, nil
}

// Insert adds a review and returns its new id.
func (r *ReviewRepository) Insert(ctx context.Context, review *models.Review) (string, error) {
	defer metrics.ObserveStoreOp("reviews", "insert", time.Now())

	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now().UTC()
	}

	res, err := r.col.InsertOne(ctx, review)
	if err != nil {
		return "", fmt.Errorf("reviews: insert: %w", err)
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}
