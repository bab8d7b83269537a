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

// PartRepository handles the parts collection.
type PartRepository struct {
	col *mongo.Collection
}

func NewPartRepository(col *mongo.Collection) *PartRepository {
	return &PartRepository{col: col}
}

// All returns the full catalog.
func (r *PartRepository) All(ctx context.Context) ([]models.Part, error) {
	defer metrics.ObserveStoreOp("parts", "find", time.Now())

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("parts: find all: %w", err)
	}
	defer cur.Close(ctx)

	parts := []models.Part{}
	if err := cur.All(ctx, &parts); err != nil {
		return nil, fmt.Errorf("parts: decode: %w", err)
	}
	return parts, nil
}

// Find returns one part by id, or nil when the id is valid but absent.
func (r *PartRepository) Find(ctx context.Context, id string) (*models.Part, error) {
	defer metrics.ObserveStoreOp("parts", "find", time.Now())

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("parts: bad id %q: %w", id, err)
	}

	var part models.Part
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&part)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("parts: find: %w", err)
	}
	return &part, nil
}

// Insert adds a part and returns its new id.
func (r *PartRepository) Insert(ctx context.Context, part *models.Part) (string, error) {
	defer metrics.ObserveStoreOp("parts", "insert", time.Now())

	res, err := r.col.InsertOne(ctx, part)
	if err != nil {
		return "", fmt.Errorf("parts: insert: %w", err)
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}
