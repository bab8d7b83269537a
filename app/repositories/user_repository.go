package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/spokeworks/gearhub/app/models"
	"github.com/spokeworks/gearhub/pkg/metrics"
)

// UserRepository handles the users collection.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(col *mongo.Collection) *UserRepository {
	return &UserRepository{col: col}
}

// All returns every user document.
func (r *UserRepository) All(ctx context.Context) ([]models.User, error) {
	defer metrics.ObserveStoreOp("users", "find", time.Now())

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("users: find all: %w", err)
	}
	defer cur.Close(ctx)

	users := []models.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("users: decode: %w", err)
	}
	return users, nil
}

// FindByEmail returns the user with that email, or nil when absent.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	defer metrics.ObserveStoreOp("users", "find", time.Now())

	var user models.User
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("users: find by email: %w", err)
	}
	return &user, nil
}

// RoleOf resolves the stored role for an email. Unlike FindByEmail it
// reports a missing record as ErrNotFound so the admin gate can fail closed.
func (r *UserRepository) RoleOf(ctx context.Context, email string) (string, error) {
	user, err := r.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrNotFound
	}
	return user.Role, nil
}

// Upsert creates or replaces the profile fields of the user keyed by email.
// The email in the filter always wins over any email in the payload.
func (r *UserRepository) Upsert(ctx context.Context, email string, profile map[string]interface{}) (*UpsertResult, error) {
	defer metrics.ObserveStoreOp("users", "update", time.Now())

	fields := bson.M{}
	for k, v := range profile {
		if k == "_id" || k == "email" || k == "role" {
			continue // key and capability fields are never client-writable here
		}
		fields[k] = v
	}
	fields["email"] = email

	update := bson.M{
		"$set":         fields,
		"$setOnInsert": bson.M{"created_at": time.Now().UTC()},
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"email": email}, update, options.Update().SetUpsert(true))
	if err != nil {
		return nil, fmt.Errorf("users: upsert: %w", err)
	}

	out := &UpsertResult{MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount}
	if oid, ok := res.UpsertedID.(primitive.ObjectID); ok {
		out.UpsertedID = oid.Hex()
	}
	return out, nil
}

// SetRole stamps a role onto the user with that email. Returns the number
// of matched documents; zero means no such user.
func (r *UserRepository) SetRole(ctx context.Context, email, role string) (int64, error) {
	defer metrics.ObserveStoreOp("users", "update", time.Now())

	res, err := r.col.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": bson.M{"role": role}})
	if err != nil {
		return 0, fmt.Errorf("users: set role: %w", err)
	}
	return res.MatchedCount, nil
}

// Delete removes the user with the given id. Returns the deleted count.
func (r *UserRepository) Delete(ctx context.Context, id string) (int64, error) {
	defer metrics.ObserveStoreOp("users", "delete", time.Now())

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, fmt.Errorf("users: bad id %q: %w", id, err)
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return 0, fmt.Errorf("users: delete: %w", err)
	}
	return res.DeletedCount, nil
}
