package controllers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/spokeworks/gearhub/app/controllers"
	"github.com/spokeworks/gearhub/app/models"
)

type fakeReviewStore struct {
	reviews  []models.Review
	inserted []*models.Review
	lastN    int
}

func (f *fakeReviewStore) LastN(_ context.Context, n int) ([]models.Review, error) {
	f.lastN = n
	if len(f.reviews) <= n {
		return f.reviews, nil
	}
	return f.reviews[len(f.reviews)-n:], nil
}

func (f *fakeReviewStore) Insert(_ context.Context, review *models.Review) (string, error) {
	f.inserted = append(f.inserted, review)
	return primitive.NewObjectID().Hex(), nil
}

func reviewsRouter(store *fakeReviewStore) http.Handler {
	ctrl := controllers.NewReviewController(store)
	r := chi.NewRouter()
	r.Get("/review", ctrl.List)
	r.Post("/review", ctrl.Create)
	return r
}

func TestListReviewsKeepsLastSix(t *testing.T) {
	store := &fakeReviewStore{}
	for i := 0; i < 9; i++ {
		store.reviews = append(store.reviews, models.Review{
			ID:   primitive.NewObjectID(),
			Name: "rider",
		})
	}
	h := reviewsRouter(store)

	rec, env := doJSON(t, h, http.MethodGet, "/review", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var reviews []models.Review
	require.NoError(t, json.Unmarshal(env.Data, &reviews))
	assert.Len(t, reviews, 6)
	assert.Equal(t, 6, store.lastN)
}

func TestListReviewsFewerThanSix(t *testing.T) {
	store := &fakeReviewStore{reviews: []models.Review{
		{ID: primitive.NewObjectID(), Name: "a"},
		{ID: primitive.NewObjectID(), Name: "b"},
	}}
	h := reviewsRouter(store)

	rec, env := doJSON(t, h, http.MethodGet, "/review", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var reviews []models.Review
	require.NoError(t, json.Unmarshal(env.Data, &reviews))
	assert.Len(t, reviews, 2)
}

func TestPostReview(t *testing.T) {
	store := &fakeReviewStore{}
	h := reviewsRouter(store)

	body := `{"name":"rider","rating":5,"comment":"smooth shifting"}`
	rec, env := doJSON(t, h, http.MethodPost, "/review", body, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var result map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.NotEmpty(t, result["insertedId"])

	require.Len(t, store.inserted, 1)
	assert.Equal(t, "rider", store.inserted[0].Name)
}
