// Package controllers maps HTTP requests onto single store operations.
// Each controller depends on the narrow slice of repository behavior it
// needs, so tests can substitute fakes without a running database.
package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/spokeworks/gearhub/app/models"
	"github.com/spokeworks/gearhub/pkg/bind"
	"github.com/spokeworks/gearhub/pkg/cache"
	"github.com/spokeworks/gearhub/pkg/logger"
	"github.com/spokeworks/gearhub/pkg/response"
	"github.com/spokeworks/gearhub/pkg/validate"
)

const partsCacheKey = "parts:all"
const partsCacheTTL = 60 * time.Second

// PartStore is the catalog access the part endpoints need.
type PartStore interface {
	All(ctx context.Context) ([]models.Part, error)
	Find(ctx context.Context, id string) (*models.Part, error)
	Insert(ctx context.Context, part *models.Part) (string, error)
}

type PartController struct {
	parts PartStore
}

func NewPartController(parts PartStore) *PartController {
	return &PartController{parts: parts}
}

// List returns the full catalog. The listing is served from a short-TTL
// cache when available; the cache is dropped on every insert.
func (c *PartController) List(w http.ResponseWriter, r *http.Request) {
	var cached []models.Part
	if cache.Get(partsCacheKey, &cached) {
		response.Success(w, cached)
		return
	}

	parts, err := c.parts.All(r.Context())
	if err != nil {
		logger.WithCtx(r.Context()).Error("list parts", "error", err.Error())
		response.StoreError(w)
		return
	}

	if err := cache.Set(partsCacheKey, parts, partsCacheTTL); err != nil {
		logger.WithCtx(r.Context()).Debug("parts cache set failed", "error", err.Error())
	}
	response.Success(w, parts)
}

// Get returns a single part by id. A missing part is not an error: the
// body is a null document with success status.
func (c *PartController) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	part, err := c.parts.Find(r.Context(), id)
	if errors.Is(err, primitive.ErrInvalidHex) {
		response.Error(w, http.StatusBadRequest, "Invalid id")
		return
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("get part", "id", id, "error", err.Error())
		response.StoreError(w)
		return
	}

	response.Success(w, part)
}

// Create adds a catalog entry. Route-gated: verified + admin.
func (c *PartController) Create(w http.ResponseWriter, r *http.Request) {
	var input models.PartInput
	errs, err := bind.JSON(r, &input)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if validate.HasErrors(errs) {
		response.ValidationError(w, errs)
		return
	}

	part := &models.Part{
		Name:         input.Name,
		Description:  input.Description,
		Image:        input.Image,
		Price:        input.Price,
		MinOrderQty:  input.MinOrderQty,
		AvailableQty: input.AvailableQty,
	}

	id, err := c.parts.Insert(r.Context(), part)
	if err != nil {
		logger.WithCtx(r.Context()).Error("add part", "error", err.Error())
		response.StoreError(w)
		return
	}

	_ = cache.Del(partsCacheKey)
	response.Created(w, map[string]interface{}{"insertedId": id})
}
