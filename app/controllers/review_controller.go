package controllers

import (
	"context"
	"net/http"

	"github.com/spokeworks/gearhub/app/models"
	"github.com/spokeworks/gearhub/pkg/bind"
	"github.com/spokeworks/gearhub/pkg/logger"
	"github.com/spokeworks/gearhub/pkg/response"
)

// recentReviews is how many reviews the storefront shows on its front page.
const recentReviews = 6

// ReviewStore is the review access the review endpoints need.
type ReviewStore interface {
	LastN(ctx context.Context, n int) ([]models.Review, error)
	Insert(ctx context.Context, review *models.Review) (string, error)
}

type ReviewController struct {
	reviews ReviewStore
}

func NewReviewController(reviews ReviewStore) *ReviewController {
	return &ReviewController{reviews: reviews}
}

// List returns the six most recently posted reviews in insertion order.
func (c *ReviewController) List(w http.ResponseWriter, r *http.Request) {
	reviews, err := c.reviews.LastN(r.Context(), recentReviews)
	if err != nil {
		logger.WithCtx(r.Context()).Error("list reviews", "error", err.Error())
		response.StoreError(w)
		return
	}
	response.Success(w, reviews)
}

// Create posts a review. No auth gate; reviews are free-form.
func (c *ReviewController) Create(w http.ResponseWriter, r *http.Request) {
	var review models.Review
	if _, err := bind.JSON(r, &review); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := c.reviews.Insert(r.Context(), &review)
	if err != nil {
		logger.WithCtx(r.Context()).Error("post review", "error", err.Error())
		response.StoreError(w)
		return
	}

	response.Created(w, map[string]interface{}{"insertedId": id})
}
