package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/spokeworks/gearhub/app/models"
	"github.com/spokeworks/gearhub/app/services"
	"github.com/spokeworks/gearhub/pkg/bind"
	"github.com/spokeworks/gearhub/pkg/logger"
	"github.com/spokeworks/gearhub/pkg/response"
)

// UserStore is the account access the user endpoints need.
type UserStore interface {
	All(ctx context.Context) ([]models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	SetRole(ctx context.Context, email, role string) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}

type UserController struct {
	users    UserStore
	sessions *services.SessionService
}

func NewUserController(users UserStore, sessions *services.SessionService) *UserController {
	return &UserController{users: users, sessions: sessions}
}

// List returns every account. Route-gated: verified.
func (c *UserController) List(w http.ResponseWriter, r *http.Request) {
	users, err := c.users.All(r.Context())
	if err != nil {
		logger.WithCtx(r.Context()).Error("list users", "error", err.Error())
		response.StoreError(w)
		return
	}
	response.Success(w, users)
}

// Delete removes an account by id. Route-gated: verified.
func (c *UserController) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	deleted, err := c.users.Delete(r.Context(), id)
	if errors.Is(err, primitive.ErrInvalidHex) {
		response.Error(w, http.StatusBadRequest, "Invalid id")
		return
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("delete user", "id", id, "error", err.Error())
		response.StoreError(w)
		return
	}

	response.Success(w, map[string]interface{}{"deletedCount": deleted})
}

// AdminStatus reports whether the account with that email holds the admin
// role. Unauthenticated by design (the storefront polls it to toggle its
// dashboard); a missing account reads as not-admin rather than an error.
func (c *UserController) AdminStatus(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	user, err := c.users.FindByEmail(r.Context(), email)
	if err != nil {
		logger.WithCtx(r.Context()).Error("admin status", "email", email, "error", err.Error())
		response.StoreError(w)
		return
	}

	response.Success(w, map[string]bool{"admin": user.IsAdmin()})
}

// Upsert creates or refreshes the account keyed by the email path parameter
// and returns a fresh session token alongside the write acknowledgment.
func (c *UserController) Upsert(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	profile := map[string]interface{}{}
	if _, err := bind.JSON(r, &profile); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	result, token, err := c.sessions.Issue(r.Context(), email, profile)
	if err != nil {
		logger.WithCtx(r.Context()).Error("issue session", "email", email, "error", err.Error())
		response.StoreError(w)
		return
	}

	response.Success(w, map[string]interface{}{
		"result": result,
		"token":  token,
	})
}

// Promote stamps the admin role onto the account with that email.
// Route-gated: verified + admin. Mounted on both legacy promotion paths.
func (c *UserController) Promote(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	matched, err := c.users.SetRole(r.Context(), email, models.RoleAdmin)
	if err != nil {
		logger.WithCtx(r.Context()).Error("promote user", "email", email, "error", err.Error())
		response.StoreError(w)
		return
	}

	response.Success(w, map[string]interface{}{"matchedCount": matched})
}
