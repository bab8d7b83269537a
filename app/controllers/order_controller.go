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
	"github.com/spokeworks/gearhub/pkg/middleware"
	"github.com/spokeworks/gearhub/pkg/response"
	"github.com/spokeworks/gearhub/pkg/validate"
)

// OrderStore is the order access the order endpoints need.
type OrderStore interface {
	Find(ctx context.Context, id string) (*models.Order, error)
	ByEmail(ctx context.Context, email string) ([]models.Order, error)
	All(ctx context.Context) ([]models.Order, error)
	Insert(ctx context.Context, order *models.Order) (string, error)
	Delete(ctx context.Context, id string) (int64, error)
}

type OrderController struct {
	orders   OrderStore
	payments *services.PaymentService
}

func NewOrderController(orders OrderStore, payments *services.PaymentService) *OrderController {
	return &OrderController{orders: orders, payments: payments}
}

// Get returns one order by id. Route-gated: verified. A missing order is a
// null body with success status.
func (c *OrderController) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	order, err := c.orders.Find(r.Context(), id)
	if errors.Is(err, primitive.ErrInvalidHex) {
		response.Error(w, http.StatusBadRequest, "Invalid id")
		return
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("get order", "id", id, "error", err.Error())
		response.StoreError(w)
		return
	}

	response.Success(w, order)
}

// Delete removes an order by id. Route-gated: verified.
func (c *OrderController) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	deleted, err := c.orders.Delete(r.Context(), id)
	if errors.Is(err, primitive.ErrInvalidHex) {
		response.Error(w, http.StatusBadRequest, "Invalid id")
		return
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("delete order", "id", id, "error", err.Error())
		response.StoreError(w)
		return
	}

	response.Success(w, map[string]interface{}{"deletedCount": deleted})
}

// ListByUser returns the orders owned by the email in the ?user= query.
// Ownership is enforced here: the query email must equal the verified
// identity's email, compared case-sensitively, or the request is forbidden.
func (c *OrderController) ListByUser(w http.ResponseWriter, r *http.Request) {
	requested := r.URL.Query().Get("user")
	verified := middleware.EmailFromCtx(r.Context())

	if requested == "" || requested != verified {
		response.Forbidden(w)
		return
	}

	orders, err := c.orders.ByEmail(r.Context(), requested)
	if err != nil {
		logger.WithCtx(r.Context()).Error("list orders by user", "email", requested, "error", err.Error())
		response.StoreError(w)
		return
	}

	response.Success(w, orders)
}

// ListAll returns every order. Route-gated: verified + admin.
func (c *OrderController) ListAll(w http.ResponseWriter, r *http.Request) {
	orders, err := c.orders.All(r.Context())
	if err != nil {
		logger.WithCtx(r.Context()).Error("list all orders", "error", err.Error())
		response.StoreError(w)
		return
	}
	response.Success(w, orders)
}

// Create places an order. No auth gate: the storefront submits orders
// before the customer has necessarily established a session.
func (c *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	var input models.OrderInput
	errs, err := bind.JSON(r, &input)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if validate.HasErrors(errs) {
		response.ValidationError(w, errs)
		return
	}

	order := &models.Order{
		Email:    input.Email,
		PartID:   input.PartID,
		PartName: input.PartName,
		Qty:      input.Qty,
		Price:    input.Price,
		Phone:    input.Phone,
		Address:  input.Address,
	}

	id, err := c.orders.Insert(r.Context(), order)
	if err != nil {
		logger.WithCtx(r.Context()).Error("create order", "error", err.Error())
		response.StoreError(w)
		return
	}

	response.Created(w, map[string]interface{}{
		"success":    true,
		"insertedId": id,
	})
}

// markPaidInput is the PATCH body confirming a charge.
type markPaidInput struct {
	TransactionID string  `json:"transactionId" validate:"required"`
	Email         string  `json:"email"`
	Amount        float64 `json:"amount"`
}

// MarkPaid flips the order to paid and appends a payment record mirroring
// the request body. Two writes, not a transaction; see PaymentService.
func (c *OrderController) MarkPaid(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var input markPaidInput
	errs, err := bind.JSON(r, &input)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if validate.HasErrors(errs) {
		response.ValidationError(w, errs)
		return
	}

	matched, err := c.payments.RecordPayment(r.Context(), id, input.Email, input.TransactionID, input.Amount)
	if err != nil {
		logger.WithCtx(r.Context()).Error("mark order paid", "id", id, "error", err.Error())
		response.StoreError(w)
		return
	}

	response.Success(w, map[string]interface{}{"matchedCount": matched})
}
