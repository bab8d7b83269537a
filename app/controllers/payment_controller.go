package controllers

import (
	"errors"
	"net/http"

	"github.com/spokeworks/gearhub/app/services"
	"github.com/spokeworks/gearhub/pkg/bind"
	"github.com/spokeworks/gearhub/pkg/logger"
	"github.com/spokeworks/gearhub/pkg/payments"
	"github.com/spokeworks/gearhub/pkg/response"
	"github.com/spokeworks/gearhub/pkg/validate"
)

type PaymentController struct {
	payments *services.PaymentService
}

func NewPaymentController(svc *services.PaymentService) *PaymentController {
	return &PaymentController{payments: svc}
}

// intentInput carries the major-unit price the storefront wants to charge.
type intentInput struct {
	Price float64 `json:"price" validate:"required,gt=0"`
}

// CreateIntent asks the payment collaborator for a payment intent over
// price*100 minor units in USD and returns the client secret.
// Route-gated: verified.
func (c *PaymentController) CreateIntent(w http.ResponseWriter, r *http.Request) {
	var input intentInput
	errs, err := bind.JSON(r, &input)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if validate.HasErrors(errs) {
		response.ValidationError(w, errs)
		return
	}

	secret, err := c.payments.CreateIntent(r.Context(), input.Price)
	if errors.Is(err, payments.ErrNotConfigured) {
		response.Error(w, http.StatusServiceUnavailable, "Payments not configured")
		return
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("create payment intent", "error", err.Error())
		response.Error(w, http.StatusInternalServerError, "Payment provider error")
		return
	}

	response.Success(w, map[string]string{"clientSecret": secret})
}
