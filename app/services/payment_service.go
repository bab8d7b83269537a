package services

import (
	"context"
	"fmt"

	"github.com/spokeworks/gearhub/app/models"
	"github.com/spokeworks/gearhub/pkg/logger"
	"github.com/spokeworks/gearhub/pkg/payments"
)

// OrderMarker is the slice of the order repository the payment flow needs.
type OrderMarker interface {
	MarkPaid(ctx context.Context, id, transactionID string) (int64, error)
}

// PaymentInserter is the slice of the payment repository the flow needs.
type PaymentInserter interface {
	Insert(ctx context.Context, payment *models.Payment) (string, error)
}

// PaymentService creates payment intents and records completed charges.
type PaymentService struct {
	intents  payments.IntentCreator
	orders   OrderMarker
	payments PaymentInserter
}

func NewPaymentService(intents payments.IntentCreator, orders OrderMarker, inserter PaymentInserter) *PaymentService {
	return &PaymentService{intents: intents, orders: orders, payments: inserter}
}

// CreateIntent forwards a major-unit price to the payment collaborator as
// minor units in USD and returns the client secret.
func (s *PaymentService) CreateIntent(ctx context.Context, price float64) (string, error) {
	if s.intents == nil {
		return "", payments.ErrNotConfigured
	}

	secret, err := s.intents.CreateIntent(ctx, payments.MinorUnits(price), payments.Currency)
	if err != nil {
		return "", fmt.Errorf("payment: create intent: %w", err)
	}
	return secret, nil
}

// RecordPayment marks the order paid and appends a payment record. These are
// two independent writes against different collections, not a transaction: a
// crash between them leaves the order paid with no payment document. The
// partial-failure case is logged loudly so an operator can reconcile by hand.
func (s *PaymentService) RecordPayment(ctx context.Context, orderID, email, transactionID string, amount float64) (int64, error) {
	matched, err := s.orders.MarkPaid(ctx, orderID, transactionID)
	if err != nil {
		return 0, fmt.Errorf("payment: mark order paid: %w", err)
	}

	_, err = s.payments.Insert(ctx, &models.Payment{
		OrderID:       orderID,
		Email:         email,
		Amount:        amount,
		TransactionID: transactionID,
	})
	if err != nil {
		logger.WithCtx(ctx).Error("payment record insert failed after order marked paid",
			"order_id", orderID,
			"transaction_id", transactionID,
			"error", err.Error(),
		)
		return matched, fmt.Errorf("payment: insert record: %w", err)
	}

	return matched, nil
}
