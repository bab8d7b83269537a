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
	"github.com/spokeworks/gearhub/app/services"
	"github.com/spokeworks/gearhub/pkg/middleware"
)

type fakeOrderMarker struct {
	markedID  string
	markedTxn string
	matched   int64
}

func (f *fakeOrderMarker) MarkPaid(_ context.Context, id, txn string) (int64, error) {
	f.markedID = id
	f.markedTxn = txn
	return f.matched, nil
}

type fakePaymentInserter struct {
	payments []*models.Payment
}

func (f *fakePaymentInserter) Insert(_ context.Context, p *models.Payment) (string, error) {
	f.payments = append(f.payments, p)
	return primitive.NewObjectID().Hex(), nil
}

func ordersRouter(store *fakeOrderStore, marker *fakeOrderMarker, inserter *fakePaymentInserter) http.Handler {
	svc := services.NewPaymentService(nil, marker, inserter)
	ctrl := controllers.NewOrderController(store, svc)

	r := chi.NewRouter()
	verified := middleware.RequireAuth
	r.Method(http.MethodGet, "/order/{id}", verified(http.HandlerFunc(ctrl.Get)))
	r.Method(http.MethodDelete, "/order/{id}", verified(http.HandlerFunc(ctrl.Delete)))
	r.Method(http.MethodGet, "/order", verified(http.HandlerFunc(ctrl.ListByUser)))
	r.Post("/order", ctrl.Create)
	r.Method(http.MethodPatch, "/order/{id}", verified(http.HandlerFunc(ctrl.MarkPaid)))
	return r
}

func TestListOrdersForOwner(t *testing.T) {
	store := &fakeOrderStore{orders: []models.Order{
		{ID: primitive.NewObjectID(), Email: "a@example.com", PartName: "Chain"},
		{ID: primitive.NewObjectID(), Email: "b@example.com", PartName: "Rim"},
		{ID: primitive.NewObjectID(), Email: "a@example.com", PartName: "Saddle"},
	}}
	h := ordersRouter(store, &fakeOrderMarker{}, &fakePaymentInserter{})

	rec, env := doJSON(t, h, http.MethodGet, "/order?user=a@example.com", "", bearer(t, "a@example.com"))
	require.Equal(t, http.StatusOK, rec.Code)

	var orders []models.Order
	require.NoError(t, json.Unmarshal(env.Data, &orders))
	require.Len(t, orders, 2)
	for _, o := range orders {
		assert.Equal(t, "a@example.com", o.Email)
	}
}

func TestListOrdersOwnershipMismatch(t *testing.T) {
	store := &fakeOrderStore{orders: []models.Order{
		{ID: primitive.NewObjectID(), Email: "a@example.com"},
	}}
	h := ordersRouter(store, &fakeOrderMarker{}, &fakePaymentInserter{})

	rec, _ := doJSON(t, h, http.MethodGet, "/order?user=a@example.com", "", bearer(t, "b@example.com"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestListOrdersCaseSensitiveOwnership(t *testing.T) {
	store := &fakeOrderStore{}
	h := ordersRouter(store, &fakeOrderMarker{}, &fakePaymentInserter{})

	// Same address, different case: ownership equality is exact.
	rec, _ := doJSON(t, h, http.MethodGet, "/order?user=A@example.com", "", bearer(t, "a@example.com"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGetOrderRequiresCredential(t *testing.T) {
	store := &fakeOrderStore{}
	h := ordersRouter(store, &fakeOrderMarker{}, &fakePaymentInserter{})

	rec, _ := doJSON(t, h, http.MethodGet, "/order/"+primitive.NewObjectID().Hex(), "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDeleteOrderRequiresCredential(t *testing.T) {
	store := &fakeOrderStore{}
	h := ordersRouter(store, &fakeOrderMarker{}, &fakePaymentInserter{})

	rec, _ := doJSON(t, h, http.MethodDelete, "/order/"+primitive.NewObjectID().Hex(), "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, store.deleted)
}

func TestDeleteOrder(t *testing.T) {
	id := primitive.NewObjectID()
	store := &fakeOrderStore{orders: []models.Order{{ID: id, Email: "a@example.com"}}}
	h := ordersRouter(store, &fakeOrderMarker{}, &fakePaymentInserter{})

	rec, env := doJSON(t, h, http.MethodDelete, "/order/"+id.Hex(), "", bearer(t, "a@example.com"))
	require.Equal(t, http.StatusOK, rec.Code)

	var result map[string]int64
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, int64(1), result["deletedCount"])
	assert.Equal(t, []string{id.Hex()}, store.deleted)
}

func TestCreateOrder(t *testing.T) {
	store := &fakeOrderStore{}
	h := ordersRouter(store, &fakeOrderMarker{}, &fakePaymentInserter{})

	body := `{"email":"a@example.com","part_name":"Chain","qty":10,"price":240}`
	rec, env := doJSON(t, h, http.MethodPost, "/order", body, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var result struct {
		Success    bool   `json:"success"`
		InsertedID string `json:"insertedId"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.True(t, result.Success)
	assert.NotEmpty(t, result.InsertedID)

	require.Len(t, store.inserted, 1)
	assert.Equal(t, "a@example.com", store.inserted[0].Email)
	assert.False(t, store.inserted[0].Paid)
}

func TestCreateOrderValidation(t *testing.T) {
	store := &fakeOrderStore{}
	h := ordersRouter(store, &fakeOrderMarker{}, &fakePaymentInserter{})

	rec, _ := doJSON(t, h, http.MethodPost, "/order", `{"part_name":"Chain"}`, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Empty(t, store.inserted)
}

func TestMarkOrderPaidWritesBoth(t *testing.T) {
	id := primitive.NewObjectID()
	store := &fakeOrderStore{orders: []models.Order{{ID: id, Email: "a@example.com"}}}
	marker := &fakeOrderMarker{matched: 1}
	inserter := &fakePaymentInserter{}
	h := ordersRouter(store, marker, inserter)

	body := `{"transactionId":"tx_123","email":"a@example.com","amount":240}`
	rec, env := doJSON(t, h, http.MethodPatch, "/order/"+id.Hex(), body, bearer(t, "a@example.com"))
	require.Equal(t, http.StatusOK, rec.Code)

	var result map[string]int64
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, int64(1), result["matchedCount"])

	assert.Equal(t, id.Hex(), marker.markedID)
	assert.Equal(t, "tx_123", marker.markedTxn)

	require.Len(t, inserter.payments, 1)
	assert.Equal(t, "tx_123", inserter.payments[0].TransactionID)
	assert.Equal(t, id.Hex(), inserter.payments[0].OrderID)
	assert.Equal(t, 240.0, inserter.payments[0].Amount)
}

func TestMarkOrderPaidRequiresTransactionID(t *testing.T) {
	id := primitive.NewObjectID()
	store := &fakeOrderStore{orders: []models.Order{{ID: id, Email: "a@example.com"}}}
	marker := &fakeOrderMarker{matched: 1}
	inserter := &fakePaymentInserter{}
	h := ordersRouter(store, marker, inserter)

	rec, _ := doJSON(t, h, http.MethodPatch, "/order/"+id.Hex(), `{}`, bearer(t, "a@example.com"))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Empty(t, marker.markedID)
	assert.Empty(t, inserter.payments)
}
