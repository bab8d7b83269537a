package controllers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spokeworks/gearhub/app/controllers"
	"github.com/spokeworks/gearhub/app/services"
	"github.com/spokeworks/gearhub/pkg/middleware"
	"github.com/spokeworks/gearhub/pkg/payments"
)

type fakeIntentCreator struct {
	amount   int64
	currency string
	secret   string
}

func (f *fakeIntentCreator) CreateIntent(_ context.Context, amount int64, currency string) (string, error) {
	f.amount = amount
	f.currency = currency
	return f.secret, nil
}

func paymentsRouter(intents payments.IntentCreator) http.Handler {
	svc := services.NewPaymentService(intents, &fakeOrderMarker{}, &fakePaymentInserter{})
	ctrl := controllers.NewPaymentController(svc)

	r := chi.NewRouter()
	r.Method(http.MethodPost, "/create-payment-intent",
		middleware.RequireAuth(http.HandlerFunc(ctrl.CreateIntent)))
	return r
}

func TestCreateIntentConvertsToMinorUnits(t *testing.T) {
	intents := &fakeIntentCreator{secret: "pi_secret_abc"}
	h := paymentsRouter(intents)

	rec, env := doJSON(t, h, http.MethodPost, "/create-payment-intent", `{"price":19.99}`, bearer(t, "a@example.com"))
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, int64(1999), intents.amount)
	assert.Equal(t, "usd", intents.currency)

	var result map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, "pi_secret_abc", result["clientSecret"])
}

func TestCreateIntentRequiresCredential(t *testing.T) {
	intents := &fakeIntentCreator{secret: "pi_secret_abc"}
	h := paymentsRouter(intents)

	rec, _ := doJSON(t, h, http.MethodPost, "/create-payment-intent", `{"price":19.99}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, intents.amount)
}

func TestCreateIntentValidatesPrice(t *testing.T) {
	intents := &fakeIntentCreator{secret: "pi_secret_abc"}
	h := paymentsRouter(intents)

	rec, _ := doJSON(t, h, http.MethodPost, "/create-payment-intent", `{"price":0}`, bearer(t, "a@example.com"))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Zero(t, intents.amount)
}

func TestCreateIntentUnconfigured(t *testing.T) {
	h := paymentsRouter(nil)

	rec, _ := doJSON(t, h, http.MethodPost, "/create-payment-intent", `{"price":19.99}`, bearer(t, "a@example.com"))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
