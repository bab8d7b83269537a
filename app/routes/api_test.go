package routes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spokeworks/gearhub/app/routes"
	"github.com/spokeworks/gearhub/pkg/router"
)

func TestRouteTable(t *testing.T) {
	r := router.New()
	routes.RegisterRouteNames(r)

	got := map[string]string{}
	for _, ri := range r.Routes() {
		got[ri.Method+" "+ri.Path] = ri.Name
	}

	want := []string{
		"GET /",
		"GET /parts",
		"GET /parts/{id}",
		"POST /addParts",
		"GET /users",
		"DELETE /users/{id}",
		"GET /admin/{email}",
		"PUT /admin/{email}",
		"PUT /user/admin/{email}",
		"PUT /user/{email}",
		"GET /review",
		"POST /review",
		"GET /order/{id}",
		"DELETE /order/{id}",
		"GET /order",
		"POST /order",
		"PATCH /order/{id}",
		"GET /orderAll",
		"POST /create-payment-intent",
	}
	for _, key := range want {
		assert.Contains(t, got, key)
	}
	assert.Len(t, got, len(want))
}
