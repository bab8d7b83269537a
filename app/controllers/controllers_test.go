package controllers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/spokeworks/gearhub/app/models"
	"github.com/spokeworks/gearhub/pkg/auth"
)

// envelope mirrors the response package's JSON shape for assertions.
type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

func doJSON(t *testing.T, h http.Handler, method, target, body string, headers map[string]string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode envelope: %v (body: %s)", err, rec.Body.String())
		}
	}
	return rec, env
}

func bearer(t *testing.T, email string) map[string]string {
	t.Helper()
	token, err := auth.GenerateToken(email)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return map[string]string{"Authorization": "Bearer " + token}
}

// checkHex mimics the repositories' id parsing so bad-id behavior matches.
func checkHex(id string) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return fmt.Errorf("bad id %q: %w", id, err)
	}
	return nil
}

// ─── Fakes ────────────────────────────────────────────────────────────────────

type fakePartStore struct {
	parts    []models.Part
	inserted []*models.Part
	allErr   error
}

func (f *fakePartStore) All(context.Context) ([]models.Part, error) {
	return f.parts, f.allErr
}

func (f *fakePartStore) Find(_ context.Context, id string) (*models.Part, error) {
	if err := checkHex(id); err != nil {
		return nil, err
	}
	for i := range f.parts {
		if f.parts[i].ID.Hex() == id {
			return &f.parts[i], nil
		}
	}
	return nil, nil
}

func (f *fakePartStore) Insert(_ context.Context, part *models.Part) (string, error) {
	f.inserted = append(f.inserted, part)
	return primitive.NewObjectID().Hex(), nil
}

type fakeUserStore struct {
	users     []models.User
	deletedID string
	roles     map[string]string // email → role set via SetRole
}

func (f *fakeUserStore) All(context.Context) ([]models.User, error) {
	return f.users, nil
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for i := range f.users {
		if f.users[i].Email == email {
			return &f.users[i], nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) SetRole(_ context.Context, email, role string) (int64, error) {
	if f.roles == nil {
		f.roles = map[string]string{}
	}
	for _, u := range f.users {
		if u.Email == email {
			f.roles[email] = role
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeUserStore) Delete(_ context.Context, id string) (int64, error) {
	if err := checkHex(id); err != nil {
		return 0, err
	}
	f.deletedID = id
	return 1, nil
}

type fakeOrderStore struct {
	orders   []models.Order
	inserted []*models.Order
	deleted  []string
}

func (f *fakeOrderStore) Find(_ context.Context, id string) (*models.Order, error) {
	if err := checkHex(id); err != nil {
		return nil, err
	}
	for i := range f.orders {
		if f.orders[i].ID.Hex() == id {
			return &f.orders[i], nil
		}
	}
	return nil, nil
}

func (f *fakeOrderStore) ByEmail(_ context.Context, email string) ([]models.Order, error) {
	out := []models.Order{}
	for _, o := range f.orders {
		if o.Email == email {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrderStore) All(context.Context) ([]models.Order, error) {
	return f.orders, nil
}

func (f *fakeOrderStore) Insert(_ context.Context, order *models.Order) (string, error) {
	f.inserted = append(f.inserted, order)
	return primitive.NewObjectID().Hex(), nil
}

func (f *fakeOrderStore) Delete(_ context.Context, id string) (int64, error) {
	if err := checkHex(id); err != nil {
		return 0, err
	}
	f.deleted = append(f.deleted, id)
	return 1, nil
}
