package payments_test

import (
	"testing"

	"github.com/spokeworks/gearhub/pkg/payments"
)

func TestMinorUnits(t *testing.T) {
	cases := []struct {
		price float64
		want  int64
	}{
		{19.99, 1999},
		{64.90, 6490},
		{0.01, 1},
		{100, 10000},
		{0, 0},
	}

	for _, c := range cases {
		if got := payments.MinorUnits(c.price); got != c.want {
			t.Errorf("MinorUnits(%v) = %d, want %d", c.price, got, c.want)
		}
	}
}

func TestNewStripeClientRequiresKey(t *testing.T) {
	if _, err := payments.NewStripeClient(""); err == nil {
		t.Error("expected an error without a provider key")
	}
}
