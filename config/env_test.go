package config_test

import (
	"testing"

	"github.com/spokeworks/gearhub/config"
)

func TestEnvVarWinsWithoutMergedKey(t *testing.T) {
	// MAX_BODY_BYTES is not in the defaults or either config file; only the
	// process environment carries it.
	t.Setenv("MAX_BODY_BYTES", "2048")

	if got := config.Get("MAX_BODY_BYTES", "1048576"); got != "2048" {
		t.Errorf("expected env var to win, got %q", got)
	}
}

func TestEnvVarOverridesDefault(t *testing.T) {
	t.Setenv("APP_PORT", "6000")

	if got := config.AppPort(); got != "6000" {
		t.Errorf("expected env var to override the default port, got %q", got)
	}
}

func TestUnsetKeyFallsBack(t *testing.T) {
	if got := config.Get("GEARHUB_NO_SUCH_KEY", "fallback"); got != "fallback" {
		t.Errorf("expected fallback for an unset key, got %q", got)
	}
}
