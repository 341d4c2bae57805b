package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PORT", "6000")
	t.Setenv("RATE_LIMIT_RPS", "2.5")

	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.JWTSecret != "s3cret" || c.GRPCPort != "6000" || c.RateLimitRPS != 2.5 {
		t.Errorf("config = %+v", c)
	}
	if c.Store != "postgres" || c.WebPort != "8080" || c.RateLimitBurst != 10 || c.NotifyExchange != "notification.exchange" {
		t.Errorf("defaults = %+v", c)
	}
	if c.AccessTTL != 15*time.Minute || c.RefreshTTL != 30*24*time.Hour {
		t.Errorf("token ttls = %v %v", c.AccessTTL, c.RefreshTTL)
	}
	if c.RabbitURL != "" || c.OTLPEndpoint != "" {
		t.Errorf("optional integrations enabled by default: %+v", c)
	}
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	os.Unsetenv("JWT_SECRET")
	if _, err := Load(); err == nil {
		t.Error("expected error without JWT_SECRET")
	}
}
