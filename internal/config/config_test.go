package config

import (
	"errors"
	"testing"
	"time"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_DRIVER", "memory")
	t.Setenv("JWT_SECRET", "a-real-secret-value")
}

func TestLoadRefusesMissingSecret(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("JWT_SECRET", "")
	if _, err := Load(); !errors.Is(err, ErrMissingSecret) {
		t.Fatalf("err = %v, want ErrMissingSecret", err)
	}
}

func TestLoadRefusesPlaceholderSecret(t *testing.T) {
	setBaseEnv(t)
	for _, s := range []string{"changeme", "SuperSecret", " your_jwt_secret "} {
		t.Setenv("JWT_SECRET", s)
		if _, err := Load(); !errors.Is(err, ErrMissingSecret) {
			t.Errorf("secret %q: err = %v, want ErrMissingSecret", s, err)
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("CORS_ORIGIN", "http://a.test, http://b.test")
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != "5000" {
		t.Errorf("port = %q", cfg.Port)
	}
	if cfg.JWTTTL != 168*time.Hour {
		t.Errorf("ttl = %s", cfg.JWTTTL)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://b.test" {
		t.Errorf("origins = %v", cfg.CORSOrigins)
	}
	if cfg.Redis.Enabled() || cfg.MinIO.Enabled() {
		t.Error("optional backends should be off by default")
	}
}

func TestLoadRequiresDSNForSQLDrivers(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DB_DRIVER", "pgx")
	t.Setenv("DATABASE_DSN", "")
	t.Setenv("DATABASE_URL", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error without DSN")
	}
	t.Setenv("DATABASE_URL", "postgres://localhost/market")
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DatabaseDSN != "postgres://localhost/market" {
		t.Errorf("dsn = %q", cfg.DatabaseDSN)
	}
}
