package config

import (
	"strings"
	"testing"
)

func validConfig(env string) Config {
	return Config{
		App:   AppConfig{Env: env, Port: 4000},
		DB:    DBConfig{Host: "localhost", Port: 5432, User: "postgres", Password: "x", Name: "booking"},
		Redis: RedisConfig{Host: "localhost", Port: 6379},
		Auth:  AuthConfig{AccessSecret: "access", RefreshSecret: "refresh"},
	}
}

func TestValidate_ReportsMissingRequired(t *testing.T) {
	c := Config{}
	if err := c.Validate(); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestValidate_AccessSecretRequired(t *testing.T) {
	c := validConfig("local")
	c.Auth.AccessSecret = ""
	err := c.Validate()
	if err == nil || !strings.Contains(err.Error(), "JWT_SECRET_KEY is required") {
		t.Fatalf("expected missing access secret error, got %v", err)
	}
}

func TestValidate_SecretsMustDiffer(t *testing.T) {
	c := validConfig("local")
	c.Auth.RefreshSecret = c.Auth.AccessSecret
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error for shared signing secret")
	}
}

func TestValidate_ProductionRequiresSSLMode(t *testing.T) {
	c := validConfig("production")
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error for production without DB_SSLMODE")
	}
}

func TestValidate_LocalDefaults(t *testing.T) {
	c := validConfig("local")
	if err := c.Validate(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if c.DB.SSLMode != "disable" {
		t.Fatalf("expected sslmode disable default, got %q", c.DB.SSLMode)
	}
	if c.Auth.AccessTTL != "1h" || c.Auth.RefreshTTL != "7d" {
		t.Fatalf("unexpected ttl defaults: %q %q", c.Auth.AccessTTL, c.Auth.RefreshTTL)
	}
	if c.Auth.SecureCookies {
		t.Fatalf("secure cookies must be off outside production")
	}
}

func TestValidate_ProductionSecureCookies(t *testing.T) {
	c := validConfig("production")
	c.DB.SSLMode = "require"
	if err := c.Validate(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !c.Auth.SecureCookies {
		t.Fatalf("expected secure cookies in production")
	}
}

func TestLoad_ReadsEnv(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	t.Setenv("APP_PORT", "4000")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_USER", "u")
	t.Setenv("DB_NAME", "booking")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "6379")
	t.Setenv("JWT_SECRET_KEY", "a")
	t.Setenv("JWT_REFRESH_SECRET", "b")
	t.Setenv("JWT_ACCESS_EXPIRES_IN", "30m")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000, http://localhost:4321")

	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Auth.AccessTTL != "30m" || c.Auth.RefreshTTL != "7d" {
		t.Fatalf("unexpected ttls: %+v", c.Auth)
	}
	if len(c.App.CORSOrigins) != 2 || c.App.CORSOrigins[1] != "http://localhost:4321" {
		t.Fatalf("unexpected origins: %v", c.App.CORSOrigins)
	}
	if c.RedisAddr() != "cache:6379" {
		t.Fatalf("unexpected redis addr %q", c.RedisAddr())
	}
}

func TestLoad_FailsFastWithoutAccessSecret(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	t.Setenv("APP_PORT", "4000")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_USER", "u")
	t.Setenv("DB_NAME", "booking")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "6379")
	t.Setenv("JWT_SECRET_KEY", "")
	t.Setenv("JWT_REFRESH_SECRET", "b")

	if _, err := Load(); err == nil {
		t.Fatalf("expected load to fail without access secret")
	}
}
