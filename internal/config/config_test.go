package config

import "testing"

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_ENV", "test")
	t.Setenv("APP_PORT", "8000")
	t.Setenv("DB_USER", "petition")
	t.Setenv("DB_PASS", "")
	t.Setenv("DB_HOST", "127.0.0.1")
	t.Setenv("DB_PORT", "3306")
	t.Setenv("DB_NAME", "petitions")
	t.Setenv("AUTH_SECRET_KEY", "config-test-secret")
	t.Setenv("ACCESS_TOKEN_TTL_MIN", "20")
	t.Setenv("BCRYPT_COST", "10")
}

func TestLoad(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("AUTH_ALGORITHM", "HS384")

	cfg := Load()
	if cfg.Port != "8000" || cfg.DBName != "petitions" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.JWTAlgorithm != "HS384" {
		t.Errorf("JWTAlgorithm = %q, want HS384", cfg.JWTAlgorithm)
	}
	if cfg.AccessTTLMin != 20 || cfg.BcryptCost != 10 {
		t.Errorf("AccessTTLMin = %d BcryptCost = %d", cfg.AccessTTLMin, cfg.BcryptCost)
	}
}

func TestLoadDefaultAlgorithm(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("AUTH_ALGORITHM", "")

	if cfg := Load(); cfg.JWTAlgorithm != "HS256" {
		t.Errorf("JWTAlgorithm = %q, want default HS256", cfg.JWTAlgorithm)
	}
}
