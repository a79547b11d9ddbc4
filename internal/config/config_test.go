package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		JWTSecret:      "development-secret",
		Port:           "8480",
		DBHost:         "localhost",
		DBPort:         "5432",
		DBUser:         "user",
		DBPassword:     "password",
		DBName:         "civicvoice",
		DBSSLMode:      "disable",
		RedisURL:       "localhost:6379",
		AllowedOrigins: "http://localhost:5173",
		Env:            "development",
	}
}

func TestValidate_Development(t *testing.T) {
	cfg := validConfig()
	require.NoError(t, cfg.Validate())
}

func TestValidate_MissingRequired(t *testing.T) {
	cfg := validConfig()
	cfg.Port = ""
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.JWTSecret = ""
	assert.Error(t, cfg.Validate())
}

func TestValidate_ProductionRejectsDefaults(t *testing.T) {
	cfg := validConfig()
	cfg.Env = "production"
	cfg.JWTSecret = "your-secret-key-change-in-production"
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Env = "production"
	cfg.JWTSecret = "short"
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Env = "production"
	cfg.JWTSecret = strings.Repeat("s", 40)
	cfg.DBPassword = "password"
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Env = "production"
	cfg.JWTSecret = strings.Repeat("s", 40)
	cfg.DBPassword = "4-very-strong-password"
	assert.NoError(t, cfg.Validate())
}
