package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/WooodHead/everpost-backend/internal/common/constants"
	commonerrors "github.com/WooodHead/everpost-backend/internal/common/errors"
)

type APIConfig struct {
	HTTPPort          string
	DatabaseURL       string
	JWTSecret         string
	PasswordHashCost  int
	RequestTimeout    time.Duration
	OrphanSweepEvery  time.Duration
	OrphanGracePeriod time.Duration
	CORSOrigin        string
	LogDir            string
	LogLevel          string
}

func LoadAPIConfig() (APIConfig, error) {
	jwtSecret, err := mustEnv("JWT_SECRET")
	if err != nil {
		return APIConfig{}, err
	}

	if err := validateJWTSecret(jwtSecret); err != nil {
		return APIConfig{}, err
	}

	databaseURL, err := mustEnv("DATABASE_URL")
	if err != nil {
		return APIConfig{}, err
	}

	cost, err := mustHashCost("PASSWORD_SALT_ROUND")
	if err != nil {
		return APIConfig{}, err
	}

	return APIConfig{
		HTTPPort:          getEnv("HTTP_PORT", getEnv("PORT", constants.DefaultHTTPPort)),
		DatabaseURL:       databaseURL,
		JWTSecret:         jwtSecret,
		PasswordHashCost:  cost,
		RequestTimeout:    getDurationEnv("REQUEST_TIMEOUT", constants.DefaultRequestTimeout),
		OrphanSweepEvery:  getDurationEnv("ORPHAN_SWEEP_INTERVAL", constants.DefaultOrphanSweepEvery),
		OrphanGracePeriod: getDurationEnv("ORPHAN_GRACE_PERIOD", constants.DefaultOrphanGracePeriod),
		CORSOrigin:        getEnv("CORS_ORIGIN", "*"),
		LogDir:            os.Getenv("LOG_DIR"),
		LogLevel:          os.Getenv("LOG_LEVEL"),
	}, nil
}

func validateJWTSecret(secret string) error {
	if len(secret) < constants.JWTSecretMinLength {
		return fmt.Errorf("%w: got %d bytes", commonerrors.ErrInvalidJWTSecret, len(secret))
	}
	return nil
}

func mustHashCost(key string) (int, error) {
	raw, err := mustEnv(key)
	if err != nil {
		return 0, err
	}
	cost, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s is not an integer", commonerrors.ErrInvalidEnv, key)
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return 0, fmt.Errorf("%w: %s must be between %d and %d", commonerrors.ErrInvalidEnv, key, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return cost, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func mustEnv(key string) (string, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", fmt.Errorf("%w: %s", commonerrors.ErrMissingRequiredEnv, key)
	}
	return v, nil
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
