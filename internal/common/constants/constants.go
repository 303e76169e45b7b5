package constants

import "time"

const (
	PasswordMinLength  = 8
	PasswordMaxLength  = 72
	UsernameMaxLength  = 64
	EmailMaxLength     = 255
	JWTSecretMinLength = 32

	PostTitleMinLength   = 1
	PostTitleMaxLength   = 512
	PostContentMinLength = 1
	PostContentMaxLength = 65535
	FileNameMaxLength    = 255

	DefaultPageSize       = 20
	MaxPageSize           = 100
	DefaultMaxRequestSize = 1 << 20

	AccessTokenTTL = 7 * 24 * time.Hour

	DBPoolMaxConns        = 25
	DBPoolMinConns        = 5
	DBPoolConnMaxLifetime = time.Hour
	DBPoolConnMaxIdleTime = 30 * time.Minute
	DBPoolHealthCheck     = time.Minute
	DBPoolConnectTimeout  = 5 * time.Second
	DBPoolMaxAttempts     = 10
	DBPoolRetryDelay      = time.Second
	DBPoolMetricsInterval = 30 * time.Second
	DBQueryTimeout        = 30 * time.Second

	ServerReadHeaderTimeout = 10 * time.Second
	ServerReadTimeout       = 30 * time.Second
	ServerWriteTimeout      = 30 * time.Second
	ServerIdleTimeout       = 120 * time.Second
	ServerMaxHeaderBytes    = 1 << 16

	ShutdownTimeout = 30 * time.Second
	DrainTimeout    = 10 * time.Second

	DefaultHTTPPort          = "4000"
	DefaultRequestTimeout    = 5 * time.Second
	DefaultOrphanSweepEvery  = time.Hour
	DefaultOrphanGracePeriod = 10 * time.Minute
	RateLimitCleanupInterval = 5 * time.Minute

	RateLimitLoginRequestsPerSecond    = 1.0
	RateLimitLoginBurst                = 5
	RateLimitRegisterRequestsPerSecond = 0.2
	RateLimitRegisterBurst             = 3
	RateLimitGeneralRequestsPerSecond  = 20.0
	RateLimitGeneralBurst              = 40

	LoggerMaxSize    = 100
	LoggerMaxBackups = 3
	LoggerMaxAge     = 28
)

type TraceIDKeyType string

const TraceIDKey TraceIDKeyType = "trace_id"
