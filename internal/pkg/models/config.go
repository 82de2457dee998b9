package models

// Config represents application configuration
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	NATS     NATSConfig
	JWT      JWTConfig
	OTP      OTPConfig
	Session  SessionConfig
	NewRelic NewRelicConfig
	Logger   LoggerConfig
}

// AppConfig contains application-specific configuration
type AppConfig struct {
	Name        string
	Environment string
	Debug       bool
	Version     string
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	Database  string
	SSLMode   string
	MaxConns  int
	IdleConns int
}

// RedisConfig contains Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

// NATSConfig contains NATS connection configuration
type NATSConfig struct {
	URL string
}

// JWTConfig contains JWT authentication configuration
type JWTConfig struct {
	Secret     string
	Expiration int // in minutes
	Issuer     string
}

// OTPConfig contains OTP challenge configuration
type OTPConfig struct {
	ExpiryMinutes    int // challenge lifetime
	MaxAttempts      int // verify attempts per challenge
	ResendCooldown   int // seconds between issuances for the same contact+purpose
	RetentionMinutes int // how long an expired challenge stays readable
}

// SessionConfig contains web session configuration
type SessionConfig struct {
	TTLMinutes int    // idle lifetime of a session record
	CookieName string // session ID cookie
}

// NewRelicConfig contains New Relic APM configuration
type NewRelicConfig struct {
	LicenseKey string
	AppName    string
	Enabled    bool
}

// LoggerConfig contains logger configuration
type LoggerConfig struct {
	Level    string
	FilePath string
}
