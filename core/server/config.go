package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// JWTSecret is the HMAC secret used to verify bearer tokens.
	JWTSecret string `mapstructure:"jwt_secret" default:""`
	// Environment selects runtime behaviour (development, production).
	Environment string `mapstructure:"environment" default:"production"`
	// BodyLimitMB is the maximum accepted request body size, in megabytes.
	BodyLimitMB int `mapstructure:"body_limit_mb" default:"4"`
}

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

// IsValidEnvironment checks if the configured environment is valid.
func (c Config) IsValidEnvironment() bool {
	switch c.Environment {
	case EnvDevelopment, EnvProduction, EnvTest:
		return true
	default:
		return false
	}
}

// BodyLimit returns the body limit in bytes, falling back to 4MB.
func (c Config) BodyLimit() int {
	if c.BodyLimitMB <= 0 {
		return 4 * 1024 * 1024
	}
	return c.BodyLimitMB * 1024 * 1024
}
