// Package config handles configuration for the server component,
// including defaults, JSON overlay, environment and command-line flags.
package config

import "time"

// DefaultSecretKey is the development JWT secret. The app warns when it is
// still in effect at startup.
const DefaultSecretKey = "your-secret-key-change-in-production"

// Config holds runtime settings for the irrigation marketplace server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the REST API.
//   - StoreURI: mongodb://, mongodb+srv://, postgres:// or postgresql:// address.
//     An empty value runs on the in-memory store.
//   - StoreConnectTimeout: bound for the single startup connection attempt.
//   - SecretKey: HMAC secret for signing JWTs (HS256).
//   - TokenValidityDuration: session token lifetime.
//   - AllowedOrigins: CORS allow-list.
//   - LogLevel: debug, info, warn or error.
//   - OTLPEndpoint: host:port of an OTLP gRPC collector. Tracing is off when empty.
//   - Environment: deployment name; "production" switches gin to release mode.
type Config struct {
	EndpointAddrHTTP      string
	StoreURI              string
	StoreConnectTimeout   time.Duration
	SecretKey             string
	TokenValidityDuration time.Duration
	AllowedOrigins        []string
	LogLevel              string
	OTLPEndpoint          string
	Environment           string
}

// LoadDefaults populates Config with development defaults.
// NOTE: SecretKey is insecure for production and must be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":4000"
	c.StoreURI = "mongodb://localhost:27017/smart-irrigation"
	c.StoreConnectTimeout = 5 * time.Second
	c.SecretKey = DefaultSecretKey
	c.TokenValidityDuration = 7 * 24 * time.Hour
	c.AllowedOrigins = []string{"http://localhost:3000", "https://localhost:3000"}
	c.LogLevel = "info"
	c.OTLPEndpoint = ""
	c.Environment = "development"
}

// Production reports whether the server runs in the production environment.
func (c *Config) Production() bool {
	return c.Environment == "production"
}

// InsecureSecret reports whether the development secret is still in use.
func (c *Config) InsecureSecret() bool {
	return c.SecretKey == DefaultSecretKey
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
