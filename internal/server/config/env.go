package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/dmitrijs2005/smartirrigation/internal/flagx"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvConfig lists the environment variables understood by the server.
// Unset variables leave the current value untouched.
type EnvConfig struct {
	Port                string        `envconfig:"PORT"`
	HTTPAddr            string        `envconfig:"HTTP_ADDR"`
	MongoDBURI          string        `envconfig:"MONGODB_URI"`
	StoreURI            string        `envconfig:"STORE_URI"`
	StoreConnectTimeout time.Duration `envconfig:"STORE_CONNECT_TIMEOUT"`
	JWTSecret           string        `envconfig:"JWT_SECRET"`
	TokenTTL            time.Duration `envconfig:"TOKEN_TTL"`
	FrontendURL         string        `envconfig:"FRONTEND_URL"`
	AllowedOrigins      []string      `envconfig:"ALLOWED_ORIGINS"`
	LogLevel            string        `envconfig:"LOG_LEVEL"`
	OTLPEndpoint        string        `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	Environment         string        `envconfig:"APP_ENV"`
}

// loadDotEnv reads variables from path (or ".env" when empty) without
// overriding ones already set. A missing default file is not an error.
func loadDotEnv(path string) error {
	explicit := path != ""
	if !explicit {
		path = ".env"
	}
	err := godotenv.Load(path)
	if err != nil && !explicit && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// parseEnv overlays environment variables onto config. STORE_URI wins over
// MONGODB_URI and HTTP_ADDR wins over PORT. FRONTEND_URL is appended to the
// allowed origins. Panics on malformed values.
func parseEnv(config *Config) {
	if err := loadDotEnv(flagx.EnvFileFlags()); err != nil {
		panic(err)
	}

	var e EnvConfig
	if err := envconfig.Process("", &e); err != nil {
		panic(err)
	}

	if e.Port != "" {
		config.EndpointAddrHTTP = ":" + e.Port
	}
	setString(&config.EndpointAddrHTTP, e.HTTPAddr)
	setString(&config.StoreURI, e.MongoDBURI)
	setString(&config.StoreURI, e.StoreURI)
	setString(&config.SecretKey, e.JWTSecret)
	setString(&config.LogLevel, e.LogLevel)
	setString(&config.OTLPEndpoint, e.OTLPEndpoint)
	setString(&config.Environment, e.Environment)

	if e.StoreConnectTimeout > 0 {
		config.StoreConnectTimeout = e.StoreConnectTimeout
	}
	if e.TokenTTL > 0 {
		config.TokenValidityDuration = e.TokenTTL
	}
	if len(e.AllowedOrigins) > 0 {
		config.AllowedOrigins = e.AllowedOrigins
	}
	if e.FrontendURL != "" && !contains(config.AllowedOrigins, e.FrontendURL) {
		config.AllowedOrigins = append(config.AllowedOrigins, e.FrontendURL)
	}
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
