package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/smartirrigation/internal/flagx"
	"github.com/dmitrijs2005/smartirrigation/internal/timex"
)

// JsonConfig is the on-disk shape of the optional configuration file.
// Durations accept both "5s" strings and integer nanoseconds.
type JsonConfig struct {
	EndpointAddrHTTP      string         `json:"endpoint_addr_http"`
	StoreURI              string         `json:"store_uri"`
	StoreConnectTimeout   timex.Duration `json:"store_connect_timeout"`
	SecretKey             string         `json:"secret_key"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
	AllowedOrigins        []string       `json:"allowed_origins"`
	LogLevel              string         `json:"log_level"`
	OTLPEndpoint          string         `json:"otlp_endpoint"`
	Environment           string         `json:"environment"`
}

// parseJson loads the file named by -c or -config into config. Only keys
// present in the file override existing values. If the file cannot be read
// or contains invalid JSON, the function panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.StoreURI, c.StoreURI)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.OTLPEndpoint, c.OTLPEndpoint)
	setString(&config.Environment, c.Environment)

	if c.StoreConnectTimeout.Duration > 0 {
		config.StoreConnectTimeout = c.StoreConnectTimeout.Duration
	}
	if c.TokenValidityDuration.Duration > 0 {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	if len(c.AllowedOrigins) > 0 {
		config.AllowedOrigins = c.AllowedOrigins
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
