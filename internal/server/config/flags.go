package config

import (
	"flag"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/smartirrigation/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":4000")
//	-d string   store URI (mongodb://, postgres://, or "" for in-memory)
//	-s string   JWT HMAC secret key
//	-t int      token validity, hours
//	-o string   comma-separated CORS origins
//	-l string   log level
//	-e string   OTLP gRPC collector endpoint
//
// os.Args is filtered with flagx.FilterArgs first so that -c and -env-file
// do not collide with these flags.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-o", "-l", "-e"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.StoreURI, "d", config.StoreURI, "store URI")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	tokenValidity := fs.Int("t", int(config.TokenValidityDuration.Hours()), "token_validity_duration (in hours)")
	origins := fs.String("o", strings.Join(config.AllowedOrigins, ","), "allowed CORS origins, comma separated")

	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.OTLPEndpoint, "e", config.OTLPEndpoint, "OTLP gRPC endpoint")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// only explicitly passed flags override values from earlier layers
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			config.TokenValidityDuration = time.Duration(*tokenValidity) * time.Hour
		case "o":
			config.AllowedOrigins = splitOrigins(*origins)
		}
	})
}

func splitOrigins(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
