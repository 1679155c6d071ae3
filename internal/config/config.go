// Package config holds the runtime settings for the storefront server.
// Everything is loaded once in main and passed down explicitly; no package
// keeps ambient globals.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Auth transport variants. The token semantics are identical; only the
// request adapter that carries the token differs.
const (
	TransportBearer = "bearer"
	TransportCookie = "cookie"
)

type Config struct {
	Addr    string
	MongoURI string
	MongoDB  string

	JWTSecret     string
	TokenTTL      time.Duration
	AuthTransport string
	CookieName    string

	AllowOrigins []string
	FakeStoreURL string

	RequestTimeout time.Duration
}

func (c *Config) loadDefaults() {
	c.Addr = ":8800"
	c.MongoURI = "mongodb://localhost:27017"
	c.MongoDB = "storefront"
	c.TokenTTL = 30 * 24 * time.Hour
	c.AuthTransport = TransportBearer
	c.CookieName = "session"
	c.AllowOrigins = []string{"http://localhost:5173"}
	c.FakeStoreURL = "https://fakestoreapi.com"
	c.RequestTimeout = 10 * time.Second
}

// Load builds a Config from defaults overlaid with environment variables.
// JWTSecret has no default: an empty SECRET is a startup error.
func Load() (*Config, error) {
	c := &Config{}
	c.loadDefaults()

	setString(&c.Addr, "ADDRESS")
	setString(&c.MongoURI, "MONGO_URI")
	setString(&c.MongoDB, "MONGO_DB")
	setString(&c.JWTSecret, "SECRET")
	setString(&c.CookieName, "COOKIE_NAME")
	setString(&c.FakeStoreURL, "FAKESTORE_API")

	if v := os.Getenv("TOKEN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("config: invalid TOKEN_TTL %q: %w", v, err)
		}
		c.TokenTTL = d
	}
	if v := os.Getenv("AUTH_TRANSPORT"); v != "" {
		if v != TransportBearer && v != TransportCookie {
			return nil, fmt.Errorf("config: invalid AUTH_TRANSPORT %q", v)
		}
		c.AuthTransport = v
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		c.AllowOrigins = splitAndTrim(v)
	}

	if c.JWTSecret == "" {
		return nil, fmt.Errorf("config: SECRET must be set")
	}
	return c, nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func splitAndTrim(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
