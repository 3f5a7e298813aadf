// ABOUTME: Server configuration loaded from MIRAVALLE_* environment variables.
// ABOUTME: Validates the bind address so the unauthenticated editor never listens remotely by accident.
package main

import (
	"errors"
	"fmt"
	"net"
	"os"
)

// ErrNonLoopbackBind is returned when the bind address is reachable from other
// hosts without the explicit opt-in.
var ErrNonLoopbackBind = errors.New(
	"bind address is non-loopback but MIRAVALLE_ALLOW_REMOTE is not true; the editor has no authentication, set MIRAVALLE_ALLOW_REMOTE=true to expose it anyway",
)

// Config holds server configuration from environment variables and flags.
type Config struct {
	Addr         string // Socket address (MIRAVALLE_ADDR, default: 127.0.0.1:8080)
	InquiryPath  string // SQLite file for inquiries (MIRAVALLE_INQUIRIES, default: in-memory)
	ManifestPath string // Slot manifest to load and watch (MIRAVALLE_CONTENT, default: embedded)
	AllowRemote  bool   // Allow non-loopback binds (MIRAVALLE_ALLOW_REMOTE, default: false)
}

// ConfigFromEnv loads configuration from MIRAVALLE_* environment variables
// with defaults. Flags may override the fields afterwards; call Validate on
// the final config.
func ConfigFromEnv() *Config {
	return &Config{
		Addr:         envOrDefault("MIRAVALLE_ADDR", "127.0.0.1:8080"),
		InquiryPath:  envOrDefault("MIRAVALLE_INQUIRIES", ":memory:"),
		ManifestPath: os.Getenv("MIRAVALLE_CONTENT"),
		AllowRemote:  boolEnv("MIRAVALLE_ALLOW_REMOTE"),
	}
}

// Validate refuses non-loopback binds unless remote access was explicitly
// opted into. Checks both IP literals and hostnames; only 127.0.0.0/8, ::1,
// and "localhost" are considered safe.
func (c *Config) Validate() error {
	if c.AllowRemote {
		return nil
	}

	host, _, err := net.SplitHostPort(c.Addr)
	if err != nil || host == "" {
		// ":8080" binds every interface.
		if err == nil && host == "" {
			return fmt.Errorf("%w: addr=%s", ErrNonLoopbackBind, c.Addr)
		}
		return fmt.Errorf("invalid bind address %q: %w", c.Addr, err)
	}

	ip := net.ParseIP(host)
	switch {
	case ip != nil && ip.IsLoopback():
		// Safe: 127.x.x.x or ::1
	case ip != nil:
		// Non-loopback IP literal (e.g. 0.0.0.0, 192.168.x.x)
		return fmt.Errorf("%w: addr=%s", ErrNonLoopbackBind, c.Addr)
	case host == "localhost":
		// Safe: conventional loopback hostname
	default:
		// Non-localhost hostname (e.g. myhost, example.com)
		return fmt.Errorf("%w: addr=%s", ErrNonLoopbackBind, c.Addr)
	}

	return nil
}

// envOrDefault returns the environment variable's value, or the default when
// unset or empty.
func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// boolEnv reports whether the environment variable is set to a truthy value.
func boolEnv(key string) bool {
	switch os.Getenv(key) {
	case "true", "1", "yes":
		return true
	}
	return false
}
