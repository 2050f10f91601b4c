// Package env reads configuration from environment variables.
package env

import (
	"os"
	"strings"
)

// GetEnvOr gets an environment variable. If missing/empty, it returns fallback.
func GetEnvOr(name, fallback string) string {
	val := os.Getenv(name)
	if val == "" {
		return fallback
	}
	return val
}

// ParseBool interprets an environment-variable flag value.
//
// The case-insensitive strings "true", "t" and "1" mean true;
// everything else (the empty string included) means false.
func ParseBool(value string) bool {
	switch strings.ToLower(value) {
	case "true", "t", "1":
		return true
	default:
		return false
	}
}

// GetBool is ParseBool over the named environment variable.
// A missing variable reads as false.
func GetBool(name string) bool {
	return ParseBool(os.Getenv(name))
}
