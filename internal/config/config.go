// Package config provides thin accessors over environment variables.
// Loading .env files is the composition root's job (godotenv in main).
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Get returns the value of key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// MustGet returns the value of key or an error naming the missing variable.
func MustGet(key string) (string, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return "", fmt.Errorf("config: %s is required", key)
	}
	return v, nil
}

// GetInt returns the integer value of key, or fallback when unset or invalid.
func GetInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
