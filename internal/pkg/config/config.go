package config

import (
	"io"
	"time"
)

// Config defines a set of methods for retrieving configuration values of
// various types. Implementations handle retrieval and type conversion,
// returning zero values when a key is absent or not convertible.
type Config interface {
	io.Closer

	// GetString retrieves the configuration value associated with the given key as a string.
	GetString(key string) string

	// GetBool retrieves the configuration value associated with the given key as a bool.
	GetBool(key string) bool

	// GetInt retrieves the configuration value associated with the given key as an int.
	GetInt(key string) int

	// GetInt32 retrieves the configuration value associated with the given key as an int32.
	GetInt32(key string) int32

	// GetInt64 retrieves the configuration value associated with the given key as an int64.
	GetInt64(key string) int64

	// GetFloat64 retrieves the configuration value associated with the given key as a float64.
	GetFloat64(key string) float64

	// GetSecond retrieves the configuration value associated with the given key as seconds.
	GetSecond(key string) time.Duration

	// GetMinute retrieves the configuration value associated with the given key as minutes.
	GetMinute(key string) time.Duration

	// GetArray retrieves the configuration value associated with the given key as a slice
	// of strings. Configuration value is stored with format <element1>,<element2>,...
	GetArray(key string) []string
}
