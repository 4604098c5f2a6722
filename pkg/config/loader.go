// Package config loads typed configuration structs from environment
// variables, with an optional .env file for local development.
package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	// ErrNilPointer is returned when a nil pointer is passed to Load.
	ErrNilPointer = errors.New("config: nil pointer")
	// ErrParsing is returned when environment variables cannot be parsed
	// into the config struct.
	ErrParsing = errors.New("config: failed to parse environment")
)

var dotenvOnce sync.Once

// Load parses environment variables into the provided struct based on its
// `env` field tags. The default .env file is loaded once per process before
// the first parse; a missing .env file is not an error.
//
//	type Config struct {
//		Addr string `env:"HTTP_ADDR" envDefault:":8080"`
//		Inbox string `env:"CONTACT_INBOX,required"`
//	}
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}

	dotenvOnce.Do(func() {
		_ = godotenv.Load()
	})

	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsing, err)
	}
	return nil
}

// MustLoad works like Load but panics on failure. Used for configuration
// the service cannot start without.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}
