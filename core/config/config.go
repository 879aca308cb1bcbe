package config

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	loadEnvOnce sync.Once

	cache   = make(map[reflect.Type]any)
	cacheMu sync.Mutex
)

// Load populates cfg from environment variables.
// The .env file in the working directory is loaded on first use, if present;
// variables already set in the environment take precedence.
// Each type is parsed once and the cached value is returned afterwards.
func Load[T any](cfg *T) error {
	loadEnvOnce.Do(func() {
		_ = godotenv.Load()
	})

	t := reflect.TypeOf(cfg).Elem()

	cacheMu.Lock()
	defer cacheMu.Unlock()

	if cached, ok := cache[t]; ok {
		*cfg = cached.(T)
		return nil
	}

	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("config: failed to parse %s: %w", t.Name(), err)
	}

	cache[t] = *cfg
	return nil
}

// MustLoad is like Load but panics on error. Useful at startup.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}
