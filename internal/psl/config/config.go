package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// AppConfig holds configuration values parsed from environment variables.
type AppConfig struct {
	// Env is the runtime environment, either "dev" or "prod".
	Env string `koanf:"env" validate:"required,oneof=dev prod"`

	// LogLevel controls log verbosity: "debug", "info", "warn", or "error".
	LogLevel string `koanf:"log_level" validate:"required,oneof=debug info warn error"`

	// Port is the network port the lookup API binds to.
	Port int `koanf:"port" validate:"required,gte=1,lt=65535"`

	// CacheSize caps the parse-result cache. Zero disables caching.
	CacheSize int `koanf:"cache_size" validate:"gte=0"`

	// DisableCache disables parse-result caching when set to true.
	// Useful for testing scenarios where cache behavior needs to be bypassed.
	DisableCache bool `koanf:"disable_cache"`

	// ListPath points at a suffix list file. Empty loads the bundled snapshot.
	ListPath string `koanf:"list_path"`

	// IncludePrivate keeps the private-domains section of the list when true;
	// otherwise loading stops at the private section sentinel.
	IncludePrivate bool `koanf:"include_private"`

	// SnapshotPath points at a bbolt database used to warm-start the compiled
	// rule set. Empty disables snapshotting.
	SnapshotPath string `koanf:"snapshot_path"`
}

// DEFAULT_APP_CONFIG defines the default settings for the lookup daemon.
var DEFAULT_APP_CONFIG = AppConfig{
	Env:            "prod",
	LogLevel:       "info",
	Port:           8053,
	CacheSize:      1000,
	DisableCache:   false,
	ListPath:       "",
	IncludePrivate: true,
	SnapshotPath:   "",
}

// envLoader loads environment variables with the prefix "HOSTPARTS_",
// lowercasing keys and stripping the prefix. Mockable in tests.
var envLoader = func(k *koanf.Koanf) error {
	return k.Load(env.Provider(".", env.Opt{
		Prefix: "HOSTPARTS_",
		TransformFunc: func(key, value string) (string, any) {
			key = strings.ToLower(strings.TrimPrefix(key, "HOSTPARTS_"))
			return key, strings.TrimSpace(value)
		},
	}), nil)
}

// defaultLoader loads default values via the structs provider. Mockable in tests.
var defaultLoader = func(k *koanf.Koanf) error {
	return k.Load(structs.Provider(DEFAULT_APP_CONFIG, "koanf"), nil)
}

// Load parses environment variables and returns an AppConfig instance.
// It applies default values and runs validation automatically.
func Load() (*AppConfig, error) {
	k := koanf.New(".")

	if err := defaultLoader(k); err != nil {
		return nil, fmt.Errorf("error loading default config: %w", err)
	}

	if err := envLoader(k); err != nil {
		return nil, fmt.Errorf("error loading env: %w", err)
	}

	var cfg AppConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &cfg, nil
}
