package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Python  string  `toml:"python"`
	Exclude Exclude `toml:"exclude"`
	Layers  Layers  `toml:"layers"`
	Runner  Runner  `toml:"runner"`
	Watch   Watch   `toml:"watch"`
	History History `toml:"history"`
}

type Exclude struct {
	DirPrefixes []string `toml:"dir_prefixes"` // Directory name prefixes skipped during app discovery
	VendorDirs  []string `toml:"vendor_dirs"`  // Path components skipped during settings detection
}

// Layers maps each logical project layer to the relative path stems searched
// within an app directory. Each stem matches both "<stem>.py" and "<stem>/*.py".
type Layers struct {
	Views       []string `toml:"views"`
	Serializers []string `toml:"serializers"`
	Services    []string `toml:"services"`
	Usecases    []string `toml:"usecases"`
	Entities    []string `toml:"entities"`
	OrmModels   []string `toml:"orm_models"`
}

type Runner struct {
	Timeout time.Duration `toml:"timeout"`
}

type Watch struct {
	Debounce time.Duration `toml:"debounce"`
	Rate     float64       `toml:"rate"` // Rescans per second
	Burst    int           `toml:"burst"`
}

type History struct {
	Path string `toml:"path"`
}

func Default() *Config {
	return &Config{
		Python: "python3",
		Exclude: Exclude{
			DirPrefixes: []string{".", "__", "venv"},
			VendorDirs:  []string{"site-packages"},
		},
		Layers: Layers{
			Views:       []string{"views", "presentation/views"},
			Serializers: []string{"serializers", "presentation/serializers"},
			Services:    []string{"services", "application/services"},
			Usecases:    []string{"usecases", "application/usecases"},
			Entities:    []string{"entities", "domain/entities"},
			// "adapters/orm/models" is the layered convention; the bare "models"
			// stem covers legacy flat apps. Both are collected when both exist.
			OrmModels: []string{"adapters/orm/models", "models"},
		},
		Runner: Runner{
			Timeout: 300 * time.Second,
		},
		Watch: Watch{
			Debounce: 500 * time.Millisecond,
			Rate:     1,
			Burst:    2,
		},
		History: History{
			Path: ".drfspec/history.db",
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, err
	}

	applyDefaults(cfg)
	return cfg, nil
}

// LoadOrDefault reads the config file if it exists and falls back to the
// defaults when it does not.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}
	return Load(path)
}

func applyDefaults(cfg *Config) {
	def := Default()

	if cfg.Python == "" {
		cfg.Python = def.Python
	}
	if cfg.Runner.Timeout == 0 {
		cfg.Runner.Timeout = def.Runner.Timeout
	}
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = def.Watch.Debounce
	}
	if cfg.Watch.Rate == 0 {
		cfg.Watch.Rate = def.Watch.Rate
	}
	if cfg.Watch.Burst == 0 {
		cfg.Watch.Burst = def.Watch.Burst
	}
	if cfg.History.Path == "" {
		cfg.History.Path = def.History.Path
	}
	if len(cfg.Exclude.DirPrefixes) == 0 {
		cfg.Exclude.DirPrefixes = def.Exclude.DirPrefixes
	}
	if len(cfg.Exclude.VendorDirs) == 0 {
		cfg.Exclude.VendorDirs = def.Exclude.VendorDirs
	}
	if len(cfg.Layers.Views) == 0 {
		cfg.Layers.Views = def.Layers.Views
	}
	if len(cfg.Layers.Serializers) == 0 {
		cfg.Layers.Serializers = def.Layers.Serializers
	}
	if len(cfg.Layers.Services) == 0 {
		cfg.Layers.Services = def.Layers.Services
	}
	if len(cfg.Layers.Usecases) == 0 {
		cfg.Layers.Usecases = def.Layers.Usecases
	}
	if len(cfg.Layers.Entities) == 0 {
		cfg.Layers.Entities = def.Layers.Entities
	}
	if len(cfg.Layers.OrmModels) == 0 {
		cfg.Layers.OrmModels = def.Layers.OrmModels
	}
}
