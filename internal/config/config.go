package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	yaml "go.yaml.in/yaml/v3"
)

const (
	DefaultItemBaseURL  = "https://render.albiononline.com/v1/item/"
	DefaultIconSheetURL = "https://assets.albiononline.com/assets/images/killboard/fame-list__icons.png"
	DefaultMinFame      = 25000
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
	Render  RenderConfig  `yaml:"render"`
	Kill    KillConfig    `yaml:"kill"`
}

type ServerConfig struct {
	Addr string `yaml:"addr" env:"SERVER_ADDR"`
}

type LoggingConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL"`
	// Format is "console" or "json".
	Format string `yaml:"format" env:"LOG_FORMAT"`
}

// RenderConfig controls how item icons are fetched and how the final image
// is encoded. Zero RatePerSec or MaxConcurrentFetches means unlimited.
type RenderConfig struct {
	ItemBaseURL          string        `yaml:"item_base_url" env:"RENDER_ITEM_BASE_URL"`
	IconSheetURL         string        `yaml:"icon_sheet_url" env:"RENDER_ICON_SHEET_URL"`
	FetchTimeout         time.Duration `yaml:"fetch_timeout" env:"RENDER_FETCH_TIMEOUT"`
	RatePerSec           float64       `yaml:"rate_per_sec" env:"RENDER_RATE_PER_SEC"`
	MaxConcurrentFetches int           `yaml:"max_concurrent_fetches" env:"RENDER_MAX_CONCURRENT_FETCHES"`
	Format               string        `yaml:"format" env:"RENDER_FORMAT"`
}

type KillConfig struct {
	// MinFame hides equipment and inventory for kills below this fame.
	MinFame int64 `yaml:"min_fame" env:"KILL_MIN_FAME"`
}

func Default() Config {
	return Config{
		Server:  ServerConfig{Addr: ":8080"},
		Logging: LoggingConfig{Level: "info", Format: "console"},
		Render: RenderConfig{
			ItemBaseURL:  DefaultItemBaseURL,
			IconSheetURL: DefaultIconSheetURL,
			FetchTimeout: 10 * time.Second,
			Format:       "png",
		},
		Kill: KillConfig{MinFame: DefaultMinFame},
	}
}

// Load builds the config from defaults, an optional YAML file and the
// environment, in that order. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, err
		}
		if err := decodeYAML(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("%s: %w", path, err)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decodeYAML(b []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			// empty file keeps the defaults
			return nil
		}
		return fmt.Errorf("yaml decode: %w", err)
	}
	return nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Kill.MinFame < 0 {
		errs = append(errs, fmt.Errorf("kill.min_fame must be >= 0, got %d", c.Kill.MinFame))
	}
	if c.Render.FetchTimeout <= 0 {
		errs = append(errs, fmt.Errorf("render.fetch_timeout must be > 0, got %s", c.Render.FetchTimeout))
	}
	if c.Render.RatePerSec < 0 {
		errs = append(errs, fmt.Errorf("render.rate_per_sec must be >= 0, got %v", c.Render.RatePerSec))
	}
	if c.Render.MaxConcurrentFetches < 0 {
		errs = append(errs, fmt.Errorf("render.max_concurrent_fetches must be >= 0, got %d", c.Render.MaxConcurrentFetches))
	}
	if strings.TrimSpace(c.Render.ItemBaseURL) == "" {
		errs = append(errs, errors.New("render.item_base_url is required"))
	}
	if strings.TrimSpace(c.Render.IconSheetURL) == "" {
		errs = append(errs, errors.New("render.icon_sheet_url is required"))
	}
	switch strings.ToLower(c.Render.Format) {
	case "png", "jpeg", "jpg":
	default:
		errs = append(errs, fmt.Errorf("render.format %q not supported", c.Render.Format))
	}
	switch strings.ToLower(c.Logging.Format) {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format %q not supported", c.Logging.Format))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
