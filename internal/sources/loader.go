package sources

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

var (
	// ErrNoSources indicates no sources were found in the configuration.
	ErrNoSources = errors.New("no sources found in configuration")
	// ErrMissingRequiredField indicates a required field is missing.
	ErrMissingRequiredField = errors.New("missing required field")
)

// sourcesFile represents the structure of a sources YAML file.
type sourcesFile struct {
	Sources []map[string]any `yaml:"sources"`
}

// Loader handles loading and validating source configurations.
type Loader struct {
	configPath string
}

// NewLoader creates a new Loader instance.
func NewLoader(configPath string) *Loader {
	return &Loader{configPath: configPath}
}

// LoadSources loads and validates all sources from the configuration file.
// Sources that fail validation are dropped rather than failing the load.
func (l *Loader) LoadSources() ([]Config, error) {
	raw, err := l.loadRawSources()
	if err != nil {
		return nil, fmt.Errorf("failed to load raw sources: %w", err)
	}

	configs := make([]Config, 0, len(raw))
	for _, src := range raw {
		cfg, convertErr := l.convertToConfig(src)
		if convertErr != nil {
			continue
		}
		if validateErr := l.validateConfig(&cfg); validateErr != nil {
			continue
		}
		configs = append(configs, cfg)
	}

	if len(configs) == 0 {
		return nil, ErrNoSources
	}

	return configs, nil
}

// loadRawSources loads the raw source data from the configuration file.
func (l *Loader) loadRawSources() ([]map[string]any, error) {
	data, err := os.ReadFile(l.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read sources file: %w", err)
	}

	var file sourcesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if len(file.Sources) == 0 {
		return nil, ErrNoSources
	}

	return file.Sources, nil
}

// convertToConfig converts a raw source map to a Config struct.
func (l *Loader) convertToConfig(src map[string]any) (Config, error) {
	var cfg Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return Config{}, fmt.Errorf("failed to create decoder: %w", err)
	}

	if decodeErr := decoder.Decode(src); decodeErr != nil {
		return Config{}, fmt.Errorf("failed to decode source: %w", decodeErr)
	}

	return cfg, nil
}

// validateConfig validates a source configuration and fills defaults.
func (l *Loader) validateConfig(cfg *Config) error {
	if cfg.Name == "" {
		return fmt.Errorf("%w: name", ErrMissingRequiredField)
	}
	if cfg.URL == "" {
		return fmt.Errorf("%w: url", ErrMissingRequiredField)
	}
	if err := l.validateURL(cfg.URL); err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if err := l.validateRateLimit(cfg); err != nil {
		return fmt.Errorf("invalid rate limit: %w", err)
	}

	l.applyTextDefaults(&cfg.Text)

	return nil
}

// validateURL validates the URL format.
func (l *Loader) validateURL(urlStr string) error {
	u, err := url.Parse(urlStr)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("must be a valid HTTP(S) URL")
	}
	return nil
}

// validateRateLimit validates and normalizes the rate limit.
func (l *Loader) validateRateLimit(cfg *Config) error {
	if cfg.RateLimit == "" {
		cfg.RateLimit = DefaultRateLimit
		return nil
	}
	if _, err := time.ParseDuration(cfg.RateLimit); err != nil {
		return fmt.Errorf("invalid duration: %w", err)
	}
	return nil
}

// applyTextDefaults fills unset text-processing options.
func (l *Loader) applyTextDefaults(opts *TextOptions) {
	if opts.MinWordFrequency <= 0 {
		opts.MinWordFrequency = DefaultMinWordFrequency
	}
	if opts.MinWordLength <= 0 {
		opts.MinWordLength = DefaultMinWordLength
	}
	if opts.MaxWordLength <= 0 {
		opts.MaxWordLength = DefaultMaxWordLength
	}
}
