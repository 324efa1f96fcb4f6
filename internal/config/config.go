// Package config defines the application configuration and the functions
// that load it, validate it and read calculator input files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/iwvelando/finance-calculators/internal/cache"
	"github.com/iwvelando/finance-calculators/internal/calculators"
	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for fincalc.
type Configuration struct {
	Logging     LoggingConfig         `mapstructure:"logging" yaml:"logging,omitempty"`
	Output      OutputConfig          `mapstructure:"output" yaml:"output,omitempty"`
	Server      ServerConfig          `mapstructure:"server" yaml:"server,omitempty"`
	Cache       CacheConfig           `mapstructure:"cache" yaml:"cache,omitempty"`
	Calculators calculators.Overrides `mapstructure:"calculators" yaml:"calculators,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `mapstructure:"level" yaml:"level,omitempty" validate:"omitempty,oneof=debug info warn warning error"`
	Format     string `mapstructure:"format" yaml:"format,omitempty" validate:"omitempty,oneof=json console"`
	OutputFile string `mapstructure:"outputFile" yaml:"outputFile,omitempty"`
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format,omitempty" validate:"omitempty,oneof=pretty json yaml csv"`
}

// ServerConfig defines runtime parameters for the HTTP API.
type ServerConfig struct {
	Address         string          `mapstructure:"address" yaml:"address" validate:"required"`
	MaxBodySize     string          `mapstructure:"maxBodySize" yaml:"maxBodySize"`
	MaxBatchSize    int             `mapstructure:"maxBatchSize" yaml:"maxBatchSize" validate:"gte=1,lte=10000"`
	RateLimit       RateLimitConfig `mapstructure:"rateLimit" yaml:"rateLimit"`
	CORS            CORSConfig      `mapstructure:"cors" yaml:"cors"`
	ReadTimeout     time.Duration   `mapstructure:"readTimeout" yaml:"readTimeout" validate:"gte=0"`
	WriteTimeout    time.Duration   `mapstructure:"writeTimeout" yaml:"writeTimeout" validate:"gte=0"`
	IdleTimeout     time.Duration   `mapstructure:"idleTimeout" yaml:"idleTimeout" validate:"gte=0"`
	ShutdownTimeout time.Duration   `mapstructure:"shutdownTimeout" yaml:"shutdownTimeout" validate:"gte=0"`

	maxBodyBytes int64
}

// RateLimitConfig limits requests per client address. A zero rate disables
// limiting.
type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requestsPerSecond" yaml:"requestsPerSecond" validate:"gte=0"`
	Burst             int     `mapstructure:"burst" yaml:"burst" validate:"gte=0"`
}

// CORSConfig lists the origins allowed to call the API from a browser.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowedOrigins" yaml:"allowedOrigins"`
}

// CacheConfig selects where evaluation results are cached.
type CacheConfig struct {
	Backend  string        `mapstructure:"backend" yaml:"backend" validate:"oneof=none memory redis"`
	Address  string        `mapstructure:"address" yaml:"address,omitempty" validate:"required_if=Backend redis"`
	Password string        `mapstructure:"password" yaml:"password,omitempty"`
	DB       int           `mapstructure:"db" yaml:"db,omitempty" validate:"gte=0"`
	TTL      time.Duration `mapstructure:"ttl" yaml:"ttl" validate:"gte=0"`
}

// Options converts the section into cache.Options.
func (c CacheConfig) Options() cache.Options {
	return cache.Options{
		Backend:  c.Backend,
		Address:  c.Address,
		Password: c.Password,
		DB:       c.DB,
		TTL:      c.TTL,
	}
}

// MaxBodyBytes returns the parsed request body limit.
func (s ServerConfig) MaxBodyBytes() int64 {
	if s.maxBodyBytes <= 0 {
		return constants.DefaultMaxBodySizeBytes
	}
	return s.maxBodyBytes
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.outputFile", "")
	v.SetDefault("output.format", constants.OutputFormatPretty)
	v.SetDefault("server.address", constants.DefaultServerAddress)
	v.SetDefault("server.maxBodySize", "256K")
	v.SetDefault("server.maxBatchSize", 100)
	v.SetDefault("server.rateLimit.requestsPerSecond", constants.DefaultRequestsPerSecond)
	v.SetDefault("server.rateLimit.burst", constants.DefaultBurst)
	v.SetDefault("server.cors.allowedOrigins", []string{"*"})
	v.SetDefault("server.readTimeout", 10*time.Second)
	v.SetDefault("server.writeTimeout", 30*time.Second)
	v.SetDefault("server.idleTimeout", 120*time.Second)
	v.SetDefault("server.shutdownTimeout", 15*time.Second)
	v.SetDefault("cache.backend", constants.CacheBackendMemory)
	v.SetDefault("cache.address", "")
	v.SetDefault("cache.password", "")
	v.SetDefault("cache.db", 0)
	v.SetDefault("cache.ttl", time.Duration(constants.DefaultCacheTTLSeconds)*time.Second)
}

// Default returns the built-in configuration.
func Default() *Configuration {
	v := viper.New()
	setDefaults(v)
	conf, err := decode(v)
	if err != nil {
		// The built-in defaults always decode and validate.
		panic(err)
	}
	return conf
}

// LoadConfiguration loads the YAML configuration at configPath, applies
// FINCALC_* environment overrides and validates the result. An empty path
// looks for fincalc.yaml in the working directory and falls back to the
// built-in defaults when it does not exist; an explicit path must exist.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	path := configPath
	if path == "" {
		path = constants.DefaultConfigFile
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			path = ""
		}
	}
	return load(v, path)
}

func load(v *viper.Viper, path string) (*Configuration, error) {
	setDefaults(v)
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}
	if err := configuration.Validate(); err != nil {
		return nil, err
	}
	return &configuration, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks every section and parses the server body limit.
func (c *Configuration) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fieldErrors validator.ValidationErrors
		if !errors.As(err, &fieldErrors) {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		problems := make([]error, 0, len(fieldErrors))
		for _, fe := range fieldErrors {
			problems = append(problems, fmt.Errorf("%s: failed %q check (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
		}
		return fmt.Errorf("invalid configuration: %w", errors.Join(problems...))
	}

	size, err := ParseSize(c.Server.MaxBodySize)
	if err != nil {
		return fmt.Errorf("invalid configuration: server.maxBodySize: %w", err)
	}
	c.Server.maxBodyBytes = size
	return nil
}

// ParseSize converts a human-friendly byte string (e.g., "256K", "10M") into bytes.
func ParseSize(value string) (int64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return constants.DefaultMaxBodySizeBytes, nil
	}

	upper := strings.ToUpper(trimmed)
	idx := len(upper)
	for idx > 0 && !unicode.IsDigit(rune(upper[idx-1])) {
		idx--
	}
	if idx == 0 {
		return 0, fmt.Errorf("invalid size: %s", value)
	}
	numPart := strings.TrimSpace(upper[:idx])
	unitPart := strings.TrimSpace(upper[idx:])

	n, err := strconv.ParseInt(numPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size value %q: %w", value, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("size must be positive: %s", value)
	}

	var multiplier int64
	switch unitPart {
	case "", "B":
		multiplier = 1
	case "K", "KB":
		multiplier = 1024
	case "M", "MB":
		multiplier = 1024 * 1024
	case "G", "GB":
		multiplier = 1024 * 1024 * 1024
	default:
		return 0, fmt.Errorf("unsupported size unit %q", unitPart)
	}

	result := n * multiplier
	if result/multiplier != n {
		return 0, fmt.Errorf("size overflow for value %s", value)
	}
	return result, nil
}
