package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/iwvelando/finance-calculators/internal/calculators"
	"github.com/iwvelando/finance-calculators/pkg/constants"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fincalc.yaml")
	if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	conf := Default()

	if conf.Server.Address != constants.DefaultServerAddress {
		t.Errorf("address = %s, expected %s", conf.Server.Address, constants.DefaultServerAddress)
	}
	if conf.Server.MaxBodyBytes() != constants.DefaultMaxBodySizeBytes {
		t.Errorf("max body = %d, expected %d", conf.Server.MaxBodyBytes(), constants.DefaultMaxBodySizeBytes)
	}
	if conf.Server.RateLimit.RequestsPerSecond != constants.DefaultRequestsPerSecond || conf.Server.RateLimit.Burst != constants.DefaultBurst {
		t.Errorf("unexpected rate limit defaults: %+v", conf.Server.RateLimit)
	}
	if conf.Cache.Backend != constants.CacheBackendMemory || conf.Cache.TTL != time.Hour {
		t.Errorf("unexpected cache defaults: %+v", conf.Cache)
	}
	if conf.Output.Format != constants.OutputFormatPretty {
		t.Errorf("output format = %s, expected pretty", conf.Output.Format)
	}
	if conf.Server.ShutdownTimeout != 15*time.Second {
		t.Errorf("shutdown timeout = %s, expected 15s", conf.Server.ShutdownTimeout)
	}
}

func TestLoadConfigurationMissingFile(t *testing.T) {
	if _, err := LoadConfiguration(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("an explicit missing config file should be an error")
	}

	t.Chdir(t.TempDir())
	conf, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if conf.Server.Address != constants.DefaultServerAddress {
		t.Errorf("expected built-in defaults, got address %s", conf.Server.Address)
	}
}

func TestLoadConfigurationOverrides(t *testing.T) {
	path := writeConfig(t, `logging:
  level: debug
  format: console
output:
  format: json
server:
  address: 127.0.0.1:9000
  maxBodySize: 2M
  maxBatchSize: 10
  rateLimit:
    requestsPerSecond: 5
    burst: 7
  cors:
    allowedOrigins:
      - https://example.com
  readTimeout: 5s
cache:
  backend: redis
  address: localhost:6379
  ttl: 10m
calculators:
  bond-trading:
    paymentFrequency: 4
  developer-salary:
    roleBase:
      backend: 130000
`)

	conf, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if conf.Logging.Level != "debug" || conf.Logging.Format != "console" {
		t.Errorf("unexpected logging: %+v", conf.Logging)
	}
	if conf.Output.Format != constants.OutputFormatJSON {
		t.Errorf("output format = %s, expected json", conf.Output.Format)
	}
	if conf.Server.Address != "127.0.0.1:9000" {
		t.Errorf("address = %s", conf.Server.Address)
	}
	if conf.Server.MaxBodyBytes() != 2*1024*1024 {
		t.Errorf("max body = %d, expected 2M", conf.Server.MaxBodyBytes())
	}
	if conf.Server.MaxBatchSize != 10 {
		t.Errorf("max batch = %d, expected 10", conf.Server.MaxBatchSize)
	}
	if conf.Server.RateLimit.RequestsPerSecond != 5 || conf.Server.RateLimit.Burst != 7 {
		t.Errorf("unexpected rate limit: %+v", conf.Server.RateLimit)
	}
	if len(conf.Server.CORS.AllowedOrigins) != 1 || conf.Server.CORS.AllowedOrigins[0] != "https://example.com" {
		t.Errorf("unexpected origins: %v", conf.Server.CORS.AllowedOrigins)
	}
	if conf.Server.ReadTimeout != 5*time.Second || conf.Server.WriteTimeout != 30*time.Second {
		t.Errorf("unexpected timeouts: read %s write %s", conf.Server.ReadTimeout, conf.Server.WriteTimeout)
	}

	opts := conf.Cache.Options()
	if opts.Backend != constants.CacheBackendRedis || opts.Address != "localhost:6379" || opts.TTL != 10*time.Minute {
		t.Errorf("unexpected cache options: %+v", opts)
	}

	if len(conf.Calculators) != 2 {
		t.Fatalf("expected overrides for 2 calculators, got %v", conf.Calculators)
	}
	if _, err := calculators.Build(conf.Calculators, nil); err != nil {
		t.Errorf("configured overrides should build: %v", err)
	}
}

func TestLoadConfigurationEnvironment(t *testing.T) {
	t.Setenv("FINCALC_SERVER_ADDRESS", ":9999")
	t.Setenv("FINCALC_CACHE_BACKEND", "none")

	conf, err := LoadConfiguration(writeConfig(t, "output:\n  format: yaml\n"))
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if conf.Server.Address != ":9999" {
		t.Errorf("address = %s, expected environment override", conf.Server.Address)
	}
	if conf.Cache.Backend != constants.CacheBackendNone {
		t.Errorf("cache backend = %s, expected none", conf.Cache.Backend)
	}
	if conf.Output.Format != constants.OutputFormatYAML {
		t.Errorf("output format = %s, expected yaml", conf.Output.Format)
	}
}

func TestLoadConfigurationEnvironmentWithoutDefaults(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs", "fincalc.log")
	t.Setenv("FINCALC_CACHE_BACKEND", "redis")
	t.Setenv("FINCALC_CACHE_ADDRESS", "localhost:6379")
	t.Setenv("FINCALC_CACHE_PASSWORD", "secret")
	t.Setenv("FINCALC_CACHE_DB", "2")
	t.Setenv("FINCALC_LOGGING_OUTPUTFILE", logFile)

	conf, err := LoadConfiguration(writeConfig(t, "output:\n  format: json\n"))
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if conf.Cache.Address != "localhost:6379" || conf.Cache.Password != "secret" || conf.Cache.DB != 2 {
		t.Errorf("cache = %+v, expected environment overrides", conf.Cache)
	}
	if conf.Logging.OutputFile != logFile {
		t.Errorf("output file = %q, expected %q", conf.Logging.OutputFile, logFile)
	}
}

func TestLoadConfigurationInvalid(t *testing.T) {
	tests := []struct {
		name     string
		contents string
		contains string
	}{
		{"bad log level", "logging:\n  level: loud\n", "Level"},
		{"bad output format", "output:\n  format: xml\n", "Format"},
		{"redis without address", "cache:\n  backend: redis\n", "Address"},
		{"unknown cache backend", "cache:\n  backend: disk\n", "Backend"},
		{"negative burst", "server:\n  rateLimit:\n    burst: -1\n", "Burst"},
		{"bad body size", "server:\n  maxBodySize: 1TB\n", "maxBodySize"},
		{"malformed yaml", "server: [\n", "error reading config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfiguration(writeConfig(t, tt.contents))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("error %q does not mention %q", err, tt.contains)
			}
		})
	}
}

func TestParseSize(t *testing.T) {
	cases := map[string]int64{
		"":       constants.DefaultMaxBodySizeBytes,
		"1024":   1024,
		"512B":   512,
		"256K":   256 * 1024,
		"256kb":  256 * 1024,
		"10M":    10 * 1024 * 1024,
		"1G":     1024 * 1024 * 1024,
		" 2 MB ": 2 * 1024 * 1024,
	}
	for input, expected := range cases {
		got, err := ParseSize(input)
		if err != nil {
			t.Errorf("ParseSize(%q) error = %v", input, err)
			continue
		}
		if got != expected {
			t.Errorf("ParseSize(%q) = %d, expected %d", input, got, expected)
		}
	}

	for _, bad := range []string{"1TB", "abc", "0K", "-5M"} {
		if _, err := ParseSize(bad); err == nil {
			t.Errorf("ParseSize(%q) expected error", bad)
		}
	}
}
