package bridge

import (
	"fmt"
	"os"
	"regexp"

	"github.com/go-viper/mapstructure/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const (
	defaultModuleName = "Native"
	defaultLogLevel   = "info"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// Config defines the configuration of a Bridge
type Config struct {
	// ModuleName is the global under which scripts see the native module.
	ModuleName string `mapstructure:"module_name"`

	// ErrorsModulePath points to a script replacing the embedded errors
	// module. The script must evaluate to a function taking the native module.
	ErrorsModulePath string `mapstructure:"errors_module_path"`

	// RequireAllKinds rejects errors modules that lack a class for any kind.
	RequireAllKinds bool `mapstructure:"require_all_kinds"`

	// LogLevel is the level of the logger built by NewLogger.
	LogLevel string `mapstructure:"log_level"`
}

// Default fills unset fields with their defaults
func (cfg *Config) Default() {
	if cfg.ModuleName == "" {
		cfg.ModuleName = defaultModuleName
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}
}

// Validate validates the configuration
func (cfg *Config) Validate() error {
	if !identifierPattern.MatchString(cfg.ModuleName) {
		return fmt.Errorf("module_name %q is not an identifier: %w", cfg.ModuleName, ErrInvalidConfig)
	}
	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("log_level: %v: %w", err, ErrInvalidConfig)
	}
	return nil
}

// NewLogger builds a production zap logger at the configured level.
func (cfg *Config) NewLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("log_level: %v: %w", err, ErrInvalidConfig)
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

func (cfg *Config) errorsModuleSource() (name, src string, err error) {
	if cfg.ErrorsModulePath == "" {
		return "errors.js", defaultErrorsModule, nil
	}
	data, err := os.ReadFile(cfg.ErrorsModulePath)
	if err != nil {
		return "", "", fmt.Errorf("bridge: error reading errors module: %w", err)
	}
	return cfg.ErrorsModulePath, string(data), nil
}

// DecodeConfig decodes raw settings, as found in a larger configuration
// document, into a Config. Unknown keys are rejected.
func DecodeConfig(raw map[string]any) (*Config, error) {
	cfg := &Config{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      cfg,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("bridge: error decoding config: %v: %w", err, ErrInvalidConfig)
	}
	cfg.Default()
	return cfg, cfg.Validate()
}

// LoadConfig reads a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("bridge: error reading config: %w", err)
	}
	raw := map[string]any{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("bridge: error parsing config: %v: %w", err, ErrInvalidConfig)
	}
	return DecodeConfig(raw)
}
