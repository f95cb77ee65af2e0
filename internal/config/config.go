package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/linsolve/internal/linalg"
)

const (
	DefaultMethod        = "direct"
	DefaultTolerance     = 1e-6
	DefaultMaxIterations = 100
	DefaultPrecision     = 6
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "text"
	DefaultDataDir       = ".linsolve"
	DefaultAddr          = ":8080"

	envPrefix = "LINSOLVE"
)

type Config struct {
	Method        string         `yaml:"method" mapstructure:"method" validate:"oneof=direct jacobi"`
	Tolerance     float64        `yaml:"tolerance" mapstructure:"tolerance" validate:"gt=0"`
	MaxIterations int            `yaml:"max_iterations" mapstructure:"max_iterations" validate:"gte=0"`
	Precision     int            `yaml:"precision" mapstructure:"precision" validate:"gte=0,lte=15"`
	Workers       int            `yaml:"workers" mapstructure:"workers" validate:"gte=0"`
	LogLevel      string         `yaml:"log_level" mapstructure:"log_level"`
	LogFormat     string         `yaml:"log_format" mapstructure:"log_format" validate:"oneof=json text"`
	DataDir       string         `yaml:"data_dir" mapstructure:"data_dir" validate:"required"`
	Addr          string         `yaml:"addr" mapstructure:"addr" validate:"required"`
	System        *linalg.System `yaml:"system,omitempty" mapstructure:"system" validate:"omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Method:        DefaultMethod,
		Tolerance:     DefaultTolerance,
		MaxIterations: DefaultMaxIterations,
		Precision:     DefaultPrecision,
		LogLevel:      DefaultLogLevel,
		LogFormat:     DefaultLogFormat,
		DataDir:       DefaultDataDir,
		Addr:          DefaultAddr,
	}
}

var validate = validator.New()

// Validate checks the value constraints declared in the struct tags.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Load reads the yaml file at path on top of the defaults. LINSOLVE_*
// environment variables (LINSOLVE_TOLERANCE, LINSOLVE_MAX_ITERATIONS, ...)
// take precedence over the file. An empty path loads defaults and
// environment only.
func Load(path string) (*Config, error) {
	v := viper.New()
	def := DefaultConfig()
	v.SetDefault("method", def.Method)
	v.SetDefault("tolerance", def.Tolerance)
	v.SetDefault("max_iterations", def.MaxIterations)
	v.SetDefault("precision", def.Precision)
	v.SetDefault("workers", def.Workers)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log_format", def.LogFormat)
	v.SetDefault("data_dir", def.DataDir)
	v.SetDefault("addr", def.Addr)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
