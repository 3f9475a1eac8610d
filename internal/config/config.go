// Package config layers defaults, an optional YAML file, CODDSCHEMA_*
// environment variables and command-line overrides into one validated
// Config.
package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/goccy/go-yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tordrt/coddschema/internal/logger"
	"github.com/tordrt/coddschema/internal/normalize"
)

// EnvPrefix is the prefix of every environment variable read by Load
const EnvPrefix = "CODDSCHEMA_"

type Config struct {
	Target          normalize.NormalForm `koanf:"target"           validate:"min=1,max=4"`
	RequireLegal    bool                 `koanf:"require_legal"`
	RequireLossless bool                 `koanf:"require_lossless"`
	Format          string               `koanf:"format"           validate:"oneof=text markdown styled"`
	Output          string               `koanf:"output"`
	OutputDir       string               `koanf:"output_dir"`
	Log             LogConfig            `koanf:"log"`
	Database        DatabaseConfig       `koanf:"database"`
}

type LogConfig struct {
	Level logger.LogLevel `koanf:"level" validate:"oneof=debug info warn error disabled"`
	JSON  bool            `koanf:"json"`
}

// DatabaseConfig holds the import settings
type DatabaseConfig struct {
	URL     string   `koanf:"url"`
	Schema  string   `koanf:"schema"`
	Tables  []string `koanf:"tables"`
	Exclude []string `koanf:"exclude"`
}

// Default returns the configuration used when nothing else is set
func Default() *Config {
	return &Config{
		Target: normalize.BCNF,
		Format: "text",
		Log: LogConfig{
			Level: logger.InfoLevel,
		},
	}
}

// normalFormDecodeHook accepts "3NF" and "bcnf" as well as plain numbers
func normalFormDecodeHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(normalize.NormalForm(0)) {
		return data, nil
	}
	s, ok := data.(string)
	if !ok {
		return data, nil
	}
	nf, err := normalize.ParseNormalForm(s)
	if err != nil {
		return nil, err
	}
	return nf, nil
}

// Load builds the configuration. Later sources win: defaults, the YAML file
// at path (skipped when path is empty), environment variables, then
// overrides keyed by dotted path such as "log.level"
func Load(path string, overrides map[string]any) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if err := loadYAML(k, path); err != nil {
			return nil, err
		}
	}

	envToKey := make(map[string]string)
	for _, key := range k.Keys() {
		envToKey[EnvName(key)] = key
	}
	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(name, value string) (string, any) {
			return envToKey[name], value
		},
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	for key, value := range overrides {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("failed to set %s: %w", key, err)
		}
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           &cfg,
			TagName:          "koanf",
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
				normalFormDecodeHook,
			),
		},
	}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// EnvName returns the environment variable for a dotted key:
// "log.level" is read from CODDSCHEMA_LOG_LEVEL
func EnvName(key string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// Validate checks struct tags and the rules spanning several fields
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	if cfg.Output != "" && cfg.OutputDir != "" {
		return fmt.Errorf("configuration validation failed: output and output_dir cannot both be set")
	}
	return nil
}

// loadYAML merges the keys present in the file over what is already loaded
func loadYAML(k *koanf.Koanf, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	for key, value := range flattenMap("", raw) {
		if err := k.Set(key, value); err != nil {
			return fmt.Errorf("failed to set key %s from %s: %w", key, path, err)
		}
	}
	return nil
}

func flattenMap(prefix string, m map[string]any) map[string]any {
	result := make(map[string]any)
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nested, ok := v.(map[string]any); ok {
			for fk, fv := range flattenMap(key, nested) {
				result[fk] = fv
			}
			continue
		}
		result[key] = v
	}
	return result
}
