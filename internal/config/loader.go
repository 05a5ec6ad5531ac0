package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// envPrefix is the prefix for environment variable overrides.
// Nesting uses a double underscore because field names themselves contain
// single underscores: LEAPTRAIN_OPTIM__LR_INITIAL -> optim.lr_initial.
const envPrefix = "LEAPTRAIN_"

// flagKeys maps CLI flag names to config key paths. Only flags listed here
// override the document; everything else in the flag set is ignored.
var flagKeys = map[string]string{
	"batch-size": "optim.batch_size",
	"max-epochs": "optim.max_epochs",
	"lr":         "optim.lr_initial",
}

// Load reads the run configuration document at path and returns a fully
// populated RunConfig. It fails before any training resource would be
// allocated: on a missing or malformed file, a missing required field, a
// type mismatch, or a domain violation.
func Load(path string) (*RunConfig, error) {
	return LoadWithOverrides(path, nil)
}

// LoadWithOverrides loads the run configuration with layered overrides.
// Precedence (highest to lowest): flags > env vars > document > defaults.
func LoadWithOverrides(path string, flags *pflag.FlagSet) (*RunConfig, error) {
	k := koanf.New(".")

	// 1. Defaults for the few framework-defaulted fields.
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"optim.warmup_factor": DefaultWarmupFactor,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. The document itself.
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, parseError(err)
	}

	// 3. Environment variables (LEAPTRAIN_ prefix).
	// Values arrive as strings, so scalars are re-parsed before merging;
	// otherwise they would trip the schema type check below.
	if err := k.Load(env.ProviderWithValue(envPrefix, ".", func(key, value string) (string, interface{}) {
		key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
		key = strings.ReplaceAll(key, "__", ".")
		return key, parseScalar(value)
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags (highest priority). Only explicitly mapped flags apply.
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			key, ok := flagKeys[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flag overrides: %w", err)
		}
	}

	// 5. Strict schema check: required keys and leaf types. This is the
	// gate that produces MissingField/TypeMismatch with dotted paths;
	// the decode below can therefore be lenient.
	if err := checkSchema(k); err != nil {
		return nil, err
	}

	// 6. Decode into the typed struct, capturing unknown keys.
	var cfg RunConfig
	var md mapstructure.Metadata
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Metadata:         &md,
			Result:           &cfg,
			TagName:          "koanf",
			WeaklyTypedInput: true,
		},
	}); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if len(md.Unused) > 0 {
		cfg.Extra = make(map[string]any, len(md.Unused))
		for _, key := range md.Unused {
			cfg.Extra[key] = k.Get(key)
		}
	}

	// 7. Domain validation.
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// FindConfigFile finds the config file to use.
// Priority: explicit path > leaptrain.yaml > leaptrain.yml
func FindConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat(ConfigFileName); err == nil {
		return ConfigFileName
	}
	if _, err := os.Stat(ConfigFileNameAlt); err == nil {
		return ConfigFileNameAlt
	}
	return ""
}

// parseScalar interprets an environment variable value the way the YAML
// parser would: int, then float, then bool, falling back to string.
func parseScalar(s string) interface{} {
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s
}
