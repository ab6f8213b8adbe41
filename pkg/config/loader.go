package config

import (
	_ "embed"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/modpick/pkg/errors"
	"github.com/arthur-debert/modpick/pkg/paths"
)

// EnvPrefix prefixes every configuration environment variable.
const EnvPrefix = "MODPICK_"

//go:embed embedded/defaults.toml
var defaultConfig []byte

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// DefaultsContent returns the built-in defaults file.
func DefaultsContent() string {
	return string(defaultConfig)
}

// LoadOptions selects the sources layered over the defaults.
type LoadOptions struct {
	// ConfigFile is an explicit user file. It must exist. When empty the
	// file in the modpick config directory is used if present.
	ConfigFile string

	// Overrides are applied last, keyed by dotted config keys.
	Overrides map[string]interface{}
}

// Load builds the effective configuration.
func Load(opts LoadOptions) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User file
	userFile := opts.ConfigFile
	required := userFile != ""
	if !required {
		userFile = filepath.Join(paths.ConfigDir(), paths.ConfigFileName)
	}
	if _, err := os.Stat(userFile); err == nil {
		if err := k.Load(file.Provider(userFile), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", userFile)
		}
	} else if required {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "config file %s not found", userFile)
	}

	// 3. Env vars
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	// 5. Unmarshal
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	cfg.Output.Format = strings.ToLower(cfg.Output.Format)
	switch cfg.Output.Format {
	case FormatText, FormatJSON:
	default:
		return errors.Newf(errors.ErrConfigInvalid, "unknown output format %q", cfg.Output.Format).
			WithDetail("allowed", []string{FormatText, FormatJSON})
	}
	for name, v := range map[string]string{
		"rules_file":   cfg.RulesFile,
		"choices_file": cfg.ChoicesFile,
	} {
		if strings.TrimSpace(v) == "" {
			return errors.Newf(errors.ErrConfigInvalid, "%s must not be empty", name)
		}
	}
	if cfg.Logging.Verbosity < 0 {
		cfg.Logging.Verbosity = 0
	}
	return nil
}
