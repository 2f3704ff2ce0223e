package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/cursync/cursync/pkg/errors"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// EnvPrefix is the prefix for environment variable overrides, e.g.
// CURSYNC_TARGET_DIR overrides target.dir.
const EnvPrefix = "CURSYNC_"

// ConfigFileNames are the file names probed at the repository root, in
// order.
var ConfigFileNames = []string{".cursync.toml", "cursync.toml"}

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New(errors.ErrInternal, "raw bytes provider does not implement Read")
}

// baseConfig is Default in the flat key form koanf layers on.
func baseConfig() map[string]interface{} {
	d := Default()
	return map[string]interface{}{
		"resources.dir":          d.Resources.Dir,
		"target.dir":             d.Target.Dir,
		"rules.extension":        d.Rules.Extension,
		"rules.pattern":          d.Rules.Pattern,
		"rules.categories":       d.Rules.Categories,
		"sync.watch_debounce_ms": d.Sync.WatchDebounceMs,
	}
}

// Load merges the embedded defaults, the repository config file (if
// present), and CURSYNC_* environment variables, in that order.
// repoRoot may be empty, in which case only defaults and the
// environment apply.
func Load(repoRoot string) (*Config, error) {
	k := koanf.New(".")

	// 1. Programmatic base values, then the embedded defaults file on
	// top. The base map keeps Load working even if the embedded file
	// ever leaves a key out.
	if err := k.Load(confmap.Provider(baseConfig(), "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load base configuration")
	}
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load embedded defaults")
	}

	// 2. Repository config, first name that exists wins
	if repoRoot != "" {
		for _, filename := range ConfigFileNames {
			path := filepath.Join(repoRoot, filename)
			if _, err := os.Stat(path); err == nil {
				if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
					return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path)
				}
				break
			}
		}
	}

	// 3. Environment overrides: CURSYNC_RULES_EXTENSION -> rules.extension
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.Replace(
			strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".", 1)
	}), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

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
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal config")
	}

	return &cfg, nil
}
