package config

import (
	"os"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/arthur-debert/symkeeper/pkg/errors"
	"github.com/arthur-debert/symkeeper/pkg/logging"
	"github.com/arthur-debert/symkeeper/pkg/ui"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables that override settings
const EnvPrefix = "SYMKEEPER_"

// Settings tune symkeeper itself. They never describe links.
type Settings struct {
	ConfigFile    string        `koanf:"config_file"`
	LockExtension string        `koanf:"lock_extension"`
	EnvFile       string        `koanf:"env_file"`
	Format        ui.Format     `koanf:"format"`
	WatchDebounce time.Duration `koanf:"watch_debounce"`
}

var lockExtensionPattern = regexp.MustCompile(`^\.?[A-Za-z0-9_-]+$`)

// Validate checks the decoded settings
func (s Settings) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.ConfigFile, validation.Required),
		validation.Field(&s.LockExtension, validation.Required, validation.Match(lockExtensionPattern)),
		validation.Field(&s.WatchDebounce, validation.Min(10*time.Millisecond)),
	)
}

// LoadSettings layers the embedded defaults, the settings file at
// settingsPath (skipped when absent), SYMKEEPER_* variables and overrides.
// Override keys use the koanf tag names, e.g. "format".
func LoadSettings(settingsPath string, overrides map[string]interface{}) (*Settings, error) {
	logger := logging.GetLogger("config.settings")
	k := koanf.New(".")

	// 1. Load system defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultSettings}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to load default settings")
	}

	// 2. Load user settings if they exist
	if settingsPath != "" {
		if _, err := os.Stat(settingsPath); err == nil {
			if err := k.Load(file.Provider(settingsPath), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load settings from %s", settingsPath)
			}
			logger.Debug().Str("path", settingsPath).Msg("Loaded user settings")
		}
	}

	// 3. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load settings from environment")
	}

	// 4. Flags
	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "failed to apply setting overrides")
		}
	}

	var s Settings
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &s,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				stringToFormatHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &s, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigInvalid, "failed to decode settings")
	}

	if err := s.Validate(); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigInvalid, "invalid settings")
	}

	logger.Debug().
		Str("config_file", s.ConfigFile).
		Str("lock_extension", s.LockExtension).
		Str("format", s.Format.String()).
		Dur("watch_debounce", s.WatchDebounce).
		Msg("Settings loaded")
	return &s, nil
}

func stringToFormatHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf(ui.Format(0)) {
			return data, nil
		}
		return ui.ParseFormat(data.(string))
	}
}
