package settings

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

// EnvPrefix is the prefix of environment variables read by FromEnv.
// QUEUEPIPE_LOGGER_LOG_LEVEL=debug sets Config.Logger.LogLevel.
const EnvPrefix = "QUEUEPIPE_"

var validate = validator.New()

// FromEnv builds a Config from Default and the QUEUEPIPE_* entries of
// environ, given in "KEY=value" form as returned by os.Environ.
func FromEnv(environ []string) (*Config, error) {
	return Decode(envSections(environ))
}

// Decode overlays raw, a map of section name to key/value pairs, onto Default
// and validates the result. Values may be strings; they are converted to the
// field types.
func Decode(raw map[string]any) (*Config, error) {
	cfg := Default()

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "settings: create decoder")
	}
	if err := dec.Decode(raw); err != nil {
		return nil, errors.Wrap(err, "settings: decode")
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cfg against its field constraints.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return errors.Wrap(err, "settings: invalid config")
	}
	return nil
}

// envSections groups QUEUEPIPE_<SECTION>_<KEY>=value entries as
// {"section": {"key": "value"}}. Entries without a key part are ignored.
func envSections(environ []string) map[string]any {
	raw := make(map[string]any)
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, EnvPrefix) {
			continue
		}

		section, key, ok := strings.Cut(strings.ToLower(strings.TrimPrefix(name, EnvPrefix)), "_")
		if !ok || section == "" || key == "" {
			continue
		}

		fields, _ := raw[section].(map[string]any)
		if fields == nil {
			fields = make(map[string]any)
			raw[section] = fields
		}
		fields[key] = value
	}
	return raw
}
