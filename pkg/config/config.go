package config

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/arthur-debert/symkeeper/pkg/errors"
	"github.com/arthur-debert/symkeeper/pkg/logging"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pelletier/go-toml/v2"
)

// Config is the decoded link configuration.
type Config struct {
	// Symlinks maps the raw link string to the raw target string, both
	// still unexpanded.
	Symlinks map[string]string `toml:"symlinks"`
}

// Load reads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	logger := logging.GetLogger("config")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf(errors.ErrConfigLoad, "configuration file not found: %s", path).
				WithDetail("path", path)
		}
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read configuration file %s", path).
			WithDetail("path", path)
	}

	cfg, err := Parse(data)
	if err != nil {
		var skErr *errors.SymkeeperError
		if stderrors.As(err, &skErr) {
			skErr.Message = skErr.Message + " in " + path
			skErr.WithDetail("path", path)
		}
		return nil, err
	}

	logger.Debug().Str("path", path).Int("symlinks", len(cfg.Symlinks)).Msg("Configuration loaded")
	return cfg, nil
}

// Parse decodes and validates configuration bytes.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return nil, errors.Wrap(describeDecodeError(err), errors.ErrConfigLoad, "failed to parse configuration")
	}
	if cfg.Symlinks == nil {
		cfg.Symlinks = map[string]string{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigInvalid, "invalid symlink entries")
	}
	return &cfg, nil
}

// Validate checks every entry has a non-empty link and target. Errors are
// keyed by link.
func (c *Config) Validate() error {
	errs := validation.Errors{}
	links := make([]string, 0, len(c.Symlinks))
	for link := range c.Symlinks {
		links = append(links, link)
	}
	sort.Strings(links)

	for _, link := range links {
		target := c.Symlinks[link]
		key := link
		if strings.TrimSpace(link) == "" {
			key = "<empty link>"
			errs[key] = validation.NewError("validation_link_required", "link must not be empty")
			continue
		}
		if err := validation.Validate(strings.TrimSpace(target), validation.Required.Error("target must not be empty")); err != nil {
			errs[key] = err
		}
	}
	return errs.Filter()
}

// describeDecodeError adds the line/column context go-toml keeps on its
// error types.
func describeDecodeError(err error) error {
	var decErr *toml.DecodeError
	if stderrors.As(err, &decErr) {
		row, col := decErr.Position()
		return fmt.Errorf("line %d, column %d: %w", row, col, err)
	}
	var strictErr *toml.StrictMissingError
	if stderrors.As(err, &strictErr) {
		return stderrors.New(strings.TrimSpace(strictErr.String()))
	}
	return err
}
