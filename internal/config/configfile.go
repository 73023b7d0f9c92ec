package config

import (
	"errors"
	"fmt"
	"github.com/creasty/defaults"
	"github.com/goccy/go-yaml"
	"github.com/icinga/icinga-queryfilter/pkg/filter"
	icingadbConfig "github.com/icinga/icingadb/pkg/config"
	"github.com/icinga/icingadb/pkg/logging"
	"github.com/jmoiron/sqlx"
	"io"
	"os"
)

// ConfigFile is the YAML representation of a filter schema together with the rendering and logging settings.
type ConfigFile struct {
	// Driver is the SQL driver name whose placeholder style is used when binding WHERE clauses.
	Driver  string                 `yaml:"driver" default:"postgres"`
	Fields  []filter.FieldSpec     `yaml:"fields"`
	Logging icingadbConfig.Logging `yaml:"logging"`
}

// FromFile loads the config from the YAML file at the given path.
func FromFile(path string) (*ConfigFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	c, err := FromReader(f)
	if err != nil {
		return nil, fmt.Errorf("cannot load config file %q: %w", path, err)
	}

	return c, nil
}

// FromReader decodes the config from the given YAML input, applies the defaults and validates the result.
func FromReader(r io.Reader) (*ConfigFile, error) {
	var c ConfigFile

	if err := defaults.Set(&c); err != nil {
		return nil, err
	}

	d := yaml.NewDecoder(r, yaml.DisallowUnknownField())
	if err := d.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

// SetDefaults implements the defaults.Setter interface.
func (c *ConfigFile) SetDefaults() {
	if defaults.CanUpdate(c.Logging.Output) {
		c.Logging.Output = logging.CONSOLE
	}
}

// Validate checks the config for invalid or conflicting settings.
func (c *ConfigFile) Validate() error {
	if sqlx.BindType(c.Driver) == sqlx.UNKNOWN {
		return fmt.Errorf("unsupported SQL driver %q", c.Driver)
	}

	if len(c.Fields) == 0 {
		return errors.New("at least one field must be configured")
	}

	seen := make(map[string]struct{}, len(c.Fields))
	for i, f := range c.Fields {
		if err := filter.ValidateFieldName(f.Name); err != nil {
			return fmt.Errorf("fields[%d] is invalid: %w", i, err)
		}

		if _, ok := seen[f.Name]; ok {
			return fmt.Errorf("fields[%d] is invalid: duplicate field %q", i, f.Name)
		}
		seen[f.Name] = struct{}{}
	}

	if err := c.Logging.Validate(); err != nil {
		return err
	}

	return nil
}

// Schema returns the filter schema described by this config.
func (c *ConfigFile) Schema() filter.Config {
	return filter.Config{Fields: c.Fields}
}

// Assert interface compliance.
var (
	_ defaults.Setter = (*ConfigFile)(nil)
)
