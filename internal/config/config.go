// Package config loads declgen run settings from YAML and the environment.
package config

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	"github.com/calumari/declgen/internal/generator"
)

// EnvPrefix prefixes every environment override, e.g. DECLGEN_PACKAGE.
const EnvPrefix = "DECLGEN"

// Config is the on-disk run configuration.
type Config struct {
	Package        string   `mapstructure:"package"`
	GlideName      string   `mapstructure:"glide_name"`
	AppModule      string   `mapstructure:"app_module"`
	LibraryModules []string `mapstructure:"library_modules"`
	Extensions     []string `mapstructure:"extensions"`
	ContextType    string   `mapstructure:"context_type"`
	Library        string   `mapstructure:"library"` // path of the YAML type table
}

// scalar keys that may be overridden from the environment
var envKeys = []string{"package", "glide_name", "app_module", "context_type", "library"}

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("glide_name", "GlideApp")
	v.SetDefault("context_type", generator.DefaultContextType)
	v.SetDefault("library_modules", []string{})
	v.SetDefault("extensions", []string{})
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, k := range envKeys {
		// BindEnv only fails without a key
		_ = v.BindEnv(k)
	}
	SetDefaults(v)
	return v
}

// Load reads the YAML configuration at path. An empty path loads defaults
// and environment overrides only.
func Load(path string) (*Config, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config file %s", path)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	return &cfg, nil
}

// Validate reports the first missing required setting.
func (c *Config) Validate() error {
	required := []struct{ key, value string }{
		{"package", c.Package},
		{"app_module", c.AppModule},
		{"library", c.Library},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return errors.WithHint(
				errors.Newf("config: %s is required", r.key),
				"set it in the config file or as "+EnvPrefix+"_"+strings.ToUpper(r.key),
			)
		}
	}
	return nil
}

// Generator returns the generation settings of c.
func (c *Config) Generator() generator.Config {
	return generator.Config{
		Package:        c.Package,
		GlideName:      c.GlideName,
		AppModule:      c.AppModule,
		LibraryModules: append([]string(nil), c.LibraryModules...),
		Extensions:     append([]string(nil), c.Extensions...),
		ContextType:    c.ContextType,
	}
}
