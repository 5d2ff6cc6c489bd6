// Package config loads TigerTrack settings from defaults, an optional YAML
// file, TIGERTRACK_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every environment override, e.g. TIGERTRACK_SWEEP_INTERVAL.
	EnvPrefix = "TIGERTRACK"

	configFileName = "tigertrack"
	configFileType = "yaml"
)

// Config is the full runtime configuration.
type Config struct {
	DB       string        `mapstructure:"db"`
	Addr     string        `mapstructure:"addr"`
	Timezone string        `mapstructure:"timezone"`
	TokenTTL time.Duration `mapstructure:"token_ttl"`
	Log      LogConfig     `mapstructure:"log"`
	Admin    AdminConfig   `mapstructure:"admin"`
	Photos   PhotosConfig  `mapstructure:"photos"`
	Sweep    SweepConfig   `mapstructure:"sweep"`
}

// LogConfig controls slog output.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	File   string `mapstructure:"file"`
	Format string `mapstructure:"format"`
}

// AdminConfig names the account created by init.
type AdminConfig struct {
	User string `mapstructure:"user"`
}

// PhotosConfig selects and configures the photo backend.
type PhotosConfig struct {
	Backend string   `mapstructure:"backend"`
	Dir     string   `mapstructure:"dir"`
	S3      S3Config `mapstructure:"s3"`
}

// S3Config configures the s3 photo backend.
type S3Config struct {
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	Endpoint  string `mapstructure:"endpoint"`
	PathStyle bool   `mapstructure:"path_style"`
	Prefix    string `mapstructure:"prefix"`

	// Static credentials; empty means the default AWS chain.
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
}

// SweepConfig controls the background sweeper.
type SweepConfig struct {
	Interval  time.Duration `mapstructure:"interval"`
	LostAfter time.Duration `mapstructure:"lost_after"`
}

var defaults = map[string]any{
	"db":                          "tigertrack.sqlite3",
	"addr":                        ":8080",
	"timezone":                    "Asia/Manila",
	"token_ttl":                   "12h",
	"log.level":                   "info",
	"log.file":                    "",
	"log.format":                  "text",
	"admin.user":                  "Admin",
	"photos.backend":              "local",
	"photos.dir":                  "photos",
	"photos.s3.bucket":            "",
	"photos.s3.region":            "",
	"photos.s3.endpoint":          "",
	"photos.s3.path_style":        false,
	"photos.s3.prefix":            "",
	"photos.s3.access_key_id":     "",
	"photos.s3.secret_access_key": "",
	"sweep.interval":              "1h",
	"sweep.lost_after":            "8760h",
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"db":         "db",
	"addr":       "addr",
	"log-level":  "log.level",
	"log-file":   "log.file",
	"log-format": "log.format",
	"admin-user": "admin.user",
	"photos-dir": "photos.dir",
	"timezone":   "timezone",
}

// Load reads configuration. If path is empty, tigertrack.yaml is looked up in
// the working directory and its absence is not an error. Flags that were set
// on fs override everything else.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that cannot be fixed by defaults.
func (c *Config) Validate() error {
	var errs []error
	if c.DB == "" {
		errs = append(errs, errors.New("db path is required"))
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be text or json, got %q", c.Log.Format))
	}
	switch c.Photos.Backend {
	case "local":
		if c.Photos.Dir == "" {
			errs = append(errs, errors.New("photos.dir is required for the local backend"))
		}
	case "s3":
		if c.Photos.S3.Bucket == "" {
			errs = append(errs, errors.New("photos.s3.bucket is required for the s3 backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("photos.backend must be local or s3, got %q", c.Photos.Backend))
	}
	if c.Sweep.Interval < 0 || c.Sweep.LostAfter < 0 {
		errs = append(errs, errors.New("sweep durations cannot be negative"))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Location resolves the configured time zone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
