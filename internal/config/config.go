// Package config owns the on-disk configuration at
// ~/.config/gallerist/config.yaml and its environment overrides. Commands
// consume the merged view from LoadConfig; `config set/get/delete` edit the
// file only, so environment values never leak into it.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

const (
	ConfigFileName = "config.yaml"
	ConfigDirName  = "gallerist"
	EnvPrefix      = "GALLERIST"
)

// Defaults applied when neither the file nor the environment sets a value.
const (
	DefaultTitle   = "Image Gallery"
	DefaultOutput  = "gallery.html"
	DefaultPerPage = 250
	DefaultSignTTL = time.Hour
)

type GCPConfig struct {
	Project         string `mapstructure:"project"`
	CredentialsFile string `mapstructure:"credentials_file"`
}

type AWSConfig struct {
	Region    string `mapstructure:"region"`
	Endpoint  string `mapstructure:"endpoint" validate:"omitempty,url"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

type MinioConfig struct {
	Endpoint  string `mapstructure:"endpoint" validate:"omitempty,hostname_port"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	UseSSL    bool   `mapstructure:"use_ssl"`
	Region    string `mapstructure:"region"`
}

type GalleryConfig struct {
	Title   string        `mapstructure:"title"`
	Output  string        `mapstructure:"output"`
	PerPage int           `mapstructure:"per_page" validate:"omitempty,gte=1,lte=5000"`
	SignTTL time.Duration `mapstructure:"sign_ttl" validate:"omitempty,min=1m,max=168h"`
}

type Config struct {
	// Provider picks the default driver when a command gets no --provider flag.
	Provider string        `mapstructure:"provider" validate:"omitempty,oneof=gcp aws minio"`
	GCP      *GCPConfig    `mapstructure:"gcp"`
	AWS      *AWSConfig    `mapstructure:"aws"`
	Minio    *MinioConfig  `mapstructure:"minio"`
	Gallery  GalleryConfig `mapstructure:"gallery"`
}

func configDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("error getting user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", ConfigDirName), nil
}

// ConfigFilePath returns where the configuration file lives (or would live).
func ConfigFilePath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

// LoadConfig merges defaults, the config file and GALLERIST_* environment
// variables into the effective configuration. A missing file is fine.
func LoadConfig() (*Config, error) {
	dir, err := configDir()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range configKeys {
		v.MustBindEnv(key)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(decodeHook())); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("gallery.title", DefaultTitle)
	v.SetDefault("gallery.output", DefaultOutput)
	v.SetDefault("gallery.per_page", DefaultPerPage)
	// Stored as a duration string; the decode hook parses it on load
	v.SetDefault("gallery.sign_ttl", DefaultSignTTL.String())
}

func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report violations under their config key names, not Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the configuration against the per-field constraints and
// returns a readable, key-addressed error for each violation.
func Validate(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describeFieldError(fe))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

func describeFieldError(fe validator.FieldError) string {
	key := namespaceToKey(fe.Namespace())
	switch fe.Tag() {
	case "gte", "min":
		return fmt.Sprintf("%s must be at least %s", key, fe.Param())
	case "lte", "max":
		return fmt.Sprintf("%s must be at most %s", key, fe.Param())
	case "hostname_port":
		return fmt.Sprintf("%s must be a host:port address", key)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", key)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", key, fe.Param())
	default:
		return fmt.Sprintf("%s failed the %s constraint", key, fe.Tag())
	}
}

// namespaceToKey turns "Config.gallery.per_page" into "gallery.per_page".
func namespaceToKey(namespace string) string {
	if _, rest, found := strings.Cut(namespace, "."); found {
		return rest
	}
	return namespace
}
