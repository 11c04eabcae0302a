package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"gopkg.in/yaml.v3"
)

// ErrConfigExists indicates that `config init` would overwrite an existing file
var ErrConfigExists = errors.New("config file already exists")

// configKeys is the full set of dot-path keys the tool understands. It drives
// both the environment bindings in LoadConfig and the key checks below.
var configKeys = []string{
	"provider",
	"gcp.project",
	"gcp.credentials_file",
	"aws.region",
	"aws.endpoint",
	"aws.access_key",
	"aws.secret_key",
	"minio.endpoint",
	"minio.access_key",
	"minio.secret_key",
	"minio.use_ssl",
	"minio.region",
	"gallery.title",
	"gallery.output",
	"gallery.per_page",
	"gallery.sign_ttl",
}

func isKnownKey(key string) bool {
	return slices.Contains(configKeys, key)
}

// SetValue stores a single key in the config file. The value is type-checked
// for the key and the resulting configuration is validated before anything is
// written.
func SetValue(key, value string) error {
	key = strings.ToLower(key)
	if !isKnownKey(key) {
		return fmt.Errorf("unknown config key: %s. Known keys are: %s", key, strings.Join(configKeys, ", "))
	}

	coerced, err := coerceValue(key, value)
	if err != nil {
		return err
	}

	m, err := loadFileMap()
	if err != nil {
		return err
	}
	setNested(m, strings.Split(key, "."), coerced)

	cfg, err := decodeFileMap(m)
	if err != nil {
		return err
	}
	if err := Validate(cfg); err != nil {
		return err
	}

	return saveFileMap(m)
}

// GetValue reads a single key from the config file. The second return tells a
// stored empty string apart from an absent key.
func GetValue(key string) (string, bool, error) {
	key = strings.ToLower(key)
	if !isKnownKey(key) {
		return "", false, fmt.Errorf("unknown config key: %s", key)
	}

	m, err := loadFileMap()
	if err != nil {
		return "", false, err
	}

	v, ok := getNested(m, strings.Split(key, "."))
	if !ok {
		return "", false, nil
	}
	return fmt.Sprintf("%v", v), true, nil
}

// DeleteValue removes a key from the config file, pruning any section it
// leaves empty. It reports whether the key was present.
func DeleteValue(key string) (bool, error) {
	key = strings.ToLower(key)
	if !isKnownKey(key) {
		return false, fmt.Errorf("unknown config key: %s", key)
	}

	m, err := loadFileMap()
	if err != nil {
		return false, err
	}
	if !deleteNested(m, strings.Split(key, ".")) {
		return false, nil
	}
	return true, saveFileMap(m)
}

// ListValues returns every key stored in the config file, flattened to
// dot-path form.
func ListValues() (map[string]string, error) {
	m, err := loadFileMap()
	if err != nil {
		return nil, err
	}
	out := make(map[string]string)
	flattenInto("", m, out)
	return out, nil
}

// WriteStarterConfig writes the commented starter file and returns its path.
// Without force an existing file is left alone and ErrConfigExists returned.
func WriteStarterConfig(force bool) (string, error) {
	path, err := ConfigFilePath()
	if err != nil {
		return "", err
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return path, fmt.Errorf("%w: %s", ErrConfigExists, path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("error creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(starterConfig), 0600); err != nil {
		return "", fmt.Errorf("error writing config file: %w", err)
	}
	return path, nil
}

// coerceValue converts the raw CLI string into the value type the key expects.
// Durations stay strings in the file; the decode hook parses them on load.
func coerceValue(key, value string) (any, error) {
	switch key {
	case "gallery.per_page":
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("%s expects a number, got %q", key, value)
		}
		return n, nil
	case "minio.use_ssl":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("%s expects true or false, got %q", key, value)
		}
		return b, nil
	case "gallery.sign_ttl":
		if _, err := time.ParseDuration(value); err != nil {
			return nil, fmt.Errorf("%s expects a duration like 30m or 2h, got %q", key, value)
		}
		return value, nil
	default:
		return value, nil
	}
}

func loadFileMap() (map[string]any, error) {
	path, err := ConfigFilePath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	m := map[string]any{}
	if len(data) == 0 {
		return m, nil
	}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	return m, nil
}

func saveFileMap(m map[string]any) error {
	path, err := ConfigFilePath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}

	// The file can carry access credentials
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}
	return nil
}

func decodeFileMap(m map[string]any) (*Config, error) {
	var cfg Config
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: decodeHook(),
		Result:     &cfg,
	})
	if err != nil {
		return nil, fmt.Errorf("error building config decoder: %w", err)
	}
	if err := dec.Decode(m); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	return &cfg, nil
}

func setNested(m map[string]any, parts []string, value any) {
	if len(parts) == 1 {
		m[parts[0]] = value
		return
	}
	child, ok := m[parts[0]].(map[string]any)
	if !ok {
		child = make(map[string]any)
		m[parts[0]] = child
	}
	setNested(child, parts[1:], value)
}

func getNested(m map[string]any, parts []string) (any, bool) {
	v, ok := m[parts[0]]
	if !ok {
		return nil, false
	}
	if len(parts) == 1 {
		return v, true
	}
	child, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	return getNested(child, parts[1:])
}

func deleteNested(m map[string]any, parts []string) bool {
	if len(parts) == 1 {
		if _, ok := m[parts[0]]; !ok {
			return false
		}
		delete(m, parts[0])
		return true
	}

	child, ok := m[parts[0]].(map[string]any)
	if !ok {
		return false
	}
	deleted := deleteNested(child, parts[1:])
	if deleted && len(child) == 0 {
		delete(m, parts[0])
	}
	return deleted
}

func flattenInto(prefix string, m map[string]any, out map[string]string) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if child, ok := v.(map[string]any); ok {
			flattenInto(key, child, out)
			continue
		}
		out[key] = fmt.Sprintf("%v", v)
	}
}

const starterConfig = `# gallerist configuration.
# Every value here can be overridden with a GALLERIST_* environment variable,
# e.g. GALLERIST_GCP_PROJECT or GALLERIST_GALLERY_PER_PAGE.

# Default provider for commands invoked without --provider (gcp, aws or minio).
#provider: gcp

#gcp:
#  project: my-project
#  credentials_file: /path/to/service-account.json

#aws:
#  region: eu-west-1
#  access_key: ""
#  secret_key: ""
#  # Optional S3-compatible endpoint, e.g. http://localhost:4566
#  endpoint: ""

#minio:
#  endpoint: localhost:9000
#  access_key: minioadmin
#  secret_key: minioadmin
#  use_ssl: false

gallery:
  title: Image Gallery
  output: gallery.html
  per_page: 250
  sign_ttl: 1h
`
