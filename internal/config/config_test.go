package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateHome points the config directory at a fresh temp dir for one test.
func isolateHome(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
}

func TestLoadConfigDefaults(t *testing.T) {
	isolateHome(t)

	cfg, err := LoadConfig()
	require.NoError(t, err, "a missing config file is not an error")

	assert.Equal(t, DefaultTitle, cfg.Gallery.Title)
	assert.Equal(t, DefaultOutput, cfg.Gallery.Output)
	assert.Equal(t, DefaultPerPage, cfg.Gallery.PerPage)
	assert.Equal(t, DefaultSignTTL, cfg.Gallery.SignTTL)
	assert.Empty(t, cfg.Provider)
	assert.Nil(t, cfg.GCP)
	assert.Nil(t, cfg.AWS)
	assert.Nil(t, cfg.Minio)
}

func TestSetGetDeleteRoundTrip(t *testing.T) {
	isolateHome(t)

	require.NoError(t, SetValue("gcp.project", "my-project-123"))

	value, exists, err := GetValue("gcp.project")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, "my-project-123", value)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.NotNil(t, cfg.GCP)
	assert.Equal(t, "my-project-123", cfg.GCP.Project)

	deleted, err := DeleteValue("gcp.project")
	require.NoError(t, err)
	assert.True(t, deleted)

	_, exists, err = GetValue("gcp.project")
	require.NoError(t, err)
	assert.False(t, exists)

	deleted, err = DeleteValue("gcp.project")
	require.NoError(t, err)
	assert.False(t, deleted, "deleting an absent key reports false")
}

func TestSetValueRejectsUnknownKey(t *testing.T) {
	isolateHome(t)

	err := SetValue("gcp.nonsense", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown config key")

	err = SetValue("totally.made.up", "x")
	require.Error(t, err)
}

func TestSetValueCoercion(t *testing.T) {
	isolateHome(t)

	t.Run("per_page must be an integer", func(t *testing.T) {
		require.Error(t, SetValue("gallery.per_page", "many"))
	})

	t.Run("use_ssl must be a boolean", func(t *testing.T) {
		require.Error(t, SetValue("minio.use_ssl", "maybe"))
	})

	t.Run("sign_ttl must be a duration", func(t *testing.T) {
		require.Error(t, SetValue("gallery.sign_ttl", "soon"))
	})

	t.Run("valid values round-trip through LoadConfig", func(t *testing.T) {
		require.NoError(t, SetValue("gallery.per_page", "100"))
		require.NoError(t, SetValue("gallery.sign_ttl", "2h"))
		require.NoError(t, SetValue("minio.endpoint", "localhost:9000"))
		require.NoError(t, SetValue("minio.use_ssl", "true"))

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, 100, cfg.Gallery.PerPage)
		assert.Equal(t, 2*time.Hour, cfg.Gallery.SignTTL)
		require.NotNil(t, cfg.Minio)
		assert.Equal(t, "localhost:9000", cfg.Minio.Endpoint)
		assert.True(t, cfg.Minio.UseSSL)
	})
}

func TestSetValueValidatesBeforeSaving(t *testing.T) {
	isolateHome(t)

	err := SetValue("gallery.per_page", "999999")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gallery.per_page")

	err = SetValue("provider", "azure")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be one of")

	err = SetValue("minio.endpoint", "not a hostport")
	require.Error(t, err)

	// Nothing invalid may reach the file
	values, err := ListValues()
	require.NoError(t, err)
	assert.Empty(t, values)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	isolateHome(t)

	require.NoError(t, SetValue("gallery.per_page", "100"))

	t.Setenv("GALLERIST_GALLERY_PER_PAGE", "42")
	t.Setenv("GALLERIST_GCP_PROJECT", "env-project")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 42, cfg.Gallery.PerPage, "environment beats the file")
	require.NotNil(t, cfg.GCP, "env-only keys still materialize their section")
	assert.Equal(t, "env-project", cfg.GCP.Project)

	// The file keeps its own value
	value, exists, err := GetValue("gallery.per_page")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, "100", value)
}

func TestValidate(t *testing.T) {
	t.Run("defaults pass", func(t *testing.T) {
		assert.NoError(t, Validate(&Config{}))
	})

	t.Run("per_page bounds", func(t *testing.T) {
		err := Validate(&Config{Gallery: GalleryConfig{PerPage: -3}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "gallery.per_page must be at least 1")

		err = Validate(&Config{Gallery: GalleryConfig{PerPage: 10000}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "gallery.per_page must be at most 5000")
	})

	t.Run("sign_ttl bounds", func(t *testing.T) {
		err := Validate(&Config{Gallery: GalleryConfig{SignTTL: time.Second}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "gallery.sign_ttl")

		assert.NoError(t, Validate(&Config{Gallery: GalleryConfig{SignTTL: 24 * time.Hour}}))
	})

	t.Run("aws endpoint must be a URL", func(t *testing.T) {
		err := Validate(&Config{AWS: &AWSConfig{Endpoint: "not a url"}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "aws.endpoint")
	})
}

func TestListValues(t *testing.T) {
	isolateHome(t)

	values, err := ListValues()
	require.NoError(t, err)
	assert.Empty(t, values)

	require.NoError(t, SetValue("gcp.project", "p1"))
	require.NoError(t, SetValue("gallery.title", "My Photos"))

	values, err = ListValues()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"gcp.project":   "p1",
		"gallery.title": "My Photos",
	}, values)
}

func TestWriteStarterConfig(t *testing.T) {
	isolateHome(t)

	path, err := WriteStarterConfig(false)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "gallery:")
	assert.Contains(t, string(data), "GALLERIST_")

	// The starter file must parse and carry the defaults
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, DefaultPerPage, cfg.Gallery.PerPage)
	assert.Equal(t, DefaultSignTTL, cfg.Gallery.SignTTL)

	_, err = WriteStarterConfig(false)
	require.ErrorIs(t, err, ErrConfigExists)

	_, err = WriteStarterConfig(true)
	require.NoError(t, err)
}

func TestConfigFilePath(t *testing.T) {
	isolateHome(t)

	path, err := ConfigFilePath()
	require.NoError(t, err)
	assert.Contains(t, path, ".config/gallerist/config.yaml")
}
