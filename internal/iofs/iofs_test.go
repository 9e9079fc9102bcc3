package iofs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kuroshiolab/kurodb/pkg/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// TestEnsureDirs_CreatesDirectories verifies all required
// directories are created.
func TestEnsureDirs_CreatesDirectories(t *testing.T) {
	tmpDir := t.TempDir()

	err := EnsureDirs(tmpDir)
	require.NoError(t, err)

	// Verify config directory exists
	configDir := filepath.Join(tmpDir, ".config", "kurodb")
	info, err := os.Stat(configDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir(),
		"Config directory should exist")

	// Verify cache directory exists
	cacheDir := filepath.Join(tmpDir, ".cache", "kurodb")
	info, err = os.Stat(cacheDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir(),
		"Cache directory should exist")

	// Verify log directory exists
	logDir := filepath.Join(tmpDir, ".local", "share", "kurodb",
		"logs")
	info, err = os.Stat(logDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir(),
		"Log directory should exist")
}

// TestEnsureDirs_Idempotent verifies multiple calls work.
func TestEnsureDirs_Idempotent(t *testing.T) {
	tmpDir := t.TempDir()

	for i := 0; i < 3; i++ {
		err := EnsureDirs(tmpDir)
		require.NoError(t, err)
	}
}

// TestTouchDir_ExistingDirectory verifies existing directory
// is not modified.
func TestTouchDir_ExistingDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	existingDir := filepath.Join(tmpDir, "existing")

	err := os.MkdirAll(existingDir, 0755)
	require.NoError(t, err)

	originalInfo, err := os.Stat(existingDir)
	require.NoError(t, err)

	err = touchDir(existingDir)
	require.NoError(t, err)

	newInfo, err := os.Stat(existingDir)
	require.NoError(t, err)
	assert.True(t, newInfo.IsDir())
	assert.Equal(t, originalInfo.Mode(), newInfo.Mode())
}

// TestEnsureConfigFile_CreatesFile verifies config file
// is created with the embedded template content.
func TestEnsureConfigFile_CreatesFile(t *testing.T) {
	tmpDir := t.TempDir()

	err := EnsureDirs(tmpDir)
	require.NoError(t, err)

	err = EnsureConfigFile(tmpDir)
	require.NoError(t, err)

	configPath := filepath.Join(tmpDir, ".config", "kurodb",
		"config.yaml")
	content, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, ConfigYAML, string(content),
		"Config file content should match embedded template")
}

// TestEnsureConfigFile_Idempotent verifies existing file
// is not overwritten.
func TestEnsureConfigFile_Idempotent(t *testing.T) {
	tmpDir := t.TempDir()

	err := EnsureDirs(tmpDir)
	require.NoError(t, err)

	err = EnsureConfigFile(tmpDir)
	require.NoError(t, err)

	configPath := filepath.Join(tmpDir, ".config", "kurodb",
		"config.yaml")

	// Modify the file
	customContent := "# Custom config\ndatabase:\n  host: myhost"
	err = os.WriteFile(configPath, []byte(customContent),
		0644)
	require.NoError(t, err)

	// Call EnsureConfigFile again
	err = EnsureConfigFile(tmpDir)
	require.NoError(t, err)

	// Verify file still has custom content
	content, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, customContent, string(content),
		"Existing config file should not be overwritten")
}

// TestConfigYAML_Embedded verifies embedded config covers the
// sections the loader reads.
func TestConfigYAML_Embedded(t *testing.T) {
	require.NotEmpty(t, ConfigYAML)

	var parsed map[string]any
	err := yaml.Unmarshal([]byte(ConfigYAML), &parsed)
	require.NoError(t, err,
		"Embedded config should be valid YAML")

	for _, section := range []string{
		"database", "gbif", "obis", "worms", "ingest", "dedup", "log",
	} {
		assert.Contains(t, parsed, section,
			"ConfigYAML should contain %s section", section)
	}
}

// TestEnsureOceansFile_CreatesFile verifies the ocean table
// is created.
func TestEnsureOceansFile_CreatesFile(t *testing.T) {
	tmpDir := t.TempDir()

	err := EnsureDirs(tmpDir)
	require.NoError(t, err)

	err = EnsureOceansFile(tmpDir)
	require.NoError(t, err)

	oceansPath := filepath.Join(tmpDir, ".config", "kurodb",
		"oceans.yaml")
	content, err := os.ReadFile(oceansPath)
	require.NoError(t, err)
	assert.Equal(t, OceansYAML, string(content),
		"Oceans file content should match embedded template")
}

// TestEnsureOceansFile_Idempotent verifies a customized ocean
// table is not overwritten.
func TestEnsureOceansFile_Idempotent(t *testing.T) {
	tmpDir := t.TempDir()

	err := EnsureDirs(tmpDir)
	require.NoError(t, err)

	err = EnsureOceansFile(tmpDir)
	require.NoError(t, err)

	oceansPath := filepath.Join(tmpDir, ".config", "kurodb",
		"oceans.yaml")
	customContent := "oceans:\n  - name: Puddle\n"
	err = os.WriteFile(oceansPath, []byte(customContent), 0644)
	require.NoError(t, err)

	err = EnsureOceansFile(tmpDir)
	require.NoError(t, err)

	content, err := os.ReadFile(oceansPath)
	require.NoError(t, err)
	assert.Equal(t, customContent, string(content),
		"Existing oceans file should not be overwritten")
}

// TestOceansYAML_Embedded verifies the shipped basin table parses
// and passes the same validation the loader applies.
func TestOceansYAML_Embedded(t *testing.T) {
	require.NotEmpty(t, OceansYAML)

	var cfg geo.OceansConfig
	err := yaml.Unmarshal([]byte(OceansYAML), &cfg)
	require.NoError(t, err,
		"Embedded ocean table should be valid YAML")

	err = cfg.Validate()
	require.NoError(t, err,
		"Every shipped basin polygon should validate")

	assert.Len(t, cfg.Oceans, 8)

	names := make([]string, len(cfg.Oceans))
	for i, o := range cfg.Oceans {
		names[i] = o.Name
	}
	assert.Contains(t, names, "Arctic Ocean")
	assert.Contains(t, names, "Southern Ocean")
	assert.Contains(t, names, "Indian Ocean")
}
