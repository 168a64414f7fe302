package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "imid.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, DefaultOutputDir, cfg.Output.Dir)
	assert.False(t, cfg.Output.ExportTables)
	assert.Equal(t, ",", cfg.Input.Delimiter)
	assert.Empty(t, cfg.Input.DateLayouts)
	assert.Equal(t, DefaultMissingLabel, cfg.Input.MissingLabel)
	assert.Equal(t, 5, cfg.Insights.TopLocations)
	assert.Equal(t, AdvisoryPlatformFocus, cfg.Insights.PlatformFocus)
	assert.Equal(t, "file", cfg.Logging.Output)
	assert.Equal(t, DefaultServerAddr, cfg.Server.Addr)
	assert.True(t, cfg.Server.RateLimit.Enabled)
	require.NoError(t, cfg.Validate())
}

func TestLibraryDefault(t *testing.T) {
	cfg := LibraryDefault()
	assert.Equal(t, LibraryOutputDir, cfg.Output.Dir)
	assert.Equal(t, "charts_and_recap", cfg.Output.Dir)
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		file        string
		wantErr     bool
		validateCfg func(*testing.T, *Config)
	}{
		{
			name: "defaults with no env and no file",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DefaultOutputDir, cfg.Output.Dir)
				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
			},
		},
		{
			name: "environment overrides defaults",
			env: map[string]string{
				"IMID_OUTPUT_DIR":             "custom_out",
				"IMID_OUTPUT_EXPORT_TABLES":   "true",
				"IMID_LOGGING_LEVEL":          "debug",
				"IMID_INSIGHTS_TOP_LOCATIONS": "3",
				"IMID_SERVER_READ_TIMEOUT":    "30s",
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "custom_out", cfg.Output.Dir)
				assert.True(t, cfg.Output.ExportTables)
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, 3, cfg.Insights.TopLocations)
				assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
			},
		},
		{
			name: "file values fill in",
			file: `
output:
  dir: from_file
input:
  missing_label: "(blank)"
  date_layouts:
    - "02.01.2006"
insights:
  platform_focus: "Focus elsewhere."
server:
  write_timeout: 45s
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "from_file", cfg.Output.Dir)
				assert.Equal(t, "(blank)", cfg.Input.MissingLabel)
				assert.Equal(t, []string{"02.01.2006"}, cfg.Input.DateLayouts)
				assert.Equal(t, "Focus elsewhere.", cfg.Insights.PlatformFocus)
				assert.Equal(t, AdvisoryMediaDiversity, cfg.Insights.MediaDiversity)
				assert.Equal(t, 45*time.Second, cfg.Server.WriteTimeout)
			},
		},
		{
			name: "environment beats file",
			env:  map[string]string{"IMID_OUTPUT_DIR": "from_env"},
			file: "output:\n  dir: from_file\n",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "from_env", cfg.Output.Dir)
			},
		},
		{
			name:    "invalid log level fails validation",
			env:     map[string]string{"IMID_LOGGING_LEVEL": "verbose"},
			wantErr: true,
		},
		{
			name:    "zero top locations fails validation",
			env:     map[string]string{"IMID_INSIGHTS_TOP_LOCATIONS": "0"},
			wantErr: true,
		},
		{
			name:    "multi-character delimiter fails validation",
			file:    "input:\n  delimiter: \";;\"\n",
			wantErr: true,
		},
		{
			name:    "malformed yaml",
			file:    "output: [unterminated",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			t.Setenv(ConfigFileEnv, "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			path := ""
			if tt.file != "" {
				path = writeConfigFile(t, tt.file)
			}

			cfg, err := Load(path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.validateCfg(t, cfg)
		})
	}
}

func TestLoad_ConfigFileFromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeConfigFile(t, "output:\n  dir: via_env_path\n")
	t.Setenv(ConfigFileEnv, path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "via_env_path", cfg.Output.Dir)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Chdir(t.TempDir())
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
