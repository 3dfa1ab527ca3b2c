package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigCreatesDefaults(t *testing.T) {
	for _, name := range []string{"config.json", "config.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)

			config, err := LoadConfig(path)
			require.NoError(t, err)
			require.Equal(t, DefaultConfig(), config)

			// The written defaults must load back unchanged.
			_, err = os.Stat(path)
			require.NoError(t, err)
			reloaded, err := LoadConfig(path)
			require.NoError(t, err)
			require.Equal(t, config, reloaded)
		})
	}
}

func TestLoadConfigFormats(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "mimic.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"words": 12, "wrap": 70}`), 0o644))
	config, err := LoadConfig(jsonPath)
	require.NoError(t, err)
	require.Equal(t, 12, config.Words)
	require.Equal(t, 70, config.Wrap)
	require.Equal(t, "default", config.ModelName, "unset keys keep their defaults")

	yamlPath := filepath.Join(dir, "mimic.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("words: 7\nseed: 99\nlog_level: debug\n"), 0o644))
	config, err = LoadConfig(yamlPath)
	require.NoError(t, err)
	require.Equal(t, 7, config.Words)
	require.Equal(t, uint64(99), config.Seed)
	require.Equal(t, "debug", config.LogLevel)

	badPath := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(badPath, []byte(`{"words":`), 0o644))
	_, err = LoadConfig(badPath)
	require.ErrorContains(t, err, "failed to parse config file")
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("MIMIC_WORDS", "33")
	t.Setenv("MIMIC_MODEL", "from-env")

	config := DefaultConfig()
	config.Wrap = 40
	require.NoError(t, ApplyEnv(config))
	require.Equal(t, 33, config.Words)
	require.Equal(t, "from-env", config.ModelName)
	require.Equal(t, 40, config.Wrap, "unset variables leave values alone")

	t.Setenv("MIMIC_WORDS", "many")
	require.Error(t, ApplyEnv(DefaultConfig()))
}

func TestFlagsOverrideEnv(t *testing.T) {
	t.Setenv("MIMIC_WORDS", "9")
	path := writeCorpus(t, "a b a c")

	code, stdout, _ := runMimic(t, path)
	require.Equal(t, exitOK, code)
	require.Len(t, strings.Fields(generated(t, path, stdout)), 9)

	code, stdout, _ = runMimic(t, "-words", "2", path)
	require.Equal(t, exitOK, code)
	require.Len(t, strings.Fields(generated(t, path, stdout)), 2)
}

func TestValidate(t *testing.T) {
	config := DefaultConfig()
	require.NoError(t, config.Validate())

	config.Wrap = -1
	require.Error(t, config.Validate())

	config = DefaultConfig()
	config.DatabasePath = "x.db"
	config.ModelName = ""
	require.Error(t, config.Validate())
}

func TestParseLogLevel(t *testing.T) {
	require.Equal(t, "DEBUG", parseLogLevel("Debug").String())
	require.Equal(t, "ERROR", parseLogLevel("error").String())
	require.Equal(t, "WARN", parseLogLevel("verbose").String())
}
