package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key")
	require.NoError(t, os.WriteFile(path, []byte("  file-key\n"), 0o600))

	got, err := Load(Source{Name: "gemini api key", File: path, Value: "inline-key"})
	require.NoError(t, err)
	assert.Equal(t, "file-key", got)
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key")
	require.NoError(t, os.WriteFile(path, []byte("\n"), 0o600))

	_, err := Load(Source{Name: "gemini api key", File: path, Value: "inline-key"})
	assert.ErrorContains(t, err, "is empty")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(Source{File: filepath.Join(t.TempDir(), "missing")})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadInlineBeforeEnv(t *testing.T) {
	t.Setenv("ATS_TEST_KEY", "env-key")

	got, err := Load(Source{Value: " inline-key ", Env: "ATS_TEST_KEY"})
	require.NoError(t, err)
	assert.Equal(t, "inline-key", got)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ATS_TEST_KEY", " env-key ")

	got, err := Load(Source{Env: "ATS_TEST_KEY"})
	require.NoError(t, err)
	assert.Equal(t, "env-key", got)

	t.Setenv("ATS_TEST_KEY", "")
	_, err = Load(Source{Name: "gemini api key", Env: "ATS_TEST_KEY"})
	assert.ErrorContains(t, err, "ATS_TEST_KEY")
}

func TestLoadNotConfigured(t *testing.T) {
	_, err := Load(Source{})
	assert.EqualError(t, err, "secret is not configured")
}
