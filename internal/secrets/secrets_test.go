package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingDirectory(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)
	assert.Empty(t, s)
}

func TestLoad_ReadsAndTrims(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "apisports-key"), []byte("abc123\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mongo-uri"), []byte("  mongodb://localhost:27017  "), 0o600))

	s, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "abc123", s["apisports-key"])
	assert.Equal(t, "mongodb://localhost:27017", s["mongo-uri"])
}

func TestLoad_SkipsEmptyHiddenAndDirs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty"), []byte("   \n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gitignore"), []byte("*"), 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	s, err := Load(dir)
	require.NoError(t, err)
	assert.Empty(t, s)
}

func TestDefault_FlagWins(t *testing.T) {
	s := map[string]string{"postgres-dsn": "postgres://secret"}
	assert.Equal(t, "postgres://flag", Default(s, "postgres-dsn", "postgres://flag"))
	assert.Equal(t, "postgres://secret", Default(s, "postgres-dsn", ""))
	assert.Equal(t, "", Default(s, "missing", ""))
}
