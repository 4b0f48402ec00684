package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "service.log")

	log, err := New(path, "warn")
	require.NoError(t, err)

	log.Info("hidden %d", 1)
	log.Warn("slot conflict staff=%s", "s-1")
	require.NoError(t, log.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "hidden")
	assert.Contains(t, string(content), `"msg":"slot conflict staff=s-1"`)
	assert.Contains(t, string(content), `"level":"WARN"`)
}

func TestNew_UnknownLevel(t *testing.T) {
	_, err := New("", "verbose")
	assert.Error(t, err)

	log, err := New("", "")
	require.NoError(t, err)
	assert.NoError(t, log.Close())
}
