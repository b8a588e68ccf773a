package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupJSONToFile(t *testing.T) {
	logger := logrus.New()
	var stderr bytes.Buffer
	cfg := DefaultConfig()
	cfg.Level = "debug"
	cfg.Format = "json"
	cfg.File = filepath.Join(t.TempDir(), "tello.log")

	closer, err := setup(logger, cfg, &stderr)
	require.NoError(t, err)
	logger.WithField("label", "TEST").Debug("hello")
	require.NoError(t, closer.Close())

	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.Contains(t, stderr.String(), `"msg":"hello"`)
	data, err := os.ReadFile(cfg.File)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"label":"TEST"`)
}

func TestSetupStderr(t *testing.T) {
	logger := logrus.New()
	var stderr bytes.Buffer
	closer, err := setup(logger, DefaultConfig(), &stderr)
	require.NoError(t, err)
	require.NotNil(t, closer)

	logger.Debug("hidden")
	logger.Warn("shown")
	assert.NotContains(t, stderr.String(), "hidden")
	assert.Contains(t, stderr.String(), "shown")

	assert.NoError(t, closer.Close())
	assert.NoError(t, closer.Close())
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Level = "loud"
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Format = "xml"
	assert.Error(t, cfg.Validate())
}
