package config_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/dealradar/dealradar/pkg/cli/config"
	"github.com/dealradar/dealradar/pkg/utils/logging"
	"github.com/m-mizutani/gt"
)

func TestLogger_Configure(t *testing.T) {
	orig := logging.Default()
	t.Cleanup(func() { logging.SetDefault(orig) })

	t.Run("json format to file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.log")
		cfg := config.NewLoggerForTest("debug", "json", path)
		closer, err := cfg.Configure()
		gt.NoError(t, err).Required()
		defer closer()

		logging.Default().Debug("written")
	})

	t.Run("console format", func(t *testing.T) {
		cfg := config.NewLoggerForTest("info", "console", "stderr")
		closer, err := cfg.Configure()
		gt.NoError(t, err).Required()
		closer()
	})

	t.Run("rejects unknown level", func(t *testing.T) {
		cfg := config.NewLoggerForTest("verbose", "console", "stderr")
		_, err := cfg.Configure()
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, config.ErrInvalidConfig)).True()
	})

	t.Run("rejects unknown format", func(t *testing.T) {
		cfg := config.NewLoggerForTest("info", "xml", "stderr")
		_, err := cfg.Configure()
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, config.ErrInvalidConfig)).True()
	})
}
