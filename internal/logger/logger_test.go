package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/op/go-logging"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	t.Cleanup(func() { Init("info", os.Stderr) })

	t.Run("level filters output", func(t *testing.T) {
		var buf bytes.Buffer
		require.Equal(t, logging.WARNING, Init("warning", &buf))

		Infof("hidden %d", 1)
		Warningf("shown %d", 2)
		Error("boom")

		out := buf.String()
		require.NotContains(t, out, "hidden")
		require.Contains(t, out, "WARN shown 2")
		require.Contains(t, out, "ERRO boom")
	})

	t.Run("unknown level falls back to info", func(t *testing.T) {
		var buf bytes.Buffer
		require.Equal(t, logging.INFO, Init("loud", &buf))

		Debug("quiet")
		Info("hello")
		require.NotContains(t, buf.String(), "quiet")
		require.Contains(t, buf.String(), "INFO hello")
	})
}
