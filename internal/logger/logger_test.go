package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew_WritesToFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "app.log")
	l := New(p, true)
	l.Info("wallet connected")
	_ = l.Sync()

	data, err := os.ReadFile(p)
	require.NoError(t, err)
	require.Contains(t, string(data), "wallet connected")
}

func TestNew_ConsoleOnly(t *testing.T) {
	l := New("", false)
	require.NotNil(t, l)
	l.Debug("console only")
}

func TestNewWithConsole_UsesGivenSink(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithConsole(zapcore.AddSync(&buf), "", true)
	l.Warn("handshake failed")
	_ = l.Sync()
	require.Contains(t, buf.String(), "handshake failed")
	require.Contains(t, buf.String(), `"level":"WARN"`)
}
