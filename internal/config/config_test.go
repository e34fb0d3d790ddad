package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoaderDefaults(t *testing.T) {
	l := NewLoader()
	cfg, err := l.Load()
	require.NoError(t, err)
	require.Equal(t, []string{"127.0.0.1:3000"}, cfg.Addresses)
	require.Equal(t, "127.0.0.1:3000", cfg.AddressList())
}

func TestLoaderRejectsEmptyAddresses(t *testing.T) {
	l := NewLoader()
	l.v.Set("addresses", []string{})
	_, err := l.Load()
	require.Error(t, err)
}

func TestLoaderRejectsInvertedTimeouts(t *testing.T) {
	l := NewLoader()
	l.v.Set("request_timeout", "1s")
	l.v.Set("request_timeout_max", "500ms")
	_, err := l.Load()
	require.Error(t, err)
}

func TestMissingConfigFileIsNotAnError(t *testing.T) {
	l := NewLoader()
	require.NoError(t, l.LoadFile("/nonexistent/path/to/config.yaml"))
}
