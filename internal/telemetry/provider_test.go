package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetupNoopWithoutEndpoint(t *testing.T) {
	t.Setenv(EnvEndpoint, "")
	t.Setenv(EnvEnabled, "")

	shutdown, err := Setup(t.Context(), "fiscalsim-test", "")
	require.NoError(t, err)
	require.NoError(t, shutdown(t.Context()))
}

func TestSetupNoopWhenDisabled(t *testing.T) {
	t.Setenv(EnvEndpoint, "http://localhost:4318")
	t.Setenv(EnvEnabled, "false")

	shutdown, err := Setup(t.Context(), "fiscalsim-test", "")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	require.NoError(t, shutdown(ctx))
}

func TestSetupWithEndpoint(t *testing.T) {
	t.Setenv(EnvEnabled, "")

	// Non-routable address; nothing is exported before shutdown.
	shutdown, err := Setup(t.Context(), "fiscalsim-test", "http://192.0.2.1:4318")
	require.NoError(t, err)
	require.NoError(t, shutdown(t.Context()))
}
