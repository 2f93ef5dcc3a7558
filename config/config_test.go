package config_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/katalvlaran/netmodel/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, config.StrategyShared, cfg.Variants.Strategy)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Nil(t, cfg.MetricsRegistry())
}

func TestParse(t *testing.T) {
	data := []byte(`
network:
  id: grid
  node_index_limit: 64
variants:
  strategy: execution
  ids: [peak, offpeak]
logging:
  level: debug
  format: json
metrics:
  enabled: true
  namespace: grid_model
  addr: "127.0.0.1:9090"
`)
	cfg, err := config.Parse(data)
	require.NoError(t, err)
	want := &config.Config{
		Network:  config.NetworkConfig{ID: "grid", NodeIndexLimit: 64},
		Variants: config.VariantsConfig{Strategy: "execution", IDs: []string{"peak", "offpeak"}},
		Logging:  config.LoggingConfig{Level: "debug", Format: "json"},
		Metrics:  config.MetricsConfig{Enabled: true, Namespace: "grid_model", Addr: "127.0.0.1:9090"},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}

	out, err := cfg.Marshal()
	require.NoError(t, err)
	again, err := config.Parse(out)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestParse_Empty(t *testing.T) {
	cfg, err := config.Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		msg  string
	}{
		{"strategy", "variants: {strategy: parallel}", "Strategy"},
		{"duplicate ids", "variants: {ids: [a, a]}", "duplicate"},
		{"reserved id", "variants: {ids: [InitialState]}", "reserved"},
		{"empty id", `variants: {ids: [""]}`, "required"},
		{"level", "logging: {level: trace}", "Level"},
		{"negative limit", "network: {node_index_limit: -1}", "at least"},
		{"namespace", "metrics: {enabled: true, namespace: 9lives}", "Namespace"},
		{"addr without metrics", `metrics: {addr: ":9090"}`, "disabled"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := config.Parse([]byte(tc.yaml))
			require.ErrorIs(t, err, config.ErrInvalid)
			assert.Contains(t, err.Error(), tc.msg)
		})
	}

	_, err := config.Parse([]byte("unknown: 1"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, config.ErrInvalid)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "netmodel.yaml")
	require.NoError(t, os.WriteFile(path, []byte("network: {id: fromfile}\n"), 0o600))
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "fromfile", cfg.Network.ID)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestNewNetwork(t *testing.T) {
	cfg, err := config.Parse([]byte(`
network: {id: grid}
variants: {strategy: execution, ids: [v1, v2]}
logging: {level: debug, format: json}
metrics: {enabled: true}
`))
	require.NoError(t, err)
	var buf bytes.Buffer
	logger := cfg.Logger(&buf)
	reg := cfg.MetricsRegistry()
	require.NotNil(t, reg)

	n, ctx, done, err := cfg.NewNetwork(context.Background(), logger, reg)
	require.NoError(t, err)
	defer done()
	assert.Equal(t, "grid", n.ID())
	assert.Equal(t, []string{"InitialState"}, n.Variants().VariantIDs())
	assert.True(t, n.Variants().IsMultiExecutionAccessAllowed())
	assert.Same(t, reg, n.Metrics())
	assert.Contains(t, buf.String(), `"msg":"network ready"`)

	id, err := n.Variants().WorkingVariantID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "InitialState", id, "the session starts on the initial variant")
	_, err = n.Variants().WorkingVariantID(context.Background())
	require.Error(t, err, "other callers have no session")

	require.NoError(t, cfg.CreateVariants(n))
	assert.Equal(t, []string{"InitialState", "v1", "v2"}, n.Variants().VariantIDs())
}
