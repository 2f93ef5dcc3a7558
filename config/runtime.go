package config

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/katalvlaran/netmodel/metrics"
	"github.com/katalvlaran/netmodel/network"
	"github.com/katalvlaran/netmodel/variant"
)

// Logger builds the slog logger described by c.Logging writing to w.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.level()}
	if c.Logging.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func (c *Config) level() slog.Level {
	var l slog.Level
	// values are validated; an unknown one keeps info
	_ = l.UnmarshalText([]byte(c.Logging.Level))
	return l
}

// MetricsRegistry returns a registry when metrics are enabled, nil otherwise.
func (c *Config) MetricsRegistry() *metrics.Registry {
	if !c.Metrics.Enabled {
		return nil
	}
	return metrics.NewRegistry(c.Metrics.Namespace)
}

// NetworkOptions turns c into network options using the given logger and
// registry (either may be nil).
func (c *Config) NetworkOptions(logger *slog.Logger, reg *metrics.Registry) []network.Option {
	opts := []network.Option{
		network.WithMultiExecutionAccess(c.Variants.Strategy == StrategyExecution),
		network.WithNodeIndexLimit(c.Network.NodeIndexLimit),
	}
	if logger != nil {
		opts = append(opts, network.WithLogger(logger), network.WithListener(network.LogListener{Logger: logger}))
	}
	if reg != nil {
		opts = append(opts, network.WithMetrics(reg))
	}
	return opts
}

// NewNetwork creates the configured network holding only the initial
// variant. With the execution strategy it also opens a session bound to the
// initial variant and returns ctx carrying it; close it with the returned
// function. Start-up variants come from CreateVariants once the initial
// state is built.
func (c *Config) NewNetwork(ctx context.Context, logger *slog.Logger, reg *metrics.Registry) (*network.Network, context.Context, func(), error) {
	n := network.New(c.Network.ID, c.NetworkOptions(logger, reg)...)
	done := func() {}
	if c.Variants.Strategy == StrategyExecution {
		s, err := n.Variants().NewSession()
		if err != nil {
			return nil, ctx, done, err
		}
		ctx = variant.WithSession(ctx, s)
		if err := n.Variants().SetWorkingVariant(ctx, variant.InitialVariantID); err != nil {
			s.Close()
			return nil, ctx, done, err
		}
		done = s.Close
	}
	n.Logger(ctx).Info("network ready", "id", n.ID(), "strategy", c.Variants.Strategy)
	return n, ctx, done, nil
}

// CreateVariants clones the initial variant into every configured id.
func (c *Config) CreateVariants(n *network.Network) error {
	if len(c.Variants.IDs) == 0 {
		return nil
	}
	if err := n.Variants().CloneVariant(variant.InitialVariantID, c.Variants.IDs...); err != nil {
		return fmt.Errorf("create variants: %w", err)
	}
	return nil
}
