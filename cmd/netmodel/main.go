// Command netmodel builds a fixture network from a configuration file,
// draws random switch states in every non-initial variant and reports the
// calculated buses and components of each variant. With metrics enabled and
// an address configured it then serves /metrics until interrupted.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/katalvlaran/netmodel/builder"
	"github.com/katalvlaran/netmodel/config"
	"github.com/katalvlaran/netmodel/internal/ctxlog"
	"github.com/katalvlaran/netmodel/metrics"
	"github.com/katalvlaran/netmodel/network"
	"github.com/katalvlaran/netmodel/variant"
)

type flags struct {
	config   string
	sections int
	buses    int
	seed     int64
	open     float64
}

func parseFlags(args []string) (flags, error) {
	var f flags
	fs := flag.NewFlagSet("netmodel", flag.ContinueOnError)
	fs.StringVar(&f.config, "config", "", "YAML configuration file (defaults when empty)")
	fs.IntVar(&f.sections, "sections", 4, "busbar sections of the node-breaker ring")
	fs.IntVar(&f.buses, "buses", 3, "configured buses of the bus-breaker chain")
	fs.Int64Var(&f.seed, "seed", 1, "seed of the switch state draw")
	fs.Float64Var(&f.open, "open", 0.2, "probability of opening a switch in non-initial variants")
	err := fs.Parse(args)
	return f, err
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "netmodel:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	f, err := parseFlags(args)
	if err != nil {
		return err
	}

	cfg := config.Default()
	if f.config != "" {
		if cfg, err = config.Load(f.config); err != nil {
			return err
		}
	}
	logger := cfg.Logger(stderr)
	ctx = ctxlog.WithLogger(ctx, logger)
	reg := cfg.MetricsRegistry()

	n, ctx, done, err := cfg.NewNetwork(ctx, logger, reg)
	if err != nil {
		return err
	}
	defer done()

	if err = builder.Apply(ctx, n, nil,
		builder.NodeBreakerRing("RING", f.sections),
		builder.BusBreakerChain("CHAIN", f.buses),
		builder.Line("TIE", builder.BayEnd("RING", 0), builder.BusEnd("CHAIN", "CHAIN_B0")),
	); err != nil {
		return err
	}
	// clones copy the state written by the constructors above
	if err = cfg.CreateVariants(n); err != nil {
		return err
	}

	for i, id := range n.Variants().VariantIDs() {
		if err = n.Variants().SetWorkingVariant(ctx, id); err != nil {
			return err
		}
		if id != variant.InitialVariantID {
			draw := []builder.BuilderOption{builder.WithSeed(f.seed + int64(i))}
			if err = builder.Apply(ctx, n, draw, builder.RandomSwitchStates(f.open)); err != nil {
				return err
			}
		}
	}

	if err = report(ctx, stdout, n); err != nil {
		return err
	}

	if reg == nil || cfg.Metrics.Addr == "" {
		return nil
	}
	return serveMetrics(ctx, cfg.Metrics.Addr, reg)
}

// report prints one line per variant: bus and component counts.
func report(ctx context.Context, w io.Writer, n *network.Network) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "VARIANT\tBUSES\tCONNECTED\tSYNCHRONOUS\tOPEN SWITCHES")
	for _, id := range n.Variants().VariantIDs() {
		if err := n.Variants().SetWorkingVariant(ctx, id); err != nil {
			return err
		}
		buses, err := n.Buses(ctx)
		if err != nil {
			return err
		}
		cc, err := n.ConnectedComponents(ctx)
		if err != nil {
			return err
		}
		sc, err := n.SynchronousComponents(ctx)
		if err != nil {
			return err
		}
		open := 0
		for _, vl := range n.VoltageLevels() {
			for _, sw := range vl.Switches() {
				o, err := sw.IsOpen(ctx)
				if err != nil {
					return err
				}
				if o {
					open++
				}
			}
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\n", id, len(buses), len(cc), len(sc), open)
	}
	return tw.Flush()
}

func serveMetrics(ctx context.Context, addr string, reg *metrics.Registry) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg.GetPrometheusRegistry(), promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger := ctxlog.FromContext(ctx, nil)

	errc := make(chan error, 1)
	go func() {
		logger.Info("serving metrics", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down metrics server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
