package client

import (
	"context"
	"flag"
	"net/http"
	"time"

	fungibled "github.com/iov-one/fungible/cmd/fungibled/app"
	"github.com/iov-one/fungible/errors"
	"github.com/iov-one/fungible/x/relay"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
)

// RelayConfig is the configuration of a single direction relayer.
type RelayConfig struct {
	Src      string
	Dst      string
	SrcChain string
	DstChain string
	KeyFile  string
	Interval time.Duration
	Metrics  string
}

func parseRelayFlags(args []string) (RelayConfig, error) {
	var conf RelayConfig
	fl := flag.NewFlagSet("relay", flag.ContinueOnError)
	fl.StringVar(&conf.Src, "src", "http://localhost:26657", "rpc address of the source node")
	fl.StringVar(&conf.Dst, "dst", "", "rpc address of the destination node")
	fl.StringVar(&conf.SrcChain, "src_chain", "", "chain ID of the source chain")
	fl.StringVar(&conf.DstChain, "dst_chain", "", "chain ID of the destination chain")
	fl.StringVar(&conf.KeyFile, "key", "", "key file of the source chain, as registered at the destination")
	fl.DurationVar(&conf.Interval, "interval", time.Second, "time between relay rounds")
	fl.StringVar(&conf.Metrics, "metrics", "", "address to serve prometheus metrics on, eg. :9100")
	if err := fl.Parse(args); err != nil {
		return conf, errors.Wrap(errors.ErrInput, err.Error())
	}

	switch {
	case conf.Dst == "":
		return conf, errors.Wrap(errors.ErrEmpty, "dst")
	case conf.SrcChain == "":
		return conf, errors.Wrap(errors.ErrEmpty, "src_chain")
	case conf.DstChain == "":
		return conf, errors.Wrap(errors.ErrEmpty, "dst_chain")
	case conf.KeyFile == "":
		return conf, errors.Wrap(errors.ErrEmpty, "key")
	case conf.Interval <= 0:
		return conf, errors.Wrap(errors.ErrInput, "interval must be positive")
	}
	return conf, nil
}

// RelayCmd moves packets from the source to the destination chain until
// the process is interrupted. Run a second relayer with swapped flags to
// relay the other direction.
func RelayCmd(logger log.Logger, args []string) error {
	conf, err := parseRelayFlags(args)
	if err != nil {
		return err
	}
	key, err := fungibled.LoadKey(conf.KeyFile)
	if err != nil {
		return err
	}

	if conf.Metrics != "" {
		reg := prometheus.NewRegistry()
		if err := relay.RegisterMetrics(reg); err != nil {
			return err
		}
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		go func() {
			if err := http.ListenAndServe(conf.Metrics, mux); err != nil {
				logger.Error("metrics server", "err", err)
			}
		}()
	}

	src := NewEndpoint(conf.SrcChain, NewHTTPConn(conf.Src))
	dst := NewEndpoint(conf.DstChain, NewHTTPConn(conf.Dst))
	relayer := relay.NewRelayer(src, dst, key, logger.With("module", "relay"))

	ctx, cancel := context.WithCancel(context.Background())
	cmn.TrapSignal(logger, cancel)

	logger.Info("Relaying", "source", conf.SrcChain, "destination", conf.DstChain)
	if err := relayer.Run(ctx, conf.Interval); err != context.Canceled {
		return err
	}
	return nil
}
