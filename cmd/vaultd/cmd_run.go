package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iov-one/vault"
	"github.com/spf13/pflag"
)

func cmdRun(input io.Reader, output io.Writer, args []string) error {
	fl := pflag.NewFlagSet("run", pflag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(os.Stderr, `
Keep the vault running and register a heartbeat at a fixed interval. The
engine is suspended on interrupt.
		`)
		fl.PrintDefaults()
	}
	var (
		common     = flCommon(fl)
		intervalFl = fl.Duration("interval", time.Second, "Time between two heartbeats.")
	)
	fl.Parse(args)

	s, err := openSession(common, true)
	if err != nil {
		return err
	}
	logger := vault.GetLogger(s.ctx)
	logger.Info("running", "interval", *intervalFl, "period", s.engine.Config().TickPeriod)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	ticker := time.NewTicker(*intervalFl)
	defer ticker.Stop()

	for {
		select {
		case got := <-sig:
			logger.Info("captured signal, suspending", "signal", got)
			return s.close()
		case now := <-ticker.C:
			ctx := vault.WithBlockTime(s.ctx, now)
			if err := s.engine.Tick(ctx); err != nil {
				logger.Error("tick failed", "err", err)
			}
		}
	}
}
