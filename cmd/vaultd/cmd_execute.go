package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
)

func cmdExecute(input io.Reader, output io.Writer, args []string) error {
	fl := pflag.NewFlagSet("execute", pflag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(os.Stderr, `
Run an execution pass over all unfinished operations and print the history.
		`)
		fl.PrintDefaults()
	}
	common := flCommon(fl)
	fl.Parse(args)

	// Opening the session already runs a pass.
	s, err := openSession(common, true)
	if err != nil {
		return err
	}
	if err := s.close(); err != nil {
		return err
	}
	return writeRecords(output, s.engine.History())
}

func cmdTick(input io.Reader, output io.Writer, args []string) error {
	fl := pflag.NewFlagSet("tick", pflag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(os.Stderr, `
Register heartbeats. Every configured number of ticks an execution pass runs.
		`)
		fl.PrintDefaults()
	}
	var (
		common  = flCommon(fl)
		countFl = fl.Uint("count", 1, "Number of ticks to register.")
	)
	fl.Parse(args)

	s, err := openSession(common, true)
	if err != nil {
		return err
	}
	for i := uint(0); i < *countFl; i++ {
		if err := s.engine.Tick(s.ctx); err != nil {
			s.db.Close()
			return fmt.Errorf("tick %d: %s", i, err)
		}
	}
	return s.close()
}
