package main

import (
	"fmt"
	"io"
	"os"

	"github.com/iov-one/vault/app"
	"github.com/iov-one/vault/x/txn"
	"github.com/spf13/pflag"
)

func cmdVote(input io.Reader, output io.Writer, args []string) error {
	fl := pflag.NewFlagSet("vote", pflag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(os.Stderr, `
Approve or reject operations. A new vote of the same caller replaces the
previous one.
		`)
		fl.PrintDefaults()
	}
	var (
		common     = flCommon(fl)
		idsFl      = fl.UintSlice("id", nil, "Operation identifiers. Can be repeated.")
		decisionFl = fl.String("decision", "approve", "Either approve or reject.")
	)
	fl.Parse(args)

	decision, err := txn.ParseDecision(*decisionFl)
	if err != nil {
		return err
	}
	if len(*idsFl) == 0 {
		return fmt.Errorf("at least one operation id is required")
	}
	votes := make([]app.VoteRequest, len(*idsFl))
	for i, id := range *idsFl {
		votes[i] = app.VoteRequest{ID: uint64(id), Decision: decision}
	}

	s, err := openSession(common, true)
	if err != nil {
		return err
	}
	records, err := s.engine.Vote(s.ctx, votes...)
	if err != nil {
		s.db.Close()
		return fmt.Errorf("cannot vote: %s", err)
	}
	if err := s.close(); err != nil {
		return err
	}
	return writeRecords(output, records)
}
