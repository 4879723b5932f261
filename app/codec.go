package app

import (
	"github.com/iov-one/vault/x/txn"
	amino "github.com/tendermint/go-amino"
)

// cdc encodes everything the engine persists: operation records tagged by
// their kind, the configuration snapshot and the engine config.
var cdc = newCodec()

func newCodec() *amino.Codec {
	c := amino.NewCodec()
	txn.RegisterAmino(c)
	return c.Seal()
}
