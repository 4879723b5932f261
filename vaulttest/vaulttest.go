// Package vaulttest provides helpers for testing code that depends on the
// vault engine.
package vaulttest

import (
	"fmt"
	"io/ioutil"
	"os"
	"sync/atomic"
	"testing"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/store/iavl"
)

var principalSeq uint64

// NewAddress returns a unique address, derived from a generated principal.
func NewAddress() vault.Address {
	n := atomic.AddUint64(&principalSeq, 1)
	return vault.NewAddress(fmt.Sprintf("test-principal-%d", n))
}

// Principal returns the address of a named principal, the same one that
// "principal:<name>" parses to. Calling it twice
// with the same name returns the same address.
func Principal(name string) vault.Address {
	return vault.NewAddress(name)
}

// ParseAddress takes an address in a human readable format and returns its
// binary representation.
func ParseAddress(t testing.TB, encodedAddress string) vault.Address {
	t.Helper()

	addr, err := vault.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}

// CommitKVStore returns a store instance that is using a filesystem backend
// engine to store the data.
// This implementation should be used instead of a memory store when you want
// the exact same storage implementation as the daemon is using.
func CommitKVStore(t testing.TB) (db *iavl.CommitStore, cleanup func()) {
	dbpath, err := ioutil.TempDir("", "vault-")
	if err != nil {
		t.Fatalf("cannot create a temporary directory: %s", err)
	}

	db = iavl.NewCommitStore(dbpath, "db")
	return db, func() {
		db.Close()
		os.RemoveAll(dbpath)
	}
}
