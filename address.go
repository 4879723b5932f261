package vault

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/iov-one/vault/crypto/bech32"
	"github.com/iov-one/vault/errors"
	"golang.org/x/crypto/blake2b"
)

const (
	// AddressLength is the length of all addresses.
	AddressLength = 20

	// AddressPrefix is the human readable part of a bech32 encoded
	// address.
	AddressPrefix = "vault"
)

// Address identifies a voter or an initiator. It is a one-way digest of the
// principal that the hosting platform authenticated the caller as.
//
// It will be of size AddressLength
type Address []byte

// NewAddress hashes a platform principal and truncates the digest into the
// proper size.
func NewAddress(principal string) Address {
	if principal == "" {
		return nil
	}
	h := blake2b.Sum256([]byte(principal))
	return h[:AddressLength]
}

// ParseAddress decodes a human readable address. Accepted formats are
// bech32 ("vault1..."), hex prefixed with "hex:" and a raw principal prefixed
// with "principal:".
func ParseAddress(enc string) (Address, error) {
	if enc == "" {
		return nil, errors.Wrap(errors.ErrEmpty, "address")
	}

	chunks := strings.SplitN(enc, ":", 2)
	if len(chunks) == 1 {
		hrp, payload, err := bech32.Decode(enc)
		if err != nil {
			return nil, errors.Wrap(errors.ErrInput, err.Error())
		}
		if hrp != AddressPrefix {
			return nil, errors.ErrInput.Newf("unexpected address prefix %q", hrp)
		}
		addr := Address(payload)
		return addr, addr.Validate()
	}

	switch chunks[0] {
	case "hex":
		raw, err := hex.DecodeString(chunks[1])
		if err != nil {
			return nil, errors.Wrap(errors.ErrInput, "cannot decode hex")
		}
		addr := Address(raw)
		return addr, addr.Validate()
	case "principal":
		if chunks[1] == "" {
			return nil, errors.Wrap(errors.ErrEmpty, "principal")
		}
		return NewAddress(chunks[1]), nil
	default:
		return nil, errors.ErrType.Newf("unknown address format %q", chunks[0])
	}
}

// MustParseAddress is like ParseAddress but panics on error.
func MustParseAddress(enc string) Address {
	a, err := ParseAddress(enc)
	if err != nil {
		panic(err)
	}
	return a
}

// Equals checks if two addresses are the same
func (a Address) Equals(b Address) bool {
	return bytes.Equal(a, b)
}

// String returns the bech32 representation of this address.
func (a Address) String() string {
	if len(a) == 0 {
		return "(nil)"
	}
	raw, err := bech32.Encode(AddressPrefix, a)
	if err != nil {
		return "hex:" + strings.ToUpper(hex.EncodeToString(a))
	}
	return string(raw)
}

// Validate returns an error if the address is not the valid size
func (a Address) Validate() error {
	if len(a) != AddressLength {
		return errors.ErrInput.Newf("address length %d", len(a))
	}
	return nil
}

// MarshalJSON provides a bech32 representation for JSON, to override the
// standard base64 []byte encoding.
func (a Address) MarshalJSON() ([]byte, error) {
	if len(a) == 0 {
		return json.Marshal("")
	}
	return json.Marshal(a.String())
}

func (a *Address) UnmarshalJSON(raw []byte) error {
	var enc string
	if err := json.Unmarshal(raw, &enc); err != nil {
		return errors.Wrap(err, "cannot decode json")
	}
	if enc == "" {
		*a = nil
		return nil
	}
	addr, err := ParseAddress(enc)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// MarshalText allows addresses to be used in text based formats like YAML.
func (a Address) MarshalText() ([]byte, error) {
	if len(a) == 0 {
		return []byte{}, nil
	}
	return []byte(a.String()), nil
}

// UnmarshalText accepts any format supported by ParseAddress.
func (a *Address) UnmarshalText(raw []byte) error {
	if len(raw) == 0 {
		*a = nil
		return nil
	}
	addr, err := ParseAddress(string(raw))
	if err != nil {
		return err
	}
	*a = addr
	return nil
}
