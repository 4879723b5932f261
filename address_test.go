package vault_test

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	. "github.com/smartystreets/goconvey/convey"
)

func TestAddressPrinting(t *testing.T) {
	Convey("test bech32 address printing", t, func() {
		addr := vault.NewAddress("alice")

		So(addr.String(), ShouldNotEqual, fmt.Sprintf("%X", addr))
		So(addr.String(), ShouldStartWith, vault.AddressPrefix+"1")
		So(vault.Address(nil).String(), ShouldEqual, "(nil)")

		parsed, err := vault.ParseAddress(addr.String())
		So(err, ShouldBeNil)
		So(parsed.Equals(addr), ShouldBeTrue)
	})

	Convey("test principal hashing", t, func() {
		So(vault.NewAddress("alice"), ShouldHaveLength, vault.AddressLength)
		So(vault.NewAddress("alice").Equals(vault.NewAddress("bob")), ShouldBeFalse)
		So(vault.NewAddress(""), ShouldBeNil)
	})
}

func TestAddressUnmarshalJSON(t *testing.T) {
	alice := vault.NewAddress("alice")
	raw := strings.Repeat("ab", vault.AddressLength)

	cases := map[string]struct {
		json     string
		wantErr  *errors.Error
		wantAddr vault.Address
	}{
		"bech32 decoding": {
			json:     `"` + alice.String() + `"`,
			wantAddr: alice,
		},
		"hex decoding": {
			json:     `"hex:` + raw + `"`,
			wantAddr: vault.MustParseAddress("hex:" + raw),
		},
		"principal decoding": {
			json:     `"principal:alice"`,
			wantAddr: alice,
		},
		"invalid hex length": {
			json:    `"hex:abcd"`,
			wantErr: errors.ErrInput,
		},
		"invalid hex data": {
			json:    `"hex:zzzz"`,
			wantErr: errors.ErrInput,
		},
		"invalid bech32": {
			json:    `"vault1zzzz"`,
			wantErr: errors.ErrInput,
		},
		"unknown format": {
			json:    `"foobar:xxx"`,
			wantErr: errors.ErrType,
		},
		"empty principal": {
			json:    `"principal:"`,
			wantErr: errors.ErrEmpty,
		},
		"zero address": {
			json:     `""`,
			wantAddr: nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var a vault.Address
			err := json.Unmarshal([]byte(tc.json), &a)
			if !tc.wantErr.Is(err) {
				t.Fatalf("got error: %+v", err)
			}
			if err == nil && !reflect.DeepEqual(a, tc.wantAddr) {
				t.Fatalf("got address: %q", a)
			}
		})
	}
}

func TestAddressText(t *testing.T) {
	alice := vault.NewAddress("alice")
	raw, err := alice.MarshalText()
	if err != nil {
		t.Fatalf("cannot marshal: %s", err)
	}
	var got vault.Address
	if err := got.UnmarshalText(raw); err != nil {
		t.Fatalf("cannot unmarshal: %s", err)
	}
	if !got.Equals(alice) {
		t.Fatalf("want %s, got %s", alice, got)
	}
}
