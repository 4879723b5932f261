package txn

import (
	"github.com/iov-one/vault/errors"
	amino "github.com/tendermint/go-amino"
)

// RegisterAmino registers the Transaction interface and all record types so
// that records can be encoded tagged by their kind.
func RegisterAmino(cdc *amino.Codec) {
	cdc.RegisterInterface((*Transaction)(nil), nil)
	cdc.RegisterConcrete(&MemberCreate{}, "vault/MemberCreate", nil)
	cdc.RegisterConcrete(&MemberRemove{}, "vault/MemberRemove", nil)
	cdc.RegisterConcrete(&MemberRoleUpdate{}, "vault/MemberRoleUpdate", nil)
	cdc.RegisterConcrete(&MemberNameUpdate{}, "vault/MemberNameUpdate", nil)
	cdc.RegisterConcrete(&MemberExtendAccount{}, "vault/MemberExtendAccount", nil)
	cdc.RegisterConcrete(&WalletCreate{}, "vault/WalletCreate", nil)
	cdc.RegisterConcrete(&WalletUpdateName{}, "vault/WalletUpdateName", nil)
	cdc.RegisterConcrete(&PolicyCreate{}, "vault/PolicyCreate", nil)
	cdc.RegisterConcrete(&PolicyUpdate{}, "vault/PolicyUpdate", nil)
	cdc.RegisterConcrete(&PolicyRemove{}, "vault/PolicyRemove", nil)
	cdc.RegisterConcrete(&QuorumUpdate{}, "vault/QuorumUpdate", nil)
	cdc.RegisterConcrete(&VaultNamingUpdate{}, "vault/VaultNamingUpdate", nil)
	cdc.RegisterConcrete(&ControllersUpdate{}, "vault/ControllersUpdate", nil)
	cdc.RegisterConcrete(&VersionUpgrade{}, "vault/VersionUpgrade", nil)
	cdc.RegisterConcrete(&Purge{}, "vault/Purge", nil)
	cdc.RegisterConcrete(&Transfer{}, "vault/Transfer", nil)
	cdc.RegisterConcrete(&TransferQuorum{}, "vault/TransferQuorum", nil)
	cdc.RegisterConcrete(&TransferLinked{}, "vault/TransferLinked", nil)
	cdc.RegisterConcrete(&TopUp{}, "vault/TopUp", nil)
	cdc.RegisterConcrete(&TopUpQuorum{}, "vault/TopUpQuorum", nil)
	cdc.RegisterConcrete(&LedgerAdd{}, "vault/LedgerAdd", nil)
	cdc.RegisterConcrete(&LedgerRemove{}, "vault/LedgerRemove", nil)
}

var cdc = newCodec()

func newCodec() *amino.Codec {
	c := amino.NewCodec()
	RegisterAmino(c)
	c.Seal()
	return c
}

// Marshal encodes a record together with its kind prefix.
func Marshal(t Transaction) ([]byte, error) {
	raw, err := cdc.MarshalBinaryBare(t)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidModel, "cannot encode %T: %s", t, err)
	}
	return raw, nil
}

// Unmarshal decodes a record encoded with Marshal.
func Unmarshal(raw []byte) (Transaction, error) {
	var t Transaction
	if err := cdc.UnmarshalBinaryBare(raw, &t); err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidModel, "cannot decode record: %s", err)
	}
	return t, nil
}

// Copy returns a deep copy of a record. It panics if t is not one of the
// record types of this package.
func Copy(t Transaction) Transaction {
	raw, err := Marshal(t)
	if err != nil {
		panic(err)
	}
	c, err := Unmarshal(raw)
	if err != nil {
		panic(err)
	}
	return c
}

// MarshalJSON renders a record in the amino JSON format.
func MarshalJSON(t Transaction) ([]byte, error) {
	return cdc.MarshalJSONIndent(t, "", "  ")
}
