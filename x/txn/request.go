package txn

import (
	"github.com/Masterminds/semver/v3"
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/x/state"
)

// Request is the payload a caller submits to create an operation.
type Request interface {
	Kind() Kind
	Validate() error
}

type MemberCreateRequest struct {
	Member vault.Address `json:"member" yaml:"member"`
	Name   string        `json:"name" yaml:"name"`
	Role   state.Role    `json:"role" yaml:"role"`
}

func (*MemberCreateRequest) Kind() Kind { return KindMemberCreate }

func (r *MemberCreateRequest) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Member", r.Member.Validate())
	errs = errors.AppendField(errs, "Role", r.Role.Validate())
	return errs
}

type MemberRemoveRequest struct {
	Member vault.Address `json:"member" yaml:"member"`
}

func (*MemberRemoveRequest) Kind() Kind { return KindMemberRemove }

func (r *MemberRemoveRequest) Validate() error {
	return errors.Field("Member", r.Member.Validate(), "")
}

type MemberRoleUpdateRequest struct {
	Member vault.Address `json:"member" yaml:"member"`
	Role   state.Role    `json:"role" yaml:"role"`
}

func (*MemberRoleUpdateRequest) Kind() Kind { return KindMemberRoleUpdate }

func (r *MemberRoleUpdateRequest) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Member", r.Member.Validate())
	errs = errors.AppendField(errs, "Role", r.Role.Validate())
	return errs
}

type MemberNameUpdateRequest struct {
	Member vault.Address `json:"member" yaml:"member"`
	Name   string        `json:"name" yaml:"name"`
}

func (*MemberNameUpdateRequest) Kind() Kind { return KindMemberNameUpdate }

func (r *MemberNameUpdateRequest) Validate() error {
	return errors.Field("Member", r.Member.Validate(), "")
}

// MemberExtendAccountRequest attaches an external account to a member that
// does not have one yet.
type MemberExtendAccountRequest struct {
	Member  vault.Address `json:"member" yaml:"member"`
	Account string        `json:"account" yaml:"account"`
}

func (*MemberExtendAccountRequest) Kind() Kind { return KindMemberExtendAccount }

func (r *MemberExtendAccountRequest) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Member", r.Member.Validate())
	if r.Account == "" {
		errs = errors.AppendField(errs, "Account", errors.ErrEmpty)
	}
	return errs
}

type WalletCreateRequest struct {
	UID     string `json:"uid" yaml:"uid"`
	Name    string `json:"name" yaml:"name"`
	Network string `json:"network" yaml:"network"`
}

func (*WalletCreateRequest) Kind() Kind { return KindWalletCreate }

func (r *WalletCreateRequest) Validate() error {
	return state.Wallet{UID: r.UID, Name: r.Name, Network: r.Network}.Validate()
}

type WalletUpdateNameRequest struct {
	UID  string `json:"uid" yaml:"uid"`
	Name string `json:"name" yaml:"name"`
}

func (*WalletUpdateNameRequest) Kind() Kind { return KindWalletUpdateName }

func (r *WalletUpdateNameRequest) Validate() error {
	if r.UID == "" {
		return errors.Field("UID", errors.ErrEmpty, "required")
	}
	return nil
}

type PolicyCreateRequest struct {
	UID             string   `json:"uid" yaml:"uid"`
	AmountThreshold uint64   `json:"amount_threshold" yaml:"amount_threshold"`
	MemberThreshold uint32   `json:"member_threshold" yaml:"member_threshold"`
	Currency        string   `json:"currency" yaml:"currency"`
	Wallets         []string `json:"wallets" yaml:"wallets"`
}

func (*PolicyCreateRequest) Kind() Kind { return KindPolicyCreate }

func (r *PolicyCreateRequest) Validate() error {
	return r.policy().Validate()
}

func (r PolicyCreateRequest) policy() state.Policy {
	return state.Policy{
		UID:             r.UID,
		AmountThreshold: r.AmountThreshold,
		MemberThreshold: r.MemberThreshold,
		Currency:        r.Currency,
		Wallets:         append([]string(nil), r.Wallets...),
	}
}

type PolicyUpdateRequest struct {
	UID             string `json:"uid" yaml:"uid"`
	AmountThreshold uint64 `json:"amount_threshold" yaml:"amount_threshold"`
	MemberThreshold uint32 `json:"member_threshold" yaml:"member_threshold"`
}

func (*PolicyUpdateRequest) Kind() Kind { return KindPolicyUpdate }

func (r *PolicyUpdateRequest) Validate() error {
	if r.UID == "" {
		return errors.Field("UID", errors.ErrEmpty, "required")
	}
	return nil
}

type PolicyRemoveRequest struct {
	UID string `json:"uid" yaml:"uid"`
}

func (*PolicyRemoveRequest) Kind() Kind { return KindPolicyRemove }

func (r *PolicyRemoveRequest) Validate() error {
	if r.UID == "" {
		return errors.Field("UID", errors.ErrEmpty, "required")
	}
	return nil
}

type QuorumUpdateRequest struct {
	Quorum uint32 `json:"quorum" yaml:"quorum"`
}

func (*QuorumUpdateRequest) Kind() Kind { return KindQuorumUpdate }

// Validate accepts a zero quorum. Such an update is recorded and fails at
// execution time with ErrQuorumNotReachable.
func (r *QuorumUpdateRequest) Validate() error { return nil }

type VaultNamingUpdateRequest struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

func (*VaultNamingUpdateRequest) Kind() Kind { return KindVaultNamingUpdate }

func (r *VaultNamingUpdateRequest) Validate() error { return nil }

// ControllersUpdateRequest replaces the set of principals controlling the
// vault on the hosting platform.
type ControllersUpdateRequest struct {
	Principals []string `json:"principals" yaml:"principals"`
}

func (*ControllersUpdateRequest) Kind() Kind { return KindControllersUpdate }

func (r *ControllersUpdateRequest) Validate() error {
	if len(r.Principals) == 0 {
		return errors.Field("Principals", errors.ErrEmpty, "at least one controller required")
	}
	for i, p := range r.Principals {
		if p == "" {
			return errors.Field("Principals", errors.ErrEmpty, "principal %d", i)
		}
	}
	return nil
}

type VersionUpgradeRequest struct {
	Version string `json:"version" yaml:"version"`
}

func (*VersionUpgradeRequest) Kind() Kind { return KindVersionUpgrade }

func (r *VersionUpgradeRequest) Validate() error {
	if _, err := semver.NewVersion(r.Version); err != nil {
		return errors.Field("Version", errors.ErrInput, "%s", err)
	}
	return nil
}

// PurgeRequest marks every unfinished operation as purged.
type PurgeRequest struct{}

func (*PurgeRequest) Kind() Kind { return KindPurge }

func (*PurgeRequest) Validate() error { return nil }

// TransferRequest moves funds from a wallet. The destination address is hex
// encoded. Its format is checked when the transfer is executed.
type TransferRequest struct {
	Wallet   string `json:"wallet" yaml:"wallet"`
	Currency string `json:"currency" yaml:"currency"`
	Address  string `json:"address" yaml:"address"`
	Amount   uint64 `json:"amount" yaml:"amount"`
	Memo     string `json:"memo,omitempty" yaml:"memo,omitempty"`
}

func (*TransferRequest) Kind() Kind { return KindTransfer }

func (r *TransferRequest) Validate() error {
	var errs error
	if r.Wallet == "" {
		errs = errors.AppendField(errs, "Wallet", errors.ErrEmpty)
	}
	if r.Currency == "" {
		errs = errors.AppendField(errs, "Currency", errors.ErrEmpty)
	}
	if r.Address == "" {
		errs = errors.AppendField(errs, "Address", errors.ErrEmpty)
	}
	if r.Amount == 0 {
		errs = errors.AppendField(errs, "Amount", errors.ErrAmount)
	}
	return errs
}

// TransferQuorumRequest is a transfer approved by the admin quorum instead of
// the policy table.
type TransferQuorumRequest struct {
	TransferRequest `yaml:",inline"`
}

func (*TransferQuorumRequest) Kind() Kind { return KindTransferQuorum }

// TransferLinkedRequest moves funds held on a linked ledger.
type TransferLinkedRequest struct {
	Ledger string `json:"ledger" yaml:"ledger"`
	Wallet string `json:"wallet" yaml:"wallet"`
	To     string `json:"to" yaml:"to"`
	Amount uint64 `json:"amount" yaml:"amount"`
	Memo   string `json:"memo,omitempty" yaml:"memo,omitempty"`
}

func (*TransferLinkedRequest) Kind() Kind { return KindTransferLinked }

func (r *TransferLinkedRequest) Validate() error {
	var errs error
	if r.Ledger == "" {
		errs = errors.AppendField(errs, "Ledger", errors.ErrEmpty)
	}
	if r.Wallet == "" {
		errs = errors.AppendField(errs, "Wallet", errors.ErrEmpty)
	}
	if r.To == "" {
		errs = errors.AppendField(errs, "To", errors.ErrEmpty)
	}
	if r.Amount == 0 {
		errs = errors.AppendField(errs, "Amount", errors.ErrAmount)
	}
	return errs
}

type TopUpRequest struct {
	Wallet   string `json:"wallet" yaml:"wallet"`
	Currency string `json:"currency" yaml:"currency"`
	Amount   uint64 `json:"amount" yaml:"amount"`
}

func (*TopUpRequest) Kind() Kind { return KindTopUp }

func (r *TopUpRequest) Validate() error {
	var errs error
	if r.Wallet == "" {
		errs = errors.AppendField(errs, "Wallet", errors.ErrEmpty)
	}
	if r.Currency == "" {
		errs = errors.AppendField(errs, "Currency", errors.ErrEmpty)
	}
	if r.Amount == 0 {
		errs = errors.AppendField(errs, "Amount", errors.ErrAmount)
	}
	return errs
}

type TopUpQuorumRequest struct {
	TopUpRequest `yaml:",inline"`
}

func (*TopUpQuorumRequest) Kind() Kind { return KindTopUpQuorum }

// LedgerAddRequest links an external asset ledger. Adding a ledger that is
// already linked replaces its index.
type LedgerAddRequest struct {
	Ledger string `json:"ledger" yaml:"ledger"`
	Index  string `json:"index" yaml:"index"`
}

func (*LedgerAddRequest) Kind() Kind { return KindLedgerAdd }

func (r *LedgerAddRequest) Validate() error {
	if r.Ledger == "" {
		return errors.Field("Ledger", errors.ErrEmpty, "required")
	}
	return nil
}

type LedgerRemoveRequest struct {
	Ledger string `json:"ledger" yaml:"ledger"`
}

func (*LedgerRemoveRequest) Kind() Kind { return KindLedgerRemove }

func (r *LedgerRemoveRequest) Validate() error {
	if r.Ledger == "" {
		return errors.Field("Ledger", errors.ErrEmpty, "required")
	}
	return nil
}
