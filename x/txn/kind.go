package txn

import (
	"github.com/iov-one/vault/x/state"
)

// Kind names an operation type.
type Kind string

const (
	KindMemberCreate        Kind = "member_create"
	KindMemberRemove        Kind = "member_remove"
	KindMemberRoleUpdate    Kind = "member_role_update"
	KindMemberNameUpdate    Kind = "member_name_update"
	KindMemberExtendAccount Kind = "member_extend_account"
	KindWalletCreate        Kind = "wallet_create"
	KindWalletUpdateName    Kind = "wallet_update_name"
	KindPolicyCreate        Kind = "policy_create"
	KindPolicyUpdate        Kind = "policy_update"
	KindPolicyRemove        Kind = "policy_remove"
	KindQuorumUpdate        Kind = "quorum_update"
	KindVaultNamingUpdate   Kind = "vault_naming_update"
	KindControllersUpdate   Kind = "controllers_update"
	KindVersionUpgrade      Kind = "version_upgrade"
	KindPurge               Kind = "purge"
	KindTransfer            Kind = "transfer"
	KindTransferQuorum      Kind = "transfer_quorum"
	KindTransferLinked      Kind = "transfer_linked"
	KindTopUp               Kind = "top_up"
	KindTopUpQuorum         Kind = "top_up_quorum"
	KindLedgerAdd           Kind = "ledger_add"
	KindLedgerRemove        Kind = "ledger_remove"
)

type kindInfo struct {
	// vaultState is set for operations mutating the replicated
	// configuration.
	vaultState bool
	// unblockable operations are never created blocked.
	unblockable bool
	roles       []state.Role
	// failure is the status an operation ends with when its execution
	// fails.
	failure Status
	request func() Request
}

var kinds = map[Kind]kindInfo{
	KindMemberCreate:        {vaultState: true, roles: state.AdminRoles, failure: StatusFailed, request: func() Request { return &MemberCreateRequest{} }},
	KindMemberRemove:        {vaultState: true, roles: state.AdminRoles, failure: StatusFailed, request: func() Request { return &MemberRemoveRequest{} }},
	KindMemberRoleUpdate:    {vaultState: true, roles: state.AdminRoles, failure: StatusFailed, request: func() Request { return &MemberRoleUpdateRequest{} }},
	KindMemberNameUpdate:    {vaultState: true, roles: state.AdminRoles, failure: StatusFailed, request: func() Request { return &MemberNameUpdateRequest{} }},
	KindMemberExtendAccount: {vaultState: true, roles: state.AdminRoles, failure: StatusFailed, request: func() Request { return &MemberExtendAccountRequest{} }},
	KindWalletCreate:        {vaultState: true, roles: state.AdminRoles, failure: StatusFailed, request: func() Request { return &WalletCreateRequest{} }},
	KindWalletUpdateName:    {vaultState: true, roles: state.AdminRoles, failure: StatusFailed, request: func() Request { return &WalletUpdateNameRequest{} }},
	KindPolicyCreate:        {vaultState: true, roles: state.AdminRoles, failure: StatusFailed, request: func() Request { return &PolicyCreateRequest{} }},
	KindPolicyUpdate:        {vaultState: true, roles: state.AdminRoles, failure: StatusFailed, request: func() Request { return &PolicyUpdateRequest{} }},
	KindPolicyRemove:        {vaultState: true, roles: state.AdminRoles, failure: StatusFailed, request: func() Request { return &PolicyRemoveRequest{} }},
	KindQuorumUpdate:        {vaultState: true, roles: state.AdminRoles, failure: StatusFailed, request: func() Request { return &QuorumUpdateRequest{} }},
	KindVaultNamingUpdate:   {vaultState: true, roles: state.AdminRoles, failure: StatusFailed, request: func() Request { return &VaultNamingUpdateRequest{} }},
	KindControllersUpdate:   {vaultState: true, unblockable: true, roles: state.AdminRoles, failure: StatusRejected, request: func() Request { return &ControllersUpdateRequest{} }},
	KindVersionUpgrade:      {vaultState: true, roles: state.AdminRoles, failure: StatusRejected, request: func() Request { return &VersionUpgradeRequest{} }},
	KindPurge:               {unblockable: true, roles: state.AllRoles, failure: StatusFailed, request: func() Request { return &PurgeRequest{} }},
	KindTransfer:            {roles: state.AllRoles, failure: StatusFailed, request: func() Request { return &TransferRequest{} }},
	KindTransferQuorum:      {roles: state.AdminRoles, failure: StatusFailed, request: func() Request { return &TransferQuorumRequest{} }},
	KindTransferLinked:      {roles: state.AdminRoles, failure: StatusFailed, request: func() Request { return &TransferLinkedRequest{} }},
	KindTopUp:               {roles: state.AllRoles, failure: StatusRejected, request: func() Request { return &TopUpRequest{} }},
	KindTopUpQuorum:         {roles: state.AdminRoles, failure: StatusFailed, request: func() Request { return &TopUpQuorumRequest{} }},
	KindLedgerAdd:           {vaultState: true, unblockable: true, roles: state.AdminRoles, failure: StatusFailed, request: func() Request { return &LedgerAddRequest{} }},
	KindLedgerRemove:        {vaultState: true, unblockable: true, roles: state.AdminRoles, failure: StatusFailed, request: func() Request { return &LedgerRemoveRequest{} }},
}

// Valid returns true for a known kind.
func (k Kind) Valid() bool {
	_, ok := kinds[k]
	return ok
}

// VaultState returns true if operations of this kind mutate the replicated
// configuration.
func (k Kind) VaultState() bool {
	return kinds[k].vaultState
}

// AcceptedRoles returns the member roles allowed to submit and vote on
// operations of this kind.
func (k Kind) AcceptedRoles() []state.Role {
	return kinds[k].roles
}

// FailureStatus returns the terminal status of a failed execution.
func (k Kind) FailureStatus() Status {
	if s := kinds[k].failure; s != 0 {
		return s
	}
	return StatusFailed
}

// NewRequest returns an empty request of given kind, ready to be decoded
// into.
func NewRequest(k Kind) (Request, bool) {
	info, ok := kinds[k]
	if !ok {
		return nil, false
	}
	return info.request(), true
}
