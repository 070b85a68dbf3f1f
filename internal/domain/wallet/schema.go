package wallet

import (
	"github.com/shopspring/decimal"

	"spendwise/internal/domain/resource"
	"spendwise/internal/domain/user"
)

// Wallet types
const (
	TypePersonal = "personal"
	TypeShared   = "shared"
)

// Permission levels shared by collaborators and invitations
const (
	PermissionOwner  = "owner"
	PermissionEditor = "editor"
	PermissionViewer = "viewer"
)

// Invitation statuses
const (
	InvitationPending  = "pending"
	InvitationAccepted = "accepted"
	InvitationRejected = "rejected"
)

// DefaultCurrency is applied when a wallet is created without one.
const DefaultCurrency = "KES"

var permissionLevels = []string{PermissionOwner, PermissionEditor, PermissionViewer}

// Schema describes the wallets table. Deleting a wallet removes its
// transactions, budgets and collaborators.
var Schema = &resource.Schema{
	Name:  "Wallet",
	Table: "wallets",
	Fields: []resource.Field{
		resource.String("name", 100).NonNull(),
		{Name: "description", Kind: resource.KindText},
		resource.String("currency", 3).WithDefault(DefaultCurrency),
		{Name: "balance", Kind: resource.KindDecimal, NotNull: true, Default: decimal.Zero},
		resource.Enum("type", TypePersonal, TypeShared).NonNull().WithDefault(TypePersonal),
		resource.ForeignKey("owner_id", user.Schema).OnDeleteCascade(),
	},
	Required:     []string{"name", "owner_id"},
	Updatable:    []string{"name", "description", "currency", "balance", "type"},
	ActorField:   "owner_id",
	HasUpdatedAt: true,
}

// CollaboratorSchema describes users sharing a wallet.
var CollaboratorSchema = &resource.Schema{
	Name:  "Collaborator",
	Table: "wallet_collaborators",
	Fields: []resource.Field{
		resource.ForeignKey("wallet_id", Schema).OnDeleteCascade(),
		resource.ForeignKey("user_id", user.Schema),
		resource.Enum("permission_level", permissionLevels...).NonNull(),
	},
	Required:     []string{"wallet_id", "user_id", "permission_level"},
	Updatable:    []string{"permission_level"},
	HasUpdatedAt: true,
}

// InvitationSchema describes pending invitations to join a wallet.
var InvitationSchema = &resource.Schema{
	Name:  "Wallet Invitation",
	Table: "wallet_invitations",
	Fields: []resource.Field{
		resource.ForeignKey("wallet_id", Schema),
		resource.ForeignKey("invited_by", user.Schema),
		{Name: "invited_email", Kind: resource.KindString, MaxLen: 120, NotNull: true, Email: true},
		resource.Enum("permission_level", permissionLevels...).NonNull(),
		resource.Enum("status", InvitationPending, InvitationAccepted, InvitationRejected).NonNull().WithDefault(InvitationPending),
		{Name: "expires_at", Kind: resource.KindTime, NotNull: true},
	},
	Required:   []string{"wallet_id", "invited_by", "invited_email", "permission_level", "expires_at"},
	Updatable:  []string{"permission_level", "status", "expires_at"},
	ActorField: "invited_by",
}
