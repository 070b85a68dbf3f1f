package notification

import (
	"spendwise/internal/domain/resource"
	"spendwise/internal/domain/user"
)

// Notification types
const (
	TypeBudgetAlert        = "budget_alert"
	TypeSharedWalletInvite = "shared_wallet_invite"
	TypeSecurityAlert      = "security_alert"
)

// Schema describes in-app notifications addressed to a user. They are
// created once and only their read flag and text change afterwards.
var Schema = &resource.Schema{
	Name:  "Notification",
	Table: "notifications",
	Fields: []resource.Field{
		resource.ForeignKey("user_id", user.Schema),
		resource.Enum("type", TypeBudgetAlert, TypeSharedWalletInvite, TypeSecurityAlert).NonNull(),
		resource.String("title", 100).NonNull(),
		{Name: "message", Kind: resource.KindText, NotNull: true},
		{Name: "is_read", Kind: resource.KindBool, NotNull: true, Default: false},
	},
	Required:  []string{"user_id", "type", "title", "message"},
	Updatable: []string{"type", "title", "message", "is_read"},
}
