package user

import (
	"spendwise/internal/domain/resource"
	"spendwise/internal/shared/auth"
)

// User roles
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Schema describes the users table. The plain password is accepted on
// create and update and stored only as a bcrypt hash.
var Schema = &resource.Schema{
	Name:  "User",
	Table: "users",
	Fields: []resource.Field{
		{
			Name:            "username",
			Kind:            resource.KindString,
			MaxLen:          50,
			NotNull:         true,
			Unique:          true,
			ConflictMessage: "Username already taken",
		},
		{
			Name:                  "email",
			Kind:                  resource.KindString,
			MaxLen:                120,
			NotNull:               true,
			Email:                 true,
			Unique:                true,
			ConflictMessage:       "User with this email already exists",
			UpdateConflictMessage: "Email already in use",
		},
		{Name: "password_hash", Kind: resource.KindString, MaxLen: 256, NotNull: true, Sensitive: true},
		resource.String("full_name", 100),
		resource.String("phone_number", 20),
		{Name: "is_verified", Kind: resource.KindBool, NotNull: true, Default: false, Managed: true},
		{Name: "mfa_enabled", Kind: resource.KindBool, NotNull: true, Default: false, Managed: true},
		resource.Enum("role", RoleAdmin, RoleUser).NonNull().WithDefault(RoleUser),
	},
	Required:  []string{"username", "email", "password"},
	Updatable: []string{"username", "email", "full_name", "phone_number", "password"},
	Derived: map[string]resource.Derivation{
		"password": {Target: "password_hash", Apply: auth.HashPassword},
	},
	HasUpdatedAt: true,
}
