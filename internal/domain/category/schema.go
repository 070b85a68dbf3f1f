package category

import (
	"spendwise/internal/domain/resource"
	"spendwise/internal/domain/user"
)

// Category types
const (
	TypeExpense = "expense"
	TypeIncome  = "income"
)

// Schema describes user-defined and default categories.
var Schema = &resource.Schema{
	Name:  "Category",
	Table: "categories",
	Fields: []resource.Field{
		resource.String("name", 50).NonNull(),
		resource.Enum("type", TypeExpense, TypeIncome).NonNull(),
		resource.String("icon", 50),
		resource.String("color", 7),
		{Name: "is_default", Kind: resource.KindBool, NotNull: true, Default: false},
		{Name: "created_by", Kind: resource.KindInt, References: user.Schema},
	},
	Required:     []string{"name", "type"},
	Updatable:    []string{"name", "type", "icon", "color", "is_default"},
	ActorField:   "created_by",
	HasUpdatedAt: true,
}

// SmartSchema describes rule-driven categories nested under a parent.
var SmartSchema = &resource.Schema{
	Name:  "Smart Category",
	Table: "smart_categories",
	Fields: []resource.Field{
		resource.String("name", 50).NonNull(),
		{Name: "parent_category_id", Kind: resource.KindInt, References: Schema},
		resource.JSON("rules_set"),
		{Name: "learning_threshold", Kind: resource.KindFloat},
		{Name: "confidence_minimum", Kind: resource.KindFloat},
	},
	Required:     []string{"name"},
	Updatable:    []string{"name", "parent_category_id", "rules_set", "learning_threshold", "confidence_minimum"},
	HasUpdatedAt: true,
}
