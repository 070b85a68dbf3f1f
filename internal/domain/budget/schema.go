package budget

import (
	"spendwise/internal/domain/category"
	"spendwise/internal/domain/resource"
	"spendwise/internal/domain/user"
	"spendwise/internal/domain/wallet"
)

// Budget periods
const (
	PeriodMonthly   = "monthly"
	PeriodQuarterly = "quarterly"
	PeriodYearly    = "yearly"
)

// Schema describes spending limits per wallet and category.
var Schema = &resource.Schema{
	Name:  "Budget",
	Table: "budgets",
	Fields: []resource.Field{
		resource.ForeignKey("user_id", user.Schema),
		resource.ForeignKey("category_id", category.Schema),
		resource.ForeignKey("wallet_id", wallet.Schema).OnDeleteCascade(),
		{Name: "amount", Kind: resource.KindDecimal, NotNull: true},
		resource.Enum("period", PeriodMonthly, PeriodQuarterly, PeriodYearly).NonNull(),
		{Name: "start_date", Kind: resource.KindTime, NotNull: true},
		{Name: "end_date", Kind: resource.KindTime},
	},
	Required: []string{"user_id", "category_id", "wallet_id", "amount", "period", "start_date"},
	Updatable: []string{
		"user_id", "category_id", "wallet_id", "amount", "period", "start_date", "end_date",
	},
	ActorField:   "user_id",
	HasUpdatedAt: true,
}

// SmartSchema holds the adaptive parameters attached to a budget.
var SmartSchema = &resource.Schema{
	Name:  "Smart Budget",
	Table: "smart_budgets",
	Fields: []resource.Field{
		resource.ForeignKey("budget_id", Schema).OnDeleteCascade(),
		resource.JSON("ai_parameters"),
		resource.JSON("market_conditions"),
		resource.JSON("adjustment_history"),
		resource.JSON("performance_metrics"),
		resource.JSON("suggestion_log"),
	},
	Required: []string{"budget_id"},
	Updatable: []string{
		"ai_parameters", "market_conditions", "adjustment_history",
		"performance_metrics", "suggestion_log",
	},
	HasUpdatedAt: true,
}
