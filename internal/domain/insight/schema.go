// Package insight holds the advisory satellite tables. Their JSON
// columns are stored and returned as given; nothing here interprets them.
package insight

import (
	"spendwise/internal/domain/resource"
	"spendwise/internal/domain/user"
	"spendwise/internal/domain/wallet"
)

// Forecast types
const (
	ForecastSpending   = "spending"
	ForecastIncome     = "income"
	ForecastSavings    = "savings"
	ForecastInvestment = "investment"
)

// Forecast time ranges
const (
	RangeWeekly    = "weekly"
	RangeMonthly   = "monthly"
	RangeQuarterly = "quarterly"
	RangeYearly    = "yearly"
)

// Spending pattern types
const (
	PatternHabit       = "habit"
	PatternAnomaly     = "anomaly"
	PatternOpportunity = "opportunity"
)

// XR visualization types
const (
	VisualizationAROverlay    = "ar_overlay"
	VisualizationVRSpace      = "vr_space"
	VisualizationMixedReality = "mixed_reality"
)

var AdvisorProfileSchema = &resource.Schema{
	Name:  "AI Advisor Profile",
	Table: "ai_advisor_profiles",
	Fields: []resource.Field{
		resource.ForeignKey("user_id", user.Schema),
		{Name: "risk_tolerance", Kind: resource.KindFloat},
		resource.JSON("financial_goals"),
		resource.JSON("investment_preferences"),
		resource.JSON("learning_parameters"),
	},
	Required:     []string{"user_id", "risk_tolerance"},
	Updatable:    []string{"risk_tolerance", "financial_goals", "investment_preferences", "learning_parameters"},
	ActorField:   "user_id",
	HasUpdatedAt: true,
}

var ForecastSchema = &resource.Schema{
	Name:  "Financial Forecast",
	Table: "financial_forecasts",
	Fields: []resource.Field{
		resource.ForeignKey("user_id", user.Schema),
		resource.ForeignKey("wallet_id", wallet.Schema),
		resource.Enum("forecast_type", ForecastSpending, ForecastIncome, ForecastSavings, ForecastInvestment),
		resource.Enum("time_range", RangeWeekly, RangeMonthly, RangeQuarterly, RangeYearly),
		resource.JSON("prediction_data"),
		resource.JSON("confidence_interval"),
		resource.String("model_version", 50),
		resource.JSON("accuracy_metrics"),
		{Name: "valid_until", Kind: resource.KindTime},
	},
	Required: []string{"user_id", "wallet_id", "forecast_type", "time_range"},
	Updatable: []string{
		"forecast_type", "time_range", "prediction_data", "confidence_interval",
		"model_version", "accuracy_metrics", "valid_until",
	},
	ActorField: "user_id",
}

var SpendingPatternSchema = &resource.Schema{
	Name:  "Spending Pattern",
	Table: "spending_patterns",
	Fields: []resource.Field{
		resource.ForeignKey("user_id", user.Schema),
		resource.Enum("pattern_type", PatternHabit, PatternAnomaly, PatternOpportunity),
		resource.JSON("pattern_data"),
		{Name: "significance_score", Kind: resource.KindFloat},
		resource.JSON("recognition_params"),
		resource.JSON("actions_suggested"),
	},
	Required: []string{"user_id", "pattern_type"},
	Updatable: []string{
		"pattern_type", "pattern_data", "significance_score",
		"recognition_params", "actions_suggested",
	},
	ActorField:   "user_id",
	HasUpdatedAt: true,
}

var CryptoWalletSchema = &resource.Schema{
	Name:  "Crypto Wallet",
	Table: "crypto_wallets",
	Fields: []resource.Field{
		resource.ForeignKey("user_id", user.Schema),
		resource.String("wallet_address", 255).NonNull(),
		resource.String("blockchain_type", 50).NonNull(),
		resource.JSON("balance_snapshot"),
		resource.JSON("transaction_history"),
		resource.JSON("risk_assessment"),
	},
	Required: []string{"user_id", "wallet_address", "blockchain_type"},
	Updatable: []string{
		"wallet_address", "blockchain_type", "balance_snapshot",
		"transaction_history", "risk_assessment",
	},
	ActorField:   "user_id",
	HasUpdatedAt: true,
}

var BenchmarkSchema = &resource.Schema{
	Name:  "Financial Benchmark",
	Table: "financial_benchmarks",
	Fields: []resource.Field{
		resource.ForeignKey("user_id", user.Schema),
		resource.JSON("peer_group_params"),
		resource.JSON("comparison_metrics"),
		resource.JSON("insights_generated"),
		{Name: "recommendation_score", Kind: resource.KindFloat},
	},
	Required:     []string{"user_id"},
	Updatable:    []string{"peer_group_params", "comparison_metrics", "insights_generated", "recommendation_score"},
	ActorField:   "user_id",
	HasUpdatedAt: true,
}

var VisualizationSchema = &resource.Schema{
	Name:  "XR Visualization",
	Table: "xr_visualizations",
	Fields: []resource.Field{
		resource.ForeignKey("user_id", user.Schema),
		resource.Enum("visualization_type", VisualizationAROverlay, VisualizationVRSpace, VisualizationMixedReality),
		resource.JSON("scene_data"),
		resource.JSON("interaction_metrics"),
		resource.JSON("performance_stats"),
	},
	Required:     []string{"user_id", "visualization_type"},
	Updatable:    []string{"visualization_type", "scene_data", "interaction_metrics", "performance_stats"},
	ActorField:   "user_id",
	HasUpdatedAt: true,
}
