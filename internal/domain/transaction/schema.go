package transaction

import (
	"spendwise/internal/domain/category"
	"spendwise/internal/domain/resource"
	"spendwise/internal/domain/user"
	"spendwise/internal/domain/wallet"
)

// Transaction types
const (
	TypeExpense = "expense"
	TypeIncome  = "income"
)

// Recurring intervals
const (
	IntervalDaily   = "daily"
	IntervalWeekly  = "weekly"
	IntervalMonthly = "monthly"
	IntervalYearly  = "yearly"
)

// Capture statuses for receipt scans and voice transactions
const (
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

var captureStatuses = []string{StatusProcessing, StatusCompleted, StatusFailed}

// Schema describes wallet transactions.
var Schema = &resource.Schema{
	Name:  "Transaction",
	Table: "transactions",
	Fields: []resource.Field{
		resource.ForeignKey("wallet_id", wallet.Schema).OnDeleteCascade(),
		resource.ForeignKey("category_id", category.Schema),
		{Name: "amount", Kind: resource.KindDecimal, NotNull: true},
		resource.Enum("type", TypeExpense, TypeIncome).NonNull(),
		{Name: "description", Kind: resource.KindText},
		{Name: "date", Kind: resource.KindTime, NotNull: true},
		{Name: "is_recurring", Kind: resource.KindBool, NotNull: true, Default: false},
		resource.Enum("recurring_interval", IntervalDaily, IntervalWeekly, IntervalMonthly, IntervalYearly),
		resource.ForeignKey("created_by", user.Schema),
	},
	Required: []string{"wallet_id", "category_id", "amount", "type", "date", "created_by"},
	Updatable: []string{
		"wallet_id", "category_id", "amount", "type", "description",
		"date", "is_recurring", "recurring_interval",
	},
	ActorField:   "created_by",
	HasUpdatedAt: true,
}

// ReceiptScanSchema stores OCR results for an uploaded receipt.
var ReceiptScanSchema = &resource.Schema{
	Name:  "Receipt Scan",
	Table: "receipt_scans",
	Fields: []resource.Field{
		resource.ForeignKey("user_id", user.Schema),
		resource.String("image_url", 255),
		{Name: "ocr_text", Kind: resource.KindText},
		{Name: "confidence_score", Kind: resource.KindFloat},
		resource.String("merchant_name", 100),
		{Name: "purchase_date", Kind: resource.KindTime},
		resource.JSON("items_detected"),
		{Name: "total_amount", Kind: resource.KindDecimal},
		resource.Enum("status", captureStatuses...).WithDefault(StatusProcessing),
		{Name: "processed_at", Kind: resource.KindTime},
	},
	Required: []string{"user_id"},
	Updatable: []string{
		"image_url", "ocr_text", "confidence_score", "merchant_name",
		"purchase_date", "items_detected", "total_amount", "status", "processed_at",
	},
	ActorField: "user_id",
}

// VoiceTransactionSchema stores a spoken transaction and its extraction.
var VoiceTransactionSchema = &resource.Schema{
	Name:  "Voice Transaction",
	Table: "voice_transactions",
	Fields: []resource.Field{
		resource.ForeignKey("user_id", user.Schema),
		resource.String("audio_url", 255),
		{Name: "transcription", Kind: resource.KindText},
		resource.JSON("intent_analysis"),
		resource.JSON("extracted_data"),
		{Name: "confidence_score", Kind: resource.KindFloat},
		resource.Enum("status", captureStatuses...).WithDefault(StatusProcessing),
		{Name: "processed_at", Kind: resource.KindTime},
	},
	Required: []string{"user_id"},
	Updatable: []string{
		"audio_url", "transcription", "intent_analysis", "extracted_data",
		"confidence_score", "status", "processed_at",
	},
	ActorField: "user_id",
}
