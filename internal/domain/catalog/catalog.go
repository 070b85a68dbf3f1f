// Package catalog lists every entity schema with the collection path it
// is served under.
package catalog

import (
	"spendwise/internal/domain/budget"
	"spendwise/internal/domain/category"
	"spendwise/internal/domain/insight"
	"spendwise/internal/domain/notification"
	"spendwise/internal/domain/resource"
	"spendwise/internal/domain/transaction"
	"spendwise/internal/domain/user"
	"spendwise/internal/domain/wallet"
)

// Entry binds a schema to its collection path segment.
type Entry struct {
	Path   string
	Schema *resource.Schema
}

// Entries returns every schema ordered so that each one comes after the
// schemas it references.
func Entries() []Entry {
	return []Entry{
		{Path: "users", Schema: user.Schema},
		{Path: "wallets", Schema: wallet.Schema},
		{Path: "wallet-collaborators", Schema: wallet.CollaboratorSchema},
		{Path: "wallet-invitations", Schema: wallet.InvitationSchema},
		{Path: "categories", Schema: category.Schema},
		{Path: "smart-categories", Schema: category.SmartSchema},
		{Path: "transactions", Schema: transaction.Schema},
		{Path: "receipt-scans", Schema: transaction.ReceiptScanSchema},
		{Path: "voice-transactions", Schema: transaction.VoiceTransactionSchema},
		{Path: "budgets", Schema: budget.Schema},
		{Path: "smart-budgets", Schema: budget.SmartSchema},
		{Path: "notifications", Schema: notification.Schema},
		{Path: "ai-advisor-profiles", Schema: insight.AdvisorProfileSchema},
		{Path: "financial-forecasts", Schema: insight.ForecastSchema},
		{Path: "spending-patterns", Schema: insight.SpendingPatternSchema},
		{Path: "crypto-wallets", Schema: insight.CryptoWalletSchema},
		{Path: "financial-benchmarks", Schema: insight.BenchmarkSchema},
		{Path: "xr-visualizations", Schema: insight.VisualizationSchema},
	}
}

// Schemas returns the schemas of Entries in the same order.
func Schemas() []*resource.Schema {
	entries := Entries()
	schemas := make([]*resource.Schema, 0, len(entries))
	for _, e := range entries {
		schemas = append(schemas, e.Schema)
	}
	return schemas
}
