package database

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"spendwise/internal/domain/budget"
	"spendwise/internal/domain/catalog"
	"spendwise/internal/domain/category"
	"spendwise/internal/domain/insight"
	"spendwise/internal/domain/resource"
	"spendwise/internal/domain/transaction"
	"spendwise/internal/domain/user"
	"spendwise/internal/domain/wallet"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	ctx := context.Background()
	db, err := Open(ctx, Options{Driver: DriverSQLite, DSN: ":memory:"})
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := EnsureSchema(ctx, db, catalog.Schemas()); err != nil {
		t.Fatalf("EnsureSchema() failed: %v", err)
	}
	return NewStore(db)
}

func createUser(t *testing.T, users *resource.Service, username string) int64 {
	t.Helper()
	doc, err := users.Create(context.Background(), map[string]any{
		"username": username,
		"email":    username + "@example.com",
		"password": "s3cret",
	})
	if err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return doc["id"].(int64)
}

func countRows(t *testing.T, svc *resource.Service) int {
	t.Helper()
	docs, err := svc.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll() failed: %v", err)
	}
	return len(docs)
}

func TestEnsureSchema_Idempotent(t *testing.T) {
	store := newTestStore(t)
	if err := EnsureSchema(context.Background(), store.db, catalog.Schemas()); err != nil {
		t.Fatalf("second EnsureSchema() failed: %v", err)
	}
}

func TestStore_UserLifecycle(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	users := resource.NewService(user.Schema, store)

	created, err := users.Create(ctx, map[string]any{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "s3cret",
	})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if _, ok := created["password_hash"]; ok {
		t.Error("Create() exposed password_hash")
	}
	if created["role"] != user.RoleUser || created["is_verified"] != false {
		t.Errorf("defaults not applied: %v", created)
	}
	if created["created_at"] != created["updated_at"] {
		t.Errorf("created_at %v != updated_at %v on insert", created["created_at"], created["updated_at"])
	}
	id := created["id"].(int64)

	got, err := users.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID() failed: %v", err)
	}
	if got["username"] != "alice" || got["created_at"] != created["created_at"] {
		t.Errorf("GetByID() = %v, want round trip of %v", got, created)
	}

	again, err := users.GetByID(ctx, id)
	if err != nil || again["updated_at"] != got["updated_at"] {
		t.Errorf("repeated GetByID() changed the record: %v, %v", again, err)
	}

	_, err = users.Create(ctx, map[string]any{
		"username": "alice",
		"email":    "other@example.com",
		"password": "x",
	})
	var ce *resource.ConflictError
	if !errors.As(err, &ce) || ce.Message != "Username already taken" {
		t.Fatalf("duplicate Create() error = %v, want Username already taken", err)
	}
	if n := countRows(t, users); n != 1 {
		t.Errorf("user count = %d after rejected create, want 1", n)
	}

	updated, err := users.Update(ctx, id, map[string]any{"full_name": "Alice A."})
	if err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	if updated["full_name"] != "Alice A." || updated["email"] != "alice@example.com" {
		t.Errorf("Update() = %v, want only full_name changed", updated)
	}

	msg, err := users.Delete(ctx, id)
	if err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if msg != "User deleted successfully" {
		t.Errorf("Delete() = %q", msg)
	}

	_, err = users.Delete(ctx, id)
	if !errors.Is(err, resource.ErrNotFound) || err.Error() != "User not found" {
		t.Errorf("second Delete() error = %v, want User not found", err)
	}
}

func TestStore_UpdateEmailConflict(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	users := resource.NewService(user.Schema, store)

	createUser(t, users, "alice")
	bob := createUser(t, users, "bob")

	_, err := users.Update(ctx, bob, map[string]any{"email": "alice@example.com"})
	var ce *resource.ConflictError
	if !errors.As(err, &ce) || ce.Message != "Email already in use" {
		t.Fatalf("Update() error = %v, want Email already in use", err)
	}

	// Writing a user's own email back is not a conflict.
	if _, err := users.Update(ctx, bob, map[string]any{"email": "bob@example.com"}); err != nil {
		t.Fatalf("Update() with own email failed: %v", err)
	}
}

func TestStore_WalletDecimalAndCascade(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	users := resource.NewService(user.Schema, store)
	wallets := resource.NewService(wallet.Schema, store)
	categories := resource.NewService(category.Schema, store)
	transactions := resource.NewService(transaction.Schema, store)

	owner := createUser(t, users, "alice")

	w, err := wallets.Create(ctx, map[string]any{
		"name":     "Main",
		"owner_id": json.Number("0"),
		"balance":  json.Number("42.5"),
	})
	if err == nil {
		t.Fatalf("Create() accepted a missing owner: %v", w)
	}

	w, err = wallets.Create(resource.WithActor(ctx, owner), map[string]any{
		"name":    "Main",
		"balance": json.Number("42.5"),
	})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if w["balance"] != "42.50" || w["currency"] != wallet.DefaultCurrency || w["type"] != wallet.TypePersonal {
		t.Errorf("Create() = %v, want balance 42.50 with defaults", w)
	}
	walletID := w["id"].(int64)

	fetched, err := wallets.GetByID(ctx, walletID)
	if err != nil {
		t.Fatalf("GetByID() failed: %v", err)
	}
	if fetched["balance"] != "42.50" {
		t.Errorf("balance after round trip = %v, want 42.50", fetched["balance"])
	}

	cat, err := categories.Create(ctx, map[string]any{"name": "Food", "type": category.TypeExpense})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}

	txn, err := transactions.Create(resource.WithActor(ctx, owner), map[string]any{
		"wallet_id":   walletID,
		"category_id": cat["id"],
		"amount":      json.Number("12.30"),
		"type":        transaction.TypeExpense,
		"date":        "2024-01-15T00:00:00",
	})
	if err != nil {
		t.Fatalf("create transaction: %v", err)
	}
	if txn["date"] != "2024-01-15T00:00:00" || txn["amount"] != "12.30" {
		t.Errorf("transaction = %v", txn)
	}

	if _, err := users.Delete(ctx, owner); err != nil {
		t.Fatalf("Delete(owner) failed: %v", err)
	}
	if n := countRows(t, wallets); n != 0 {
		t.Errorf("wallets after owner delete = %d, want 0", n)
	}
	if n := countRows(t, transactions); n != 0 {
		t.Errorf("transactions after owner delete = %d, want 0", n)
	}
	if n := countRows(t, categories); n != 1 {
		t.Errorf("categories after owner delete = %d, want 1", n)
	}
}

func TestStore_MissingReference(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	users := resource.NewService(user.Schema, store)
	transactions := resource.NewService(transaction.Schema, store)

	owner := createUser(t, users, "alice")

	_, err := transactions.Create(resource.WithActor(ctx, owner), map[string]any{
		"wallet_id":   json.Number("999"),
		"category_id": json.Number("1"),
		"amount":      json.Number("1"),
		"type":        transaction.TypeIncome,
		"date":        "2024-01-15",
	})
	var ve *resource.ValidationError
	if !errors.As(err, &ve) || ve.Field != "wallet_id" {
		t.Fatalf("Create() error = %v, want ValidationError on wallet_id", err)
	}
	if n := countRows(t, transactions); n != 0 {
		t.Errorf("transactions = %d, want 0", n)
	}
}

func TestStore_BlockedDelete(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	users := resource.NewService(user.Schema, store)
	wallets := resource.NewService(wallet.Schema, store)
	invitations := resource.NewService(wallet.InvitationSchema, store)

	owner := createUser(t, users, "alice")
	w, err := wallets.Create(resource.WithActor(ctx, owner), map[string]any{"name": "Shared"})
	if err != nil {
		t.Fatalf("create wallet: %v", err)
	}
	_, err = invitations.Create(resource.WithActor(ctx, owner), map[string]any{
		"wallet_id":        w["id"],
		"invited_email":    "bob@example.com",
		"permission_level": wallet.PermissionViewer,
		"expires_at":       time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339),
	})
	if err != nil {
		t.Fatalf("create invitation: %v", err)
	}

	_, err = wallets.Delete(ctx, w["id"].(int64))
	var ce *resource.ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("Delete() error = %v, want ConflictError", err)
	}
	if _, err := wallets.GetByID(ctx, w["id"].(int64)); err != nil {
		t.Errorf("wallet should survive a blocked delete: %v", err)
	}
}

func TestStore_UniqueConstraintBackstop(t *testing.T) {
	tests := []struct {
		name       string
		username   string
		email      string
		wantColumn string
	}{
		{name: "Username collides", username: "carol", email: "other@example.com", wantColumn: "username"},
		{name: "Email collides", username: "dave", email: "carol@example.com", wantColumn: "email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := newTestStore(t)
			now := time.Now().UTC()

			insert := func(username, email string) func(resource.Repository) error {
				return func(repo resource.Repository) error {
					_, err := repo.Insert(ctx, user.Schema, resource.Values{
						"username":      username,
						"email":         email,
						"password_hash": "x",
						"is_verified":   false,
						"mfa_enabled":   false,
						"role":          user.RoleUser,
					}, now)
					return err
				}
			}

			if err := store.WithinTx(ctx, insert("carol", "carol@example.com")); err != nil {
				t.Fatalf("first insert failed: %v", err)
			}

			err := store.WithinTx(ctx, insert(tt.username, tt.email))
			var ce *resource.ConstraintError
			if !errors.As(err, &ce) {
				t.Fatalf("second insert error = %v, want ConstraintError", err)
			}
			if ce.Kind != resource.ConstraintUnique || ce.Column != tt.wantColumn {
				t.Errorf("ConstraintError = %+v, want unique on %s", ce, tt.wantColumn)
			}
		})
	}
}

func TestStore_WalletDeleteCascades(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	users := resource.NewService(user.Schema, store)
	wallets := resource.NewService(wallet.Schema, store)
	collaborators := resource.NewService(wallet.CollaboratorSchema, store)
	categories := resource.NewService(category.Schema, store)
	transactions := resource.NewService(transaction.Schema, store)
	budgets := resource.NewService(budget.Schema, store)
	forecasts := resource.NewService(insight.ForecastSchema, store)

	owner := createUser(t, users, "alice")
	guest := createUser(t, users, "bob")
	actx := resource.WithActor(ctx, owner)

	w, err := wallets.Create(actx, map[string]any{"name": "Household"})
	if err != nil {
		t.Fatalf("create wallet: %v", err)
	}
	walletID := w["id"].(int64)

	cat, err := categories.Create(ctx, map[string]any{"name": "Food", "type": category.TypeExpense})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}

	if _, err := transactions.Create(actx, map[string]any{
		"wallet_id":   walletID,
		"category_id": cat["id"],
		"amount":      json.Number("9.99"),
		"type":        transaction.TypeExpense,
		"date":        "2024-02-01",
	}); err != nil {
		t.Fatalf("create transaction: %v", err)
	}
	if _, err := budgets.Create(actx, map[string]any{
		"wallet_id":   walletID,
		"category_id": cat["id"],
		"amount":      json.Number("300"),
		"period":      budget.PeriodMonthly,
		"start_date":  "2024-02-01",
	}); err != nil {
		t.Fatalf("create budget: %v", err)
	}
	if _, err := collaborators.Create(ctx, map[string]any{
		"wallet_id":        walletID,
		"user_id":          guest,
		"permission_level": wallet.PermissionEditor,
	}); err != nil {
		t.Fatalf("create collaborator: %v", err)
	}

	if _, err := wallets.Delete(ctx, walletID); err != nil {
		t.Fatalf("Delete(wallet) failed: %v", err)
	}

	for name, svc := range map[string]*resource.Service{
		"transactions":  transactions,
		"budgets":       budgets,
		"collaborators": collaborators,
	} {
		if n := countRows(t, svc); n != 0 {
			t.Errorf("%s after wallet delete = %d, want 0", name, n)
		}
	}
	if n := countRows(t, categories); n != 1 {
		t.Errorf("categories after wallet delete = %d, want 1", n)
	}

	t.Run("Forecast blocks delete", func(t *testing.T) {
		w, err := wallets.Create(actx, map[string]any{"name": "Forecasted"})
		if err != nil {
			t.Fatalf("create wallet: %v", err)
		}
		if _, err := forecasts.Create(actx, map[string]any{
			"wallet_id":     w["id"],
			"forecast_type": insight.ForecastSpending,
			"time_range":    insight.RangeMonthly,
		}); err != nil {
			t.Fatalf("create forecast: %v", err)
		}

		_, err = wallets.Delete(ctx, w["id"].(int64))
		var ce *resource.ConflictError
		if !errors.As(err, &ce) {
			t.Fatalf("Delete() error = %v, want ConflictError", err)
		}
	})
}

func TestStore_RollbackOnError(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	users := resource.NewService(user.Schema, store)
	boom := errors.New("boom")

	err := store.WithinTx(ctx, func(repo resource.Repository) error {
		if _, err := repo.Insert(ctx, user.Schema, resource.Values{
			"username":      "dave",
			"email":         "dave@example.com",
			"password_hash": "x",
			"is_verified":   false,
			"mfa_enabled":   false,
			"role":          user.RoleUser,
		}, time.Now().UTC()); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("WithinTx() error = %v, want boom", err)
	}
	if n := countRows(t, users); n != 0 {
		t.Errorf("users after rollback = %d, want 0", n)
	}
}
