package validators_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/shuzaifak/crowd/internal/app/system/validators"
	"github.com/shuzaifak/crowd/internal/testutil"
)

func TestEnsureAll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// EnsureAll should succeed on a clean database
	err := validators.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// First call
	err := validators.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("First EnsureAll failed: %v", err)
	}

	// Second call should also succeed (idempotent)
	err = validators.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("Second EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_CreatesCollections(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := validators.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	// Verify collections exist
	expectedCollections := []string{
		"users",
		"events",
		"orders",
		"bank_accounts",
		"payouts",
		"apps",
		"user_apps",
	}

	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		t.Fatalf("ListCollectionNames failed: %v", err)
	}

	collMap := make(map[string]bool)
	for _, name := range names {
		collMap[name] = true
	}

	for _, expected := range expectedCollections {
		if !collMap[expected] {
			t.Errorf("expected collection %q to exist", expected)
		}
	}
}

func TestUsersValidator_RequiredFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := validators.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	// Try to insert user without required fields - should fail
	_, err = db.Collection("users").InsertOne(ctx, bson.M{
		"email": "orphan@example.com",
	})
	if err == nil {
		t.Error("expected validation error when inserting user without required fields")
	}
}

func TestUsersValidator_ValidUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := validators.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	// Insert valid user - should succeed
	_, err = db.Collection("users").InsertOne(ctx, bson.M{
		"_id":       uuid.NewString(),
		"email":     "valid@example.com",
		"full_name": "Valid User",
		"role":      "user",
		"is_active": true,
	})
	if err != nil {
		t.Errorf("Insert valid user failed: %v", err)
	}
}

func TestUsersValidator_InvalidRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := validators.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	// Try to insert user with invalid role - should fail
	_, err = db.Collection("users").InsertOne(ctx, bson.M{
		"_id":       uuid.NewString(),
		"email":     "rogue@example.com",
		"full_name": "Rogue User",
		"role":      "superuser",
		"is_active": true,
	})
	if err == nil {
		t.Error("expected validation error when inserting user with invalid role")
	}
}

func TestUsersValidator_AllValidRoles(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := validators.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	validRoles := []string{"user", "organizer", "admin"}

	for _, role := range validRoles {
		_, err = db.Collection("users").InsertOne(ctx, bson.M{
			"_id":       uuid.NewString(),
			"email":     role + "@example.com",
			"full_name": "Test " + role,
			"role":      role,
			"is_active": true,
		})
		if err != nil {
			t.Errorf("Insert user with role %q failed: %v", role, err)
		}
	}
}

func TestEventsValidator_RequiredFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := validators.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	// Try to insert event without required fields - should fail
	_, err = db.Collection("events").InsertOne(ctx, bson.M{
		"description": "An event with no title",
	})
	if err == nil {
		t.Error("expected validation error when inserting event without required fields")
	}
}

func TestEventsValidator_ValidEvent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := validators.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	// Insert valid event - should succeed
	_, err = db.Collection("events").InsertOne(ctx, bson.M{
		"_id":          uuid.NewString(),
		"title":        "Summer Festival",
		"organizer_id": uuid.NewString(),
		"status":       "draft",
		"is_active":    true,
		"price":        49.99,
	})
	if err != nil {
		t.Errorf("Insert valid event failed: %v", err)
	}
}

func TestEventsValidator_InvalidStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := validators.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	// Try to insert event with invalid status - should fail
	_, err = db.Collection("events").InsertOne(ctx, bson.M{
		"_id":          uuid.NewString(),
		"title":        "Limbo Event",
		"organizer_id": uuid.NewString(),
		"status":       "archived",
		"is_active":    true,
	})
	if err == nil {
		t.Error("expected validation error when inserting event with invalid status")
	}
}

func TestOrdersValidator_RequiredFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := validators.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	// Try to insert order without required fields - should fail
	_, err = db.Collection("orders").InsertOne(ctx, bson.M{
		"currency": "USD",
	})
	if err == nil {
		t.Error("expected validation error when inserting order without required fields")
	}
}

func TestOrdersValidator_ValidOrder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := validators.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	// Insert valid order - should succeed
	_, err = db.Collection("orders").InsertOne(ctx, bson.M{
		"_id":            uuid.NewString(),
		"event_id":       uuid.NewString(),
		"buyer_id":       uuid.NewString(),
		"ticket_type_id": uuid.NewString(),
		"quantity":       2,
		"status":         "pending",
		"created_at":     time.Now(),
	})
	if err != nil {
		t.Errorf("Insert valid order failed: %v", err)
	}
}

func TestOrdersValidator_ZeroQuantity(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := validators.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	// Try to insert order with zero quantity - should fail
	_, err = db.Collection("orders").InsertOne(ctx, bson.M{
		"_id":            uuid.NewString(),
		"event_id":       uuid.NewString(),
		"buyer_id":       uuid.NewString(),
		"ticket_type_id": uuid.NewString(),
		"quantity":       0,
		"status":         "pending",
	})
	if err == nil {
		t.Error("expected validation error when inserting order with zero quantity")
	}
}

func TestBankAccountsValidator_RejectsPlaintext(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := validators.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	// A raw account number has no nonce separator, so the encrypted-shape
	// pattern must reject it.
	_, err = db.Collection("bank_accounts").InsertOne(ctx, bson.M{
		"_id":                 uuid.NewString(),
		"user_id":             uuid.NewString(),
		"country":             "US",
		"bank_name":           "Chase",
		"account_holder_name": "Jane Doe",
		"account_number":      "123456789",
		"is_primary":          true,
		"is_active":           true,
	})
	if err == nil {
		t.Error("expected validation error when inserting bank account with plaintext account_number")
	}
}

func TestBankAccountsValidator_AcceptsEncryptedShape(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := validators.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	// hex(nonce):hex(ciphertext) is what the codec writes
	_, err = db.Collection("bank_accounts").InsertOne(ctx, bson.M{
		"_id":                 uuid.NewString(),
		"user_id":             uuid.NewString(),
		"country":             "US",
		"bank_name":           "Chase",
		"account_holder_name": "Jane Doe",
		"account_number":      "0a1b2c3d4e5f60718293a4b5:deadbeef0123456789abcdef",
		"routing_number":      "0a1b2c3d4e5f60718293a4b5:cafef00d0123456789abcdef",
		"is_primary":          true,
		"is_active":           true,
	})
	if err != nil {
		t.Errorf("Insert bank account with encrypted fields failed: %v", err)
	}
}

func TestPayoutsValidator_InvalidStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := validators.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	// Try to insert payout with invalid status - should fail
	_, err = db.Collection("payouts").InsertOne(ctx, bson.M{
		"_id":             uuid.NewString(),
		"user_id":         uuid.NewString(),
		"bank_account_id": uuid.NewString(),
		"amount":          100.0,
		"status":          "settled",
	})
	if err == nil {
		t.Error("expected validation error when inserting payout with invalid status")
	}
}

func TestPayoutsValidator_ValidPayout(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := validators.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	// Insert valid payout - should succeed
	_, err = db.Collection("payouts").InsertOne(ctx, bson.M{
		"_id":             uuid.NewString(),
		"user_id":         uuid.NewString(),
		"bank_account_id": uuid.NewString(),
		"amount":          100.0,
		"status":          "pending",
		"created_at":      time.Now(),
	})
	if err != nil {
		t.Errorf("Insert valid payout failed: %v", err)
	}
}

func TestUserAppsValidator_RequiredFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := validators.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	// Try to insert installation without required fields - should fail
	_, err = db.Collection("user_apps").InsertOne(ctx, bson.M{
		"installed_at": time.Now(),
	})
	if err == nil {
		t.Error("expected validation error when inserting user_app without required fields")
	}
}

func TestUserAppsValidator_ValidInstallation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := validators.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	// Insert valid installation - should succeed
	_, err = db.Collection("user_apps").InsertOne(ctx, bson.M{
		"_id":          uuid.NewString(),
		"user_id":      uuid.NewString(),
		"app_id":       uuid.NewString(),
		"is_active":    true,
		"installed_at": time.Now(),
	})
	if err != nil {
		t.Errorf("Insert valid user_app failed: %v", err)
	}
}
