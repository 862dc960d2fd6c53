// internal/app/system/validators/validators.go
//
// MongoDB collection setup: JSON-Schema validators as a last line of defense
// behind the store layer's own checks. The schemas pin the invariants a bug
// must not be able to break silently: status enums, the shape of encrypted
// banking fields, non-blank names. The filestore has no equivalent; its
// guarantees come from the store code alone.
package validators

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/shuzaifak/crowd/internal/domain/models"
)

// EnsureAll creates collections (if missing) and tries to attach JSON-Schema
// validators. On servers that don't support collMod/validators (e.g. some
// DocumentDB versions), we log and skip gracefully.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	// helper: ensure collection exists (with truthful logging) and then validator (if provided)
	ensure := func(coll string, schema bson.M) {
		if _, err := ensureCollection(ctx, db, coll); err != nil {
			problems = append(problems, coll+": "+err.Error())
			return
		}
		if schema == nil {
			return
		}
		if err := setValidator(ctx, db, coll, schema); err != nil {
			// DocumentDB or other deployments may not support collMod/validators.
			if isNoSuchCommand(err) || isNotImplemented(err) {
				zap.L().Info("validator skipped (unsupported)", zap.String("collection", coll))
				return
			}
			problems = append(problems, coll+": "+err.Error())
		}
	}

	ensure("users", usersSchema())
	ensure("events", eventsSchema())
	ensure("orders", ordersSchema())
	ensure("bank_accounts", bankAccountsSchema())
	ensure("payouts", payoutsSchema())
	ensure("apps", appsSchema())
	ensure("user_apps", userAppsSchema())

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* ---------------------- collection helpers & logging ---------------------- */

// collectionExists returns true when <name> already exists.
// Uses ListCollectionNames to avoid "created collection" log when it didn't.
func collectionExists(ctx context.Context, db *mongo.Database, name string) (bool, error) {
	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

// ensureCollection idempotently makes sure <name> exists.
// Returns created==true only if we actually created it.
func ensureCollection(ctx context.Context, db *mongo.Database, name string) (created bool, err error) {
	exists, listErr := collectionExists(ctx, db, name)
	if listErr == nil && exists {
		zap.L().Info("collection exists", zap.String("collection", name))
		return false, nil
	}
	// If listing failed, fall back to create-and-handle-race.
	if err := db.CreateCollection(ctx, name); err != nil {
		// NamespaceExists / already exists is fine (race or prior run).
		if isNamespaceExistsErr(err) {
			zap.L().Info("collection exists", zap.String("collection", name))
			return false, nil
		}
		zap.L().Warn("createCollection failed", zap.String("collection", name), zap.Error(err))
		return false, err
	}
	zap.L().Info("created collection", zap.String("collection", name))
	return true, nil
}

/* ------------------------------ validators ------------------------------- */

func setValidator(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	var out bson.M
	if err := db.RunCommand(ctx, cmd).Decode(&out); err != nil {
		return err
	}
	zap.L().Info("validator ensured", zap.String("collection", name))
	return nil
}

/* ------------------------- error helpers ------------------------- */

func isNamespaceExistsErr(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 48 || strings.Contains(strings.ToLower(ce.Message), "already exists")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "already exists") || strings.Contains(s, "namespace exists")
}

func isNoSuchCommand(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 59 || strings.Contains(strings.ToLower(ce.Message), "no such command")) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "no such command")
}

func isNotImplemented(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 115 ||
		strings.Contains(strings.ToLower(ce.Message), "not implemented") ||
		strings.Contains(strings.ToLower(ce.Message), "not supported")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "not implemented") || strings.Contains(s, "not supported")
}

/* ------------------------- JSON-Schema docs ---------------------- */

func usersSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"email", "full_name", "role", "is_active"},
			"properties": bson.M{
				"email":     bson.M{"bsonType": "string", "minLength": 3},
				"full_name": bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
				"role":      bson.M{"enum": bson.A{models.RoleUser, models.RoleOrganizer, models.RoleAdmin}},
				"is_active": bson.M{"bsonType": "bool"},
			},
		},
	}
}

func eventsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"title", "organizer_id", "status", "is_active"},
			"properties": bson.M{
				"title":        bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
				"organizer_id": bson.M{"bsonType": "string", "minLength": 1},
				"status": bson.M{"enum": bson.A{
					models.EventDraft, models.EventPublished,
					models.EventCancelled, models.EventCompleted,
				}},
				"is_active": bson.M{"bsonType": "bool"},
				"price":     bson.M{"bsonType": bson.A{"double", "int", "long"}, "minimum": 0},
			},
		},
	}
}

func ordersSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"event_id", "buyer_id", "ticket_type_id", "quantity", "status"},
			"properties": bson.M{
				"event_id":       bson.M{"bsonType": "string", "minLength": 1},
				"buyer_id":       bson.M{"bsonType": "string", "minLength": 1},
				"ticket_type_id": bson.M{"bsonType": "string", "minLength": 1},
				"quantity":       bson.M{"bsonType": bson.A{"int", "long"}, "minimum": 1},
				"status": bson.M{"enum": bson.A{
					models.OrderPending, models.OrderCompleted,
					models.OrderCancelled, models.OrderRefunded,
				}},
			},
		},
	}
}

func bankAccountsSchema() bson.M {
	// The sensitive fields hold hex(nonce):hex(ciphertext) after the codec
	// runs, never raw digits. The pattern rejects anything that still looks
	// like plaintext reaching the database.
	encrypted := bson.M{"bsonType": "string", "pattern": "^[0-9a-f]+:[0-9a-f]+$"}

	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"user_id", "country", "bank_name", "account_holder_name", "is_primary", "is_active"},
			"properties": bson.M{
				"user_id":             bson.M{"bsonType": "string", "minLength": 1},
				"country":             bson.M{"bsonType": "string", "minLength": 2, "maxLength": 2},
				"bank_name":           bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
				"account_holder_name": bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
				"account_number":      encrypted,
				"routing_number":      encrypted,
				"sort_code":           encrypted,
				"iban":                encrypted,
				"ifsc_code":           encrypted,
				"bsb":                 encrypted,
				"is_primary":          bson.M{"bsonType": "bool"},
				"is_active":           bson.M{"bsonType": "bool"},
			},
		},
	}
}

func payoutsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"user_id", "bank_account_id", "amount", "status"},
			"properties": bson.M{
				"user_id":         bson.M{"bsonType": "string", "minLength": 1},
				"bank_account_id": bson.M{"bsonType": "string", "minLength": 1},
				"amount":          bson.M{"bsonType": bson.A{"double", "int", "long"}, "minimum": 0},
				"status": bson.M{"enum": bson.A{
					models.PayoutPending, models.PayoutProcessing,
					models.PayoutCompleted, models.PayoutFailed,
					models.PayoutCancelled,
				}},
			},
		},
	}
}

func appsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"name", "category"},
			"properties": bson.M{
				"name":         bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
				"category":     bson.M{"bsonType": "string", "minLength": 1},
				"rating":       bson.M{"bsonType": bson.A{"double", "int", "long"}, "minimum": 0, "maximum": 5},
				"rating_count": bson.M{"bsonType": bson.A{"int", "long"}, "minimum": 0},
			},
		},
	}
}

func userAppsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"user_id", "app_id", "is_active"},
			"properties": bson.M{
				"user_id":   bson.M{"bsonType": "string", "minLength": 1},
				"app_id":    bson.M{"bsonType": "string", "minLength": 1},
				"is_active": bson.M{"bsonType": "bool"},
			},
		},
	}
}
