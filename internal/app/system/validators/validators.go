// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// EnsureAll creates collections (if missing) and tries to attach JSON-Schema
// validators. On servers that don't support collMod/validators (e.g. some
// DocumentDB versions), we log and skip gracefully.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	ensure := func(coll string, schema bson.M) {
		if err := ensureCollection(ctx, db, coll); err != nil {
			problems = append(problems, coll+": "+err.Error())
			return
		}
		if schema == nil {
			return
		}
		if err := setValidator(ctx, db, coll, schema); err != nil {
			if isUnsupported(err) {
				zap.L().Info("validator skipped (unsupported)", zap.String("collection", coll))
				return
			}
			problems = append(problems, coll+": "+err.Error())
		}
	}

	// Collections the CMS uses. Only the two structured resources carry
	// schemas; the singleton and freeform collections stay schemaless.
	ensure("properties", propertiesSchema())
	ensure("property_types", propertyTypesSchema())
	ensure("users", usersSchema())
	ensure("settings", nil)
	ensure("histories", nil)
	ensure("missions", nil)
	ensure("visions", nil)
	ensure("offices", nil)
	ensure("infors", nil)
	ensure("social", nil)
	ensure("contact", nil)
	ensure("mainoffice_map", nil)
	ensure("contact_messages", nil)
	ensure("news", nil)

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* ---------------------- collection helpers & logging ---------------------- */

func collectionExists(ctx context.Context, db *mongo.Database, name string) (bool, error) {
	names, err := db.ListCollectionNames(ctx, bson.M{"name": name})
	if err != nil {
		return false, err
	}
	return len(names) > 0, nil
}

// ensureCollection idempotently makes sure <name> exists.
func ensureCollection(ctx context.Context, db *mongo.Database, name string) error {
	exists, err := collectionExists(ctx, db, name)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	if err := db.CreateCollection(ctx, name); err != nil {
		// Races with a concurrent creator are fine.
		var cmdErr mongo.CommandError
		if errors.As(err, &cmdErr) && cmdErr.Code == 48 { // NamespaceExists
			return nil
		}
		return err
	}
	zap.L().Info("created collection", zap.String("collection", name))
	return nil
}

func setValidator(ctx context.Context, db *mongo.Database, coll string, schema bson.M) error {
	cmd := bson.D{
		{Key: "collMod", Value: coll},
		{Key: "validator", Value: bson.M{"$jsonSchema": schema}},
		{Key: "validationLevel", Value: "moderate"},
	}
	return db.RunCommand(ctx, cmd).Err()
}

func isUnsupported(err error) bool {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		// 59 CommandNotFound, 115 CommandNotSupported
		if cmdErr.Code == 59 || cmdErr.Code == 115 {
			return true
		}
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "no such command") || strings.Contains(msg, "not implemented")
}

/* ------------------------------- schemas ---------------------------------- */

func localeBlock(required ...string) bson.M {
	return bson.M{
		"bsonType": "object",
		"required": required,
	}
}

func propertiesSchema() bson.M {
	return bson.M{
		"bsonType": "object",
		"required": bson.A{"vi"},
		"properties": bson.M{
			"vi":     localeBlock("code"),
			"en":     localeBlock(),
			"ko":     localeBlock(),
			"status": bson.M{"enum": bson.A{"active", "hidden"}},
			"images": bson.M{"bsonType": "array"},
		},
	}
}

func propertyTypesSchema() bson.M {
	return bson.M{
		"bsonType": "object",
		"required": bson.A{"vi"},
		"properties": bson.M{
			"vi": localeBlock("name"),
			"en": localeBlock(),
			"ko": localeBlock(),
		},
	}
}

func usersSchema() bson.M {
	return bson.M{
		"bsonType": "object",
		"required": bson.A{"email", "email_ci"},
		"properties": bson.M{
			"email":    bson.M{"bsonType": "string"},
			"email_ci": bson.M{"bsonType": "string"},
			"role":     bson.M{"bsonType": "string"},
			"status":   bson.M{"bsonType": "string"},
		},
	}
}
