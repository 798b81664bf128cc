// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

/*
EnsureAll is called at startup (and from testutil so tests see production
indexes). Each ensure* function is idempotent: CreateMany is a no-op when an
identical index already exists. Errors are aggregated so every problem is
visible and startup can fail fast.

The unique indexes are the real enforcement of the "one document per code /
name / email" rules; the friendly pre-checks in the handlers exist only to
produce a readable 400 instead of a duplicate-key error in the common case.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureProperties(ctx, db); err != nil {
		problems = append(problems, "properties: "+err.Error())
	}
	if err := ensurePropertyTypes(ctx, db); err != nil {
		problems = append(problems, "property_types: "+err.Error())
	}
	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureContactMessages(ctx, db); err != nil {
		problems = append(problems, "contact_messages: "+err.Error())
	}
	if err := ensureNews(ctx, db); err != nil {
		problems = append(problems, "news: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensureProperties(ctx context.Context, db *mongo.Database) error {
	models := []mongo.IndexModel{
		{
			// vi.code is the business key; partial filter so legacy documents
			// without a vi block don't collide on a null key.
			Keys: bson.D{{Key: "vi.code", Value: 1}},
			Options: options.Index().
				SetName("uniq_vi_code").
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"vi.code": bson.M{"$exists": true}}),
		},
		{
			Keys:    bson.D{{Key: "propertyType", Value: 1}},
			Options: options.Index().SetName("idx_property_type"),
		},
		{
			Keys:    bson.D{{Key: "businessType", Value: 1}},
			Options: options.Index().SetName("idx_business_type"),
		},
		{
			Keys:    bson.D{{Key: "vi.price", Value: 1}},
			Options: options.Index().SetName("idx_vi_price"),
		},
	}
	_, err := db.Collection("properties").Indexes().CreateMany(ctx, models)
	return err
}

func ensurePropertyTypes(ctx context.Context, db *mongo.Database) error {
	models := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "vi.name", Value: 1}},
			Options: options.Index().
				SetName("uniq_vi_name").
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"vi.name": bson.M{"$exists": true}}),
		},
	}
	_, err := db.Collection("property_types").Indexes().CreateMany(ctx, models)
	return err
}

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	models := []mongo.IndexModel{
		{
			// email_ci is the case-folded email; uniqueness lives there so
			// Admin@x.vn and admin@x.vn cannot both register.
			Keys: bson.D{{Key: "email_ci", Value: 1}},
			Options: options.Index().
				SetName("uniq_email_ci").
				SetUnique(true),
		},
	}
	_, err := db.Collection("users").Indexes().CreateMany(ctx, models)
	return err
}

func ensureContactMessages(ctx context.Context, db *mongo.Database) error {
	models := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("idx_created_desc"),
		},
	}
	_, err := db.Collection("contact_messages").Indexes().CreateMany(ctx, models)
	return err
}

func ensureNews(ctx context.Context, db *mongo.Database) error {
	models := []mongo.IndexModel{
		{
			// title range scans back the prefix search on GET /api/news?title=
			Keys:    bson.D{{Key: "title", Value: 1}},
			Options: options.Index().SetName("idx_title"),
		},
		{
			Keys:    bson.D{{Key: "date", Value: -1}},
			Options: options.Index().SetName("idx_date_desc"),
		},
	}
	_, err := db.Collection("news").Indexes().CreateMany(ctx, models)
	return err
}
