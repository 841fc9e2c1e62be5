package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	schemaMu   sync.Mutex
	schemaDone bool
)

// experienceJSONSchema mirrors the model at the database level as a
// defense-in-depth check. Validation level is "moderate": existing
// matching documents are checked on write, but the collection itself
// is never created or rewritten by this schema.
func experienceJSONSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": []string{"title", "problem", "solution", "tags", "date", "category"},
			"properties": bson.M{
				"title":        bson.M{"bsonType": "string"},
				"problem":      bson.M{"bsonType": "string"},
				"solution":     bson.M{"bsonType": "string"},
				"tags":         bson.M{"bsonType": "array", "items": bson.M{"bsonType": "string"}},
				"code_snippet": bson.M{"bsonType": "string"},
				"notes":        bson.M{"bsonType": "string"},
				"category":     bson.M{"enum": []string{"problem", "tip", "note"}},
				"date":         bson.M{"bsonType": "string"},
				"screenshots": bson.M{
					"bsonType": "array",
					"items": bson.M{
						"bsonType": "object",
						"required": []string{"name", "data", "mime_type"},
						"properties": bson.M{
							"name":      bson.M{"bsonType": "string"},
							"data":      bson.M{"bsonType": "string"},
							"mime_type": bson.M{"bsonType": "string"},
						},
					},
				},
			},
		},
	}
}

// EnsureSchema attaches the collection-level validator via collMod.
// It only modifies an existing collection, never creates one; on a
// fresh deployment the command fails until the first insert creates
// the collection, and that failure is deliberately non-fatal (the
// usecase layer validates every document anyway). Repeat calls after
// a success are no-ops.
func EnsureSchema(db *mongo.Database, collection string) error {
	schemaMu.Lock()
	defer schemaMu.Unlock()

	if schemaDone {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cmd := bson.D{
		{Key: "collMod", Value: collection},
		{Key: "validator", Value: experienceJSONSchema()},
		{Key: "validationLevel", Value: "moderate"},
	}

	if err := db.RunCommand(ctx, cmd).Err(); err != nil {
		return fmt.Errorf("collMod on %s failed: %w", collection, err)
	}

	schemaDone = true
	return nil
}
