package repository

import (
	"context"
	"fmt"
	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ExperiencesRepo struct {
	MongoCollection *mongo.Collection
}

func GetExperiencesRepo(client *mongo.Client) *ExperiencesRepo {
	db := utils.GetEnvAsString("MONGO_DB", "dev_notes")
	coll := utils.GetEnvAsString("EXPERIENCES_COLLECTION", "experiences")
	return &ExperiencesRepo{
		MongoCollection: client.Database(db).Collection(coll),
	}
}

// FindAll retrieves every experience, most recent date first.
func (r *ExperiencesRepo) FindAll(ctx context.Context) ([]*model.Experience, error) {
	var experiences []*model.Experience
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := r.MongoCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list experiences: %w", err)
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &experiences); err != nil {
		return nil, fmt.Errorf("failed to decode experiences: %w", err)
	}
	return experiences, nil
}

// FindByID retrieves a single experience.
func (r *ExperiencesRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Experience, error) {
	var exp model.Experience
	err := r.MongoCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&exp)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("experience %s not found", id.Hex())
		}
		return nil, fmt.Errorf("failed to load experience: %w", err)
	}
	return &exp, nil
}

// Insert stores a new experience and returns the assigned id.
func (r *ExperiencesRepo) Insert(ctx context.Context, exp *model.Experience) (primitive.ObjectID, error) {
	result, err := r.MongoCollection.InsertOne(ctx, exp)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to insert experience: %w", err)
	}

	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("unexpected inserted id type %T", result.InsertedID)
	}
	return id, nil
}

// Replace overwrites the whole document at id. Fields absent from exp
// are gone afterwards; an update is a destructive full replacement.
func (r *ExperiencesRepo) Replace(ctx context.Context, id primitive.ObjectID, exp *model.Experience) error {
	exp.ID = id
	result, err := r.MongoCollection.ReplaceOne(ctx, bson.M{"_id": id}, exp)
	if err != nil {
		return fmt.Errorf("failed to replace experience: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("experience %s not found", id.Hex())
	}
	return nil
}

// Delete removes the document at id. Deleting an id that does not
// exist is not an error.
func (r *ExperiencesRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := r.MongoCollection.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("failed to delete experience: %w", err)
	}
	return nil
}

// CountAll counts every experience document.
func (r *ExperiencesRepo) CountAll(ctx context.Context) (int64, error) {
	count, err := r.MongoCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count experiences: %w", err)
	}
	return count, nil
}

// CountByCategory counts experiences carrying the given category.
func (r *ExperiencesRepo) CountByCategory(ctx context.Context, category model.Category) (int64, error) {
	count, err := r.MongoCollection.CountDocuments(ctx, bson.M{"category": category})
	if err != nil {
		return 0, fmt.Errorf("failed to count %s experiences: %w", category, err)
	}
	return count, nil
}
