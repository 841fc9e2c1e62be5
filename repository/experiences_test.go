package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"main/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// newTestCollection connects to the local MongoDB and hands back a
// throwaway collection. Tests are skipped when no server is running.
func newTestCollection(t *testing.T) *mongo.Collection {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI("mongodb://localhost:27017"))
	if err != nil {
		t.Skipf("mongodb not available: %v", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		t.Skipf("mongodb not available: %v", err)
	}

	coll := client.Database("dev_notes_test").Collection(fmt.Sprintf("experiences_%d", time.Now().UnixNano()))
	t.Cleanup(func() {
		coll.Drop(context.Background())
		client.Disconnect(context.Background())
	})
	return coll
}

func testExperience(title, date string) *model.Experience {
	return &model.Experience{
		Title:       title,
		Problem:     "something broke",
		Solution:    "turned it off and on again",
		Tags:        []string{"test"},
		Screenshots: []model.Screenshot{},
		Category:    model.CategoryProblem,
		Date:        date,
	}
}

func TestExperiencesRepo(t *testing.T) {
	repo := &ExperiencesRepo{MongoCollection: newTestCollection(t)}
	ctx := context.Background()

	var firstID primitive.ObjectID

	t.Run("InsertAssignsID", func(t *testing.T) {
		exp := testExperience("older", "2024-01-10")
		exp.Notes = "scratch note"
		exp.CodeSnippet = "echo hi"
		id, err := repo.Insert(ctx, exp)
		if err != nil {
			t.Fatal("insert failed", err)
		}
		if id.IsZero() {
			t.Fatal("insert returned a zero id")
		}
		firstID = id
	})

	t.Run("FindAllSortsByDateDescending", func(t *testing.T) {
		if _, err := repo.Insert(ctx, testExperience("newest", "2024-03-01")); err != nil {
			t.Fatal("insert failed", err)
		}
		if _, err := repo.Insert(ctx, testExperience("middle", "2024-02-15")); err != nil {
			t.Fatal("insert failed", err)
		}

		experiences, err := repo.FindAll(ctx)
		if err != nil {
			t.Fatal("find failed", err)
		}
		if len(experiences) != 3 {
			t.Fatalf("got %d experiences, want 3", len(experiences))
		}
		if experiences[0].Title != "newest" || experiences[2].Title != "older" {
			t.Errorf("wrong order: %s, %s, %s",
				experiences[0].Title, experiences[1].Title, experiences[2].Title)
		}
	})

	t.Run("ReplaceIsFullOverwrite", func(t *testing.T) {
		replacement := testExperience("older rewritten", "2024-01-10")
		replacement.Notes = ""
		replacement.CodeSnippet = ""
		if err := repo.Replace(ctx, firstID, replacement); err != nil {
			t.Fatal("replace failed", err)
		}

		got, err := repo.FindByID(ctx, firstID)
		if err != nil {
			t.Fatal("find failed", err)
		}
		if got.Title != "older rewritten" {
			t.Errorf("title = %q after replace", got.Title)
		}
		if got.Notes != "" || got.CodeSnippet != "" {
			t.Error("replace kept fields that were absent from the new body")
		}
	})

	t.Run("ReplaceMissingIDFails", func(t *testing.T) {
		if err := repo.Replace(ctx, primitive.NewObjectID(), testExperience("ghost", "2024-01-01")); err == nil {
			t.Fatal("expected an error replacing a missing document")
		}
	})

	t.Run("CountByCategory", func(t *testing.T) {
		tip := testExperience("a tip", "2024-02-01")
		tip.Category = model.CategoryTip
		if _, err := repo.Insert(ctx, tip); err != nil {
			t.Fatal("insert failed", err)
		}

		count, err := repo.CountByCategory(ctx, model.CategoryProblem)
		if err != nil {
			t.Fatal("count failed", err)
		}
		if count != 3 {
			t.Errorf("problem count = %d, want 3", count)
		}
	})

	t.Run("DeleteMissingIDSucceeds", func(t *testing.T) {
		if err := repo.Delete(ctx, primitive.NewObjectID()); err != nil {
			t.Fatal("deleting a nonexistent id should not error:", err)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := repo.Delete(ctx, firstID); err != nil {
			t.Fatal("delete failed", err)
		}
		count, err := repo.CountAll(ctx)
		if err != nil {
			t.Fatal("count failed", err)
		}
		if count != 3 {
			t.Errorf("count = %d after delete, want 3", count)
		}
	})
}
