package repository

import (
	"context"
	"fmt"
	"log"
	"main/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MigrationStep is one guarded bulk transform. The filter is an
// existence or value predicate that stops matching once the update
// has been applied, which is what makes a re-run safe.
type MigrationStep struct {
	Description string
	Filter      bson.M
	Update      interface{}
}

type StepResult struct {
	Description string
	Modified    int64
}

type MigrationReport struct {
	Steps      []StepResult
	Total      int64
	ByCategory map[model.Category]int64
}

// legacyCriticalities fixes the order the criticality values are
// migrated in; the map in the model package carries the target
// categories but cannot carry an order.
var legacyCriticalities = []model.LegacyCriticality{
	model.CriticalityBlocking,
	model.CriticalityAnnoying,
}

// MigrationSteps builds the ordered step list reconciling the legacy
// document shape (context, criticality, time_wasted, no screenshots)
// into the current one. criticality is matched by value before the
// leftover-value fallback, so step order is load-bearing.
func MigrationSteps() []MigrationStep {
	steps := []MigrationStep{
		{
			Description: "rename context -> tags",
			Filter:      bson.M{"context": bson.M{"$exists": true}},
			Update:      bson.M{"$rename": bson.M{"context": "tags"}},
		},
	}

	for _, crit := range legacyCriticalities {
		category := model.CriticalityToCategory[crit]
		steps = append(steps, MigrationStep{
			Description: fmt.Sprintf("criticality %q -> category %q", crit, category),
			Filter:      bson.M{"criticality": crit},
			Update: mongo.Pipeline{
				bson.D{{Key: "$set", Value: bson.M{"category": category}}},
				bson.D{{Key: "$unset", Value: "criticality"}},
			},
		})
	}

	steps = append(steps,
		MigrationStep{
			Description: fmt.Sprintf("leftover criticality -> category %q", model.CategoryNote),
			Filter:      bson.M{"criticality": bson.M{"$exists": true}},
			Update: mongo.Pipeline{
				bson.D{{Key: "$set", Value: bson.M{"category": model.CategoryNote}}},
				bson.D{{Key: "$unset", Value: "criticality"}},
			},
		},
		MigrationStep{
			Description: "remove time_wasted",
			Filter:      bson.M{"time_wasted": bson.M{"$exists": true}},
			Update:      bson.M{"$unset": bson.M{"time_wasted": ""}},
		},
		MigrationStep{
			Description: "add empty screenshots",
			Filter:      bson.M{"screenshots": bson.M{"$exists": false}},
			Update:      bson.M{"$set": bson.M{"screenshots": bson.A{}}},
		},
	)

	return steps
}

// RunMigration applies every step in order against the collection,
// logging the modified count per step, then gathers the final counts.
// Each step is a self-contained bulk write: a failure mid-run leaves
// earlier steps committed and a re-run picks up the remainder.
func RunMigration(ctx context.Context, coll *mongo.Collection) (*MigrationReport, error) {
	report := &MigrationReport{
		ByCategory: make(map[model.Category]int64),
	}

	for _, step := range MigrationSteps() {
		result, err := coll.UpdateMany(ctx, step.Filter, step.Update)
		if err != nil {
			return nil, fmt.Errorf("migration step %q failed: %w", step.Description, err)
		}
		log.Printf("migration: %s (%d documents)", step.Description, result.ModifiedCount)
		report.Steps = append(report.Steps, StepResult{
			Description: step.Description,
			Modified:    result.ModifiedCount,
		})
	}

	total, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to count documents: %w", err)
	}
	report.Total = total

	for _, category := range model.Categories {
		count, err := coll.CountDocuments(ctx, bson.M{"category": category})
		if err != nil {
			return nil, fmt.Errorf("failed to count %s documents: %w", category, err)
		}
		report.ByCategory[category] = count
	}

	return report, nil
}
