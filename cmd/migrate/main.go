package main

import (
	"context"
	"fmt"
	"log"

	"main/config"
	"main/model"
	"main/repository"
	"main/utils"

	"github.com/joho/godotenv"
)

// Offline one-shot migration of legacy-shaped experience documents.
// Safe to re-run: every step only matches documents it has not
// transformed yet. Halts on the first database error; the collection
// is left in a state a re-run completes.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	dbCfg := config.LoadDatabaseConfig()
	if err := utils.InitMongoClient(dbCfg.URI, dbCfg.MaxPoolSize, dbCfg.MinPoolSize, dbCfg.MaxConnIdleTime); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer utils.CloseMongoClient()

	coll := utils.MongoClient.Database(dbCfg.DatabaseName).Collection(dbCfg.CollectionName)

	fmt.Println("Migrating experiences...")
	report, err := repository.RunMigration(context.Background(), coll)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	fmt.Println()
	for _, step := range report.Steps {
		fmt.Printf("  %-40s %d documents\n", step.Description, step.Modified)
	}
	fmt.Printf("\nTotal documents: %d\n", report.Total)
	for _, category := range model.Categories {
		fmt.Printf("  - %s: %d\n", category, report.ByCategory[category])
	}
	fmt.Println("\nMigration complete.")
}
