package main

import (
	"context"
	"time"

	mongoMigration "tablebot/internal/migrations/mongo"
	"tablebot/pkg/config"
)

const JobName = "mongo-migration"

func main() {
	cfg := config.Load(JobName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	if err := mongoMigration.RunMigration(ctx, db, cfg.Log); err != nil {
		cfg.Log.Error("Migration failed", "error", err)
		return
	}
	cfg.Log.Info("Migration completed successfully")
}
