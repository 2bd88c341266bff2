package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/corexathletics/storefront/pkg/catalog"
	"github.com/corexathletics/storefront/services/common/logger"
	"github.com/corexathletics/storefront/services/storefront-service/database"
	"github.com/corexathletics/storefront/services/storefront-service/repository"
	"go.uber.org/zap"
)

func main() {
	var mongoURI, dbName, coll, file string
	var dryRun bool
	flag.StringVar(&mongoURI, "mongo", os.Getenv("MONGO_URL"), "MongoDB URI")
	flag.StringVar(&dbName, "db", envOr("MONGO_DB", "corex"), "MongoDB database name")
	flag.StringVar(&coll, "collection", "products", "products collection")
	flag.StringVar(&file, "file", "", "JSON array of products; the built-in reference catalog when empty")
	flag.BoolVar(&dryRun, "dry-run", false, "validate the products without writing")
	flag.Parse()

	log, err := logger.New(envOr("ENV", "development"), "seed-catalog", nil)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	products, err := loadProducts(file)
	if err != nil {
		log.Fatal("Failed to load products", zap.String("file", file), zap.Error(err))
	}
	// catalog.New enforces unique IDs and well formed variants.
	if _, err := catalog.New(products); err != nil {
		log.Fatal("Invalid catalog", zap.Error(err))
	}
	if dryRun {
		log.Info("Catalog is valid", zap.Int("products", len(products)))
		return
	}
	if mongoURI == "" {
		log.Fatal("MONGO_URL must be set or provided via -mongo")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client, db, err := database.ConnectMongo(ctx, mongoURI, dbName)
	if err != nil {
		log.Fatal("MongoDB connection failed", zap.Error(err))
	}
	defer database.DisconnectMongo(client)

	n, err := repository.NewMongoCatalogSource(db.Collection(coll)).Seed(ctx, products)
	if err != nil {
		log.Fatal("Seeding failed", zap.Error(err))
	}
	log.Info("Seeding complete",
		zap.String("db", dbName), zap.String("collection", coll), zap.Int64("written", n))
}

func loadProducts(path string) ([]catalog.Product, error) {
	if path == "" {
		return catalog.ReferenceProducts(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var products []catalog.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return products, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
