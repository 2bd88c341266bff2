package repository

import (
	"context"
	"fmt"

	"github.com/corexathletics/storefront/pkg/catalog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CatalogSource supplies the products the catalog snapshot is built from.
type CatalogSource interface {
	LoadProducts(ctx context.Context) ([]catalog.Product, error)
}

// StaticCatalogSource serves the built-in reference collection.
type StaticCatalogSource struct{}

func (StaticCatalogSource) LoadProducts(context.Context) ([]catalog.Product, error) {
	return catalog.ReferenceProducts(), nil
}

// ProductDocument is the MongoDB shape of a product. Position preserves the
// merchandised display order.
type ProductDocument struct {
	catalog.Product `bson:",inline"`
	Position        int `bson:"position"`
}

type MongoCatalogSource struct {
	coll *mongo.Collection
}

func NewMongoCatalogSource(coll *mongo.Collection) *MongoCatalogSource {
	return &MongoCatalogSource{coll: coll}
}

func (s *MongoCatalogSource) LoadProducts(ctx context.Context) ([]catalog.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	defer cur.Close(ctx)

	var docs []ProductDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}

	products := make([]catalog.Product, len(docs))
	for i, d := range docs {
		products[i] = d.Product
	}
	return products, nil
}

// Seed upserts products by ID, recording their slice order as position. It
// returns how many documents were matched or inserted.
func (s *MongoCatalogSource) Seed(ctx context.Context, products []catalog.Product) (int64, error) {
	if len(products) == 0 {
		return 0, nil
	}
	writes := make([]mongo.WriteModel, len(products))
	for i, p := range products {
		writes[i] = mongo.NewReplaceOneModel().
			SetFilter(bson.D{{Key: "_id", Value: p.ID}}).
			SetReplacement(ProductDocument{Product: p, Position: i}).
			SetUpsert(true)
	}
	res, err := s.coll.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(true))
	if err != nil {
		return 0, fmt.Errorf("seed products: %w", err)
	}
	return res.MatchedCount + res.UpsertedCount, nil
}
