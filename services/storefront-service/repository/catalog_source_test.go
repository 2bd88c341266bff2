package repository

import (
	"context"
	"testing"

	"github.com/corexathletics/storefront/pkg/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func toDoc(t *testing.T, v any) bson.D {
	raw, err := bson.Marshal(v)
	require.NoError(t, err)
	var d bson.D
	require.NoError(t, bson.Unmarshal(raw, &d))
	return d
}

func TestMongoCatalogSourceLoadsProducts(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("decodes documents in order", func(mt *mtest.T) {
		ref := catalog.ReferenceProducts()
		ns := mt.DB.Name() + "." + mt.Coll.Name()
		first := mtest.CreateCursorResponse(1, ns, mtest.FirstBatch,
			toDoc(t, ProductDocument{Product: ref[0], Position: 0}),
			toDoc(t, ProductDocument{Product: ref[4], Position: 1}),
		)
		last := mtest.CreateCursorResponse(0, ns, mtest.NextBatch)
		mt.AddMockResponses(first, last)

		products, err := NewMongoCatalogSource(mt.Coll).LoadProducts(context.Background())
		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, "xt-001", products[0].ID)
		assert.Equal(t, ref[0].Price, products[0].Price)
		assert.Equal(t, *ref[4].OriginalPrice, *products[1].OriginalPrice)
		assert.Equal(t, ref[0].Sizes, products[0].Sizes)

		_, err = catalog.New(products)
		assert.NoError(t, err)
	})

	mt.Run("propagates find errors", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 13, Message: "unauthorized"}))
		_, err := NewMongoCatalogSource(mt.Coll).LoadProducts(context.Background())
		assert.Error(t, err)
	})
}

func TestMongoCatalogSourceSeed(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("upserts every product", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 2},
			bson.E{Key: "nModified", Value: 2},
		))

		n, err := NewMongoCatalogSource(mt.Coll).Seed(context.Background(), catalog.ReferenceProducts()[:2])
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
	})

	mt.Run("empty input is a no-op", func(mt *mtest.T) {
		n, err := NewMongoCatalogSource(mt.Coll).Seed(context.Background(), nil)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	mt.Run("propagates write errors", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 13, Message: "unauthorized"}))
		_, err := NewMongoCatalogSource(mt.Coll).Seed(context.Background(), catalog.ReferenceProducts()[:1])
		assert.Error(t, err)
	})
}
