// Package seeders loads starter data for local development.
package seeders

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/spokeworks/gearhub/app/models"
	"github.com/spokeworks/gearhub/pkg/store"
)

var starterParts = []models.Part{
	{Name: "Shimano 105 Rear Derailleur", Description: "11-speed road rear derailleur", Price: 54.99, MinOrderQty: 5, AvailableQty: 120},
	{Name: "Continental GP5000 Tire 700x25c", Description: "Clincher road tire", Price: 64.90, MinOrderQty: 10, AvailableQty: 300},
	{Name: "SRAM PC-1130 Chain", Description: "11-speed chain with PowerLock", Price: 24.00, MinOrderQty: 10, AvailableQty: 500},
	{Name: "Brooks B17 Saddle", Description: "Leather touring saddle", Price: 135.00, MinOrderQty: 2, AvailableQty: 40},
	{Name: "Mavic Open Pro Rim 32h", Description: "Classic box-section road rim", Price: 79.50, MinOrderQty: 4, AvailableQty: 80},
	{Name: "KMC Missing Link 11s", Description: "Reusable chain connector, pair", Price: 6.50, MinOrderQty: 20, AvailableQty: 1000},
}

// SeedParts inserts the starter catalog when the parts collection is empty.
// Returns the number of documents inserted; zero means the collection
// already had data and was left alone.
func SeedParts(ctx context.Context, st *store.Store) (int, error) {
	col := st.Parts()

	count, err := col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("seeders: count parts: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	docs := make([]interface{}, len(starterParts))
	for i := range starterParts {
		docs[i] = starterParts[i]
	}

	res, err := col.InsertMany(ctx, docs)
	if err != nil {
		return 0, fmt.Errorf("seeders: insert parts: %w", err)
	}
	return len(res.InsertedIDs), nil
}
