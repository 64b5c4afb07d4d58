// File: database/repository/timeslot/indexes.go
package timeslotRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the timeslots collection.
func EnsureIndexes(repo TimeSlotRepository) error {
	r, ok := repo.(*mongoTimeSlotRepo)
	if !ok {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		// Unique index on TimeSlot ID
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Start-time index serving the ordered listing, the by-day range
		// query and the overlap candidate scan.
		{
			Keys:    bson.D{{Key: "time", Value: 1}},
			Options: options.Index().SetName("time_idx"),
		},
		{
			Keys:    bson.D{{Key: "is_active", Value: 1}, {Key: "time", Value: 1}},
			Options: options.Index().SetName("active_time_idx"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create timeslot indexes: %w", err)
	}
	return nil
}
