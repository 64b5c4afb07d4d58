// File: database/repository/timeslot/interface.go
package timeslotRepo

import (
	"context"
	"errors"
	"time"

	"slotify/config"
	"slotify/database"
	"slotify/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when no time slot matches the given id.
var ErrNotFound = errors.New("time slot not found")

// ListFilter narrows and pages the time-slot listing. A nil IsActive means
// no active-status filtering.
type ListFilter struct {
	IsActive *bool
	Offset   int64
	Limit    int64
}

type TimeSlotRepository interface {
	Create(ctx context.Context, slot *models.TimeSlot) error
	GetByID(ctx context.Context, id string) (*models.TimeSlot, error)
	List(ctx context.Context, filter ListFilter) ([]models.TimeSlot, int64, error)
	ListByRange(ctx context.Context, from, to time.Time) ([]models.TimeSlot, error)
	FindStartingBefore(ctx context.Context, cutoff time.Time, excludeID string) ([]models.TimeSlot, error)
	Update(ctx context.Context, slot *models.TimeSlot) error
	DeleteByID(ctx context.Context, id string) error
}

type mongoTimeSlotRepo struct {
	coll *mongo.Collection
}

// NewMongoTimeSlotRepo constructs a new MongoDB TimeSlotRepository.
func NewMongoTimeSlotRepo() TimeSlotRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &mongoTimeSlotRepo{
		coll: db.Collection("timeslots"),
	}
}
