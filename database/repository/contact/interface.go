// File: database/repository/contact/interface.go
package contactRepo

import (
	"context"
	"errors"

	"slotify/config"
	"slotify/database"
	"slotify/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when no contact matches the given id or email.
var ErrNotFound = errors.New("contact not found")

type ContactRepository interface {
	Create(ctx context.Context, contact *models.Contact) error
	GetByID(ctx context.Context, id string) (*models.Contact, error)
	GetByEmail(ctx context.Context, email string) (*models.Contact, error)
}

type mongoContactRepo struct {
	coll *mongo.Collection
}

// NewMongoContactRepo constructs a new MongoDB ContactRepository.
func NewMongoContactRepo() ContactRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &mongoContactRepo{
		coll: db.Collection("contacts"),
	}
}
