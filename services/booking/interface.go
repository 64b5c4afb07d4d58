package booking

import (
	"context"
	"time"

	contactRepo "slotify/database/repository/contact"
	timeslotRepo "slotify/database/repository/timeslot"
	"slotify/models"
	"slotify/services/events"

	"go.uber.org/zap"
)

// CreateInput is the internal-path creation/update request, resolved from the
// request body before validation. Exactly one of DurationMinutes and EndTime
// is expected; when both are absent the duration defaults to 30 minutes.
type CreateInput struct {
	Topic           string
	Time            time.Time
	DurationMinutes *int
	EndTime         *time.Time
	ContactID       *string
	IsConfirmed     bool
	IsProcessed     bool
	IsActive        *bool
}

// ContactInput carries inline contact details on the public booking path.
type ContactInput struct {
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
	Timezone    string
}

// PublicBookingInput is the combined contact+timeslot creation request.
type PublicBookingInput struct {
	Contact         ContactInput
	Topic           string
	Time            time.Time
	DurationMinutes *int
}

// PublicBookingResult is returned by the public booking path.
type PublicBookingResult struct {
	Contact  *models.ContactResponse  `json:"contact"`
	TimeSlot *models.TimeSlotResponse `json:"timeslot"`
}

// ListQuery pages and filters the appointment listing.
type ListQuery struct {
	IsActive *bool
	Page     int
	PageSize int
}

// TimeSlotService is the application-facing API for appointments.
type TimeSlotService interface {
	Create(ctx context.Context, in CreateInput) (*models.TimeSlotResponse, error)
	CreateWithContact(ctx context.Context, in PublicBookingInput) (*PublicBookingResult, error)
	GetByID(ctx context.Context, id string) (*models.TimeSlotResponse, error)
	List(ctx context.Context, q ListQuery) (*models.TimeSlotPage, error)
	ListByDay(ctx context.Context, day time.Time) ([]*models.TimeSlotResponse, error)
	Update(ctx context.Context, id string, in CreateInput) (*models.TimeSlotResponse, error)
	Delete(ctx context.Context, id string) error
}

// DefaultTimeSlotService is the production implementation.
type DefaultTimeSlotService struct {
	Repo     timeslotRepo.TimeSlotRepository
	Contacts contactRepo.ContactRepository
	Policy   *BookingPolicy
	Events   events.AppointmentEventService
	Logger   *zap.Logger

	// Pagination bounds, injected from config at construction.
	DefaultPageSize int
	MaxPageSize     int
}
