package models

import "time"

// TimeSlot represents a booked appointment slot.
//
// The public booking flow books 30-minute meetings, but internal/admin
// workflows may store arbitrary durations.
type TimeSlot struct {
	ID              string    `bson:"id" json:"id"`
	Time            time.Time `bson:"time" json:"datetime"`                       // Appointment start, stored as given (no tz normalization)
	DurationMinutes int       `bson:"duration_minutes" json:"duration_minutes"`   // Positive; defaults to 30 on creation
	Topic           string    `bson:"topic" json:"topic"`                         // Free text, optional
	ContactID       *string   `bson:"contact_id,omitempty" json:"contact"`        // Nullable; unassigned/internal slots allowed
	IsConfirmed     bool      `bson:"is_confirmed" json:"is_confirmed"`
	IsProcessed     bool      `bson:"is_processed" json:"is_processed"`
	IsActive        bool      `bson:"is_active" json:"is_active"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updated_at"`
}

// EndTime returns the slot end (start + duration). Intervals are half-open,
// so a slot ending exactly when another starts does not overlap it.
func (t *TimeSlot) EndTime() time.Time {
	return t.Time.Add(time.Duration(t.DurationMinutes) * time.Minute)
}

// TimeSlotResponse is the API representation of a TimeSlot, with the
// computed end_time included.
type TimeSlotResponse struct {
	ID              string    `json:"id"`
	Topic           string    `json:"topic"`
	Time            time.Time `json:"datetime"`
	DurationMinutes int       `json:"duration_minutes"`
	EndTime         time.Time `json:"end_time"`
	ContactID       *string   `json:"contact"`
	IsConfirmed     bool      `json:"is_confirmed"`
	IsProcessed     bool      `json:"is_processed"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ToResponse converts a stored TimeSlot into its API representation.
func (t *TimeSlot) ToResponse() *TimeSlotResponse {
	return &TimeSlotResponse{
		ID:              t.ID,
		Topic:           t.Topic,
		Time:            t.Time,
		DurationMinutes: t.DurationMinutes,
		EndTime:         t.EndTime(),
		ContactID:       t.ContactID,
		IsConfirmed:     t.IsConfirmed,
		IsProcessed:     t.IsProcessed,
		IsActive:        t.IsActive,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

// TimeSlotPage is a paginated list of time slots ordered by start time.
type TimeSlotPage struct {
	Count   int64               `json:"count"`
	Results []*TimeSlotResponse `json:"results"`
}
