package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	contactRepo "slotify/database/repository/contact"
	timeslotRepo "slotify/database/repository/timeslot"
	"slotify/models"

	"go.uber.org/zap"
)

// resolveDuration turns the request's duration/end-time pair into a duration
// pointer for the policy facade. An explicit end time must land a positive
// whole number of minutes after the start.
func resolveDuration(start time.Time, durationMinutes *int, endTime *time.Time) (*int, error) {
	if durationMinutes != nil || endTime == nil {
		return durationMinutes, nil
	}
	diff := endTime.Sub(start)
	if diff <= 0 || diff%time.Minute != 0 {
		return nil, NewValidationError(CodeInvalidRange, "end_time must be a positive whole number of minutes after datetime.")
	}
	d := int(diff / time.Minute)
	return &d, nil
}

// resolveContactRef verifies a contact reference on the internal path.
// A nil or empty reference means an unassigned slot.
func (s *DefaultTimeSlotService) resolveContactRef(ctx context.Context, contactID *string) (*models.Contact, error) {
	if contactID == nil || *contactID == "" {
		return nil, nil
	}
	contact, err := s.Contacts.GetByID(ctx, *contactID)
	if errors.Is(err, contactRepo.ErrNotFound) {
		return nil, NewValidationError(CodeUnknownContact, "Contact not found.")
	}
	if err != nil {
		return nil, err
	}
	return contact, nil
}

func (s *DefaultTimeSlotService) Create(ctx context.Context, in CreateInput) (*models.TimeSlotResponse, error) {
	duration, err := resolveDuration(in.Time, in.DurationMinutes, in.EndTime)
	if err != nil {
		return nil, err
	}

	normalized, err := s.Policy.ValidateBooking(ctx, in.Time, duration, false, "")
	if err != nil {
		return nil, err
	}

	contact, err := s.resolveContactRef(ctx, in.ContactID)
	if err != nil {
		return nil, err
	}

	slot := s.buildSlot(in, normalized)
	if err := s.Repo.Create(ctx, slot); err != nil {
		return nil, err
	}

	// Post-persist, best-effort. A publish failure never unwinds the booking.
	s.Events.PublishAppointmentCreated(ctx, slot, contact)

	return slot.ToResponse(), nil
}

func (s *DefaultTimeSlotService) CreateWithContact(ctx context.Context, in PublicBookingInput) (*PublicBookingResult, error) {
	contact, err := s.getOrCreateContact(ctx, in.Contact)
	if err != nil {
		return nil, err
	}

	duration := in.DurationMinutes
	normalized, err := s.Policy.ValidateBooking(ctx, in.Time, duration, true, "")
	if err != nil {
		return nil, err
	}

	active := true
	slot := s.buildSlot(CreateInput{
		Topic:     in.Topic,
		Time:      in.Time,
		ContactID: &contact.ID,
		IsActive:  &active,
	}, normalized)
	if err := s.Repo.Create(ctx, slot); err != nil {
		return nil, err
	}

	s.Events.PublishAppointmentCreated(ctx, slot, contact)

	return &PublicBookingResult{
		Contact:  contact.ToResponse(),
		TimeSlot: slot.ToResponse(),
	}, nil
}

// getOrCreateContact resolves a contact by email, creating one when missing.
// Email uniqueness lives here rather than in a storage constraint.
func (s *DefaultTimeSlotService) getOrCreateContact(ctx context.Context, in ContactInput) (*models.Contact, error) {
	email := strings.TrimSpace(in.Email)

	existing, err := s.Contacts.GetByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, contactRepo.ErrNotFound) {
		return nil, fmt.Errorf("failed to create/get contact: %w", err)
	}

	contact := &models.Contact{
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Email:       email,
		PhoneNumber: in.PhoneNumber,
		Timezone:    in.Timezone,
	}
	if err := s.Contacts.Create(ctx, contact); err != nil {
		return nil, fmt.Errorf("failed to create/get contact: %w", err)
	}
	return contact, nil
}

func (s *DefaultTimeSlotService) buildSlot(in CreateInput, durationMinutes int) *models.TimeSlot {
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	var contactID *string
	if in.ContactID != nil && *in.ContactID != "" {
		contactID = in.ContactID
	}
	return &models.TimeSlot{
		Topic:           in.Topic,
		Time:            in.Time,
		DurationMinutes: durationMinutes,
		ContactID:       contactID,
		IsConfirmed:     in.IsConfirmed,
		IsProcessed:     in.IsProcessed,
		IsActive:        active,
	}
}

func (s *DefaultTimeSlotService) GetByID(ctx context.Context, id string) (*models.TimeSlotResponse, error) {
	slot, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return slot.ToResponse(), nil
}

func (s *DefaultTimeSlotService) List(ctx context.Context, q ListQuery) (*models.TimeSlotPage, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	size := q.PageSize
	defaultSize := s.DefaultPageSize
	if defaultSize <= 0 {
		defaultSize = 10
	}
	maxSize := s.MaxPageSize
	if maxSize <= 0 {
		maxSize = 100
	}
	if size <= 0 {
		size = defaultSize
	}
	if size > maxSize {
		size = maxSize
	}

	slots, count, err := s.Repo.List(ctx, timeslotRepo.ListFilter{
		IsActive: q.IsActive,
		Offset:   int64(page-1) * int64(size),
		Limit:    int64(size),
	})
	if err != nil {
		return nil, err
	}

	results := make([]*models.TimeSlotResponse, 0, len(slots))
	for i := range slots {
		results = append(results, slots[i].ToResponse())
	}
	return &models.TimeSlotPage{Count: count, Results: results}, nil
}

func (s *DefaultTimeSlotService) ListByDay(ctx context.Context, day time.Time) ([]*models.TimeSlotResponse, error) {
	from := day
	to := day.AddDate(0, 0, 1)

	slots, err := s.Repo.ListByRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	results := make([]*models.TimeSlotResponse, 0, len(slots))
	for i := range slots {
		results = append(results, slots[i].ToResponse())
	}
	return results, nil
}

// Update is a full replace. The proposed interval is re-validated with the
// record's own id excluded from the overlap scan, so moving a slot within an
// otherwise-empty calendar always succeeds.
func (s *DefaultTimeSlotService) Update(ctx context.Context, id string, in CreateInput) (*models.TimeSlotResponse, error) {
	existing, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	duration, err := resolveDuration(in.Time, in.DurationMinutes, in.EndTime)
	if err != nil {
		return nil, err
	}

	normalized, err := s.Policy.ValidateBooking(ctx, in.Time, duration, false, id)
	if err != nil {
		return nil, err
	}

	if _, err := s.resolveContactRef(ctx, in.ContactID); err != nil {
		return nil, err
	}

	replacement := s.buildSlot(in, normalized)
	replacement.ID = existing.ID
	replacement.CreatedAt = existing.CreatedAt

	if err := s.Repo.Update(ctx, replacement); err != nil {
		return nil, err
	}

	if s.Logger != nil {
		s.Logger.Debug("time slot updated", zap.String("id", id))
	}
	return replacement.ToResponse(), nil
}

func (s *DefaultTimeSlotService) Delete(ctx context.Context, id string) error {
	return s.Repo.DeleteByID(ctx, id)
}
