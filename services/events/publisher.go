package events

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"slotify/models"
)

// PublishAppointmentCreated publishes one appointment-created event for a
// newly persisted slot. It is invoked only after the slot has been stored, so
// consumers never observe rolled-back bookings.
//
// It is a no-op (returns nil) when publishing is disabled, when the slot has
// no contact, or when the contact's email is blank. Enqueue failures are
// logged and swallowed; they never propagate to the caller and never affect
// the persisted slot.
func (s *DefaultEventService) PublishAppointmentCreated(ctx context.Context, slot *models.TimeSlot, contact *models.Contact) *models.PublishResult {
	if !s.Cfg.Enabled {
		return nil
	}

	payload := s.buildPayload(slot, contact)
	if payload == nil {
		return nil
	}

	b, err := json.Marshal(payload)
	if err != nil {
		s.Logger.Error("failed to marshal appointment event",
			zap.String("timeslot_id", slot.ID), zap.Error(err))
		return nil
	}

	timeout := s.Cfg.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// No retries anywhere in this system: a failed publish is dropped.
	task := asynq.NewTask(TypeAppointmentCreated, b)
	info, err := s.Client.EnqueueContext(ctx, task, asynq.Queue(s.Cfg.Queue), asynq.MaxRetry(0))
	if err != nil {
		s.Logger.Warn("event publish failed",
			zap.String("timeslot_id", slot.ID),
			zap.String("contact_id", contact.ID),
			zap.Error(err))
		return nil
	}

	s.Logger.Info("event publish succeeded",
		zap.String("timeslot_id", slot.ID),
		zap.String("queue", info.Queue),
		zap.String("task_id", info.ID))
	return &models.PublishResult{TaskID: info.ID, Queue: info.Queue}
}

// buildPayload assembles the appointments.created payload, or nil when the
// slot has nothing to notify about.
func (s *DefaultEventService) buildPayload(slot *models.TimeSlot, contact *models.Contact) *models.AppointmentCreatedEvent {
	if contact == nil {
		s.Logger.Info("event publish skipped: no contact", zap.String("timeslot_id", slot.ID))
		return nil
	}

	email := strings.TrimSpace(contact.Email)
	if email == "" {
		s.Logger.Info("event publish skipped: missing contact email", zap.String("timeslot_id", slot.ID))
		return nil
	}

	phoneE164 := ""
	if phone := strings.TrimSpace(contact.PhoneNumber); isE164(phone) {
		phoneE164 = phone
	}

	// SMS notification is forced off when the phone number is unusable,
	// regardless of the configured default.
	return &models.AppointmentCreatedEvent{
		EventID:    "evt-" + uuid.New().String(),
		EventType:  TypeAppointmentCreated,
		OccurredAt: time.Now().UTC(),
		Notify: models.NotifyFlags{
			Email: s.Cfg.NotifyEmailDefault,
			SMS:   s.Cfg.NotifySMSDefault && phoneE164 != "",
		},
		Appointment: models.AppointmentPayload{
			AppointmentID: "timeslot-" + slot.ID,
			UserID:        contact.ID,
			Time:          slot.Time,
			Email:         email,
			PhoneE164:     phoneE164,
		},
	}
}

// isE164 reports whether value is a plus sign followed by 8 to 15 digits.
func isE164(value string) bool {
	if !strings.HasPrefix(value, "+") {
		return false
	}
	digits := value[1:]
	if len(digits) < 8 || len(digits) > 15 {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
