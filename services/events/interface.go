package events

import (
	"context"
	"time"

	"slotify/models"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// TypeAppointmentCreated is the task type consumed by the external notifier.
const TypeAppointmentCreated = "appointments.created"

// Config carries the publisher's feature toggles, passed in at construction
// rather than read from ambient globals.
type Config struct {
	Enabled            bool
	Queue              string
	Timeout            time.Duration
	NotifyEmailDefault bool
	NotifySMSDefault   bool
}

// AppointmentEventService publishes best-effort appointment-created events.
// Publishing is at-most-once from this system's perspective; delivery
// guarantees belong to the external notifier.
type AppointmentEventService interface {
	PublishAppointmentCreated(ctx context.Context, slot *models.TimeSlot, contact *models.Contact) *models.PublishResult
}

// enqueuer is the slice of asynq.Client the publisher needs; tests swap in
// a fake.
type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// DefaultEventService enqueues events onto a Redis-backed queue that the
// external notification system consumes.
type DefaultEventService struct {
	Client enqueuer
	Cfg    Config
	Logger *zap.Logger
}

// NewDefaultEventService wires the publisher against a real asynq client.
func NewDefaultEventService(client *asynq.Client, cfg Config, logger *zap.Logger) *DefaultEventService {
	return &DefaultEventService{
		Client: client,
		Cfg:    cfg,
		Logger: logger,
	}
}
