package events

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"slotify/models"
)

type fakeEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (f *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{ID: "task-1", Queue: "notifications", Type: task.Type()}, nil
}

func newTestPublisher(cfg Config) (*DefaultEventService, *fakeEnqueuer) {
	enq := &fakeEnqueuer{}
	svc := &DefaultEventService{
		Client: enq,
		Cfg:    cfg,
		Logger: zap.NewNop(),
	}
	return svc, enq
}

func enabledConfig() Config {
	return Config{
		Enabled:            true,
		Queue:              "notifications",
		Timeout:            time.Second,
		NotifyEmailDefault: true,
		NotifySMSDefault:   true,
	}
}

func testSlot() *models.TimeSlot {
	return &models.TimeSlot{
		ID:              "abc123",
		Time:            time.Date(2026, 1, 27, 16, 0, 0, 0, time.UTC),
		DurationMinutes: 30,
		IsActive:        true,
	}
}

func testContact() *models.Contact {
	return &models.Contact{
		ID:          "c1",
		FirstName:   "Jane",
		LastName:    "Doe",
		Email:       "jane.doe@example.com",
		PhoneNumber: "+15555555555",
	}
}

func decodePayload(t *testing.T, task *asynq.Task) models.AppointmentCreatedEvent {
	t.Helper()
	var event models.AppointmentCreatedEvent
	if err := json.Unmarshal(task.Payload(), &event); err != nil {
		t.Fatalf("payload unmarshal error: %v", err)
	}
	return event
}

func TestPublishSkippedWhenDisabled(t *testing.T) {
	svc, enq := newTestPublisher(Config{Enabled: false})

	if res := svc.PublishAppointmentCreated(context.Background(), testSlot(), testContact()); res != nil {
		t.Fatalf("result = %+v, want nil when disabled", res)
	}
	if len(enq.tasks) != 0 {
		t.Fatalf("enqueued tasks = %d, want 0", len(enq.tasks))
	}
}

func TestPublishSkippedWithoutContact(t *testing.T) {
	svc, enq := newTestPublisher(enabledConfig())

	if res := svc.PublishAppointmentCreated(context.Background(), testSlot(), nil); res != nil {
		t.Fatalf("result = %+v, want nil without contact", res)
	}
	if len(enq.tasks) != 0 {
		t.Fatalf("enqueued tasks = %d, want 0 (no contact must never publish)", len(enq.tasks))
	}
}

func TestPublishSkippedWithBlankEmail(t *testing.T) {
	svc, enq := newTestPublisher(enabledConfig())
	contact := testContact()
	contact.Email = "   "

	if res := svc.PublishAppointmentCreated(context.Background(), testSlot(), contact); res != nil {
		t.Fatalf("result = %+v, want nil with blank email", res)
	}
	if len(enq.tasks) != 0 {
		t.Fatalf("enqueued tasks = %d, want 0", len(enq.tasks))
	}
}

func TestPublishBuildsPayloadContract(t *testing.T) {
	svc, enq := newTestPublisher(enabledConfig())
	slot := testSlot()
	contact := testContact()

	res := svc.PublishAppointmentCreated(context.Background(), slot, contact)
	if res == nil {
		t.Fatalf("expected a publish result")
	}
	if res.Queue != "notifications" {
		t.Fatalf("queue = %q, want %q", res.Queue, "notifications")
	}
	if len(enq.tasks) != 1 {
		t.Fatalf("enqueued tasks = %d, want 1", len(enq.tasks))
	}
	if got := enq.tasks[0].Type(); got != TypeAppointmentCreated {
		t.Fatalf("task type = %q, want %q", got, TypeAppointmentCreated)
	}

	event := decodePayload(t, enq.tasks[0])
	if event.EventType != "appointments.created" {
		t.Fatalf("event_type = %q, want %q", event.EventType, "appointments.created")
	}
	if !strings.HasPrefix(event.EventID, "evt-") {
		t.Fatalf("event_id = %q, want evt- prefix", event.EventID)
	}
	if event.Appointment.AppointmentID != "timeslot-abc123" {
		t.Fatalf("appointment_id = %q, want %q", event.Appointment.AppointmentID, "timeslot-abc123")
	}
	if event.Appointment.UserID != "c1" {
		t.Fatalf("user_id = %q, want %q", event.Appointment.UserID, "c1")
	}
	if event.Appointment.Email != "jane.doe@example.com" {
		t.Fatalf("email = %q, want contact email", event.Appointment.Email)
	}
	if !event.Appointment.Time.Equal(slot.Time) {
		t.Fatalf("time = %v, want %v", event.Appointment.Time, slot.Time)
	}
	if event.Appointment.PhoneE164 != "+15555555555" {
		t.Fatalf("phone_e164 = %q, want contact phone", event.Appointment.PhoneE164)
	}
	if !event.Notify.Email || !event.Notify.SMS {
		t.Fatalf("notify = %+v, want email and sms enabled", event.Notify)
	}
}

func TestPublishOmitsInvalidPhoneAndForcesSMSOff(t *testing.T) {
	svc, enq := newTestPublisher(enabledConfig())
	contact := testContact()
	contact.PhoneNumber = "555-123-4567"

	if res := svc.PublishAppointmentCreated(context.Background(), testSlot(), contact); res == nil {
		t.Fatalf("expected a publish result")
	}

	event := decodePayload(t, enq.tasks[0])
	if event.Appointment.PhoneE164 != "" {
		t.Fatalf("phone_e164 = %q, want omitted", event.Appointment.PhoneE164)
	}
	// SMS is forced off even though the configured default enables it.
	if event.Notify.SMS {
		t.Fatalf("notify.sms = true, want false for non-E.164 phone")
	}
	if !event.Notify.Email {
		t.Fatalf("notify.email = false, want configured default true")
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(enq.tasks[0].Payload(), &raw); err != nil {
		t.Fatalf("payload unmarshal error: %v", err)
	}
	var appt map[string]json.RawMessage
	if err := json.Unmarshal(raw["appointment"], &appt); err != nil {
		t.Fatalf("appointment unmarshal error: %v", err)
	}
	if _, present := appt["phone_e164"]; present {
		t.Fatalf("phone_e164 key present in payload, want omitted")
	}
}

func TestPublishFailureIsSwallowed(t *testing.T) {
	svc, enq := newTestPublisher(enabledConfig())
	enq.err = errors.New("broker down")

	if res := svc.PublishAppointmentCreated(context.Background(), testSlot(), testContact()); res != nil {
		t.Fatalf("result = %+v, want nil on enqueue failure", res)
	}
}

func TestIsE164(t *testing.T) {
	cases := []struct {
		value string
		want  bool
	}{
		{"+15555555555", true},
		{"+12345678", true},              // 8 digits, lower bound
		{"+123456789012345", true},       // 15 digits, upper bound
		{"+1234567", false},              // too short
		{"+1234567890123456", false},     // too long
		{"15555555555", false},           // missing plus
		{"+1555555a555", false},          // non-digit
		{"", false},
		{"+", false},
	}
	for _, tc := range cases {
		if got := isE164(tc.value); got != tc.want {
			t.Fatalf("isE164(%q) = %v, want %v", tc.value, got, tc.want)
		}
	}
}
