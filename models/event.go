package models

import "time"

// NotifyFlags tells the external notifier which channels to use for an event.
type NotifyFlags struct {
	Email bool `json:"email"`
	SMS   bool `json:"sms"`
}

// AppointmentPayload is the appointment section of a published event.
// PhoneE164 is present only when the contact's phone number passes the
// E.164 shape check; otherwise it is omitted entirely.
type AppointmentPayload struct {
	AppointmentID string    `json:"appointment_id"`
	UserID        string    `json:"user_id"`
	Time          time.Time `json:"time"`
	Email         string    `json:"email"`
	PhoneE164     string    `json:"phone_e164,omitempty"`
}

// AppointmentCreatedEvent is the payload contract published to the external
// notification system when an appointment is created.
type AppointmentCreatedEvent struct {
	EventID     string             `json:"event_id"`
	EventType   string             `json:"event_type"`
	OccurredAt  time.Time          `json:"occurred_at"`
	Notify      NotifyFlags        `json:"notify"`
	Appointment AppointmentPayload `json:"appointment"`
}

// PublishResult describes a successfully enqueued event.
type PublishResult struct {
	TaskID string `json:"task_id"`
	Queue  string `json:"queue"`
}
