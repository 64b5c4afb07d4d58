package booking

import (
	"context"
	"time"
)

// Public booking contract used by the public-facing creation endpoint:
// 30-minute slots on half-hour boundaries, starting between 10:00 and 17:30
// so the last slot ends at 18:00.
const (
	PublicSlotDurationMinutes = 30
	PublicStartHour           = 10
	PublicEndHour             = 18

	// DefaultDurationMinutes applies when a creation request omits duration.
	DefaultDurationMinutes = 30
)

// EndTime computes the exclusive end of an interval.
func EndTime(start time.Time, durationMinutes int) time.Time {
	return start.Add(time.Duration(durationMinutes) * time.Minute)
}

// ValidateDuration checks a proposed duration is present and positive. There
// is no upper bound for internal bookings.
func ValidateDuration(durationMinutes *int) error {
	if durationMinutes == nil {
		return NewValidationError(CodeDurationMissing, "Duration is required.")
	}
	if *durationMinutes <= 0 {
		return NewValidationError(CodeDurationNonPositive, "Duration must be greater than 0 minutes.")
	}
	return nil
}

// ValidatePublicWindow enforces the fixed public booking contract. Checks run
// in a fixed order (duration, minute alignment, hour range) and the first
// violation is returned, matching the single-error-at-a-time messaging the
// frontend expects.
func ValidatePublicWindow(start time.Time, durationMinutes int) error {
	if durationMinutes != PublicSlotDurationMinutes {
		return NewValidationError(CodeWindowWrongDuration, "Public booking slots must be exactly 30 minutes.")
	}
	if m := start.Minute(); m != 0 && m != 30 {
		return NewValidationError(CodeWindowMisaligned, "Public booking slots must start on a 30-minute boundary.")
	}
	if h := start.Hour(); h < PublicStartHour || h >= PublicEndHour {
		return NewValidationError(CodeWindowOutOfHours, "Time slots must be between 10:00 AM and 6:00 PM PST.")
	}
	return nil
}

// BookingPolicy composes duration, public-window and overlap validation into
// the single entry point used by the creation and update paths.
type BookingPolicy struct {
	Overlap *OverlapResolver
}

// ValidateBooking validates a proposed interval and returns the normalized
// duration in minutes. It is pure validation: no writes happen here, and
// persistence only proceeds after it returns nil error.
//
// Steps, short-circuiting on the first failure:
//  1. default an unset duration to 30 minutes;
//  2. duration validation;
//  3. public-window validation, only when the caller enforces public policy;
//  4. overlap scan, skipping excludeID so an update does not conflict with
//     the record's own stored state.
func (p *BookingPolicy) ValidateBooking(ctx context.Context, start time.Time, durationMinutes *int, enforcePublicPolicy bool, excludeID string) (int, error) {
	if durationMinutes == nil {
		d := DefaultDurationMinutes
		durationMinutes = &d
	}

	if err := ValidateDuration(durationMinutes); err != nil {
		return 0, err
	}

	if enforcePublicPolicy {
		if err := ValidatePublicWindow(start, *durationMinutes); err != nil {
			return 0, err
		}
	}

	conflict, err := p.Overlap.FindOverlap(ctx, start, *durationMinutes, excludeID)
	if err != nil {
		return 0, err
	}
	if conflict != nil {
		return 0, NewValidationError(CodeOverlap, "Time slot overlaps with an existing appointment.")
	}

	return *durationMinutes, nil
}
