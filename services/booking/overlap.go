package booking

import (
	"context"
	"time"

	timeslotRepo "slotify/database/repository/timeslot"
	"slotify/models"
)

// OverlapResolver scans persisted slots for a conflict with a proposed
// interval. Intervals are half-open, so adjacency is never a conflict.
type OverlapResolver struct {
	Repo timeslotRepo.TimeSlotRepository
}

// FindOverlap returns the first persisted slot whose interval overlaps the
// proposed [start, start+duration). excludeID, when non-empty, removes the
// record being updated from the scan. Store iteration order is not defined,
// so callers may only rely on *some* conflict being returned when at least
// one exists.
//
// The scan is linear over slots starting before the proposed end. Volume is
// small enough here that a range-predicate query plus an in-memory pass is
// fine; an interval index would be the next step if that changes.
func (r *OverlapResolver) FindOverlap(ctx context.Context, start time.Time, durationMinutes int, excludeID string) (*models.TimeSlot, error) {
	end := EndTime(start, durationMinutes)

	candidates, err := r.Repo.FindStartingBefore(ctx, end, excludeID)
	if err != nil {
		return nil, err
	}

	for i := range candidates {
		if candidates[i].EndTime().After(start) {
			return &candidates[i], nil
		}
	}
	return nil, nil
}
