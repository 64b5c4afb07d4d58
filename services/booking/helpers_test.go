package booking

import (
	"context"
	"fmt"
	"sort"
	"time"

	contactRepo "slotify/database/repository/contact"
	timeslotRepo "slotify/database/repository/timeslot"
	"slotify/models"
)

// fakeSlotRepo is an in-memory TimeSlotRepository.
type fakeSlotRepo struct {
	slots []models.TimeSlot
	seq   int
}

func (f *fakeSlotRepo) Create(_ context.Context, slot *models.TimeSlot) error {
	if slot.ID == "" {
		f.seq++
		slot.ID = fmt.Sprintf("slot-%d", f.seq)
	}
	now := time.Now().UTC()
	slot.CreatedAt = now
	slot.UpdatedAt = now
	f.slots = append(f.slots, *slot)
	return nil
}

func (f *fakeSlotRepo) GetByID(_ context.Context, id string) (*models.TimeSlot, error) {
	for i := range f.slots {
		if f.slots[i].ID == id {
			slot := f.slots[i]
			return &slot, nil
		}
	}
	return nil, timeslotRepo.ErrNotFound
}

func (f *fakeSlotRepo) List(_ context.Context, filter timeslotRepo.ListFilter) ([]models.TimeSlot, int64, error) {
	var matched []models.TimeSlot
	for _, s := range f.slots {
		if filter.IsActive != nil && s.IsActive != *filter.IsActive {
			continue
		}
		matched = append(matched, s)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Time.Before(matched[j].Time) })

	count := int64(len(matched))
	if filter.Offset > 0 {
		if filter.Offset >= count {
			return nil, count, nil
		}
		matched = matched[filter.Offset:]
	}
	if filter.Limit > 0 && int64(len(matched)) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, count, nil
}

func (f *fakeSlotRepo) ListByRange(_ context.Context, from, to time.Time) ([]models.TimeSlot, error) {
	var matched []models.TimeSlot
	for _, s := range f.slots {
		if !s.Time.Before(from) && s.Time.Before(to) {
			matched = append(matched, s)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Time.Before(matched[j].Time) })
	return matched, nil
}

func (f *fakeSlotRepo) FindStartingBefore(_ context.Context, cutoff time.Time, excludeID string) ([]models.TimeSlot, error) {
	var matched []models.TimeSlot
	for _, s := range f.slots {
		if s.ID == excludeID {
			continue
		}
		if s.Time.Before(cutoff) {
			matched = append(matched, s)
		}
	}
	return matched, nil
}

func (f *fakeSlotRepo) Update(_ context.Context, slot *models.TimeSlot) error {
	for i := range f.slots {
		if f.slots[i].ID == slot.ID {
			slot.UpdatedAt = time.Now().UTC()
			f.slots[i] = *slot
			return nil
		}
	}
	return timeslotRepo.ErrNotFound
}

func (f *fakeSlotRepo) DeleteByID(_ context.Context, id string) error {
	for i := range f.slots {
		if f.slots[i].ID == id {
			f.slots = append(f.slots[:i], f.slots[i+1:]...)
			return nil
		}
	}
	return timeslotRepo.ErrNotFound
}

// fakeContactRepo is an in-memory ContactRepository.
type fakeContactRepo struct {
	contacts []models.Contact
	seq      int
}

func (f *fakeContactRepo) Create(_ context.Context, contact *models.Contact) error {
	if contact.ID == "" {
		f.seq++
		contact.ID = fmt.Sprintf("contact-%d", f.seq)
	}
	now := time.Now().UTC()
	contact.CreatedAt = now
	contact.UpdatedAt = now
	f.contacts = append(f.contacts, *contact)
	return nil
}

func (f *fakeContactRepo) GetByID(_ context.Context, id string) (*models.Contact, error) {
	for i := range f.contacts {
		if f.contacts[i].ID == id {
			c := f.contacts[i]
			return &c, nil
		}
	}
	return nil, contactRepo.ErrNotFound
}

func (f *fakeContactRepo) GetByEmail(_ context.Context, email string) (*models.Contact, error) {
	for i := range f.contacts {
		if f.contacts[i].Email == email {
			c := f.contacts[i]
			return &c, nil
		}
	}
	return nil, contactRepo.ErrNotFound
}

// recordingEvents counts publish attempts handed to the event service.
type recordingEvents struct {
	published []publishedEvent
}

type publishedEvent struct {
	slot    models.TimeSlot
	contact *models.Contact
}

func (r *recordingEvents) PublishAppointmentCreated(_ context.Context, slot *models.TimeSlot, contact *models.Contact) *models.PublishResult {
	r.published = append(r.published, publishedEvent{slot: *slot, contact: contact})
	return nil
}

func newTestService() (*DefaultTimeSlotService, *fakeSlotRepo, *fakeContactRepo, *recordingEvents) {
	slots := &fakeSlotRepo{}
	contacts := &fakeContactRepo{}
	events := &recordingEvents{}
	svc := &DefaultTimeSlotService{
		Repo:     slots,
		Contacts: contacts,
		Policy:   &BookingPolicy{Overlap: &OverlapResolver{Repo: slots}},
		Events:   events,
	}
	return svc, slots, contacts, events
}
