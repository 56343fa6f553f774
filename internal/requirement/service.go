package requirement

import (
	"errors"
	"time"

	"medreq-service/internal/model"
)

var (
	// ErrDuplicateItem reports an add for a medicine already on that day's list
	ErrDuplicateItem = errors.New("medicine already in today's list")
	// ErrNotFound reports a delete of a history record that does not exist
	ErrNotFound = errors.New("requirement list not found")
)

// Service owns the daily requirement list lifecycle. Day boundaries are
// computed in the business timezone, never in server-local time.
type Service struct {
	store ListStore
	loc   *time.Location
	now   func() time.Time
}

// NewService creates a requirement list service using the given store and
// business timezone
func NewService(store ListStore, loc *time.Location) *Service {
	return &Service{
		store: store,
		loc:   loc,
		now:   time.Now,
	}
}

// DayOf truncates t to midnight of its calendar day in the business timezone
func (s *Service) DayOf(t time.Time) time.Time {
	local := t.In(s.loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.loc)
}

// Today returns the current business day
func (s *Service) Today() time.Time {
	return s.DayOf(s.now())
}

// GetOrCreateForDay returns the list for the given day, creating an empty
// one on first access. The day always conceptually exists, so there is no
// not-found path. A concurrent first access loses the date-uniqueness race
// and resolves it by re-fetching the winner's record.
func (s *Service) GetOrCreateForDay(day time.Time) (*model.RequirementList, error) {
	day = s.DayOf(day)

	list, err := s.store.FindByDate(day, ResolveSupplier)
	if err != nil {
		return nil, err
	}
	if list != nil {
		return list, nil
	}

	created := &model.RequirementList{Date: day, Items: []model.RequirementItem{}}
	switch err := s.store.Create(created); {
	case err == nil:
		return created, nil
	case errors.Is(err, errConflict):
		return s.store.FindByDate(day, ResolveSupplier)
	default:
		return nil, err
	}
}

// AddItem appends a medicine to the day's list. Duplicate medicines are
// rejected; the check is by identifier, and the store's composite unique
// index backs it up under concurrent adds. Returns the updated resolved list.
func (s *Service) AddItem(day time.Time, medicineID uint) (*model.RequirementList, error) {
	list, err := s.GetOrCreateForDay(day)
	if err != nil {
		return nil, err
	}

	for _, item := range list.Items {
		if item.MedicineID == medicineID {
			return nil, ErrDuplicateItem
		}
	}

	item := &model.RequirementItem{
		RequirementListID: list.ID,
		MedicineID:        medicineID,
		AddedAt:           s.now(),
	}
	switch err := s.store.AddItem(item); {
	case err == nil:
	case errors.Is(err, errConflict):
		return nil, ErrDuplicateItem
	default:
		return nil, err
	}

	return s.store.FindByDate(s.DayOf(day), ResolveSupplier)
}

// RemoveItem removes the medicine from the day's list and returns the
// updated resolved list. A day without a list is a no-op returning nil.
func (s *Service) RemoveItem(day time.Time, medicineID uint) (*model.RequirementList, error) {
	day = s.DayOf(day)

	list, err := s.store.FindByDate(day, ResolveNone)
	if err != nil {
		return nil, err
	}
	if list == nil {
		return nil, nil
	}

	if err := s.store.RemoveItem(list.ID, medicineID); err != nil {
		return nil, err
	}
	return s.store.FindByDate(day, ResolveSupplier)
}

// GetByID returns one list fully resolved, or nil when absent
func (s *Service) GetByID(id uint) (*model.RequirementList, error) {
	return s.store.FindByID(id, ResolveSupplier)
}

// History returns all lists newest-first with medicine names resolved.
// Suppliers are not needed for the summary view.
func (s *Service) History() ([]model.RequirementList, error) {
	return s.store.FindAll(ResolveMedicine)
}

// DeleteHistoryRecord permanently deletes one day's list and its items
func (s *Service) DeleteHistoryRecord(id uint) error {
	deleted, err := s.store.DeleteByID(id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}
