package requirement

import (
	"errors"
	"time"

	"medreq-service/internal/model"

	"gorm.io/gorm"
)

// Resolution controls how far item references are resolved on reads
type Resolution int

const (
	// ResolveNone loads items with bare medicine ids
	ResolveNone Resolution = iota
	// ResolveMedicine loads each item's medicine (history summary view)
	ResolveMedicine
	// ResolveSupplier loads each item's medicine and its supplier
	ResolveSupplier
)

// ListStore persists requirement lists. FindByDate and FindByID return
// (nil, nil) when no record exists; absence is not an error at this layer.
type ListStore interface {
	FindByDate(date time.Time, res Resolution) (*model.RequirementList, error)
	FindByID(id uint, res Resolution) (*model.RequirementList, error)
	Create(list *model.RequirementList) error
	AddItem(item *model.RequirementItem) error
	RemoveItem(listID, medicineID uint) error
	FindAll(res Resolution) ([]model.RequirementList, error)
	DeleteByID(id uint) (bool, error)
}

// errConflict marks a unique-index violation inside the store
var errConflict = errors.New("requirement: conflicting record exists")

type gormStore struct {
	db *gorm.DB
}

// NewGormStore returns a ListStore backed by the given database
func NewGormStore(db *gorm.DB) ListStore {
	return &gormStore{db: db}
}

func (s *gormStore) query(res Resolution) *gorm.DB {
	q := s.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("added_at ASC, id ASC")
	})
	switch res {
	case ResolveMedicine:
		q = q.Preload("Items.Medicine")
	case ResolveSupplier:
		q = q.Preload("Items.Medicine").Preload("Items.Medicine.Supplier")
	}
	return q
}

func (s *gormStore) FindByDate(date time.Time, res Resolution) (*model.RequirementList, error) {
	var list model.RequirementList
	err := s.query(res).Where("date = ?", date).First(&list).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &list, nil
}

func (s *gormStore) FindByID(id uint, res Resolution) (*model.RequirementList, error) {
	var list model.RequirementList
	err := s.query(res).First(&list, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &list, nil
}

func (s *gormStore) Create(list *model.RequirementList) error {
	err := s.db.Create(list).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errConflict
	}
	return err
}

func (s *gormStore) AddItem(item *model.RequirementItem) error {
	err := s.db.Create(item).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errConflict
	}
	return err
}

func (s *gormStore) RemoveItem(listID, medicineID uint) error {
	return s.db.
		Where("requirement_list_id = ? AND medicine_id = ?", listID, medicineID).
		Delete(&model.RequirementItem{}).Error
}

func (s *gormStore) FindAll(res Resolution) ([]model.RequirementList, error) {
	var lists []model.RequirementList
	err := s.query(res).Order("date DESC").Find(&lists).Error
	if err != nil {
		return nil, err
	}
	return lists, nil
}

func (s *gormStore) DeleteByID(id uint) (bool, error) {
	result := s.db.Delete(&model.RequirementList{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
