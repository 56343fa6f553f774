package model

import "time"

// RequirementList is the per-calendar-day aggregate of medicines to reorder.
// Date holds the UTC instant of midnight in the business timezone and is
// unique, so at most one list exists per day.
type RequirementList struct {
	ID        uint              `json:"id" gorm:"primaryKey"`
	Date      time.Time         `json:"date" gorm:"uniqueIndex;not null"`
	Items     []RequirementItem `json:"items" gorm:"foreignKey:RequirementListID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// RequirementItem is one requested medicine within a day's list.
// The composite unique index rejects the same medicine twice on one day
// even under concurrent add-item calls.
type RequirementItem struct {
	ID                uint      `json:"-" gorm:"primaryKey"`
	RequirementListID uint      `json:"-" gorm:"uniqueIndex:idx_requirement_item_medicine;not null"`
	MedicineID        uint      `json:"medicineId" gorm:"uniqueIndex:idx_requirement_item_medicine;not null"`
	Medicine          *Medicine `json:"medicine,omitempty" gorm:"foreignKey:MedicineID"`
	AddedAt           time.Time `json:"addedAt" gorm:"not null"`
}
