package model

import "time"

// Supplier represents a medicine supplier stored in the database.
// Name uniqueness is case-insensitive and enforced by the handlers;
// deletion archives the record instead of removing it.
type Supplier struct {
	ID        uint         `json:"id" gorm:"primaryKey"`
	Name      string       `json:"name" gorm:"type:varchar(100);index;not null"`
	CRNo      string       `json:"crNo" gorm:"column:cr_no;type:varchar(50);not null"`
	Phone     string       `json:"phone" gorm:"type:varchar(20)"`
	Email     string       `json:"email" gorm:"type:varchar(100)"`
	Status    EntityStatus `json:"status" gorm:"type:varchar(16);not null;default:'active';index"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}
