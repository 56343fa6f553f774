package model

import "time"

// Medicine represents a medicine referencing its supplier
type Medicine struct {
	ID         uint         `json:"id" gorm:"primaryKey"`
	Name       string       `json:"name" gorm:"type:varchar(150);index;not null"`
	SupplierID uint         `json:"supplierId" gorm:"index;not null"`
	Supplier   *Supplier    `json:"supplier,omitempty" gorm:"foreignKey:SupplierID"`
	Barcode    string       `json:"barcode" gorm:"type:varchar(50)"`
	Status     EntityStatus `json:"status" gorm:"type:varchar(16);not null;default:'active';index"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}
