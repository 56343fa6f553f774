package model

import "gorm.io/gorm"

// EntityStatus marks whether an entity appears in active listings.
// Archived entities stay referenced by historical requirement lists.
type EntityStatus string

const (
	StatusActive   EntityStatus = "active"
	StatusArchived EntityStatus = "archived"
)

// ActiveOnly is a query scope that restricts listings to active entities.
// Visibility filtering happens at the query boundary, never after the fact.
func ActiveOnly(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", StatusActive)
}
