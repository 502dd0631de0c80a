package specification

import (
	"gorm.io/gorm"
)

// OrderByFullName is the collection order of the live subscription.
type OrderByFullName struct{}

func (s OrderByFullName) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("full_name ASC").Order("id ASC")
}
