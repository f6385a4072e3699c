// Package gormstore is the relational backend. Soft deletion is modeled
// with the same nullable date_deleted column the file backend writes, so
// the two backends stay byte-compatible at the API surface.
package gormstore

import "gorm.io/gorm"

// live narrows any query to records that have not been soft-deleted.
func live(db *gorm.DB) *gorm.DB {
	return db.Where("date_deleted IS NULL")
}

func offset(page, pageSize int) int {
	return (page - 1) * pageSize
}
