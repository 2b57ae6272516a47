package repository

import "gorm.io/gorm/clause"

// forUpdate returns the row-lock clause used by in-transaction reads that
// precede a cursor write.
func forUpdate() clause.Locking {
	return clause.Locking{Strength: "UPDATE"}
}
