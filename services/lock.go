package services

import "gorm.io/gorm/clause"

// lockForUpdate serializes read-modify-write on a single row. The sqlite
// driver used in tests drops the clause; MySQL honors it.
func lockForUpdate() clause.Locking {
	return clause.Locking{Strength: "UPDATE"}
}
