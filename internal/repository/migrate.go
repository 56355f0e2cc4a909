package repository

import "gorm.io/gorm"

// AutoMigrate creates or updates the schema for every table the
// repositories use. The row models carry the index definitions (unique
// email, unique appointment per transaction), so migration goes through
// them rather than the domain structs.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel{},
		&appointmentModel{},
		&transactionModel{},
	)
}
