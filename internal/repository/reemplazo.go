package repository

import "gorm.io/gorm"

// reemplazarTodo swaps the whole content of a table for items inside tx.
// Backups are restored through it so a collection is never half-written.
func reemplazarTodo[T any](tx *gorm.DB, items []T) error {
	if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(new(T)).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	return tx.CreateInBatches(items, 200).Error
}
