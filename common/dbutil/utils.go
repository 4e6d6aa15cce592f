package dbutil

import (
	"github.com/Aidin1998/apiexercises/pkg/errors"
	"gorm.io/gorm"
)

// FindOne loads the single row matched by db, NotFound when there is none.
func FindOne[T any](db *gorm.DB) (*T, error) {
	var item T
	result := db.Limit(1).Find(&item)
	if result.Error != nil {
		return nil, WrapError(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, errors.NotFound
	}
	return &item, nil
}
