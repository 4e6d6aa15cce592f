// Package recipes implements the recipe CRUD service
package recipes

import "time"

// Recipe is a stored recipe
type Recipe struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Ingredients  string    `json:"ingredients" gorm:"not null"`
	Instructions string    `json:"instructions" gorm:"not null"`
	Serving      int       `json:"serving" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RecipeIn is the body of create and update requests. All keys are
// required, empty strings are allowed.
type RecipeIn struct {
	Ingredients  *string `json:"ingredients" binding:"required"`
	Instructions *string `json:"instructions" binding:"required"`
	Serving      *int    `json:"serving" binding:"required"`
}
