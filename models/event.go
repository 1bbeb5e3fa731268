package models

// Event is a single contest within a category. Events are immutable once
// created; only their results change.
type Event struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	Name       string `json:"name" gorm:"not null"`
	Slug       string `json:"slug" gorm:"index"`
	CategoryID uint   `json:"categoryId" gorm:"not null;index"`
}
