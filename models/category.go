package models

// Category groups events (e.g. MUSICAL, LITERARY). Created at seed time
// only; there is no admin endpoint for categories.
type Category struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Name  string `json:"name" gorm:"uniqueIndex;not null"`
	Color string `json:"color" gorm:"not null"`
}

// CategoryWithEvents is the public categories listing shape.
type CategoryWithEvents struct {
	Category Category `json:"category"`
	Events   []Event  `json:"events"`
}
