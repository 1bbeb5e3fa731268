package models

// User is an admin account. Password holds the scrypt hash in
// "hexhash.hexsalt" form and is never serialized.
type User struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Username string `json:"username" gorm:"uniqueIndex;not null"`
	Password string `json:"-" gorm:"not null"`
	Email    string `json:"email" gorm:"not null"`
	Name     string `json:"name" gorm:"not null"`
}
