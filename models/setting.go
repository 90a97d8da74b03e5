package models

// Setting is a flat key/value row; holds the admin password hash and
// feature toggles like visitor ordering.
type Setting struct {
	Key   string `json:"key" gorm:"primaryKey"`
	Value string `json:"value" gorm:"not null"`
}
