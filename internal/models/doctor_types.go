package models

import "time"

// Doctor is the model for the 'doctors' table.
// Qualifications live in a JSON column and are (un)marshalled by the handlers.
type Doctor struct {
	ID             int64     `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	Specialty      string    `json:"specialty" db:"specialty"`
	Experience     string    `json:"experience" db:"experience"`
	Status         string    `json:"status" db:"status"` // Available | Busy | Off Duty
	Attendance     string    `json:"attendance" db:"attendance"`
	Image          *string   `json:"image,omitempty" db:"image"`
	Phone          string    `json:"phone" db:"phone"`
	Email          string    `json:"email" db:"email"`
	Qualifications []string  `json:"qualifications" db:"qualifications"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`
}
