package models

import "time"

// Emergency is the model for the 'emergencies' table.
type Emergency struct {
	ID            int64   `json:"id" db:"id"`
	PatientName   string  `json:"patientName" db:"patient_name"`
	Email         *string `json:"email,omitempty" db:"email"`
	Phone         string  `json:"phone" db:"phone"`
	Age           *int    `json:"age,omitempty" db:"age"`
	Gender        string  `json:"gender" db:"gender"`
	EmergencyType string  `json:"emergencyType" db:"emergency_type"`
	Symptoms      string  `json:"symptoms" db:"symptoms"`
	Priority      string  `json:"priority" db:"priority"` // low | medium | high | critical
	Status        string  `json:"status" db:"status"`     // pending | accepted | completed | cancelled

	Location Location `json:"location"`

	// Pregnancy fields
	IsPregnancy            bool    `json:"isPregnancy" db:"is_pregnancy"`
	PregnancyWeeks         *int    `json:"pregnancyWeeks,omitempty" db:"pregnancy_weeks"`
	PregnancyComplications *string `json:"pregnancyComplications,omitempty" db:"pregnancy_complications"`

	// Assignment
	AssignedDoctor    *string    `json:"assignedDoctor,omitempty" db:"assigned_doctor"`
	AssignedAmbulance *string    `json:"assignedAmbulance,omitempty" db:"assigned_ambulance"`
	EstimatedArrival  *time.Time `json:"estimatedArrival,omitempty" db:"estimated_arrival"`

	UserID      *int64     `json:"userId,omitempty" db:"user_id"`
	AdminNotes  *string    `json:"adminNotes,omitempty" db:"admin_notes"`
	CompletedAt *time.Time `json:"completedAt,omitempty" db:"completed_at"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}
