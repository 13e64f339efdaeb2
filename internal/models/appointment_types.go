package models

import "time"

// Appointment is the model for the 'appointments' table.
type Appointment struct {
	ID              int64     `json:"id" db:"id"`
	PatientName     string    `json:"patientName" db:"patient_name"`
	Email           string    `json:"email" db:"email"`
	Phone           string    `json:"phone" db:"phone"`
	Age             int       `json:"age" db:"age"`
	Gender          string    `json:"gender" db:"gender"`
	Department      string    `json:"department" db:"department"`
	AppointmentDate time.Time `json:"appointmentDate" db:"appointment_date"`
	AppointmentTime string    `json:"appointmentTime" db:"appointment_time"`
	Symptoms        string    `json:"symptoms" db:"symptoms"`
	BedType         string    `json:"bedType" db:"bed_type"`
	Slot            string    `json:"slot" db:"slot"`
	Status          string    `json:"status" db:"status"`

	// Charges are computed when the appointment is booked.
	ConsultationFee float64  `json:"consultationFee" db:"consultation_fee"`
	BedCharges      *float64 `json:"bedCharges,omitempty" db:"bed_charges"`
	MedicineCharges *float64 `json:"medicineCharges,omitempty" db:"medicine_charges"`
	LabCharges      *float64 `json:"labCharges,omitempty" db:"lab_charges"`
	Paid            bool     `json:"paid" db:"paid"`

	UserID *int64 `json:"userId,omitempty" db:"user_id"`

	// Emergency booking fields
	IsEmergency   bool    `json:"isEmergency" db:"is_emergency"`
	EmergencyType *string `json:"emergencyType,omitempty" db:"emergency_type"`
	Priority      string  `json:"priority" db:"priority"` // low | medium | high | critical

	// Pregnancy booking fields
	IsPregnancy    bool    `json:"isPregnancy" db:"is_pregnancy"`
	PregnancyWeeks *int    `json:"pregnancyWeeks,omitempty" db:"pregnancy_weeks"`
	PregnancyType  *string `json:"pregnancyType,omitempty" db:"pregnancy_type"`

	Location Location `json:"location"`

	AssignedDoctor *string `json:"assignedDoctor,omitempty" db:"assigned_doctor"`
	DoctorID       *int64  `json:"doctorId,omitempty" db:"doctor_id"`

	BookedOn time.Time `json:"bookedOn" db:"booked_on"`
}

// Location is embedded in appointments and emergencies.
type Location struct {
	Latitude  *float64 `json:"latitude,omitempty" db:"latitude"`
	Longitude *float64 `json:"longitude,omitempty" db:"longitude"`
	Address   *string  `json:"address,omitempty" db:"address"`
}
