package handlers

import (
	"database/sql"
	"fmt"
	"math/rand"
	"net/http"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jaswan333/hospital-golang/internal/email"
	"github.com/jaswan333/hospital-golang/internal/logger"
	"github.com/jaswan333/hospital-golang/internal/models"
)

//
// --- Appointment Handlers ---
//

const appointmentColumns = `id, patient_name, email, phone, age, gender, department,
	appointment_date, appointment_time, symptoms, bed_type, slot, status,
	consultation_fee, bed_charges, medicine_charges, lab_charges, paid, user_id,
	is_emergency, emergency_type, priority, is_pregnancy, pregnancy_weeks, pregnancy_type,
	latitude, longitude, address, assigned_doctor, doctor_id, booked_on`

func scanAppointment(row interface{ Scan(...interface{}) error }) (*models.Appointment, error) {
	var a models.Appointment
	err := row.Scan(
		&a.ID, &a.PatientName, &a.Email, &a.Phone, &a.Age, &a.Gender, &a.Department,
		&a.AppointmentDate, &a.AppointmentTime, &a.Symptoms, &a.BedType, &a.Slot, &a.Status,
		&a.ConsultationFee, &a.BedCharges, &a.MedicineCharges, &a.LabCharges, &a.Paid, &a.UserID,
		&a.IsEmergency, &a.EmergencyType, &a.Priority, &a.IsPregnancy, &a.PregnancyWeeks, &a.PregnancyType,
		&a.Location.Latitude, &a.Location.Longitude, &a.Location.Address,
		&a.AssignedDoctor, &a.DoctorID, &a.BookedOn,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateAppointmentInput is the booking form payload.
type CreateAppointmentInput struct {
	PatientName     string  `json:"patientName"`
	Email           string  `json:"email"`
	Phone           string  `json:"phone"`
	Age             int     `json:"age"`
	Gender          string  `json:"gender"`
	Department      string  `json:"department"`
	AppointmentDate string  `json:"appointmentDate"` // YYYY-MM-DD
	AppointmentTime string  `json:"appointmentTime"`
	Symptoms        string  `json:"symptoms"`
	BedType         string  `json:"bedType"`
	Slot            string  `json:"slot"`
	UserID          *int64  `json:"userId"`
	IsEmergency     bool    `json:"isEmergency"`
	EmergencyType   *string `json:"emergencyType"`
	Priority        string  `json:"priority"`
	IsPregnancy     bool    `json:"isPregnancy"`
	PregnancyWeeks  *int    `json:"pregnancyWeeks"`
	PregnancyType   *string `json:"pregnancyType"`

	Location models.Location `json:"location"`
}

func validateAppointment(input CreateAppointmentInput) (time.Time, []string) {
	var errs []string

	if len(strings.TrimSpace(input.PatientName)) < 2 {
		errs = append(errs, "patientName must be at least 2 characters")
	}
	if _, err := mail.ParseAddress(input.Email); err != nil {
		errs = append(errs, "email is not a valid address")
	}
	phone := strings.NewReplacer("-", "", " ", "").Replace(input.Phone)
	if len(phone) != 10 || strings.Trim(phone, "0123456789") != "" {
		errs = append(errs, "phone must be a 10 digit number")
	}
	if input.Age < 1 || input.Age > 120 {
		errs = append(errs, "age must be between 1 and 120")
	}
	if input.Department == "" {
		errs = append(errs, "department is required")
	}

	var date time.Time
	if input.AppointmentDate == "" {
		errs = append(errs, "appointmentDate is required")
	} else {
		parsed, err := time.Parse("2006-01-02", input.AppointmentDate)
		if err != nil {
			errs = append(errs, "appointmentDate must be YYYY-MM-DD")
		} else if parsed.Before(time.Now().Truncate(24 * time.Hour)) {
			errs = append(errs, "appointmentDate cannot be in the past")
		} else {
			date = parsed
		}
	}

	return date, errs
}

// bedChargesFor maps a requested bed type to its nightly charge.
func bedChargesFor(bedType string) float64 {
	switch bedType {
	case "General":
		return 500
	case "Private":
		return 1500
	case "ICU":
		return 3000
	default:
		return 2000
	}
}

// CreateAppointment is the handler for POST /api/appointments
func (h *Handlers) CreateAppointment(c *gin.Context) {
	var input CreateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body", "error": err.Error()})
		return
	}

	// 1. --- Validate the Booking Form ---
	date, errs := validateAppointment(input)
	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed", "errors": errs})
		return
	}

	// 2. --- Compute Charges ---
	// Billing is estimated at booking time the same way the front desk does
	// it: a flat consultation fee, bed charges by ward, and provisional
	// medicine and lab estimates.
	consultationFee := 1500.0
	bedCharges := bedChargesFor(input.BedType)
	medicineCharges := float64(500 + rand.Intn(1000))
	labCharges := float64(400 + rand.Intn(800))

	priority := input.Priority
	if priority == "" {
		priority = "medium"
	}

	// 3. --- Insert the Appointment ---
	now := time.Now()
	res, err := h.DB.Exec(`
		INSERT INTO appointments (patient_name, email, phone, age, gender, department,
			appointment_date, appointment_time, symptoms, bed_type, slot, status,
			consultation_fee, bed_charges, medicine_charges, lab_charges, paid, user_id,
			is_emergency, emergency_type, priority, is_pregnancy, pregnancy_weeks, pregnancy_type,
			latitude, longitude, address, booked_on)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 'current', ?, ?, ?, ?, FALSE, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		input.PatientName, input.Email, input.Phone, input.Age, input.Gender, input.Department,
		date, input.AppointmentTime, input.Symptoms, input.BedType, input.Slot,
		consultationFee, bedCharges, medicineCharges, labCharges, input.UserID,
		input.IsEmergency, input.EmergencyType, priority,
		input.IsPregnancy, input.PregnancyWeeks, input.PregnancyType,
		input.Location.Latitude, input.Location.Longitude, input.Location.Address, now,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}
	id, err := res.LastInsertId()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}

	appointment, err := scanAppointment(h.DB.QueryRow("SELECT "+appointmentColumns+" FROM appointments WHERE id = ?", id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}

	// 4. --- Send Confirmation (best effort) ---
	if err := email.SendAppointmentConfirmation(input.Email, input.PatientName, input.Department, input.AppointmentDate, input.AppointmentTime); err != nil {
		logger.FromCtx(c.Request.Context()).Warn("confirmation email failed",
			zap.Int64("appointment_id", id), zap.Error(err))
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Appointment booked", "appointment": appointment})
}

// GetAppointments is the handler for GET /api/appointments
// An optional ?userId= filters to one patient's bookings.
func (h *Handlers) GetAppointments(c *gin.Context) {
	query := "SELECT " + appointmentColumns + " FROM appointments"
	args := []interface{}{}
	if userID := c.Query("userId"); userID != "" {
		query += " WHERE user_id = ?"
		args = append(args, userID)
	}
	query += " ORDER BY appointment_date ASC, booked_on DESC"

	rows, err := h.DB.Query(query, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}
	defer rows.Close()

	appointments := []*models.Appointment{}
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to scan appointment row"})
			return
		}
		appointments = append(appointments, a)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error iterating appointment rows"})
		return
	}

	c.JSON(http.StatusOK, appointments)
}

// GetUserAppointments is the handler for GET /api/appointments/user/:userId
func (h *Handlers) GetUserAppointments(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user id"})
		return
	}

	rows, err := h.DB.Query(
		"SELECT "+appointmentColumns+" FROM appointments WHERE user_id = ? ORDER BY appointment_date ASC",
		userID,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}
	defer rows.Close()

	appointments := []*models.Appointment{}
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to scan appointment row"})
			return
		}
		appointments = append(appointments, a)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error iterating appointment rows"})
		return
	}

	c.JSON(http.StatusOK, appointments)
}

// UpdateAppointmentInput covers the fields the admin panel edits.
type UpdateAppointmentInput struct {
	Status         *string `json:"status"`
	Paid           *bool   `json:"paid"`
	AssignedDoctor *string `json:"assignedDoctor"`
	DoctorID       *int64  `json:"doctorId"`
	Slot           *string `json:"slot"`
	BedType        *string `json:"bedType"`
}

// UpdateAppointment is the handler for PUT /api/appointments/:id
func (h *Handlers) UpdateAppointment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid appointment id"})
		return
	}

	var input UpdateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed", "error": err.Error()})
		return
	}

	set := ""
	args := []interface{}{}
	add := func(clause string, v interface{}) {
		if set != "" {
			set += ", "
		}
		set += clause
		args = append(args, v)
	}

	if input.Status != nil {
		add("status = ?", *input.Status)
	}
	if input.Paid != nil {
		add("paid = ?", *input.Paid)
	}
	if input.AssignedDoctor != nil {
		add("assigned_doctor = ?", *input.AssignedDoctor)
	}
	if input.DoctorID != nil {
		add("doctor_id = ?", *input.DoctorID)
	}
	if input.Slot != nil {
		add("slot = ?", *input.Slot)
	}
	if input.BedType != nil {
		// Re-price the bed when the ward changes.
		add("bed_type = ?", *input.BedType)
		add("bed_charges = ?", bedChargesFor(*input.BedType))
	}
	if set == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No fields to update"})
		return
	}

	args = append(args, id)
	if _, err := h.DB.Exec(fmt.Sprintf("UPDATE appointments SET %s WHERE id = ?", set), args...); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}

	appointment, err := scanAppointment(h.DB.QueryRow("SELECT "+appointmentColumns+" FROM appointments WHERE id = ?", id))
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"message": "Appointment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, appointment)
}

// DeleteAppointment is the handler for DELETE /api/appointments/:id
func (h *Handlers) DeleteAppointment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid appointment id"})
		return
	}

	if _, err := h.DB.Exec("DELETE FROM appointments WHERE id = ?", id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Appointment deleted"})
}
