package handlers

import (
	"database/sql"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jaswan333/hospital-golang/internal/models"
)

//
// --- Emergency Handlers ---
//

const emergencyColumns = `id, patient_name, email, phone, age, gender, emergency_type,
	symptoms, priority, status, latitude, longitude, address,
	is_pregnancy, pregnancy_weeks, pregnancy_complications,
	assigned_doctor, assigned_ambulance, estimated_arrival,
	user_id, admin_notes, completed_at, created_at, updated_at`

func scanEmergency(row interface{ Scan(...interface{}) error }) (*models.Emergency, error) {
	var e models.Emergency
	err := row.Scan(
		&e.ID, &e.PatientName, &e.Email, &e.Phone, &e.Age, &e.Gender, &e.EmergencyType,
		&e.Symptoms, &e.Priority, &e.Status,
		&e.Location.Latitude, &e.Location.Longitude, &e.Location.Address,
		&e.IsPregnancy, &e.PregnancyWeeks, &e.PregnancyComplications,
		&e.AssignedDoctor, &e.AssignedAmbulance, &e.EstimatedArrival,
		&e.UserID, &e.AdminNotes, &e.CompletedAt, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// CreateEmergencyInput is the emergency intake payload.
type CreateEmergencyInput struct {
	PatientName   string  `json:"patientName"`
	Email         *string `json:"email"`
	Phone         string  `json:"phone"`
	Age           *int    `json:"age"`
	Gender        string  `json:"gender"`
	EmergencyType string  `json:"emergencyType"`
	Symptoms      string  `json:"symptoms"`
	Priority      string  `json:"priority"`

	Location models.Location `json:"location"`

	IsPregnancy            bool    `json:"isPregnancy"`
	PregnancyWeeks         *int    `json:"pregnancyWeeks"`
	PregnancyComplications *string `json:"pregnancyComplications"`

	UserID *int64 `json:"userId"`
}

var validPriorities = map[string]bool{"low": true, "medium": true, "high": true, "critical": true}

// CreateEmergency is the handler for POST /api/emergencies
func (h *Handlers) CreateEmergency(c *gin.Context) {
	var input CreateEmergencyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body", "error": err.Error()})
		return
	}

	// 1. --- Validate Required Fields ---
	var missing []string
	if input.PatientName == "" {
		missing = append(missing, "patientName is required")
	}
	if input.Phone == "" {
		missing = append(missing, "phone is required")
	}
	if input.Gender == "" {
		missing = append(missing, "gender is required")
	}
	if input.Symptoms == "" {
		missing = append(missing, "symptoms is required")
	}
	if input.EmergencyType == "" {
		missing = append(missing, "emergencyType is required")
	}
	if len(missing) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed", "errors": missing})
		return
	}

	priority := input.Priority
	if priority == "" {
		priority = "medium"
	}
	if !validPriorities[priority] {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed", "errors": []string{"priority must be one of low, medium, high, critical"}})
		return
	}

	// 2. --- Insert the Emergency ---
	now := time.Now()
	res, err := h.DB.Exec(`
		INSERT INTO emergencies (patient_name, email, phone, age, gender, emergency_type,
			symptoms, priority, status, latitude, longitude, address,
			is_pregnancy, pregnancy_weeks, pregnancy_complications, user_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, 'pending', ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		input.PatientName, input.Email, input.Phone, input.Age, input.Gender, input.EmergencyType,
		input.Symptoms, priority,
		input.Location.Latitude, input.Location.Longitude, input.Location.Address,
		input.IsPregnancy, input.PregnancyWeeks, input.PregnancyComplications,
		input.UserID, now, now,
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

	emergency, err := scanEmergency(h.DB.QueryRow("SELECT "+emergencyColumns+" FROM emergencies WHERE id = ?", id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Emergency reported", "emergency": emergency})
}

// GetEmergencies is the handler for GET /api/emergencies
func (h *Handlers) GetEmergencies(c *gin.Context) {
	rows, err := h.DB.Query("SELECT " + emergencyColumns + " FROM emergencies ORDER BY created_at DESC")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}
	defer rows.Close()

	emergencies := []*models.Emergency{}
	for rows.Next() {
		e, err := scanEmergency(rows)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to scan emergency row"})
			return
		}
		emergencies = append(emergencies, e)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error iterating emergency rows"})
		return
	}

	c.JSON(http.StatusOK, emergencies)
}

// GetUserEmergencies is the handler for GET /api/emergencies/user/:userId
func (h *Handlers) GetUserEmergencies(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user id"})
		return
	}

	rows, err := h.DB.Query(
		"SELECT "+emergencyColumns+" FROM emergencies WHERE user_id = ? ORDER BY created_at DESC",
		userID,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}
	defer rows.Close()

	emergencies := []*models.Emergency{}
	for rows.Next() {
		e, err := scanEmergency(rows)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to scan emergency row"})
			return
		}
		emergencies = append(emergencies, e)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error iterating emergency rows"})
		return
	}

	c.JSON(http.StatusOK, emergencies)
}

// UpdateEmergencyInput covers the triage desk edits.
type UpdateEmergencyInput struct {
	Status            *string    `json:"status"`
	Priority          *string    `json:"priority"`
	AssignedDoctor    *string    `json:"assignedDoctor"`
	AssignedAmbulance *string    `json:"assignedAmbulance"`
	EstimatedArrival  *time.Time `json:"estimatedArrival"`
	AdminNotes        *string    `json:"adminNotes"`
}

// UpdateEmergency is the handler for PUT /api/emergencies/:id
func (h *Handlers) UpdateEmergency(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid emergency id"})
		return
	}

	var input UpdateEmergencyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed", "error": err.Error()})
		return
	}

	set := "updated_at = ?"
	args := []interface{}{time.Now()}

	if input.Status != nil {
		set += ", status = ?"
		args = append(args, *input.Status)
		// Closing the case stamps the completion time.
		if *input.Status == "completed" {
			set += ", completed_at = ?"
			args = append(args, time.Now())
		}
	}
	if input.Priority != nil {
		if !validPriorities[*input.Priority] {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed", "errors": []string{"priority must be one of low, medium, high, critical"}})
			return
		}
		set += ", priority = ?"
		args = append(args, *input.Priority)
	}
	if input.AssignedDoctor != nil {
		set += ", assigned_doctor = ?"
		args = append(args, *input.AssignedDoctor)
	}
	if input.AssignedAmbulance != nil {
		set += ", assigned_ambulance = ?"
		args = append(args, *input.AssignedAmbulance)
	}
	if input.EstimatedArrival != nil {
		set += ", estimated_arrival = ?"
		args = append(args, *input.EstimatedArrival)
	}
	if input.AdminNotes != nil {
		set += ", admin_notes = ?"
		args = append(args, *input.AdminNotes)
	}

	args = append(args, id)
	if _, err := h.DB.Exec(fmt.Sprintf("UPDATE emergencies SET %s WHERE id = ?", set), args...); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}

	emergency, err := scanEmergency(h.DB.QueryRow("SELECT "+emergencyColumns+" FROM emergencies WHERE id = ?", id))
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"message": "Emergency not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, emergency)
}

// DeleteEmergency is the handler for DELETE /api/emergencies/:id
func (h *Handlers) DeleteEmergency(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid emergency id"})
		return
	}

	if _, err := h.DB.Exec("DELETE FROM emergencies WHERE id = ?", id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Emergency deleted"})
}
