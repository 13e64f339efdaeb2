package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jaswan333/hospital-golang/internal/models"
)

//
// --- Doctor Handlers ---
//

const doctorColumns = `id, name, specialty, experience, status, attendance,
	image, phone, email, qualifications, created_at, updated_at`

func scanDoctor(row interface{ Scan(...interface{}) error }) (*models.Doctor, error) {
	var d models.Doctor
	var qualifications sql.NullString
	err := row.Scan(
		&d.ID, &d.Name, &d.Specialty, &d.Experience, &d.Status, &d.Attendance,
		&d.Image, &d.Phone, &d.Email, &qualifications, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	d.Qualifications = []string{}
	if qualifications.Valid && qualifications.String != "" {
		if err := json.Unmarshal([]byte(qualifications.String), &d.Qualifications); err != nil {
			return nil, err
		}
	}
	return &d, nil
}

// GetDoctors is the handler for GET /api/doctors
func (h *Handlers) GetDoctors(c *gin.Context) {
	rows, err := h.DB.Query("SELECT " + doctorColumns + " FROM doctors ORDER BY name ASC")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}
	defer rows.Close()

	doctors := []*models.Doctor{}
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to scan doctor row"})
			return
		}
		doctors = append(doctors, d)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error iterating doctor rows"})
		return
	}

	c.JSON(http.StatusOK, doctors)
}

// DoctorInput is shared by create and update.
type DoctorInput struct {
	Name           string   `json:"name" binding:"required"`
	Specialty      string   `json:"specialty" binding:"required"`
	Experience     string   `json:"experience" binding:"required"`
	Status         string   `json:"status"`
	Attendance     string   `json:"attendance"`
	Image          *string  `json:"image"`
	Phone          string   `json:"phone" binding:"required"`
	Email          string   `json:"email" binding:"required,email"`
	Qualifications []string `json:"qualifications"`
}

// CreateDoctor is the handler for POST /api/doctors
func (h *Handlers) CreateDoctor(c *gin.Context) {
	var input DoctorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed", "error": err.Error()})
		return
	}

	if input.Status == "" {
		input.Status = "Available"
	}
	if input.Attendance == "" {
		input.Attendance = "95%"
	}
	if input.Qualifications == nil {
		input.Qualifications = []string{}
	}
	qualifications, err := json.Marshal(input.Qualifications)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}

	now := time.Now()
	res, err := h.DB.Exec(`
		INSERT INTO doctors (name, specialty, experience, status, attendance,
			image, phone, email, qualifications, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		input.Name, input.Specialty, input.Experience, input.Status, input.Attendance,
		input.Image, input.Phone, input.Email, string(qualifications), now, now,
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

	doctor, err := scanDoctor(h.DB.QueryRow("SELECT "+doctorColumns+" FROM doctors WHERE id = ?", id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Doctor added", "doctor": doctor})
}

// UpdateDoctor is the handler for PUT /api/doctors/:id
func (h *Handlers) UpdateDoctor(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid doctor id"})
		return
	}

	var input DoctorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed", "error": err.Error()})
		return
	}

	if input.Qualifications == nil {
		input.Qualifications = []string{}
	}
	qualifications, err := json.Marshal(input.Qualifications)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}

	_, err = h.DB.Exec(`
		UPDATE doctors SET name = ?, specialty = ?, experience = ?, status = ?, attendance = ?,
			image = ?, phone = ?, email = ?, qualifications = ?, updated_at = ?
		WHERE id = ?`,
		input.Name, input.Specialty, input.Experience, input.Status, input.Attendance,
		input.Image, input.Phone, input.Email, string(qualifications), time.Now(), id,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}

	doctor, err := scanDoctor(h.DB.QueryRow("SELECT "+doctorColumns+" FROM doctors WHERE id = ?", id))
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"message": "Doctor not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, doctor)
}

// DeleteDoctor is the handler for DELETE /api/doctors/:id
func (h *Handlers) DeleteDoctor(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid doctor id"})
		return
	}

	if _, err := h.DB.Exec("DELETE FROM doctors WHERE id = ?", id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Doctor deleted"})
}
