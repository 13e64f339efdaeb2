package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"

	"github.com/jaswan333/hospital-golang/internal/models"
	"github.com/jaswan333/hospital-golang/internal/orders"
)

//
// --- Medicine (Catalog) Handlers ---
//

const medicineColumns = `id, name, slug, category, price, stock, low_stock_threshold,
	image, description, manufacturer, expiry_date, used_for, created_at, updated_at`

func scanMedicine(row interface{ Scan(...interface{}) error }) (*models.Medicine, error) {
	var m models.Medicine
	err := row.Scan(
		&m.ID, &m.Name, &m.Slug, &m.Category, &m.Price, &m.Stock, &m.LowStockThreshold,
		&m.Image, &m.Description, &m.Manufacturer, &m.ExpiryDate, &m.UsedFor,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// GetMedicines is the handler for GET /api/medicines
func (h *Handlers) GetMedicines(c *gin.Context) {
	rows, err := h.DB.Query("SELECT " + medicineColumns + " FROM medicines ORDER BY name ASC")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}
	defer rows.Close()

	medicines := []*models.Medicine{}
	for rows.Next() {
		m, err := scanMedicine(rows)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to scan medicine row"})
			return
		}
		medicines = append(medicines, m)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error iterating medicine rows"})
		return
	}

	c.JSON(http.StatusOK, medicines)
}

// GetLowStockMedicines is the handler for GET /api/medicines/low-stock
func (h *Handlers) GetLowStockMedicines(c *gin.Context) {
	rows, err := h.DB.Query("SELECT " + medicineColumns + " FROM medicines WHERE stock < low_stock_threshold ORDER BY stock ASC")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}
	defer rows.Close()

	medicines := []*models.Medicine{}
	for rows.Next() {
		m, err := scanMedicine(rows)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to scan medicine row"})
			return
		}
		medicines = append(medicines, m)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error iterating medicine rows"})
		return
	}

	c.JSON(http.StatusOK, medicines)
}

// CreateMedicineInput defines the JSON for creating a catalog entry.
type CreateMedicineInput struct {
	Name              string     `json:"name" binding:"required"`
	Category          string     `json:"category" binding:"required"`
	Price             float64    `json:"price" binding:"required,gte=0"`
	Stock             int        `json:"stock" binding:"gte=0"`
	LowStockThreshold *int       `json:"lowStockThreshold"`
	Image             *string    `json:"image"`
	Description       *string    `json:"description"`
	Manufacturer      *string    `json:"manufacturer"`
	ExpiryDate        *time.Time `json:"expiryDate"`
	UsedFor           *string    `json:"usedFor"`
}

// CreateMedicine is the handler for POST /api/medicines
func (h *Handlers) CreateMedicine(c *gin.Context) {
	var input CreateMedicineInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed", "error": err.Error()})
		return
	}

	threshold := 10
	if input.LowStockThreshold != nil {
		threshold = *input.LowStockThreshold
	}

	now := time.Now()
	res, err := h.DB.Exec(`
		INSERT INTO medicines (name, slug, category, price, stock, low_stock_threshold,
			image, description, manufacturer, expiry_date, used_for, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		input.Name, slug.Make(input.Name), input.Category, input.Price, input.Stock, threshold,
		input.Image, input.Description, input.Manufacturer, input.ExpiryDate, input.UsedFor, now, now,
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

	medicine, err := scanMedicine(h.DB.QueryRow("SELECT "+medicineColumns+" FROM medicines WHERE id = ?", id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Medicine created", "medicine": medicine})
}

// UpdateMedicineInput uses pointers so we only touch the fields that were
// actually sent. Sending just a stock keeps the fast path of the admin UI.
type UpdateMedicineInput struct {
	Name              *string    `json:"name"`
	Category          *string    `json:"category"`
	Price             *float64   `json:"price"`
	Stock             *int       `json:"stock" binding:"omitempty,gte=0"`
	LowStockThreshold *int       `json:"lowStockThreshold"`
	Image             *string    `json:"image"`
	Description       *string    `json:"description"`
	Manufacturer      *string    `json:"manufacturer"`
	ExpiryDate        *time.Time `json:"expiryDate"`
	UsedFor           *string    `json:"usedFor"`
}

// UpdateMedicine is the handler for PUT /api/medicines/:id
func (h *Handlers) UpdateMedicine(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid medicine id"})
		return
	}

	var input UpdateMedicineInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed", "error": err.Error()})
		return
	}

	// Build the SET clause from the fields present.
	set := "updated_at = ?"
	args := []interface{}{time.Now()}

	if input.Name != nil {
		set += ", name = ?, slug = ?"
		args = append(args, *input.Name, slug.Make(*input.Name))
	}
	if input.Category != nil {
		set += ", category = ?"
		args = append(args, *input.Category)
	}
	if input.Price != nil {
		set += ", price = ?"
		args = append(args, *input.Price)
	}
	if input.Stock != nil {
		set += ", stock = ?"
		args = append(args, *input.Stock)
	}
	if input.LowStockThreshold != nil {
		set += ", low_stock_threshold = ?"
		args = append(args, *input.LowStockThreshold)
	}
	if input.Image != nil {
		set += ", image = ?"
		args = append(args, *input.Image)
	}
	if input.Description != nil {
		set += ", description = ?"
		args = append(args, *input.Description)
	}
	if input.Manufacturer != nil {
		set += ", manufacturer = ?"
		args = append(args, *input.Manufacturer)
	}
	if input.ExpiryDate != nil {
		set += ", expiry_date = ?"
		args = append(args, *input.ExpiryDate)
	}
	if input.UsedFor != nil {
		set += ", used_for = ?"
		args = append(args, *input.UsedFor)
	}

	args = append(args, id)
	res, err := h.DB.Exec("UPDATE medicines SET "+set+" WHERE id = ?", args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		// The row may exist with identical values; confirm before 404ing.
		var exists int64
		if err := h.DB.QueryRow("SELECT id FROM medicines WHERE id = ?", id).Scan(&exists); err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"message": "Medicine not found"})
			return
		}
	}

	medicine, err := scanMedicine(h.DB.QueryRow("SELECT "+medicineColumns+" FROM medicines WHERE id = ?", id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, medicine)
}

// DeleteMedicine is the handler for DELETE /api/medicines/:id
func (h *Handlers) DeleteMedicine(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid medicine id"})
		return
	}

	if _, err := h.DB.Exec("DELETE FROM medicines WHERE id = ?", id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Medicine deleted"})
}

// AdjustStockInput is a signed delta; negative for a manual write-off.
type AdjustStockInput struct {
	Delta int `json:"delta" binding:"required"`
}

// AdjustStock is the handler for PATCH /api/medicines/:id/stock
func (h *Handlers) AdjustStock(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid medicine id"})
		return
	}

	var input AdjustStockInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed", "error": err.Error()})
		return
	}

	medicine, err := h.Orders.AdjustStock(c.Request.Context(), id, input.Delta)
	if err != nil {
		var verr *orders.ValidationError
		switch {
		case errors.As(err, &verr):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed", "errors": verr.Fields})
		case errors.Is(err, orders.ErrMedicineNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Medicine not found"})
		case errors.Is(err, orders.ErrInsufficientStock):
			c.JSON(http.StatusConflict, gin.H{"message": "Stock cannot go below zero", "error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, medicine)
}
