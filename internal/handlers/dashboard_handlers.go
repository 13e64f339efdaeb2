package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminStats is the KPI block for the admin dashboard.
type AdminStats struct {
	PendingOrders      int     `json:"pendingOrders"`
	ConfirmedOrders    int     `json:"confirmedOrders"`
	DeliveredOrders    int     `json:"deliveredOrders"`
	TotalRevenue       float64 `json:"totalRevenue"` // Sum of delivered order totals
	LowStockCount      int     `json:"lowStockCount"`
	PendingEmergencies int     `json:"pendingEmergencies"`
	TodaysAppointments int     `json:"todaysAppointments"`
	TotalPatients      int     `json:"totalPatients"`
}

// GetAdminStats returns KPI data for the admin dashboard
// GET /api/admin/dashboard-stats
func (h *Handlers) GetAdminStats(c *gin.Context) {
	stats := AdminStats{}

	// 1. Orders by Status
	rows, err := h.DB.Query("SELECT status, COUNT(*) FROM orders GROUP BY status")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count orders"})
		return
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan order counts"})
			return
		}
		switch status {
		case "pending":
			stats.PendingOrders = count
		case "confirmed":
			stats.ConfirmedOrders = count
		case "delivered":
			stats.DeliveredOrders = count
		}
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read order counts"})
		return
	}

	// 2. Revenue (Delivered Orders Only)
	err = h.DB.QueryRow("SELECT COALESCE(SUM(total), 0) FROM orders WHERE status = 'delivered'").Scan(&stats.TotalRevenue)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sum revenue"})
		return
	}

	// 3. Low Stock Medicines
	err = h.DB.QueryRow("SELECT COUNT(*) FROM medicines WHERE stock < low_stock_threshold").Scan(&stats.LowStockCount)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count low stock medicines"})
		return
	}

	// 4. Pending Emergencies
	err = h.DB.QueryRow("SELECT COUNT(*) FROM emergencies WHERE status = 'pending'").Scan(&stats.PendingEmergencies)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count emergencies"})
		return
	}

	// 5. Today's Appointments
	err = h.DB.QueryRow("SELECT COUNT(*) FROM appointments WHERE DATE(appointment_date) = CURDATE()").Scan(&stats.TodaysAppointments)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count appointments"})
		return
	}

	// 6. Registered Patients
	err = h.DB.QueryRow("SELECT COUNT(*) FROM users WHERE role = 'patient'").Scan(&stats.TotalPatients)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count patients"})
		return
	}

	c.JSON(http.StatusOK, stats)
}
