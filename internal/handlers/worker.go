package handlers

import (
	"go.uber.org/zap"

	"github.com/jaswan333/hospital-golang/internal/logger"
)

// ProcessLowStockSweep is the background worker body. It scans the catalog
// for medicines under their reorder threshold and emits a warning per row so
// alerting can pick them up.
func (h *Handlers) ProcessLowStockSweep() {
	log := logger.L().With(zap.String("worker", "low_stock_sweep"))

	rows, err := h.DB.Query(
		"SELECT id, name, stock, low_stock_threshold FROM medicines WHERE stock < low_stock_threshold",
	)
	if err != nil {
		log.Error("sweep query failed", zap.Error(err))
		return
	}
	defer rows.Close()

	flagged := 0
	for rows.Next() {
		var id int64
		var name string
		var stock, threshold int
		if err := rows.Scan(&id, &name, &stock, &threshold); err != nil {
			log.Error("sweep scan failed", zap.Error(err))
			return
		}
		flagged++
		log.Warn("medicine below reorder threshold",
			zap.Int64("medicine_id", id),
			zap.String("name", name),
			zap.Int("stock", stock),
			zap.Int("threshold", threshold),
		)
	}
	if err := rows.Err(); err != nil {
		log.Error("sweep iteration failed", zap.Error(err))
		return
	}

	if flagged == 0 {
		log.Debug("sweep complete, no medicines below threshold")
	}
}
