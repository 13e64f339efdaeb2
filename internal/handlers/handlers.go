package handlers

import (
	"database/sql"

	"github.com/jaswan333/hospital-golang/internal/ai"
	"github.com/jaswan333/hospital-golang/internal/orders"
)

// Handlers holds all dependencies for the HTTP layer.
type Handlers struct {
	DB        *sql.DB
	Orders    orders.Service
	Assistant *ai.AssistantService // nil when GEMINI_API_KEY is not set
}
