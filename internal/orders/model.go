package orders

import "time"

// Order is the model for the 'orders' table. Totals are always computed
// server-side at placement time; item prices are denormalized copies so
// historic orders are insulated from later catalog price changes.
type Order struct {
	ID            int64       `json:"id" db:"id"`
	Reference     string      `json:"reference" db:"reference"`
	CustomerName  string      `json:"customerName" db:"customer_name"`
	CustomerPhone string      `json:"customerPhone" db:"customer_phone"`
	Items         []OrderItem `json:"items"`
	Subtotal      float64     `json:"subtotal" db:"subtotal"`
	ServiceTax    float64     `json:"serviceTax" db:"service_tax"`
	Total         float64     `json:"total" db:"total"`
	Status        Status      `json:"status" db:"status"`
	CreatedAt     time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time   `json:"updatedAt" db:"updated_at"`
}

// OrderItem is the model for the 'order_items' table.
type OrderItem struct {
	ID         int64   `json:"id" db:"id"`
	OrderID    int64   `json:"orderId" db:"order_id"`
	MedicineID int64   `json:"medicineId" db:"medicine_id"`
	Name       string  `json:"name" db:"name"`
	UnitPrice  float64 `json:"unitPrice" db:"unit_price"`
	Quantity   int     `json:"quantity" db:"quantity"`
}

// PlaceOrderInput is the request shape for placing an order. Every field
// the workflow depends on is validated before any business logic runs.
type PlaceOrderInput struct {
	CustomerName  string          `json:"customerName"`
	CustomerPhone string          `json:"customerPhone"`
	Items         []LineItemInput `json:"items"`
}

// LineItemInput references a medicine by id, falling back to exact name
// when the id is absent. The client may send a unitPrice for display, but
// it is never trusted; the price is re-read from the catalog.
type LineItemInput struct {
	MedicineID int64   `json:"medicineId"`
	Name       string  `json:"name"`
	UnitPrice  float64 `json:"unitPrice"`
	Quantity   int     `json:"quantity"`
}

// catalogLine is a resolved line item: the authoritative medicine row the
// order will charge against and decrement.
type catalogLine struct {
	MedicineID int64
	Name       string
	UnitPrice  float64
	Quantity   int
}
