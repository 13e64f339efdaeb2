package orders

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// CatalogMedicine is the slice of a medicine row the order workflow needs:
// the authoritative price and current stock.
type CatalogMedicine struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}

type Repository interface {
	// GetMedicineForOrder resolves a line item to a catalog row, by id
	// first and by exact name as a fallback. Returns ErrMedicineNotFound
	// when neither resolves.
	GetMedicineForOrder(ctx context.Context, medicineID int64, name string) (*CatalogMedicine, error)

	// CreateOrderTx persists the order, its items and all stock decrements
	// in a single transaction. A failed decrement rolls everything back.
	CreateOrderTx(ctx context.Context, order *Order) error

	GetOrder(ctx context.Context, orderID int64) (*Order, error)
	ListOrders(ctx context.Context) ([]*Order, error)

	GetOrderStatus(ctx context.Context, orderID int64) (Status, error)

	// UpdateOrderStatus moves an order from one status to another as a
	// single conditional update, so two concurrent transitions cannot
	// both apply.
	UpdateOrderStatus(ctx context.Context, orderID int64, from, to Status) error

	// AdjustStock applies a signed stock delta to a medicine. The update
	// is conditional so stock can never go below zero.
	AdjustStock(ctx context.Context, medicineID int64, delta int) (*CatalogMedicine, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetMedicineForOrder(ctx context.Context, medicineID int64, name string) (*CatalogMedicine, error) {
	var m CatalogMedicine

	if medicineID != 0 {
		err := r.db.QueryRowContext(ctx,
			"SELECT id, name, price, stock FROM medicines WHERE id = ?",
			medicineID,
		).Scan(&m.ID, &m.Name, &m.Price, &m.Stock)
		if err == nil {
			return &m, nil
		}
		if err != sql.ErrNoRows {
			return nil, err
		}
	}

	if name != "" {
		err := r.db.QueryRowContext(ctx,
			"SELECT id, name, price, stock FROM medicines WHERE name = ? LIMIT 1",
			name,
		).Scan(&m.ID, &m.Name, &m.Price, &m.Stock)
		if err == nil {
			return &m, nil
		}
		if err != sql.ErrNoRows {
			return nil, err
		}
	}

	return nil, ErrMedicineNotFound
}

func (r *repository) CreateOrderTx(ctx context.Context, order *Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO orders (reference, customer_name, customer_phone, subtotal, service_tax, total, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.Reference,
		order.CustomerName,
		order.CustomerPhone,
		order.Subtotal,
		order.ServiceTax,
		order.Total,
		order.Status,
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		return err
	}
	orderID, err := res.LastInsertId()
	if err != nil {
		return err
	}
	order.ID = orderID

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = orderID

		// Atomic conditional decrement. Zero rows affected means the
		// guard failed: either the row vanished or stock < quantity.
		res, err := tx.ExecContext(ctx,
			"UPDATE medicines SET stock = stock - ?, updated_at = ? WHERE id = ? AND stock >= ?",
			item.Quantity, order.CreatedAt, item.MedicineID, item.Quantity,
		)
		if err != nil {
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			var stock int
			err := tx.QueryRowContext(ctx,
				"SELECT stock FROM medicines WHERE id = ?", item.MedicineID,
			).Scan(&stock)
			if err == sql.ErrNoRows {
				return fmt.Errorf("medicine %d: %w", item.MedicineID, ErrMedicineNotFound)
			}
			if err != nil {
				return err
			}
			return fmt.Errorf("medicine %q has %d in stock, %d requested: %w",
				item.Name, stock, item.Quantity, ErrInsufficientStock)
		}

		itemRes, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, medicine_id, name, unit_price, quantity, created_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			orderID, item.MedicineID, item.Name, item.UnitPrice, item.Quantity, order.CreatedAt,
		)
		if err != nil {
			return err
		}
		if item.ID, err = itemRes.LastInsertId(); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *repository) GetOrder(ctx context.Context, orderID int64) (*Order, error) {
	var o Order
	err := r.db.QueryRowContext(ctx, `
		SELECT id, reference, customer_name, customer_phone, subtotal, service_tax, total, status, created_at, updated_at
		FROM orders WHERE id = ?`, orderID,
	).Scan(&o.ID, &o.Reference, &o.CustomerName, &o.CustomerPhone, &o.Subtotal, &o.ServiceTax, &o.Total, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := r.loadItems(ctx, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repository) ListOrders(ctx context.Context) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, reference, customer_name, customer_phone, subtotal, service_tax, total, status, created_at, updated_at
		FROM orders ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []*Order{}
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.Reference, &o.CustomerName, &o.CustomerPhone, &o.Subtotal, &o.ServiceTax, &o.Total, &o.Status, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, o := range orders {
		if err := r.loadItems(ctx, o); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *repository) loadItems(ctx context.Context, o *Order) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, medicine_id, name, unit_price, quantity
		FROM order_items WHERE order_id = ? ORDER BY id ASC`, o.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	o.Items = []OrderItem{}
	for rows.Next() {
		var item OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.MedicineID, &item.Name, &item.UnitPrice, &item.Quantity); err != nil {
			return err
		}
		o.Items = append(o.Items, item)
	}
	return rows.Err()
}

func (r *repository) GetOrderStatus(ctx context.Context, orderID int64) (Status, error) {
	var status Status
	err := r.db.QueryRowContext(ctx, "SELECT status FROM orders WHERE id = ?", orderID).Scan(&status)
	if err == sql.ErrNoRows {
		return "", ErrOrderNotFound
	}
	if err != nil {
		return "", err
	}
	return status, nil
}

func (r *repository) UpdateOrderStatus(ctx context.Context, orderID int64, from, to Status) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE orders SET status = ?, updated_at = ? WHERE id = ? AND status = ?",
		to, time.Now(), orderID, from,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		// The order moved under us (or never existed); either way the
		// requested transition no longer applies.
		return ErrInvalidTransition
	}
	return nil
}

func (r *repository) AdjustStock(ctx context.Context, medicineID int64, delta int) (*CatalogMedicine, error) {
	res, err := r.db.ExecContext(ctx,
		"UPDATE medicines SET stock = stock + ?, updated_at = ? WHERE id = ? AND stock + ? >= 0",
		delta, time.Now(), medicineID, delta,
	)
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		var stock int
		err := r.db.QueryRowContext(ctx, "SELECT stock FROM medicines WHERE id = ?", medicineID).Scan(&stock)
		if err == sql.ErrNoRows {
			return nil, ErrMedicineNotFound
		}
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("stock %d, delta %d: %w", stock, delta, ErrInsufficientStock)
	}

	var m CatalogMedicine
	err = r.db.QueryRowContext(ctx,
		"SELECT id, name, price, stock FROM medicines WHERE id = ?", medicineID,
	).Scan(&m.ID, &m.Name, &m.Price, &m.Stock)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
