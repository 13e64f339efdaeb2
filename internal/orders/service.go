package orders

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jaswan333/hospital-golang/internal/logger"
)

type Service interface {
	// PlaceOrder validates the cart, prices it against the catalog,
	// persists the order and decrements stock, all or nothing.
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (*Order, error)

	// SetStatus moves an order one step forward through its lifecycle.
	SetStatus(ctx context.Context, orderID int64, next Status) (*Order, error)

	GetOrder(ctx context.Context, orderID int64) (*Order, error)
	ListOrders(ctx context.Context) ([]*Order, error)

	// AdjustStock applies a signed stock delta to a single medicine.
	AdjustStock(ctx context.Context, medicineID int64, delta int) (*CatalogMedicine, error)
}

type service struct {
	repo    Repository
	taxRate float64
}

// NewService builds the order workflow. The tax rate is injected so tax
// policy can change without touching this package.
func NewService(repo Repository, taxRate float64) Service {
	return &service{repo: repo, taxRate: taxRate}
}

func (s *service) PlaceOrder(ctx context.Context, input PlaceOrderInput) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "orders"),
		zap.String("method", "PlaceOrder"),
		zap.Int("item_count", len(input.Items)),
	)

	if verr := validatePlaceOrder(input); verr != nil {
		log.Warn("order rejected", zap.Strings("fields", verr.Fields))
		return nil, verr
	}

	// Price the cart against the catalog. The client-supplied unitPrice
	// is ignored: the catalog is the authority.
	lines := make([]catalogLine, 0, len(input.Items))
	subtotal := 0.0
	for i, item := range input.Items {
		medicine, err := s.repo.GetMedicineForOrder(ctx, item.MedicineID, item.Name)
		if err != nil {
			log.Warn("line item did not resolve",
				zap.Int("index", i),
				zap.Int64("medicine_id", item.MedicineID),
				zap.String("name", item.Name),
				zap.Error(err),
			)
			return nil, err
		}

		subtotal += medicine.Price * float64(item.Quantity)
		lines = append(lines, catalogLine{
			MedicineID: medicine.ID,
			Name:       medicine.Name,
			UnitPrice:  medicine.Price,
			Quantity:   item.Quantity,
		})
	}

	subtotal = round2(subtotal)
	serviceTax := round2(subtotal * s.taxRate)
	total := round2(subtotal + serviceTax)

	now := time.Now()
	order := &Order{
		Reference:     uuid.NewString(),
		CustomerName:  input.CustomerName,
		CustomerPhone: input.CustomerPhone,
		Subtotal:      subtotal,
		ServiceTax:    serviceTax,
		Total:         total,
		Status:        StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, line := range lines {
		order.Items = append(order.Items, OrderItem{
			MedicineID: line.MedicineID,
			Name:       line.Name,
			UnitPrice:  line.UnitPrice,
			Quantity:   line.Quantity,
		})
	}

	if err := s.repo.CreateOrderTx(ctx, order); err != nil {
		log.Error("failed to persist order", zap.Error(err))
		return nil, err
	}

	log.Info("order placed",
		zap.Int64("order_id", order.ID),
		zap.String("reference", order.Reference),
		zap.Float64("total", order.Total),
	)
	return order, nil
}

func validatePlaceOrder(input PlaceOrderInput) *ValidationError {
	var fields []string
	if input.CustomerName == "" {
		fields = append(fields, "customerName is required")
	}
	if input.CustomerPhone == "" {
		fields = append(fields, "customerPhone is required")
	}
	if len(input.Items) == 0 {
		fields = append(fields, "items must not be empty")
	}
	for i, item := range input.Items {
		if item.Quantity <= 0 {
			fields = append(fields, fmt.Sprintf("items[%d].quantity must be positive", i))
		}
		if item.MedicineID == 0 && item.Name == "" {
			fields = append(fields, fmt.Sprintf("items[%d] needs a medicineId or a name", i))
		}
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func (s *service) SetStatus(ctx context.Context, orderID int64, next Status) (*Order, error) {
	current, err := s.repo.GetOrderStatus(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !current.CanTransitionTo(next) {
		return nil, fmt.Errorf("%s -> %s: %w", current, next, ErrInvalidTransition)
	}

	// The update is conditional on the status we just read, so a
	// concurrent transition makes exactly one of the callers fail.
	if err := s.repo.UpdateOrderStatus(ctx, orderID, current, next); err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("order status updated",
		zap.Int64("order_id", orderID),
		zap.String("from", string(current)),
		zap.String("to", string(next)),
	)

	return s.repo.GetOrder(ctx, orderID)
}

func (s *service) GetOrder(ctx context.Context, orderID int64) (*Order, error) {
	return s.repo.GetOrder(ctx, orderID)
}

func (s *service) ListOrders(ctx context.Context) ([]*Order, error) {
	return s.repo.ListOrders(ctx)
}

func (s *service) AdjustStock(ctx context.Context, medicineID int64, delta int) (*CatalogMedicine, error) {
	if delta == 0 {
		return nil, &ValidationError{Fields: []string{"delta must be non-zero"}}
	}
	return s.repo.AdjustStock(ctx, medicineID, delta)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
