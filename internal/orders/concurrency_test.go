package orders

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stockRepo is an in-memory Repository whose decrement has the same
// semantics as the SQL conditional update: atomic, never below zero.
type stockRepo struct {
	mu     sync.Mutex
	stock  map[int64]int
	prices map[int64]float64
	nextID int64
	orders map[int64]*Order
}

func newStockRepo() *stockRepo {
	return &stockRepo{
		stock:  map[int64]int{},
		prices: map[int64]float64{},
		orders: map[int64]*Order{},
	}
}

func (r *stockRepo) GetMedicineForOrder(ctx context.Context, medicineID int64, name string) (*CatalogMedicine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	price, ok := r.prices[medicineID]
	if !ok {
		return nil, ErrMedicineNotFound
	}
	return &CatalogMedicine{ID: medicineID, Name: name, Price: price, Stock: r.stock[medicineID]}, nil
}

func (r *stockRepo) CreateOrderTx(ctx context.Context, order *Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Check every decrement before applying any, mirroring the all-or
	// -nothing transaction.
	for _, item := range order.Items {
		if r.stock[item.MedicineID] < item.Quantity {
			return ErrInsufficientStock
		}
	}
	for _, item := range order.Items {
		r.stock[item.MedicineID] -= item.Quantity
	}
	r.nextID++
	order.ID = r.nextID
	r.orders[order.ID] = order
	return nil
}

func (r *stockRepo) GetOrder(ctx context.Context, orderID int64) (*Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[orderID]
	if !ok {
		return nil, ErrOrderNotFound
	}
	return o, nil
}

func (r *stockRepo) ListOrders(ctx context.Context) ([]*Order, error) { return nil, nil }

func (r *stockRepo) GetOrderStatus(ctx context.Context, orderID int64) (Status, error) {
	o, err := r.GetOrder(ctx, orderID)
	if err != nil {
		return "", err
	}
	return o.Status, nil
}

func (r *stockRepo) UpdateOrderStatus(ctx context.Context, orderID int64, from, to Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[orderID]
	if !ok || o.Status != from {
		return ErrInvalidTransition
	}
	o.Status = to
	return nil
}

func (r *stockRepo) AdjustStock(ctx context.Context, medicineID int64, delta int) (*CatalogMedicine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.prices[medicineID]; !ok {
		return nil, ErrMedicineNotFound
	}
	if r.stock[medicineID]+delta < 0 {
		return nil, ErrInsufficientStock
	}
	r.stock[medicineID] += delta
	return &CatalogMedicine{ID: medicineID, Price: r.prices[medicineID], Stock: r.stock[medicineID]}, nil
}

// Two concurrent orders that together exceed stock: exactly one must
// succeed in full, the other must fail cleanly, and stock must reflect
// only the completed sale. Run with -race.
func TestPlaceOrder_ConcurrentOversell(t *testing.T) {
	ctx := context.Background()
	repo := newStockRepo()
	repo.prices[1] = 25
	repo.stock[1] = 5

	svc := NewService(repo, 0.18)

	input := func(qty int) PlaceOrderInput {
		return PlaceOrderInput{
			CustomerName:  "Ravi",
			CustomerPhone: "9876543210",
			Items:         []LineItemInput{{MedicineID: 1, Name: "Paracetamol 500mg", Quantity: qty}},
		}
	}

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i, qty := range []int{4, 3} { // 4 + 3 > 5
		wg.Add(1)
		go func(i, qty int) {
			defer wg.Done()
			_, results[i] = svc.PlaceOrder(ctx, input(qty))
		}(i, qty)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrInsufficientStock)
		}
	}
	require.Equal(t, 1, succeeded, "exactly one of the two orders must win")

	// Remaining stock is 5 minus whichever quantity won: 1 or 2, never
	// negative and never double-decremented.
	remaining := repo.stock[1]
	assert.Contains(t, []int{1, 2}, remaining)
}

// Many concurrent single-unit orders against small stock: total sold can
// never exceed starting stock.
func TestPlaceOrder_ConcurrentExactDrain(t *testing.T) {
	ctx := context.Background()
	repo := newStockRepo()
	repo.prices[1] = 10
	repo.stock[1] = 8

	svc := NewService(repo, 0.18)

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.PlaceOrder(ctx, PlaceOrderInput{
				CustomerName:  "Ravi",
				CustomerPhone: "9876543210",
				Items:         []LineItemInput{{MedicineID: 1, Name: "x", Quantity: 1}},
			})
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 8, succeeded)
	assert.Equal(t, 0, repo.stock[1])
}
