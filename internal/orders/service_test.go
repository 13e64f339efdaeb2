package orders

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetMedicineForOrder(ctx context.Context, medicineID int64, name string) (*CatalogMedicine, error) {
	args := m.Called(ctx, medicineID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CatalogMedicine), args.Error(1)
}

func (m *MockRepository) CreateOrderTx(ctx context.Context, order *Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockRepository) GetOrder(ctx context.Context, orderID int64) (*Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepository) ListOrders(ctx context.Context) ([]*Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Order), args.Error(1)
}

func (m *MockRepository) GetOrderStatus(ctx context.Context, orderID int64) (Status, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(Status), args.Error(1)
}

func (m *MockRepository) UpdateOrderStatus(ctx context.Context, orderID int64, from, to Status) error {
	args := m.Called(ctx, orderID, from, to)
	return args.Error(0)
}

func (m *MockRepository) AdjustStock(ctx context.Context, medicineID int64, delta int) (*CatalogMedicine, error) {
	args := m.Called(ctx, medicineID, delta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CatalogMedicine), args.Error(1)
}

// --- PlaceOrder ---

func TestPlaceOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("Computes totals from catalog prices", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, 0.18)

		repo.On("GetMedicineForOrder", ctx, int64(1), "Paracetamol").
			Return(&CatalogMedicine{ID: 1, Name: "Paracetamol", Price: 25, Stock: 150}, nil)
		repo.On("CreateOrderTx", ctx, mock.AnythingOfType("*orders.Order")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*Order).ID = 10
			}).
			Return(nil)

		order, err := svc.PlaceOrder(ctx, PlaceOrderInput{
			CustomerName:  "Ravi",
			CustomerPhone: "9876543210",
			Items: []LineItemInput{
				// Client price of 1 is deliberately wrong; the catalog wins.
				{MedicineID: 1, Name: "Paracetamol", UnitPrice: 1, Quantity: 2},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, int64(10), order.ID)
		assert.NotEmpty(t, order.Reference)
		assert.Equal(t, 50.0, order.Subtotal)
		assert.Equal(t, 9.0, order.ServiceTax)
		assert.Equal(t, 59.0, order.Total)
		assert.Equal(t, StatusPending, order.Status)
		require.Len(t, order.Items, 1)
		assert.Equal(t, 25.0, order.Items[0].UnitPrice)
		assert.Equal(t, 2, order.Items[0].Quantity)
		repo.AssertExpectations(t)
	})

	t.Run("Preserves line item order", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, 0.18)

		repo.On("GetMedicineForOrder", ctx, int64(2), "Aspirin").
			Return(&CatalogMedicine{ID: 2, Name: "Aspirin", Price: 30, Stock: 5}, nil)
		repo.On("GetMedicineForOrder", ctx, int64(1), "Paracetamol").
			Return(&CatalogMedicine{ID: 1, Name: "Paracetamol", Price: 25, Stock: 150}, nil)
		repo.On("CreateOrderTx", ctx, mock.Anything).Return(nil)

		order, err := svc.PlaceOrder(ctx, PlaceOrderInput{
			CustomerName:  "Ravi",
			CustomerPhone: "9876543210",
			Items: []LineItemInput{
				{MedicineID: 2, Name: "Aspirin", Quantity: 1},
				{MedicineID: 1, Name: "Paracetamol", Quantity: 3},
			},
		})

		require.NoError(t, err)
		require.Len(t, order.Items, 2)
		assert.Equal(t, "Aspirin", order.Items[0].Name)
		assert.Equal(t, "Paracetamol", order.Items[1].Name)
		assert.Equal(t, 105.0, order.Subtotal) // 30 + 75
	})

	t.Run("Validation failures never touch the repository", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, 0.18)

		cases := []PlaceOrderInput{
			{CustomerPhone: "9876543210", Items: []LineItemInput{{MedicineID: 1, Quantity: 1}}},
			{CustomerName: "Ravi", Items: []LineItemInput{{MedicineID: 1, Quantity: 1}}},
			{CustomerName: "Ravi", CustomerPhone: "9876543210"},
			{CustomerName: "Ravi", CustomerPhone: "9876543210", Items: []LineItemInput{{MedicineID: 1, Quantity: 0}}},
			{CustomerName: "Ravi", CustomerPhone: "9876543210", Items: []LineItemInput{{MedicineID: 1, Quantity: -2}}},
			{CustomerName: "Ravi", CustomerPhone: "9876543210", Items: []LineItemInput{{Quantity: 1}}},
		}

		for _, input := range cases {
			_, err := svc.PlaceOrder(ctx, input)
			var verr *ValidationError
			assert.ErrorAs(t, err, &verr)
		}

		repo.AssertNotCalled(t, "GetMedicineForOrder")
		repo.AssertNotCalled(t, "CreateOrderTx")
	})

	t.Run("Unknown medicine rejects the whole order", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, 0.18)

		repo.On("GetMedicineForOrder", ctx, int64(999), "Ghost Pill").
			Return(nil, ErrMedicineNotFound)

		_, err := svc.PlaceOrder(ctx, PlaceOrderInput{
			CustomerName:  "Ravi",
			CustomerPhone: "9876543210",
			Items:         []LineItemInput{{MedicineID: 999, Name: "Ghost Pill", Quantity: 1}},
		})

		assert.ErrorIs(t, err, ErrMedicineNotFound)
		repo.AssertNotCalled(t, "CreateOrderTx")
	})

	t.Run("Insufficient stock surfaces from the transaction", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, 0.18)

		repo.On("GetMedicineForOrder", ctx, int64(1), "Paracetamol").
			Return(&CatalogMedicine{ID: 1, Name: "Paracetamol", Price: 25, Stock: 1}, nil)
		repo.On("CreateOrderTx", ctx, mock.Anything).Return(ErrInsufficientStock)

		_, err := svc.PlaceOrder(ctx, PlaceOrderInput{
			CustomerName:  "Ravi",
			CustomerPhone: "9876543210",
			Items:         []LineItemInput{{MedicineID: 1, Name: "Paracetamol", Quantity: 5}},
		})

		assert.ErrorIs(t, err, ErrInsufficientStock)
	})

	t.Run("Custom tax rate", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, 0.05)

		repo.On("GetMedicineForOrder", ctx, int64(1), "").
			Return(&CatalogMedicine{ID: 1, Name: "Paracetamol", Price: 100, Stock: 50}, nil)
		repo.On("CreateOrderTx", ctx, mock.Anything).Return(nil)

		order, err := svc.PlaceOrder(ctx, PlaceOrderInput{
			CustomerName:  "Ravi",
			CustomerPhone: "9876543210",
			Items:         []LineItemInput{{MedicineID: 1, Quantity: 1}},
		})

		require.NoError(t, err)
		assert.Equal(t, 5.0, order.ServiceTax)
		assert.Equal(t, 105.0, order.Total)
	})
}

// --- SetStatus ---

func TestSetStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Pending to confirmed", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, 0.18)

		repo.On("GetOrderStatus", ctx, int64(1)).Return(StatusPending, nil)
		repo.On("UpdateOrderStatus", ctx, int64(1), StatusPending, StatusConfirmed).Return(nil)
		repo.On("GetOrder", ctx, int64(1)).Return(&Order{ID: 1, Status: StatusConfirmed}, nil)

		order, err := svc.SetStatus(ctx, 1, StatusConfirmed)
		require.NoError(t, err)
		assert.Equal(t, StatusConfirmed, order.Status)
		repo.AssertExpectations(t)
	})

	t.Run("Repeat transition is rejected", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, 0.18)

		repo.On("GetOrderStatus", ctx, int64(1)).Return(StatusConfirmed, nil)

		_, err := svc.SetStatus(ctx, 1, StatusConfirmed)
		assert.ErrorIs(t, err, ErrInvalidTransition)
		repo.AssertNotCalled(t, "UpdateOrderStatus")
	})

	t.Run("Skipping a state is rejected", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, 0.18)

		repo.On("GetOrderStatus", ctx, int64(1)).Return(StatusPending, nil)

		_, err := svc.SetStatus(ctx, 1, StatusDelivered)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("Backward transition is rejected", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, 0.18)

		repo.On("GetOrderStatus", ctx, int64(1)).Return(StatusDelivered, nil)

		_, err := svc.SetStatus(ctx, 1, StatusConfirmed)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("Unknown order", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, 0.18)

		repo.On("GetOrderStatus", ctx, int64(99)).Return(Status(""), ErrOrderNotFound)

		_, err := svc.SetStatus(ctx, 99, StatusConfirmed)
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})

	t.Run("Lost race surfaces as invalid transition", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, 0.18)

		repo.On("GetOrderStatus", ctx, int64(1)).Return(StatusPending, nil)
		repo.On("UpdateOrderStatus", ctx, int64(1), StatusPending, StatusConfirmed).
			Return(ErrInvalidTransition)

		_, err := svc.SetStatus(ctx, 1, StatusConfirmed)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

// --- AdjustStock ---

func TestServiceAdjustStock(t *testing.T) {
	ctx := context.Background()

	t.Run("Delegates to repository", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, 0.18)

		repo.On("AdjustStock", ctx, int64(1), -3).
			Return(&CatalogMedicine{ID: 1, Name: "Paracetamol", Price: 25, Stock: 147}, nil)

		m, err := svc.AdjustStock(ctx, 1, -3)
		require.NoError(t, err)
		assert.Equal(t, 147, m.Stock)
	})

	t.Run("Zero delta is rejected", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, 0.18)

		_, err := svc.AdjustStock(ctx, 1, 0)
		var verr *ValidationError
		assert.ErrorAs(t, err, &verr)
		repo.AssertNotCalled(t, "AdjustStock")
	})

	t.Run("Repository errors pass through", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, 0.18)

		repo.On("AdjustStock", ctx, int64(1), -500).
			Return(nil, errors.New("db down"))

		_, err := svc.AdjustStock(ctx, 1, -500)
		assert.Error(t, err)
	})
}
