package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jaswan333/hospital-golang/internal/orders"
)

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) PlaceOrder(ctx context.Context, input orders.PlaceOrderInput) (*orders.Order, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orders.Order), args.Error(1)
}

func (m *MockOrderService) SetStatus(ctx context.Context, orderID int64, next orders.Status) (*orders.Order, error) {
	args := m.Called(ctx, orderID, next)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orders.Order), args.Error(1)
}

func (m *MockOrderService) GetOrder(ctx context.Context, orderID int64) (*orders.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orders.Order), args.Error(1)
}

func (m *MockOrderService) ListOrders(ctx context.Context) ([]*orders.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*orders.Order), args.Error(1)
}

func (m *MockOrderService) AdjustStock(ctx context.Context, medicineID int64, delta int) (*orders.CatalogMedicine, error) {
	args := m.Called(ctx, medicineID, delta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orders.CatalogMedicine), args.Error(1)
}

func newOrderTestRouter(svc orders.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := &Handlers{Orders: svc}
	router := gin.New()
	router.POST("/api/orders", h.CreateOrder)
	router.GET("/api/orders", h.GetOrders)
	router.PUT("/api/orders/:id", h.UpdateOrderStatus)
	router.PATCH("/api/medicines/:id/stock", h.AdjustStock)
	return router
}

func doJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateOrderHandler(t *testing.T) {
	t.Run("Placed order returns 201 with the order", func(t *testing.T) {
		svc := new(MockOrderService)
		router := newOrderTestRouter(svc)

		placed := &orders.Order{
			ID: 7, Reference: "ref-7", CustomerName: "Asha", CustomerPhone: "9876543210",
			Subtotal: 50, ServiceTax: 9, Total: 59, Status: orders.StatusPending,
		}
		svc.On("PlaceOrder", mock.Anything, mock.AnythingOfType("orders.PlaceOrderInput")).
			Return(placed, nil)

		w := doJSON(router, http.MethodPost, "/api/orders", gin.H{
			"customerName":  "Asha",
			"customerPhone": "9876543210",
			"items":         []gin.H{{"medicineId": 1, "quantity": 2}},
		})

		require.Equal(t, http.StatusCreated, w.Code)
		var resp struct {
			Message string       `json:"message"`
			Order   orders.Order `json:"order"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Order placed", resp.Message)
		assert.Equal(t, int64(7), resp.Order.ID)
		assert.Equal(t, 59.0, resp.Order.Total)
	})

	t.Run("Validation errors map to 400 with a field list", func(t *testing.T) {
		svc := new(MockOrderService)
		router := newOrderTestRouter(svc)

		svc.On("PlaceOrder", mock.Anything, mock.Anything).
			Return(nil, &orders.ValidationError{Fields: []string{"customerName is required"}})

		w := doJSON(router, http.MethodPost, "/api/orders", gin.H{"items": []gin.H{}})

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Validation failed")
		assert.Contains(t, w.Body.String(), "customerName is required")
	})

	t.Run("Unknown medicine maps to 404", func(t *testing.T) {
		svc := new(MockOrderService)
		router := newOrderTestRouter(svc)

		svc.On("PlaceOrder", mock.Anything, mock.Anything).
			Return(nil, orders.ErrMedicineNotFound)

		w := doJSON(router, http.MethodPost, "/api/orders", gin.H{
			"customerName": "Asha", "customerPhone": "9876543210",
			"items": []gin.H{{"name": "No Such Pill", "quantity": 1}},
		})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Insufficient stock maps to 409", func(t *testing.T) {
		svc := new(MockOrderService)
		router := newOrderTestRouter(svc)

		svc.On("PlaceOrder", mock.Anything, mock.Anything).
			Return(nil, orders.ErrInsufficientStock)

		w := doJSON(router, http.MethodPost, "/api/orders", gin.H{
			"customerName": "Asha", "customerPhone": "9876543210",
			"items": []gin.H{{"medicineId": 3, "quantity": 500}},
		})

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestUpdateOrderStatusHandler(t *testing.T) {
	t.Run("Valid transition returns the updated order", func(t *testing.T) {
		svc := new(MockOrderService)
		router := newOrderTestRouter(svc)

		svc.On("SetStatus", mock.Anything, int64(7), orders.StatusConfirmed).
			Return(&orders.Order{ID: 7, Status: orders.StatusConfirmed}, nil)

		w := doJSON(router, http.MethodPut, "/api/orders/7", gin.H{"status": "confirmed"})

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "confirmed")
	})

	t.Run("Unknown status string is rejected before the service", func(t *testing.T) {
		svc := new(MockOrderService)
		router := newOrderTestRouter(svc)

		w := doJSON(router, http.MethodPut, "/api/orders/7", gin.H{"status": "shipped"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "SetStatus")
	})

	t.Run("Invalid transition maps to 409", func(t *testing.T) {
		svc := new(MockOrderService)
		router := newOrderTestRouter(svc)

		svc.On("SetStatus", mock.Anything, int64(7), orders.StatusDelivered).
			Return(nil, orders.ErrInvalidTransition)

		w := doJSON(router, http.MethodPut, "/api/orders/7", gin.H{"status": "delivered"})

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Missing order maps to 404", func(t *testing.T) {
		svc := new(MockOrderService)
		router := newOrderTestRouter(svc)

		svc.On("SetStatus", mock.Anything, int64(99), orders.StatusConfirmed).
			Return(nil, orders.ErrOrderNotFound)

		w := doJSON(router, http.MethodPut, "/api/orders/99", gin.H{"status": "confirmed"})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestAdjustStockHandler(t *testing.T) {
	t.Run("Delta is applied and the medicine returned", func(t *testing.T) {
		svc := new(MockOrderService)
		router := newOrderTestRouter(svc)

		svc.On("AdjustStock", mock.Anything, int64(3), -5).
			Return(&orders.CatalogMedicine{ID: 3, Name: "Aspirin 75mg", Price: 30, Stock: 0}, nil)

		w := doJSON(router, http.MethodPatch, "/api/medicines/3/stock", gin.H{"delta": -5})

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Aspirin 75mg")
	})

	t.Run("Going below zero maps to 409", func(t *testing.T) {
		svc := new(MockOrderService)
		router := newOrderTestRouter(svc)

		svc.On("AdjustStock", mock.Anything, int64(3), -100).
			Return(nil, orders.ErrInsufficientStock)

		w := doJSON(router, http.MethodPatch, "/api/medicines/3/stock", gin.H{"delta": -100})

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}
