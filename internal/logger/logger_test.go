package logger

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.uber.org/zap"
)

// swap replaces the global logger and returns a restore func.
func swap(l *zap.Logger) func() {
	mu.Lock()
	original := log
	log = l
	mu.Unlock()

	return func() {
		mu.Lock()
		log = original
		mu.Unlock()
	}
}

func TestInit(t *testing.T) {
	defer swap(nil)()

	t.Run("Production", func(t *testing.T) {
		Init("production")
		assert.NotNil(t, L())
	})

	t.Run("Development", func(t *testing.T) {
		Init("development")
		assert.NotNil(t, L())
	})
}

func TestLBuildsLazily(t *testing.T) {
	defer swap(nil)()
	t.Setenv("APP_ENV", "test")

	l := L()
	assert.NotNil(t, l)
	assert.Same(t, l, L())
}

func TestLConcurrentFirstUse(t *testing.T) {
	defer swap(nil)()
	t.Setenv("APP_ENV", "test")

	// All goroutines race to be the one that builds the logger; every
	// caller must come back with the same instance.
	loggers := make([]*zap.Logger, 16)
	var wg sync.WaitGroup
	for i := range loggers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			loggers[i] = L()
		}(i)
	}
	wg.Wait()

	require.NotNil(t, loggers[0])
	for _, l := range loggers {
		assert.Same(t, loggers[0], l)
	}
}

func TestInitDuringConcurrentUse(t *testing.T) {
	defer swap(nil)()
	t.Setenv("APP_ENV", "test")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NotNil(t, L())
		}()
	}
	Init("development")
	wg.Wait()

	assert.NotNil(t, L())
}

func TestContextFunctions(t *testing.T) {
	ctx := context.Background()
	reqID := "req-123"

	t.Run("WithRequestID", func(t *testing.T) {
		newCtx := WithRequestID(ctx, reqID)
		assert.Equal(t, reqID, RequestIDFrom(newCtx))
	})

	t.Run("RequestIDFrom empty", func(t *testing.T) {
		assert.Equal(t, "", RequestIDFrom(ctx))
	})

	t.Run("FromCtx", func(t *testing.T) {
		assert.NotNil(t, FromCtx(WithRequestID(ctx, reqID)))
		assert.NotNil(t, FromCtx(ctx))
	})
}
