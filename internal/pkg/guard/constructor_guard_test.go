package guard_test

import (
	"errors"
	"testing"

	"orderflow/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConstructorGuard(t *testing.T) {
	t.Run("creates_properly_constructed_guard", func(t *testing.T) {
		// When
		guard := guard.NewConstructorGuard()

		// Then
		assert.NotNil(t, guard)

		// Test with custom error
		customError := errors.New("cart line not constructed")
		require.NoError(t, guard.Validate(customError))

		// Test with nil error (should use default)
		require.NoError(t, guard.Validate(nil))
	})
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("properly_constructed_guard_returns_nil", func(t *testing.T) {
		// Given
		guard := guard.NewConstructorGuard()
		customError := errors.New("not constructed")

		// When
		err := guard.Validate(customError)

		// Then
		require.NoError(t, err)
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		// Given
		var guard guard.ConstructorGuard // zero value
		expectedError := errors.New("order not constructed")

		// When
		err := guard.Validate(expectedError)

		// Then
		require.Error(t, err)
		assert.Equal(t, expectedError, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard // zero value

		// When
		err := g.Validate(nil)

		// Then
		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

// TestConstructorGuardUsageExample demonstrates how ConstructorGuard should be used
// in a domain object to enforce constructor usage.
func TestConstructorGuardUsageExample(t *testing.T) {
	// Define a sample domain object that uses ConstructorGuard
	type Portion struct {
		name  string
		price float64
		guard guard.ConstructorGuard
	}

	var errPortionNotConstructed = errors.New("Portion must be created via NewPortion")

	newPortion := func(name string, price float64) (Portion, error) {
		if name == "" {
			return Portion{}, errors.New("portion name is required")
		}
		if price < 0 {
			return Portion{}, errors.New("portion price cannot be negative")
		}
		return Portion{
			name:  name,
			price: price,
			guard: guard.NewConstructorGuard(),
		}, nil
	}

	validatePortion := func(p Portion) error {
		return p.guard.Validate(errPortionNotConstructed)
	}

	t.Run("valid_construction_through_constructor", func(t *testing.T) {
		// When
		portion, err := newPortion("Large", 12.50)

		// Then
		require.NoError(t, err)
		require.NoError(t, validatePortion(portion))
		assert.Equal(t, "Large", portion.name)
		assert.InDelta(t, 12.50, portion.price, 1e-9)
	})

	t.Run("zero_value_construction_validation", func(t *testing.T) {
		// Given
		var portion Portion // zero value

		// When
		err := validatePortion(portion)

		// Then
		// Zero value Portion has zero value guard which returns the error we pass
		require.Error(t, err)
		assert.Equal(t, errPortionNotConstructed, err)
	})

	t.Run("constructor_validates_business_rules", func(t *testing.T) {
		// Test empty name
		_, err := newPortion("", 12.50)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "portion name is required")

		// Test negative price
		_, err = newPortion("Large", -1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "portion price cannot be negative")
	})
}

// TestConstructorGuardRealWorldExample shows a better pattern using embedded types.
func TestConstructorGuardRealWorldExample(t *testing.T) {
	// Define error once
	var errDishNotConstructed = errors.New("Dish must be created via NewDish")

	// Define a guard-aware base type
	type guardedDish struct {
		guard guard.ConstructorGuard
	}

	newGuardedDish := func() guardedDish {
		return guardedDish{
			guard: guard.NewConstructorGuard(),
		}
	}

	validateGuardedDish := func(g guardedDish) error {
		return g.guard.Validate(errDishNotConstructed)
	}

	// Define the actual domain object
	type Dish struct {
		guardedDish
		id    string
		name  string
		price float64
	}

	newDish := func(id, name string, price float64) (Dish, error) {
		if id == "" {
			return Dish{}, errors.New("dish ID is required")
		}
		if name == "" {
			return Dish{}, errors.New("dish name is required")
		}
		if price < 0 {
			return Dish{}, errors.New("dish price cannot be negative")
		}
		return Dish{
			guardedDish: newGuardedDish(),
			id:          id,
			name:        name,
			price:       price,
		}, nil
	}

	t.Run("valid_dish_construction", func(t *testing.T) {
		// When
		dish, err := newDish("dish-1", "Pad Thai", 9.50)

		// Then
		require.NoError(t, err)
		require.NoError(t, validateGuardedDish(dish.guardedDish))
		assert.Equal(t, "dish-1", dish.id)
		assert.Equal(t, "Pad Thai", dish.name)
		assert.InDelta(t, 9.50, dish.price, 1e-9)
	})

	t.Run("zero_value_dish_fails_validation", func(t *testing.T) {
		// Given
		var dish Dish // zero value

		// When
		err := validateGuardedDish(dish.guardedDish)

		// Then
		// Zero value has zero value guard which returns the error we pass
		require.Error(t, err)
		assert.Equal(t, errDishNotConstructed, err)
	})
}

// TestConstructorGuardWithMultipleErrors demonstrates using ConstructorGuard
// with different error types and messages.
func TestConstructorGuardWithMultipleErrors(t *testing.T) {
	testCases := []struct {
		name          string
		expectedError error
	}{
		{
			name:          "cart_not_constructed_error",
			expectedError: errors.New("Cart must be created via NewCart or RestoreCart constructor"),
		},
		{
			name:          "order_not_constructed_error",
			expectedError: errors.New("Order must be created via NewOrder or RestoreOrder constructor"),
		},
		{
			name:          "message_not_constructed_error",
			expectedError: errors.New("Message requires proper initialization through constructor"),
		},
		{
			name:          "nil_error_uses_default",
			expectedError: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Given
			guard := guard.NewConstructorGuard()

			// When
			err := guard.Validate(tc.expectedError)

			// Then
			require.NoError(t, err, "Properly constructed guard should not return error")
		})
	}
}

// TestConstructorGuardDefaultError verifies the default error behavior.
func TestConstructorGuardDefaultError(t *testing.T) {
	t.Run("nil_error_uses_default_for_zero_value", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard // zero value

		// When
		err := g.Validate(nil)

		// Then
		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})

	t.Run("default_error_constant_has_meaningful_message", func(t *testing.T) {
		// Then
		require.Error(t, guard.ErrDefaultConstructorGuard)
		assert.Contains(t, guard.ErrDefaultConstructorGuard.Error(), "constructor")
		assert.Equal(t, "object must be created via its constructor", guard.ErrDefaultConstructorGuard.Error())
	})
}

// BenchmarkConstructorGuard measures the performance overhead of using ConstructorGuard.
func BenchmarkConstructorGuard(b *testing.B) {
	b.Run("NewConstructorGuard", func(b *testing.B) {
		b.ResetTimer()
		for range b.N {
			_ = guard.NewConstructorGuard()
		}
	})

	b.Run("Validate_Success", func(b *testing.B) {
		guard := guard.NewConstructorGuard()
		err := errors.New("not constructed")
		b.ResetTimer()
		for range b.N {
			_ = guard.Validate(err)
		}
	})

	b.Run("Validate_ZeroValue", func(b *testing.B) {
		var guard guard.ConstructorGuard
		err := errors.New("not constructed")
		b.ResetTimer()
		for range b.N {
			_ = guard.Validate(err)
		}
	})
}

// TestConstructorGuardConcurrency verifies that ConstructorGuard is safe for concurrent use.
func TestConstructorGuardConcurrency(t *testing.T) {
	guard := guard.NewConstructorGuard()
	validationError := errors.New("not constructed")

	// Run multiple goroutines that validate the guard concurrently
	done := make(chan bool)
	for range 100 {
		go func() {
			for range 1000 {
				err := guard.Validate(validationError)
				assert.NoError(t, err)
			}
			done <- true
		}()
	}

	// Wait for all goroutines to complete
	for range 100 {
		<-done
	}
}

// TestConstructorGuardImmutability verifies that ConstructorGuard is immutable.
func TestConstructorGuardImmutability(t *testing.T) {
	t.Run("guard_fields_are_not_modifiable", func(t *testing.T) {
		// Given
		originalError := errors.New("original error")
		g := guard.NewConstructorGuard()

		// When
		// Try to create another guard
		anotherError := errors.New("another error")
		_ = guard.NewConstructorGuard()

		// Then
		// Original guard should still validate successfully
		require.NoError(t, g.Validate(originalError))
		require.NoError(t, g.Validate(anotherError))
	})

	t.Run("guard_can_be_safely_passed_by_value", func(t *testing.T) {
		// Given
		guard := guard.NewConstructorGuard()
		testError := errors.New("test error")

		// When
		guardCopy := guard // Pass by value

		// Then
		require.NoError(t, guard.Validate(testError))
		require.NoError(t, guardCopy.Validate(testError))
	})
}
