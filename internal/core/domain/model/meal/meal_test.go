package meal_test

import (
	"testing"
	"time"

	"gharkakhana/internal/core/domain/model/kernel"
	"gharkakhana/internal/core/domain/model/meal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPickupWindow(t *testing.T) kernel.PickupWindow {
	t.Helper()
	start, err := kernel.NewTimeOfDay(12, 0)
	require.NoError(t, err)
	end, err := kernel.NewTimeOfDay(14, 0)
	require.NoError(t, err)
	window, err := kernel.NewPickupWindow(time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC), start, end)
	require.NoError(t, err)
	return window
}

func testMeal(t *testing.T, quantity int) *meal.Meal {
	t.Helper()
	price, err := kernel.NewMoneyFromString("150.00")
	require.NoError(t, err)

	m, err := meal.NewMeal(
		kernel.NewUUID(),
		kernel.NewUUID(),
		"Rajma Chawal",
		"Home-style rajma with steamed rice",
		price,
		quantity,
		testPickupWindow(t),
		"Sector 15 gate 2",
	)
	require.NoError(t, err)
	return m
}

func TestNewMeal(t *testing.T) {
	t.Run("valid_meal_starts_unpublished_and_active", func(t *testing.T) {
		// When
		m := testMeal(t, 5)

		// Then
		require.NoError(t, m.Validate())
		assert.False(t, m.IsPublished())
		assert.True(t, m.IsActive())
		assert.Equal(t, 5, m.AvailableQuantity())
		assert.Equal(t, 0, m.TotalOrders())
	})

	t.Run("rejects_invalid_inputs", func(t *testing.T) {
		price, _ := kernel.NewMoneyFromString("150.00")
		zeroPrice, _ := kernel.NewMoneyFromString("0")
		window := testPickupWindow(t)

		testCases := []struct {
			name string
			make func() (*meal.Meal, error)
		}{
			{"empty_name", func() (*meal.Meal, error) {
				return meal.NewMeal(kernel.NewUUID(), kernel.NewUUID(), "", "d", price, 1, window, "loc")
			}},
			{"zero_price", func() (*meal.Meal, error) {
				return meal.NewMeal(kernel.NewUUID(), kernel.NewUUID(), "n", "d", zeroPrice, 1, window, "loc")
			}},
			{"negative_quantity", func() (*meal.Meal, error) {
				return meal.NewMeal(kernel.NewUUID(), kernel.NewUUID(), "n", "d", price, -1, window, "loc")
			}},
			{"zero_chef_id", func() (*meal.Meal, error) {
				return meal.NewMeal(kernel.NewUUID(), kernel.UUID{}, "n", "d", price, 1, window, "loc")
			}},
			{"empty_pickup_location", func() (*meal.Meal, error) {
				return meal.NewMeal(kernel.NewUUID(), kernel.NewUUID(), "n", "d", price, 1, window, "")
			}},
			{"zero_pickup_window", func() (*meal.Meal, error) {
				return meal.NewMeal(kernel.NewUUID(), kernel.NewUUID(), "n", "d", price, 1, kernel.PickupWindow{}, "loc")
			}},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := tc.make()
				require.Error(t, err)
			})
		}
	})

	t.Run("zero_value_fails_validate", func(t *testing.T) {
		var m meal.Meal
		require.ErrorIs(t, m.Validate(), meal.ErrMealIsNotConstructed)
	})
}

func TestMeal_IsOrderable(t *testing.T) {
	t.Run("unpublished_meal_is_not_orderable", func(t *testing.T) {
		m := testMeal(t, 5)
		assert.False(t, m.IsOrderable())
	})

	t.Run("published_active_in_stock_is_orderable", func(t *testing.T) {
		m := testMeal(t, 5)
		m.Publish()
		assert.True(t, m.IsOrderable())
	})

	t.Run("deactivated_meal_is_not_orderable", func(t *testing.T) {
		m := testMeal(t, 5)
		m.Publish()
		m.Deactivate()
		assert.False(t, m.IsOrderable())
	})

	t.Run("out_of_stock_meal_is_not_orderable", func(t *testing.T) {
		m := testMeal(t, 1)
		m.Publish()
		require.NoError(t, m.Reserve(1))
		assert.False(t, m.IsOrderable())
	})

	t.Run("unpublish_hides_meal", func(t *testing.T) {
		m := testMeal(t, 5)
		m.Publish()
		m.Unpublish()
		assert.False(t, m.IsOrderable())
	})
}

func TestMeal_Reserve(t *testing.T) {
	t.Run("decrements_quantity_and_increments_total_orders", func(t *testing.T) {
		// Given
		m := testMeal(t, 5)
		m.Publish()

		// When
		err := m.Reserve(2)

		// Then
		require.NoError(t, err)
		assert.Equal(t, 3, m.AvailableQuantity())
		assert.Equal(t, 1, m.TotalOrders())
	})

	t.Run("reserving_entire_stock_leaves_zero", func(t *testing.T) {
		m := testMeal(t, 2)
		m.Publish()

		require.NoError(t, m.Reserve(2))
		assert.Equal(t, 0, m.AvailableQuantity())

		// Quantity stays at zero when a further reservation is rejected
		err := m.Reserve(1)
		require.Error(t, err)
		assert.Equal(t, 0, m.AvailableQuantity())
	})

	t.Run("fails_when_quantity_exceeds_stock", func(t *testing.T) {
		m := testMeal(t, 2)
		m.Publish()

		err := m.Reserve(3)

		require.ErrorIs(t, err, meal.ErrInsufficientInventory)
		assert.Equal(t, 2, m.AvailableQuantity())
		assert.Equal(t, 0, m.TotalOrders())
	})

	t.Run("fails_on_unorderable_meal", func(t *testing.T) {
		m := testMeal(t, 2)

		err := m.Reserve(1)

		require.ErrorIs(t, err, meal.ErrMealNotOrderable)
	})

	t.Run("rejects_non_positive_quantity", func(t *testing.T) {
		m := testMeal(t, 2)
		m.Publish()

		require.Error(t, m.Reserve(0))
		require.Error(t, m.Reserve(-1))
	})
}

func TestMeal_Release(t *testing.T) {
	t.Run("restores_reserved_quantity", func(t *testing.T) {
		// Given
		m := testMeal(t, 5)
		m.Publish()
		require.NoError(t, m.Reserve(3))

		// When
		err := m.Release(3)

		// Then
		require.NoError(t, err)
		assert.Equal(t, 5, m.AvailableQuantity())
	})

	t.Run("rejects_non_positive_quantity", func(t *testing.T) {
		m := testMeal(t, 5)
		require.Error(t, m.Release(0))
	})
}

func TestRestoreMeal(t *testing.T) {
	t.Run("restores_persisted_state", func(t *testing.T) {
		// Given
		price, _ := kernel.NewMoneyFromString("99.00")

		// When
		m, err := meal.RestoreMeal(
			kernel.NewUUID(), kernel.NewUUID(),
			"Litti Chokha", "",
			price, 4, 17,
			testPickupWindow(t), "Hostel B",
			true, false,
		)

		// Then
		require.NoError(t, err)
		assert.Equal(t, 4, m.AvailableQuantity())
		assert.Equal(t, 17, m.TotalOrders())
		assert.True(t, m.IsPublished())
		assert.False(t, m.IsActive())
	})

	t.Run("rejects_negative_total_orders", func(t *testing.T) {
		price, _ := kernel.NewMoneyFromString("99.00")
		_, err := meal.RestoreMeal(
			kernel.NewUUID(), kernel.NewUUID(), "n", "", price, 1, -1,
			testPickupWindow(t), "loc", true, true,
		)
		require.Error(t, err)
	})
}
