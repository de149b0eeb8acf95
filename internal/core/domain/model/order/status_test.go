package order_test

import (
	"testing"

	"gharkakhana/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_String(t *testing.T) {
	testCases := []struct {
		status   order.Status
		expected string
	}{
		{order.Unknown, "Unknown"},
		{order.Pending, "Pending"},
		{order.Confirmed, "Confirmed"},
		{order.Preparing, "Preparing"},
		{order.Ready, "Ready"},
		{order.Completed, "Completed"},
		{order.Cancelled, "Cancelled"},
		{order.Status(42), "Unknown"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.status.String())
		})
	}
}

func TestStatusFromString(t *testing.T) {
	t.Run("parses_valid_names", func(t *testing.T) {
		for _, name := range []string{"Pending", "Confirmed", "Preparing", "Ready", "Completed", "Cancelled"} {
			status, err := order.StatusFromString(name)
			require.NoError(t, err)
			assert.Equal(t, name, status.String())
		}
	})

	t.Run("rejects_unknown_names", func(t *testing.T) {
		_, err := order.StatusFromString("Unknown")
		require.Error(t, err)

		_, err = order.StatusFromString("pending")
		require.Error(t, err)
	})
}

func TestStatus_Validate(t *testing.T) {
	t.Run("valid_statuses", func(t *testing.T) {
		for _, s := range []order.Status{
			order.Pending, order.Confirmed, order.Preparing,
			order.Ready, order.Completed, order.Cancelled,
		} {
			require.NoError(t, s.Validate())
		}
	})

	t.Run("invalid_statuses", func(t *testing.T) {
		require.Error(t, order.Unknown.Validate())
		require.Error(t, order.Status(42).Validate())
	})
}

func TestStatus_TransitionTo(t *testing.T) {
	legal := []struct {
		from order.Status
		to   order.Status
	}{
		{order.Pending, order.Confirmed},
		{order.Confirmed, order.Preparing},
		{order.Preparing, order.Ready},
		{order.Ready, order.Completed},
		{order.Pending, order.Cancelled},
		{order.Confirmed, order.Cancelled},
		{order.Preparing, order.Cancelled},
	}

	for _, tc := range legal {
		t.Run("legal_"+tc.from.String()+"_to_"+tc.to.String(), func(t *testing.T) {
			next, err := tc.from.TransitionTo(tc.to)
			require.NoError(t, err)
			assert.Equal(t, tc.to, next)
			assert.True(t, tc.from.CanTransitionTo(tc.to))
		})
	}

	illegal := []struct {
		from order.Status
		to   order.Status
	}{
		// Cancellation window closes once the order is ready
		{order.Ready, order.Cancelled},
		// No skipping states
		{order.Pending, order.Preparing},
		{order.Pending, order.Ready},
		{order.Pending, order.Completed},
		{order.Confirmed, order.Ready},
		// No moving backwards
		{order.Confirmed, order.Pending},
		{order.Preparing, order.Confirmed},
		{order.Completed, order.Pending},
		// Terminal states stay terminal
		{order.Completed, order.Cancelled},
		{order.Cancelled, order.Pending},
		{order.Cancelled, order.Confirmed},
		{order.Cancelled, order.Completed},
		// Self transitions are not edges
		{order.Pending, order.Pending},
		{order.Completed, order.Completed},
	}

	for _, tc := range illegal {
		t.Run("illegal_"+tc.from.String()+"_to_"+tc.to.String(), func(t *testing.T) {
			_, err := tc.from.TransitionTo(tc.to)
			require.ErrorIs(t, err, order.ErrInvalidTransition)
			assert.False(t, tc.from.CanTransitionTo(tc.to))
		})
	}

	t.Run("transition_to_unknown_fails_validation", func(t *testing.T) {
		_, err := order.Pending.TransitionTo(order.Unknown)
		require.Error(t, err)
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, order.Completed.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())
	assert.False(t, order.Pending.IsTerminal())
	assert.False(t, order.Confirmed.IsTerminal())
	assert.False(t, order.Preparing.IsTerminal())
	assert.False(t, order.Ready.IsTerminal())
}
