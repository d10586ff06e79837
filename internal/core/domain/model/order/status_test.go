package order_test

import (
	"testing"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_String(t *testing.T) {
	cases := map[order.Status]string{
		order.Placed:         "PLACED",
		order.Preparing:      "PREPARING",
		order.ReadyForPickup: "READY_FOR_PICKUP",
		order.OutForDelivery: "OUT_FOR_DELIVERY",
		order.Delivered:      "DELIVERED",
		order.Cancelled:      "CANCELLED",
		order.Unknown:        "UNKNOWN",
		order.Status(99):     "UNKNOWN",
	}
	for status, expected := range cases {
		assert.Equal(t, expected, status.String())
	}
}

func TestStatusFromString(t *testing.T) {
	t.Run("round_trips_all_valid_statuses", func(t *testing.T) {
		for _, s := range []order.Status{
			order.Placed, order.Preparing, order.ReadyForPickup,
			order.OutForDelivery, order.Delivered, order.Cancelled,
		} {
			parsed, err := order.StatusFromString(s.String())
			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})

	t.Run("rejects_unknown_strings", func(t *testing.T) {
		_, err := order.StatusFromString("SHIPPED")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = order.StatusFromString("UNKNOWN")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestStatus_TransitionTable(t *testing.T) {
	allowed := map[order.Status][]order.Status{
		order.Placed:         {order.Preparing, order.Cancelled},
		order.Preparing:      {order.ReadyForPickup, order.Cancelled},
		order.ReadyForPickup: {order.OutForDelivery, order.Delivered},
		order.OutForDelivery: {order.Delivered},
		order.Delivered:      {},
		order.Cancelled:      {},
	}

	all := []order.Status{
		order.Placed, order.Preparing, order.ReadyForPickup,
		order.OutForDelivery, order.Delivered, order.Cancelled,
	}

	for from, nexts := range allowed {
		allowedSet := make(map[order.Status]bool)
		for _, next := range nexts {
			allowedSet[next] = true
		}

		for _, to := range all {
			got, err := from.TransitionTo(to)
			if allowedSet[to] {
				require.NoError(t, err, "%s -> %s should be allowed", from, to)
				assert.Equal(t, to, got)
			} else {
				require.ErrorIs(t, err, errs.ErrConflict, "%s -> %s should conflict", from, to)
			}
		}
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, order.Delivered.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())
	assert.False(t, order.Placed.IsTerminal())
	assert.False(t, order.OutForDelivery.IsTerminal())
}

func TestStatus_Validate(t *testing.T) {
	require.NoError(t, order.Preparing.Validate())
	require.Error(t, order.Unknown.Validate())
	require.Error(t, order.Status(42).Validate())
}
