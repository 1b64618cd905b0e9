package order_test

import (
	"testing"

	"production/internal/core/domain/model/order"
	"production/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	s, err := order.ParseStatus("paused")
	require.NoError(t, err)
	assert.Equal(t, order.Paused, s)

	_, err = order.ParseStatus("Unknown")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestStatus_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		from    order.Status
		action  func(order.Status) (order.Status, error)
		want    order.Status
		wantErr bool
	}{
		{"draft activates", order.Draft, order.Status.Activate, order.Active, false},
		{"paused activates", order.Paused, order.Status.Activate, order.Active, false},
		{"cancelled does not activate", order.Cancelled, order.Status.Activate, order.Unknown, true},
		{"active pauses", order.Active, order.Status.Pause, order.Paused, false},
		{"draft does not pause", order.Draft, order.Status.Pause, order.Unknown, true},
		{"paused resumes", order.Paused, order.Status.Resume, order.Active, false},
		{"active completes", order.Active, order.Status.Complete, order.Completed, false},
		{"paused does not complete", order.Paused, order.Status.Complete, order.Unknown, true},
		{"draft cancels", order.Draft, order.Status.Cancel, order.Cancelled, false},
		{"completed does not cancel", order.Completed, order.Status.Cancel, order.Unknown, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.action(tt.from)
			if tt.wantErr {
				assert.ErrorIs(t, err, errs.ErrConflict)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, order.Completed.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())
	assert.False(t, order.Paused.IsTerminal())
}
