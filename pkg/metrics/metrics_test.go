package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorder(t *testing.T) {
	m := NewWithRegistry("spa_test", prometheus.NewRegistry())
	r := NewRecorder(m)

	r.BookingCommitted("Massage")
	r.BookingCommitted("Massage")
	r.SlotConflict("commit")
	r.Transition("accept", true)
	r.Transition("accept", false)
	r.NotificationFailed("booking_created")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.BookingsCommitted.WithLabelValues("Massage")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SlotConflicts.WithLabelValues("commit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BookingTransitions.WithLabelValues("accept", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BookingTransitions.WithLabelValues("accept", "rejected")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.NotificationFailure.WithLabelValues("booking_created")))
}

func TestRecorder_NilMetrics(t *testing.T) {
	var nilRecorder *Recorder
	assert.NotPanics(t, func() {
		NewRecorder(nil).BookingCommitted("Nails")
		nilRecorder.SlotConflict("accept")
		nilRecorder.Transition("cancel", true)
	})
}
