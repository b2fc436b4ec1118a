package booking

import (
	"context"
	"strconv"

	"github.com/m04kA/SMC-RangeBooking/pkg/metrics"
)

// MetricsListener пишет переходы слотов в Prometheus
type MetricsListener struct {
	metrics *metrics.Metrics
}

// NewMetricsListener создает слушателя метрик
func NewMetricsListener(m *metrics.Metrics) *MetricsListener {
	return &MetricsListener{metrics: m}
}

// SlotsChanged реализует Listener
func (l *MetricsListener) SlotsChanged(_ context.Context, change Change) {
	competition := strconv.FormatInt(change.CompetitionID, 10)
	l.metrics.SlotTransitions.WithLabelValues(competition, string(change.Kind)).Add(float64(len(change.Slots)))
	l.metrics.UnbookedSlots.WithLabelValues(competition).Set(float64(change.Unbooked))
}
