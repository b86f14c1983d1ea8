package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// RatingMetrics counts rating submissions accepted by the platform.
type RatingMetrics struct {
	submitted prometheus.Counter
}

// NewRatingMetrics registers the rating metrics on the provided registerer.
func NewRatingMetrics(reg prometheus.Registerer) *RatingMetrics {
	if reg == nil {
		return &RatingMetrics{}
	}
	submitted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ratings_submitted_total",
		Help: "Total rating submissions accepted, inserts and updates alike.",
	})
	reg.MustRegister(submitted)
	return &RatingMetrics{submitted: submitted}
}

// ObserveSubmitted records one accepted rating submission.
func (m *RatingMetrics) ObserveSubmitted() {
	if m == nil || m.submitted == nil {
		return
	}
	m.submitted.Inc()
}
