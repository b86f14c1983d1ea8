package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestRatingMetricsCountsSubmissions(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewRatingMetrics(reg)
	metrics.ObserveSubmitted()
	metrics.ObserveSubmitted()
	metrics.ObserveSubmitted()

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	mf := findMetricFamily(mfs, "ratings_submitted_total")
	if mf == nil {
		t.Fatal("ratings_submitted_total not exported")
	}
	if got := mf.GetMetric()[0].GetCounter().GetValue(); got != 3 {
		t.Fatalf("expected submitted=3, got %f", got)
	}
}

func TestRatingMetricsNilRegistererIsNoop(t *testing.T) {
	metrics := NewRatingMetrics(nil)
	metrics.ObserveSubmitted()

	var unset *RatingMetrics
	unset.ObserveSubmitted()
}
