package graph

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	operationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blog",
		Name:      "graphql_operations_total",
		Help:      "Number of GraphQL root fields resolved, by outcome.",
	}, []string{"operation", "outcome"})

	operationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blog",
		Name:      "graphql_operation_duration_seconds",
		Help:      "Latency of GraphQL root fields.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"})
)

// observe est appelé en defer avec l'erreur nommée du resolver.
func observe(operation string, start time.Time, err *error) {
	outcome := "ok"
	if err != nil && *err != nil {
		outcome = "error"
	}
	operationsTotal.WithLabelValues(operation, outcome).Inc()
	operationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
