package cache

import (
	"time"

	"homeinsight-listings/pkg/metrics"
)

// observe records the duration of a Redis operation and counts it as an
// error when err is non-nil.
func observe(label string, start time.Time, err error) {
	metrics.RedisOperationDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.RedisErrorsTotal.WithLabelValues(label).Inc()
	}
}
