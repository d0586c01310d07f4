package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "status"},
	)
	RedisOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "redis_operation_duration_seconds",
			Help:    "Redis operation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
	RedisErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redis_errors_total",
			Help: "Total number of failed Redis operations",
		},
		[]string{"operation"},
	)
	FileOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "file_operation_duration_seconds",
			Help:    "Flat file read/write duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
	FileErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "file_errors_total",
			Help: "Total number of failed flat file operations",
		},
		[]string{"operation"},
	)
	PostcodeLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "postcode_lookups_total",
			Help: "Postcode directory lookups by direction and result",
		},
		[]string{"direction", "result"},
	)
	PostcodeTableLoadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "postcode_table_loads_total",
			Help: "Number of times a country's postcode table was read from its backing store",
		},
		[]string{"country"},
	)
	ParseFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parse_failures_total",
			Help: "Text parsing failures by kind",
		},
		[]string{"kind"},
	)
	ListingsProcessedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "listings_processed_total",
			Help: "Raw listings processed by outcome",
		},
		[]string{"status"},
	)
	PriceRecordsEmittedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "price_records_emitted_total",
			Help: "Total number of price records produced from raw listings",
		},
	)
)

var registerOnce sync.Once

func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(HTTPRequestsTotal)
		prometheus.MustRegister(HTTPRequestDuration)
		prometheus.MustRegister(RedisOperationDuration)
		prometheus.MustRegister(RedisErrorsTotal)
		prometheus.MustRegister(FileOperationDuration)
		prometheus.MustRegister(FileErrorsTotal)
		prometheus.MustRegister(PostcodeLookupsTotal)
		prometheus.MustRegister(PostcodeTableLoadsTotal)
		prometheus.MustRegister(ParseFailuresTotal)
		prometheus.MustRegister(ListingsProcessedTotal)
		prometheus.MustRegister(PriceRecordsEmittedTotal)
	})
}
