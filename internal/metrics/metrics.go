package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockroom_http_requests_total",
			Help: "Total HTTP requests served, by method, path and status.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stockroom_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	TaskOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockroom_task_operations_total",
			Help: "Warehouse task operations, by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	)

	WarehouseOccupiedArea = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "stockroom_warehouse_occupied_area",
			Help: "Occupied area per warehouse in size units.",
		},
		[]string{"warehouse_id", "warehouse_name"},
	)

	WarehouseCapacity = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "stockroom_warehouse_capacity",
			Help: "Configured capacity per warehouse in size units.",
		},
		[]string{"warehouse_id", "warehouse_name"},
	)
)

func RecordTaskOperation(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	TaskOperationsTotal.WithLabelValues(operation, outcome).Inc()
}

func SetWarehouseOccupancy(id uint, name string, occupied, capacity int64) {
	labels := []string{strconv.FormatUint(uint64(id), 10), name}
	WarehouseOccupiedArea.WithLabelValues(labels...).Set(float64(occupied))
	WarehouseCapacity.WithLabelValues(labels...).Set(float64(capacity))
}
