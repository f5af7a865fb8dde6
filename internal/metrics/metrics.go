// internal/metrics/metrics.go
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	transactionCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "launchpad_transactions_total",
			Help: "Total number of transactions submitted, by kind and outcome",
		},
		[]string{"kind", "status"},
	)
	transactionDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "launchpad_transaction_duration_seconds",
			Help:    "Duration from submission to confirmed receipt",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		},
		[]string{"kind"},
	)
	launchesCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "launchpad_launches_created_total",
			Help: "Presale launches written to the store",
		},
		[]string{"whitelist"},
	)
	purchases = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "launchpad_purchases_total",
			Help: "Presale purchases by outcome",
		},
		[]string{"status"},
	)
	discoveryScanDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "launchpad_discovery_scan_duration_seconds",
			Help:    "Duration of a full discovery scan",
			Buckets: prometheus.LinearBuckets(0, 0.1, 10),
		},
	)
	recordsExcluded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "launchpad_discovery_excluded_total",
			Help: "Launch records dropped by discovery, by reason",
		},
		[]string{"reason"},
	)
)

func init() {
	prometheus.MustRegister(transactionCounter)
	prometheus.MustRegister(transactionDuration)
	prometheus.MustRegister(launchesCreated)
	prometheus.MustRegister(purchases)
	prometheus.MustRegister(discoveryScanDuration)
	prometheus.MustRegister(recordsExcluded)
}

// Transaction kinds.
const (
	KindCreateToken   = "create_token"
	KindApprove       = "approve"
	KindBatchTransfer = "batch_transfer"
	KindPurchase      = "purchase"
)

// MeasureTransaction times f and counts it as success or failed under kind.
func MeasureTransaction(kind string, f func() error) error {
	start := time.Now()
	err := f()
	transactionDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	if err != nil {
		transactionCounter.WithLabelValues(kind, "failed").Inc()
	} else {
		transactionCounter.WithLabelValues(kind, "success").Inc()
	}
	return err
}

func LaunchCreated(whitelist bool) {
	launchesCreated.WithLabelValues(strconv.FormatBool(whitelist)).Inc()
}

func PurchaseRecorded(status string) {
	purchases.WithLabelValues(status).Inc()
}

func RecordExcluded(reason string) {
	recordsExcluded.WithLabelValues(reason).Inc()
}

// ObserveScan records the time since start as one discovery scan.
func ObserveScan(start time.Time) {
	discoveryScanDuration.Observe(time.Since(start).Seconds())
}
