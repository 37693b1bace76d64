package metrics

import (
	"net/http"
	"strings"
	"time"

	"aeskit/internal/modes"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "aeskit"

var (
	CipherOps = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "cipher",
		Name:      "operations_total",
		Help:      "Cipher requests by operation, mode and result.",
	}, []string{"operation", "mode", "result"})

	CipherBytes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "cipher",
		Name:      "input_bytes_total",
		Help:      "Bytes of decoded input processed by the cipher endpoint.",
	}, []string{"operation"})

	CipherDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "cipher",
		Name:      "duration_seconds",
		Help:      "Time spent in the cipher request layer.",
		Buckets:   prometheus.ExponentialBuckets(0.00005, 4, 8),
	}, []string{"mode"})

	VectorsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "vectors",
		Name:      "generated_total",
		Help:      "Generated test records by algorithm and test mode.",
	}, []string{"algorithm", "test_mode"})
)

const unknownLabel = "unknown"

// cipherLabels maps caller-supplied operation and mode names onto a fixed
// label set, so junk input cannot create new series.
func cipherLabels(op, mode string) (string, string) {
	switch op = strings.ToLower(strings.TrimSpace(op)); op {
	case "encrypt", "decrypt":
	default:
		op = unknownLabel
	}
	m, err := modes.ParseMode(mode)
	if err != nil {
		return op, unknownLabel
	}
	return op, m.String()
}

// ObserveCipher records one cipher call. result is "ok" or "error".
func ObserveCipher(op, mode string, inputBytes int, d time.Duration, err error) {
	op, mode = cipherLabels(op, mode)
	result := "ok"
	if err != nil {
		result = "error"
	}
	CipherOps.WithLabelValues(op, mode, result).Inc()
	CipherDuration.WithLabelValues(mode).Observe(d.Seconds())
	if err == nil {
		CipherBytes.WithLabelValues(op).Add(float64(inputBytes))
	}
}

func Handler() http.Handler { return promhttp.Handler() }
