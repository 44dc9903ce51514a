package backend

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records calls made to the transcription service
type Metrics struct {
	Requests      *prometheus.CounterVec
	Duration      *prometheus.HistogramVec
	UploadedFiles prometheus.Counter
}

// NewMetrics creates the client metrics and registers them with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "transcribe_ui_backend_requests_total",
			Help: "Total number of requests sent to the transcription service",
		}, []string{"op", "outcome"}),
		Duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "transcribe_ui_backend_request_duration_seconds",
			Help:    "Latency of requests sent to the transcription service",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 14),
		}, []string{"op"}),
		UploadedFiles: factory.NewCounter(prometheus.CounterOpts{
			Name: "transcribe_ui_upload_files_total",
			Help: "Total number of files sent in successful uploads",
		}),
	}
}

func (m *Metrics) observe(op string, start time.Time, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.Requests.WithLabelValues(op, outcome).Inc()
	m.Duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func (m *Metrics) addUploaded(n int) {
	if m == nil {
		return
	}
	m.UploadedFiles.Add(float64(n))
}
