package metrics

import (
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "gasless"

// Service owns a dedicated registry so several instances (e.g. in tests)
// never collide on the default one.
type Service struct {
	Registry *prometheus.Registry

	providerRequests *prometheus.CounterVec
	providerDuration *prometheus.HistogramVec
	workflowRuns     *prometheus.CounterVec
}

func New() (*Service, error) {
	s := &Service{
		Registry: prometheus.NewRegistry(),
		providerRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "provider",
			Name:      "requests_total",
			Help:      "Requests sent to the wallet provider API, by outcome.",
		}, []string{"method", "endpoint", "outcome"}),
		providerDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "provider",
			Name:      "request_duration_seconds",
			Help:      "Latency of requests sent to the wallet provider API.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "endpoint"}),
		workflowRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "workflow",
			Name:      "runs_total",
			Help:      "Finished workflow runs, by final state.",
		}, []string{"state"}),
	}

	for _, c := range []prometheus.Collector{s.providerRequests, s.providerDuration, s.workflowRuns} {
		if err := s.Registry.Register(c); err != nil {
			return nil, errors.Wrap(err, "failed to register collector")
		}
	}

	return s, nil
}

func (s *Service) ObserveProviderRequest(method string, endpoint string, outcome string, took time.Duration) {
	if s == nil {
		return
	}

	s.providerRequests.WithLabelValues(method, endpoint, outcome).Inc()
	s.providerDuration.WithLabelValues(method, endpoint).Observe(took.Seconds())
}

func (s *Service) ObserveWorkflowRun(state string) {
	if s == nil {
		return
	}

	s.workflowRuns.WithLabelValues(state).Inc()
}

// ProviderRequests exposes the counter for assertions.
func (s *Service) ProviderRequests() *prometheus.CounterVec {
	return s.providerRequests
}

func (s *Service) WorkflowRuns() *prometheus.CounterVec {
	return s.workflowRuns
}

// WriteToTextfile writes all collected metrics to path in the Prometheus text
// format, e.g. for the node exporter's textfile collector.
func (s *Service) WriteToTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, s.Registry); err != nil {
		return errors.Wrapf(err, "failed to write metrics to %s", path)
	}

	return nil
}
