package metrics

import (
	"time"

	m "github.com/cschleiden/go-cancel/metrics"
)

type noopMetricsClient struct {
}

var _ m.Client = (*noopMetricsClient)(nil)

func NewNoopMetricsClient() *noopMetricsClient {
	return &noopMetricsClient{}
}

// Counter implements metrics.Client
func (*noopMetricsClient) Counter(name string, tags m.Tags, value float64) {
}

// Timing implements metrics.Client
func (*noopMetricsClient) Timing(name string, tags m.Tags, duration time.Duration) {
}

// WithTags implements metrics.Client
func (nmc *noopMetricsClient) WithTags(tags m.Tags) m.Client {
	return nmc
}
