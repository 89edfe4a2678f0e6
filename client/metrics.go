package client

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	sendCount  atomic.Uint64
	sendErrors atomic.Uint64
}

// RegisterMetrics exposes the client's send counters on the given
// registry. Optional; the component form registers automatically when a
// metric component is present.
func (c *Client) RegisterMetrics(reg *prometheus.Registry) {
	registerMetrics(reg, c)
}

func registerMetrics(reg *prometheus.Registry, c *Client) {
	reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "apns",
		Subsystem: "client",
		Name:      "send_count",
		Help:      "total count of delivered notifications",
	}, func() float64 {
		return float64(c.metrics.sendCount.Load())
	}))
	reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "apns",
		Subsystem: "client",
		Name:      "send_errors",
		Help:      "total count of failed sends",
	}, func() float64 {
		return float64(c.metrics.sendErrors.Load())
	}))
}
