package examplesrv

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestsTotal counts handled requests by route and status code
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "canvasflow_examples_requests_total",
			Help: "Total number of example server requests",
		},
		[]string{"route", "code"},
	)

	// InstantiationsTotal counts minted workflows per template
	InstantiationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "canvasflow_instantiations_total",
			Help: "Total number of workflows instantiated from examples",
		},
		[]string{"example_id"},
	)
)

func init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(InstantiationsTotal)
}
