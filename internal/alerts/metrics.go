package alerts

import "github.com/prometheus/client_golang/prometheus"

var alertsCreated = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "alerts_created_total",
		Help: "How many alerts the scanner created, partitioned by kind.",
	},
	[]string{"kind"},
)

var scansTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "alert_scans_total",
		Help: "How many contract scans ran, partitioned by result.",
	},
	[]string{"result"},
)

// Collectors returns the Prometheus collectors of the scanner.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{alertsCreated, scansTotal}
}
