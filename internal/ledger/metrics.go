package ledger

import "github.com/prometheus/client_golang/prometheus"

// Posting results used as metric label values.
const (
	resultPosted   = "posted"
	resultInvalid  = "invalid"
	resultNotFound = "not_found"
	resultConflict = "conflict"
	resultError    = "error"
)

var postingsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "ledger_postings_total",
		Help: "How many sub-elements were posted to the ledger, partitioned by kind and result.",
	},
	[]string{"kind", "result"},
)

var retriesTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "ledger_posting_retries_total",
		Help: "How many postings were retried because of lock contention.",
	},
)

// Collectors returns the Prometheus collectors of the ledger.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{postingsTotal, retriesTotal}
}
