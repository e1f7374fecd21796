package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Request results.
const (
	ResultOK        = "ok"
	ResultMalformed = "malformed"
	ResultTooLarge  = "too_large"
	ResultTimeout   = "timeout"
	ResultError     = "error"
)

var (
	// MinimizeRequests counts minimization requests by result
	MinimizeRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dfamin_minimize_requests_total",
		Help: "Total minimization requests by result",
	}, []string{"result"})

	// MinimizeDuration tracks time spent in the minimization pipeline
	MinimizeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "dfamin_minimize_duration_seconds",
		Help:    "Minimization pipeline duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.00005, 4, 10), // 50us to ~13s
	})

	StatesIn = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "dfamin_states_in",
		Help:    "Number of declared states per minimization request",
		Buckets: prometheus.ExponentialBuckets(1, 4, 10),
	})

	StatesOut = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "dfamin_states_out",
		Help:    "Number of states in the minimized automaton",
		Buckets: prometheus.ExponentialBuckets(1, 4, 10),
	})

	// CacheLookups counts result cache lookups by hit, miss or error
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dfamin_cache_lookups_total",
		Help: "Result cache lookups by outcome",
	}, []string{"result"})
)
