package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	recordsLoaded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cdr_records_loaded_total",
			Help: "Total number of CDR records accepted by successful loads",
		},
	)

	parseWarnings = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cdr_parse_warnings_total",
			Help: "Recoverable problems met while parsing CDR input",
		},
		[]string{"kind"},
	)

	loadFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cdr_load_failures_total",
			Help: "Loads aborted by an I/O fault",
		},
	)

	searches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cdr_searches_total",
			Help: "Call ID lookups by mode and outcome",
		},
		[]string{"mode", "result"},
	)

	exports = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cdr_exports_total",
			Help: "Exports by format and outcome",
		},
		[]string{"format", "result"},
	)

	cityOps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "city_operations_total",
			Help: "City list mutations by operation and outcome",
		},
		[]string{"op", "result"},
	)
)

func outcome(ok bool) string {
	if ok {
		return "ok"
	}
	return "rejected"
}

func RecordLoad(records int) { recordsLoaded.Add(float64(records)) }

func RecordParseWarning(kind string) { parseWarnings.WithLabelValues(kind).Inc() }

func RecordLoadFailure() { loadFailures.Inc() }

func RecordSearch(mode string, found bool) {
	r := "miss"
	if found {
		r = "hit"
	}
	searches.WithLabelValues(mode, r).Inc()
}

func RecordExport(format string, ok bool) { exports.WithLabelValues(format, outcome(ok)).Inc() }

func RecordCityOp(op string, ok bool) { cityOps.WithLabelValues(op, outcome(ok)).Inc() }

// Handler exposes the default registry.
func Handler() http.Handler { return promhttp.Handler() }
