package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(cityOps.WithLabelValues("insert_at_position", "rejected"))
	RecordCityOp("insert_at_position", false)
	assert.Equal(t, before+1, testutil.ToFloat64(cityOps.WithLabelValues("insert_at_position", "rejected")))

	hits := testutil.ToFloat64(searches.WithLabelValues("binary", "hit"))
	RecordSearch("binary", true)
	assert.Equal(t, hits+1, testutil.ToFloat64(searches.WithLabelValues("binary", "hit")))

	loaded := testutil.ToFloat64(recordsLoaded)
	RecordLoad(3)
	assert.Equal(t, loaded+3, testutil.ToFloat64(recordsLoaded))
}

func TestHandler(t *testing.T) {
	RecordExport("csv", true)

	rr := httptest.NewRecorder()
	Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "cdr_exports_total")
}
