package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveCipher(t *testing.T) {
	before := testutil.ToFloat64(CipherOps.WithLabelValues("encrypt", "CBC", "ok"))
	ObserveCipher("encrypt", "CBC", 32, time.Millisecond, nil)
	ObserveCipher("encrypt", "CBC", 32, time.Millisecond, errors.New("boom"))
	assert.Equal(t, before+1, testutil.ToFloat64(CipherOps.WithLabelValues("encrypt", "CBC", "ok")))
	assert.GreaterOrEqual(t, testutil.ToFloat64(CipherOps.WithLabelValues("encrypt", "CBC", "error")), 1.0)
}

func TestObserveCipherBoundsLabels(t *testing.T) {
	before := testutil.ToFloat64(CipherOps.WithLabelValues("unknown", "unknown", "error"))
	ObserveCipher("launch", "GCM-"+t.Name(), 3, time.Millisecond, errors.New("bad"))
	assert.Equal(t, before+1, testutil.ToFloat64(CipherOps.WithLabelValues("unknown", "unknown", "error")))

	lower := testutil.ToFloat64(CipherOps.WithLabelValues("decrypt", "OFB", "ok"))
	ObserveCipher(" Decrypt ", "ofb", 16, time.Millisecond, nil)
	assert.Equal(t, lower+1, testutil.ToFloat64(CipherOps.WithLabelValues("decrypt", "OFB", "ok")))

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.NotContains(t, rec.Body.String(), "GCM-")
	assert.NotContains(t, rec.Body.String(), "launch")
}

func TestHandler(t *testing.T) {
	ObserveCipher("decrypt", "CTR", 5, time.Microsecond, nil)
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "aeskit_cipher_operations_total")
}
