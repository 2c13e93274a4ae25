package yatranslate

import (
	"errors"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRequestMetrics(t *testing.T) {
	okBefore := testutil.ToFloat64(requestsTotal.WithLabelValues("getLangs", "200"))
	deniedBefore := testutil.ToFloat64(requestsTotal.WithLabelValues("getLangs", "401"))
	failedBefore := testutil.ToFloat64(requestsTotal.WithLabelValues("getLangs", "error"))

	status := 200
	client := NewTestClient(func(req *http.Request) *http.Response {
		return MockRawResponse(status, `{"dirs":[]}`)
	})

	_, _ = client.GetLangs(true, Params{})
	status = 401
	_, _ = client.GetLangs(true, Params{})

	broken := NewTestClient(nil, WithHTTPClient(&http.Client{Transport: errRoundTripper{err: errors.New("dial tcp: refused")}}))
	_, _ = broken.GetLangs(true, Params{})

	assert.Equal(t, okBefore+1, testutil.ToFloat64(requestsTotal.WithLabelValues("getLangs", "200")))
	assert.Equal(t, deniedBefore+1, testutil.ToFloat64(requestsTotal.WithLabelValues("getLangs", "401")))
	assert.Equal(t, failedBefore+1, testutil.ToFloat64(requestsTotal.WithLabelValues("getLangs", "error")))
}
