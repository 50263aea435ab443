package server

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/growthcast/internal/forecast"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	l, err := NewLogger("debug", &logs)
	require.NoError(t, err)
	return New(Config{Addr: "127.0.0.1:0", Defaults: forecast.DefaultInput(), Logger: l}), &logs
}

func do(t *testing.T, h http.Handler, method, target string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeReport(t *testing.T, rec *httptest.ResponseRecorder) forecast.Report {
	t.Helper()
	var rep forecast.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rep), rec.Body.String())
	return rep
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) APIError {
	t.Helper()
	var apiErr APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr), rec.Body.String())
	return apiErr
}

func TestHealthz(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s.Handler(), http.MethodGet, "/healthz", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok\n", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}

func TestDefaults(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s.Handler(), http.MethodGet, "/v1/defaults", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var in forecast.Input
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &in))
	assert.Equal(t, forecast.DefaultInput(), in)
}

func TestForecastQueryUsesDefaults(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s.Handler(), http.MethodGet, "/v1/forecast", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	rep := decodeReport(t, rec)
	require.Len(t, rep.Records, 36)
	last := rep.Records[35]
	assert.Equal(t, int64(5206), last.TotalCustomers)
	assert.Equal(t, int64(80658), last.CumulativeRevenue)
	assert.Equal(t, int64(7236), last.CumulativeUsers)
	assert.Empty(t, rep.Warnings)
}

func TestForecastQueryOverrides(t *testing.T) {
	s, _ := newTestServer(t)
	target := "/v1/forecast?monthly_budget=250&annual_price=120&impressions_per_100=5000" +
		"&conversion_rate=0.01&churn_rate=0.05&horizon_months=12"
	rec := do(t, s.Handler(), http.MethodGet, target, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	rep := decodeReport(t, rec)
	require.Len(t, rep.Records, 12)
	m12 := rep.Records[11]
	assert.Equal(t, int64(12500), m12.AdReach)
	assert.Equal(t, int64(125), m12.NewCustomers)
	assert.Equal(t, int64(1152), m12.TotalCustomers)
	assert.Equal(t, int64(11520), m12.MonthlyRevenue)
	assert.Equal(t, int64(81880), m12.CumulativeRevenue)
	assert.Equal(t, int64(1500), m12.CumulativeUsers)
}

func TestForecastQueryRejectsGarbage(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s.Handler(), http.MethodGet, "/v1/forecast?churn_rate=lots", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	apiErr := decodeError(t, rec)
	assert.Equal(t, ErrInvalidRequest, apiErr.Code)
	assert.Contains(t, apiErr.Message, "churn_rate")
}

func TestForecastRejectsHorizon(t *testing.T) {
	s, _ := newTestServer(t)
	for _, months := range []string{"0", "-3", "37"} {
		rec := do(t, s.Handler(), http.MethodGet, "/v1/forecast?horizon_months="+months, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, months)
		assert.Equal(t, ErrInvalidInput, decodeError(t, rec).Code, months)
	}
}

func TestForecastRejectsNaN(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s.Handler(), http.MethodGet, "/v1/forecast?monthly_budget=NaN", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, ErrInvalidInput, decodeError(t, rec).Code)
}

func TestForecastRejectsOverflow(t *testing.T) {
	s, _ := newTestServer(t)
	body := strings.NewReader(`{"monthly_budget": 1e10, "annual_price": 1000, "impressions_per_100": 1e10, "conversion_rate": 1, "churn_rate": 0, "horizon_months": 12}`)
	rec := do(t, s.Handler(), http.MethodPost, "/v1/forecast", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	apiErr := decodeError(t, rec)
	assert.Equal(t, ErrInvalidInput, apiErr.Code)
	assert.Contains(t, apiErr.Message, "out of range")
}

func TestForecastBodyMergesDefaults(t *testing.T) {
	s, _ := newTestServer(t)
	body := strings.NewReader(`{"horizon_months": 3}`)
	rec := do(t, s.Handler(), http.MethodPost, "/v1/forecast", body)

	require.Equal(t, http.StatusOK, rec.Code)
	rep := decodeReport(t, rec)
	require.Len(t, rep.Records, 3)
	assert.Equal(t, 100.0, rep.Input.MonthlyBudget)
	assert.Equal(t, int64(592), rep.Records[2].TotalCustomers)
	assert.Equal(t, int64(892), rep.Records[2].CumulativeRevenue)
}

func TestForecastBodyWarnings(t *testing.T) {
	s, _ := newTestServer(t)
	body := strings.NewReader(`{"churn_rate": 1.5, "horizon_months": 4}`)
	rec := do(t, s.Handler(), http.MethodPost, "/v1/forecast", body)

	require.Equal(t, http.StatusOK, rec.Code)
	rep := decodeReport(t, rec)
	require.Len(t, rep.Warnings, 1)
	assert.Equal(t, "churn_rate", rep.Warnings[0].Field)
	assert.Equal(t, int64(432), rep.Records[3].CumulativeRevenue)
}

func TestForecastBodyRejectsBadJSON(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s.Handler(), http.MethodPost, "/v1/forecast", strings.NewReader(`{"monthly_budget":`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, ErrInvalidRequest, decodeError(t, rec).Code)
}

func TestUnknownRoute(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s.Handler(), http.MethodGet, "/v2/nothing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, ErrNotFound, decodeError(t, rec).Code)
}

func TestRequestIDIsEchoedAndLogged(t *testing.T) {
	s, logs := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
	assert.Contains(t, logs.String(), "abc-123")
	assert.Contains(t, logs.String(), "request served")
}

func TestRecoverPanic(t *testing.T) {
	s, logs := newTestServer(t)
	h := s.middleware().Then(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := do(t, h, http.MethodGet, "/explode", nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, ErrInternalServer, decodeError(t, rec).Code)
	assert.Contains(t, logs.String(), "handler panic")
}

func TestNewLoggerRejectsUnknownLevel(t *testing.T) {
	_, err := NewLogger("chatty", io.Discard)
	assert.Error(t, err)
}

func TestServeShutsDownOnCancel(t *testing.T) {
	s, _ := newTestServer(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	url := "http://" + ln.Addr().String() + "/healthz"
	var resp *http.Response
	require.Eventually(t, func() bool {
		resp, err = http.Get(url)
		return err == nil
	}, 2*time.Second, 20*time.Millisecond)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(shutdownTimeout + time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
