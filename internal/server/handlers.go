package server

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/theirongolddev/growthcast/internal/forecast"

	"github.com/julienschmidt/httprouter"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handleDefaults(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, s.cfg.Defaults)
}

// handleForecastQuery reads overrides from the query string, e.g.
// /v1/forecast?monthly_budget=250&horizon_months=12.
func (s *Server) handleForecastQuery(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	in, err := inputFromQuery(s.cfg.Defaults, r.URL.Query())
	if err != nil {
		writeError(w, ErrInvalidRequest, err.Error())
		return
	}
	s.respondForecast(w, r, in)
}

// handleForecastBody decodes a JSON Input. Fields missing from the body keep
// their configured defaults.
func (s *Server) handleForecastBody(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	in := s.cfg.Defaults
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, ErrInvalidRequest, "invalid JSON body: "+err.Error())
		return
	}
	s.respondForecast(w, r, in)
}

func (s *Server) respondForecast(w http.ResponseWriter, r *http.Request, in forecast.Input) {
	report, err := forecast.Run(in)
	if err != nil {
		code := codeFor(err)
		if code == ErrInternalServer {
			s.log.WithError(err).WithField("request_id", RequestID(r.Context())).Error("forecast failed")
		}
		writeError(w, code, err.Error())
		return
	}
	if len(report.Warnings) > 0 {
		s.log.WithField("request_id", RequestID(r.Context())).
			WithField("warnings", len(report.Warnings)).
			Debug("forecast accepted with warnings")
	}
	writeJSON(w, http.StatusOK, report)
}

func inputFromQuery(defaults forecast.Input, q url.Values) (forecast.Input, error) {
	in := defaults
	floats := []struct {
		key string
		dst *float64
	}{
		{"monthly_budget", &in.MonthlyBudget},
		{"annual_price", &in.AnnualPrice},
		{"impressions_per_100", &in.ImpressionsPer100},
		{"conversion_rate", &in.ConversionRate},
		{"churn_rate", &in.ChurnRate},
	}
	for _, f := range floats {
		raw := q.Get(f.key)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return in, fmt.Errorf("%s: %q is not a number", f.key, raw)
		}
		*f.dst = v
	}
	if raw := q.Get("horizon_months"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return in, fmt.Errorf("horizon_months: %q is not a whole number", raw)
		}
		in.HorizonMonths = n
	}
	return in, nil
}
