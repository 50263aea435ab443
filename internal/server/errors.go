package server

import (
	"errors"
	"net/http"

	"github.com/theirongolddev/growthcast/internal/forecast"
)

// Error codes returned in APIError.Code.
const (
	ErrInvalidRequest = "VAL_001" // body or query could not be parsed
	ErrInvalidInput   = "VAL_002" // parsed but rejected by forecast.Check
	ErrNotFound       = "RES_001"
	ErrInternalServer = "SRV_001"
)

var httpStatus = map[string]int{
	ErrInvalidRequest: http.StatusBadRequest,
	ErrInvalidInput:   http.StatusBadRequest,
	ErrNotFound:       http.StatusNotFound,
	ErrInternalServer: http.StatusInternalServerError,
}

// APIError is the body of every non-2xx JSON response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}

func writeError(w http.ResponseWriter, code, message string) {
	status, ok := httpStatus[code]
	if !ok {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, APIError{Code: code, Message: message})
}

// codeFor maps a forecast error onto an API error code.
func codeFor(err error) string {
	switch {
	case errors.Is(err, forecast.ErrInvalidHorizon),
		errors.Is(err, forecast.ErrNonFinite),
		errors.Is(err, forecast.ErrOutOfRange):
		return ErrInvalidInput
	default:
		return ErrInternalServer
	}
}
