//go:build unit

package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ijalalfrz/business-trip-planner/internal/app/dto"
	"github.com/ijalalfrz/business-trip-planner/internal/pkg/exception"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorResponse_Closure(t *testing.T) {
	errorRequest := func(err error, wantStatus int, want dto.ErrorResponse) func(t *testing.T) {
		return func(t *testing.T) {
			rec := httptest.NewRecorder()

			ErrorResponse(context.Background(), err, rec)

			assert.Equal(t, wantStatus, rec.Code)
			assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

			var got dto.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, want, got)
		}
	}

	notFound := exception.ApplicationError{Code: "no_flights_found", StatusCode: http.StatusNotFound, Message: "no flights"}

	t.Run("application_error", errorRequest(notFound, http.StatusNotFound,
		dto.ErrorResponse{Error: "no flights", Code: "no_flights_found"}))
	t.Run("wrapped_application_error", errorRequest(errors.Join(errors.New("service"), notFound), http.StatusNotFound,
		dto.ErrorResponse{Error: "no flights", Code: "no_flights_found"}))
	t.Run("unknown_error", errorRequest(errors.New("boom"), http.StatusInternalServerError,
		dto.ErrorResponse{Error: "boom"}))
}

func TestDecodeRequest_Closure(t *testing.T) {
	decodeRequest := func(body string, wantErr bool) func(t *testing.T) {
		return func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/lodgings/window", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			got, err := DecodeRequest[dto.LodgingWindowRequest](context.Background(), req)
			if wantErr {
				var appErr exception.ApplicationError
				require.True(t, errors.As(err, &appErr), "got %v", err)
				assert.Equal(t, http.StatusBadRequest, appErr.StatusCode)
				return
			}

			require.NoError(t, err)
			window, ok := got.(*dto.LodgingWindowRequest)
			require.True(t, ok)
			assert.Equal(t, "2024-03-01T02:00", window.ArrivalDatetime)
		}
	}

	t.Run("valid", decodeRequest(
		`{"arrival_datetime": "2024-03-01T02:00", "departure_datetime": "2024-03-05T14:00"}`, false))
	t.Run("malformed_json", decodeRequest(`{"arrival_datetime": `, true))
	t.Run("validation_failure", decodeRequest(
		`{"arrival_datetime": "yesterday", "departure_datetime": "2024-03-05T14:00"}`, true))
}
