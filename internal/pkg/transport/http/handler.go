package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-kit/kit/endpoint"
	kithttp "github.com/go-kit/kit/transport/http"
	"github.com/ijalalfrz/business-trip-planner/internal/app/dto"
	"github.com/ijalalfrz/business-trip-planner/internal/pkg/exception"
)

// MakeHandlerFunc wires an endpoint to a go-kit HTTP server with the shared
// error encoder.
func MakeHandlerFunc(
	e endpoint.Endpoint,
	decode kithttp.DecodeRequestFunc,
	encode kithttp.EncodeResponseFunc,
) http.HandlerFunc {
	return kithttp.NewServer(
		e,
		decode,
		encode,
		kithttp.ServerErrorEncoder(ErrorResponse),
	).ServeHTTP
}

// DecodeRequest binds the JSON body into a new T. When *T implements
// render.Binder its Bind method validates the request.
func DecodeRequest[T any](_ context.Context, r *http.Request) (interface{}, error) {
	req := new(T)

	if binder, ok := any(req).(render.Binder); ok {
		if err := render.Bind(r, binder); err != nil {
			return nil, decodeError(err)
		}
		return req, nil
	}

	if err := render.DecodeJSON(r.Body, req); err != nil {
		return nil, decodeError(err)
	}

	return req, nil
}

// decodeError keeps validation failures as they are and turns malformed
// bodies into a 400.
func decodeError(err error) error {
	var appErr exception.ApplicationError
	if errors.As(err, &appErr) {
		return err
	}

	return exception.ApplicationError{
		Code:       dto.CodeInvalidRequest,
		StatusCode: http.StatusBadRequest,
		Message:    fmt.Sprintf("invalid request body: %s", err.Error()),
		Cause:      err,
	}
}
