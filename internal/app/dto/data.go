package dto

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/ijalalfrz/business-trip-planner/internal/pkg/exception"
)

const CodeInvalidRequest = "invalid_request"

var (
	Validate = validator.New()
	trans    ut.Translator
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

type Response struct {
	Message string `json:"message"`
}

func InitValidator() error {
	uni := ut.New(en.New(), en.New())
	trans, _ = uni.GetTranslator("en")

	err := enTranslations.RegisterDefaultTranslations(Validate, trans)
	if err != nil {
		return err
	}

	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return nil
}

func ValidateSingleError(req interface{}) error {
	if err := Validate.Struct(req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			if trans == nil {
				return errors.New(ve[0].Error())
			}
			return errors.New(ve[0].Translate(trans))
		}
		return err
	}
	return nil
}

// validateRequest runs struct validation and maps the first failure to a 400.
func validateRequest(req interface{}) error {
	if err := ValidateSingleError(req); err != nil {
		return exception.ApplicationError{
			Code:       CodeInvalidRequest,
			StatusCode: http.StatusBadRequest,
			Message:    err.Error(),
		}
	}

	return nil
}
