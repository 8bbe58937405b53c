// Package validator wraps go-playground/validator so request DTOs report one
// readable message per failing field, named by its JSON key.
package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/spec-kit/job-board/pkg/util/errorutil"
)

// Validator checks `validate` struct tags.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator with the job-board enum rules registered.
func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	registerRules(v)
	return &Validator{validate: v}
}

// Struct validates i and returns an INVALID_ARGUMENT DomainError listing every
// failing field, or nil.
func (v *Validator) Struct(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.NewInvalidArgument(err.Error())
	}
	messages := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		messages = append(messages, message(fe))
	}
	return apperrors.NewValidationError("Validation failed", messages)
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters long", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long", field, fe.Param())
	case "eq":
		return fmt.Sprintf("%s must be accepted", field)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "jobtype", "experiencelevel", "jobstatus", "applicationstatus", "userrole":
		return fmt.Sprintf("%s has an invalid value %q", field, fe.Value())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
