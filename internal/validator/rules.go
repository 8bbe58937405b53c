package validator

import (
	"log"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/spec-kit/job-board/internal/domain"
)

func registerRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("register validation tag %q: %v", tag, err)
		}
	}

	mustRegister("notblank", func(fl validator.FieldLevel) bool {
		if fl.Field().Kind() != reflect.String {
			return true
		}
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	mustRegister("jobtype", enumRule(func(s string) bool { _, ok := domain.ParseJobType(s); return ok }))
	mustRegister("experiencelevel", enumRule(func(s string) bool { _, ok := domain.ParseExperienceLevel(s); return ok }))
	mustRegister("jobstatus", enumRule(func(s string) bool { _, ok := domain.ParseJobStatus(s); return ok }))
	mustRegister("applicationstatus", enumRule(func(s string) bool { _, ok := domain.ParseApplicationStatus(s); return ok }))
	mustRegister("userrole", enumRule(func(s string) bool { _, ok := domain.ParseUserRole(s); return ok }))
}

// enumRule accepts empty values; pair with required when the field is mandatory.
// Pointer fields are dereferenced by the validator before the rule runs.
func enumRule(valid func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return true
		}
		return valid(value)
	}
}
