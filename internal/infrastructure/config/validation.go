package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidateConfig checks cfg against its validate tags. Failures are reported by
// config key (economy.hire_cost), the same names used in config.yaml and SANCTUARY_* vars.
func ValidateConfig(cfg *Config) error {
	if err := newConfigValidator().Struct(cfg); err != nil {
		return formatValidationError(err)
	}
	return nil
}

func newConfigValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func formatValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, e := range fieldErrs {
		messages = append(messages, fmt.Sprintf("%s %s", configKey(e), describeFailure(e)))
	}
	return fmt.Errorf("%s", strings.Join(messages, "; "))
}

// configKey drops the root struct name from the namespace: "Config.economy.hire_cost" -> "economy.hire_cost"
func configKey(e validator.FieldError) string {
	key := e.Namespace()
	if i := strings.IndexByte(key, '.'); i >= 0 {
		return key[i+1:]
	}
	return key
}

func describeFailure(e validator.FieldError) string {
	switch e.Tag() {
	case "required", "required_if":
		return "is required"
	case "oneof":
		return fmt.Sprintf("must be one of [%s], got %q", e.Param(), fmt.Sprint(e.Value()))
	case "min", "gte":
		return fmt.Sprintf("must be at least %s, got %v", e.Param(), e.Value())
	case "max", "lte":
		return fmt.Sprintf("must be at most %s, got %v", e.Param(), e.Value())
	case "gt":
		return fmt.Sprintf("must be greater than %s, got %v", e.Param(), e.Value())
	default:
		return fmt.Sprintf("failed %q validation (value: %v)", e.Tag(), e.Value())
	}
}
