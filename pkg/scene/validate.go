package scene

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/bookrack/pkg/errors"
	"github.com/matzehuels/bookrack/pkg/random"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

// validatorInstance configures and returns the shared validator instance.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		// report keys the way they are spelled in scene files
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("toml"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		_ = v.RegisterValidation("colormap", func(fl validator.FieldLevel) bool {
			_, err := random.ColorMapByName(fl.Field().String())
			return err == nil
		})

		validateInst = v
	})
	return validateInst
}

// Validate checks cfg against its struct tags.
func (c Config) Validate() error {
	return convertValidationError(validatorInstance().Struct(c))
}

// convertValidationError turns validator errors into CONFIGURATION errors.
func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	if ves, ok := err.(validator.ValidationErrors); ok {
		ve := ves[0]
		field := yamlishFieldName(ve)
		if ve.Param() != "" {
			return errors.Wrap(errors.ErrCodeConfiguration, err, "%s failed validation for tag '%s=%s' (got %v)", field, ve.Tag(), ve.Param(), ve.Value())
		}
		return errors.Wrap(errors.ErrCodeConfiguration, err, "%s failed validation for tag '%s' (got %v)", field, ve.Tag(), ve.Value())
	}

	return errors.Wrap(errors.ErrCodeConfiguration, err, "invalid scene configuration")
}

// yamlishFieldName drops the root struct name: "Config.height.kind" -> "height.kind".
func yamlishFieldName(fe validator.FieldError) string {
	parts := strings.Split(fe.Namespace(), ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	return strings.ToLower(strings.Join(parts, "."))
}
