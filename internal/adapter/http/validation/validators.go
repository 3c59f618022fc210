package validation

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"trackr/internal/core/domain"
)

// RegisterValidators installs the custom tags used by the request DTOs on
// gin's default validator.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	return register(v)
}

func register(v *validator.Validate) error {
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		return err
	}
	return v.RegisterValidation("task_type", func(fl validator.FieldLevel) bool {
		return domain.TaskType(fl.Field().String()).Valid()
	})
}
