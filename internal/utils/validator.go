package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mockmate/interview-service/internal/models"
)

// Validator wraps go-playground/validator with the closed enums this service
// accepts at its boundaries, including JSON coming back from the model.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()
	v.RegisterValidation("followup_reason", validateFollowUpReason)
	v.RegisterValidation("followup_type", validateFollowUpType)
	v.RegisterValidation("interview_stage", validateStage)
	return &Validator{validate: v}
}

func (v *Validator) Validate(s any) error {
	if err := v.validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed on '%s'", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}

// Var validates a single value against a tag expression.
func (v *Validator) Var(field any, tag string) error {
	return v.validate.Var(field, tag)
}

func validateFollowUpReason(fl validator.FieldLevel) bool {
	return models.FollowUpReason(fl.Field().String()).Valid()
}

func validateFollowUpType(fl validator.FieldLevel) bool {
	return models.FollowUpType(fl.Field().String()).Valid()
}

func validateStage(fl validator.FieldLevel) bool {
	return models.Stage(fl.Field().String()).Valid()
}
