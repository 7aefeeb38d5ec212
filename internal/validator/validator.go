package validator

import (
	"reflect"
	"strings"

	"github.com/edupulse/assessment-portal/internal/models"
	"github.com/go-playground/validator/v10"
)

// Validator combines struct-tag validation with the domain scale validation.
type Validator struct {
	structValidator *validator.Validate
	scaleValidator  *ScaleValidator
}

// New creates a new centralized validator instance
func New() *Validator {
	structValidator := validator.New()
	registerCustomValidators(structValidator)

	return &Validator{
		structValidator: structValidator,
		scaleValidator:  NewScaleValidator(),
	}
}

// ValidateStruct validates struct tags only
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.structValidator.Struct(s)
}

// Validate performs struct-tag validation; callers needing scale checks use Scale().
func (v *Validator) Validate(s interface{}) error {
	return v.structValidator.Struct(s)
}

// Scale returns the scale/authoring validator
func (v *Validator) Scale() *ScaleValidator {
	return v.scaleValidator
}

func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("user_role", validateUserRole)
	validate.RegisterValidation("course", validateCourse)

	// Report json field names in validation errors
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validateUserRole(fl validator.FieldLevel) bool {
	switch models.UserRole(fl.Field().String()) {
	case models.RoleStudent, models.RoleAdmin, models.RoleSuperAdmin:
		return true
	}
	return false
}

func validateCourse(fl validator.FieldLevel) bool {
	return models.Course(fl.Field().String()).IsValid()
}
