package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	apperrors "github.com/satmock-platform/exam-service/internal/errors"
	"github.com/satmock-platform/exam-service/internal/models"
)

// Validator wraps the struct validator with the custom rules the exam
// domain needs registered once.
type Validator struct {
	structValidator *validator.Validate
}

// New creates a new centralized validator instance
func New() *Validator {
	structValidator := validator.New()
	registerCustomValidators(structValidator)

	return &Validator{
		structValidator: structValidator,
	}
}

// Validate validates struct tags and reports failures as the shared
// ValidationErrors type.
func (v *Validator) Validate(s interface{}) error {
	if err := v.structValidator.Struct(s); err != nil {
		if ve := apperrors.ToValidationErrors(err); len(ve) > 0 {
			return ve
		}
		return err
	}
	return nil
}

// registerCustomValidators registers all custom validation functions
func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("exam_section", validateExamSection)
	validate.RegisterValidation("exam_module", validateExamModule)
	validate.RegisterValidation("user_role", validateUserRole)

	// Custom tag name function for better error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Custom validation functions

func validateExamSection(fl validator.FieldLevel) bool {
	validSections := []models.ExamSection{
		models.SectionReadingWriting,
		models.SectionMath,
	}

	value := fl.Field().String()
	for _, validSection := range validSections {
		if string(validSection) == value {
			return true
		}
	}
	return false
}

func validateExamModule(fl validator.FieldLevel) bool {
	module := fl.Field().Int()
	return module == 1 || module == 2
}

func validateUserRole(fl validator.FieldLevel) bool {
	validRoles := []models.UserRole{
		models.RoleStudent,
		models.RoleAdmin,
	}

	value := fl.Field().String()
	for _, validRole := range validRoles {
		if string(validRole) == value {
			return true
		}
	}
	return false
}
