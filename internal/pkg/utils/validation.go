package utils

import (
	"patient-service/internal/pkg/constvars"
	"reflect"
	"regexp"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	validate        *validator.Validate
	birthDateRegexp = regexp.MustCompile(constvars.RegexDateYYYYMMDD)
)

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(jsonFieldName)
	validate.RegisterValidation("name_use", validateNameUse)
	validate.RegisterValidation("gender", validateGender)
	validate.RegisterValidation("birth_date", validateBirthDate)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// IsValidNameUse reports whether use is a FHIR HumanName.use code.
func IsValidNameUse(use string) bool {
	return slices.Contains(constvars.FhirNameUses, use)
}

func IsValidGender(gender string) bool {
	return slices.Contains(constvars.FhirGenders, gender)
}

// IsValidBirthDate checks the YYYY-MM-DD shape only, not the calendar.
func IsValidBirthDate(birthDate string) bool {
	return birthDateRegexp.MatchString(birthDate)
}

// The tag validators accept the empty string. Emptiness is decided by
// "required" and by the merge rules, not by the value checks.
func validateNameUse(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || IsValidNameUse(value)
}

func validateGender(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || IsValidGender(value)
}

func validateBirthDate(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || IsValidBirthDate(value)
}

func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return field.Name
	}
	return name
}
