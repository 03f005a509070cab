package validator

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("region_name", validateRegionName)
}

// Validate - валидация структуры
func Validate(s interface{}) error {
	return validate.Struct(s)
}

// GetValidator - получить валидатор для кастомной конфигурации
func GetValidator() *validator.Validate {
	return validate
}

// validateRegionName - имя региона без управляющих символов и не длиннее 128 байт
func validateRegionName(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	if len(name) > 128 {
		return false
	}
	return !strings.ContainsAny(name, "\"\\\n\r\t")
}
