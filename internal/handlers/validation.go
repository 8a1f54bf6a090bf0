package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// validFiscalMonth accepts calendar months 1 through 12.
func validFiscalMonth(fl validator.FieldLevel) bool {
	month := fl.Field().Int()
	return month >= 1 && month <= 12
}

// RegisterCustomValidations installs domain validation rules on gin's binding
// engine. Must run once before routes are served.
func RegisterCustomValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("fiscalmonth", validFiscalMonth)
}
