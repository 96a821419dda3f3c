package dto

import (
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators installs the custom binding validators on gin's
// validator engine. Call once at startup.
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("priority", validPriority)
	}
}

// validPriority accepts high, medium or low in any case. Empty values pass;
// pair with omitempty.
func validPriority(fl validator.FieldLevel) bool {
	switch strings.ToLower(fl.Field().String()) {
	case "high", "medium", "low":
		return true
	}
	return false
}
