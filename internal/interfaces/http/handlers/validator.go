package handlers

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Sui addresses are 32 bytes hex with a 0x prefix.
var suiAddressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{64}$`)

func init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	_ = v.RegisterValidation("suiaddress", func(fl validator.FieldLevel) bool {
		return suiAddressPattern.MatchString(fl.Field().String())
	})
}
