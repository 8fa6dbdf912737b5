package dto

import (
	"regexp"

	"github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/validator"
)

// pinRX accepts the numeric PINs the operator unlocks the logbook with.
var pinRX = regexp.MustCompile(`^[0-9]{4,8}$`)

type LoginRequest struct {
	PIN string `json:"pin"`
}

func ValidateLogin(v *validator.Validator, req *LoginRequest) {
	v.Check(req.PIN != "", "pin", "must be provided")
	v.Check(validator.Matches(req.PIN, pinRX), "pin", "must be 4 to 8 digits")
}
