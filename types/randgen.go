package types

import (
	"github.com/dchest/uniuri"
	uuid "github.com/satori/go.uuid"
)

// NewVehicleID returns a randomly generated vehicle identifier
func NewVehicleID() string {
	return "V_" + uniuri.NewLenChars(10, []byte("0123456789abcdefghijklmnopqrstuvwxyz"))
}

// NewDeclarationID returns a randomly generated declaration identifier
func NewDeclarationID() string {
	return "D_" + uniuri.NewLenChars(6, []byte("0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"))
}

// NewAlertID returns a randomly generated alert identifier
func NewAlertID() string {
	id, err := uuid.NewV4()
	if err != nil {
		return "ALT_" + uniuri.NewLen(8)
	}
	return "ALT_" + id.String()
}
