package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateResetCode returns a random 6-digit password-reset code.
func GenerateResetCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		// crypto/rand only fails when the OS entropy source is broken
		panic(err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000)
}
