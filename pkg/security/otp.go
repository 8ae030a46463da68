package security

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

type OTPGenerator struct{}

func NewOTPGenerator() *OTPGenerator {
	return &OTPGenerator{}
}

// Generate returns a 6-digit code drawn uniformly from [0, 999999],
// zero-padded.
func (g *OTPGenerator) Generate() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate random number: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
