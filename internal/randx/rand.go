// Package randx provides cryptographically secure random helpers.
package randx

import (
	"crypto/rand"
	"math/big"
)

const (
	activationCodeMin = 10000
	activationCodeMax = 99999
)

// ActivationCode returns a uniformly distributed 5-digit code in
// [10000, 99999], inclusive.
func ActivationCode() (int, error) {
	span := int64(activationCodeMax - activationCodeMin + 1)
	n, err := rand.Int(rand.Reader, big.NewInt(span))
	if err != nil {
		return 0, err
	}
	return activationCodeMin + int(n.Int64()), nil
}
