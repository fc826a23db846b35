package utils

import (
	"crypto/rand"
	"math/big"
)

const passwordAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%"

// GenerateRandomPassword returns a random password of the given length.
// Federated sign-ins have no user-supplied password, so accounts created
// through them get one that satisfies local validation.
func GenerateRandomPassword(length int) (string, error) {
	if length < 8 {
		length = 16
	}
	buf := make([]byte, length)
	max := big.NewInt(int64(len(passwordAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = passwordAlphabet[n.Int64()]
	}
	return string(buf), nil
}
