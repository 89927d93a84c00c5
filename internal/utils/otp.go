package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
)

// otpMin and otpMax bound the 6-digit code space. The lower bound keeps a leading
// non-zero digit so codes are always exactly six digits long.
const (
	otpMin = 100000
	otpMax = 999999
)

// GenerateOTPCode returns a 6-digit decimal one-time code drawn from crypto/rand.
func GenerateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpMax-otpMin+1))
	if err != nil {
		return "", fmt.Errorf("failed to read random bytes for OTP: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+otpMin), nil
}

// HashOTPCode generates a SHA256 hex digest of a one-time code. Only the digest is
// ever persisted; the plaintext code exists solely in the delivery channel.
func HashOTPCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}
