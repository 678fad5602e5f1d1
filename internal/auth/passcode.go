package auth

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

// MinPasscodeLength is the shortest passcode accepted on change.
const MinPasscodeLength = 8

// ErrWrongPasscode is returned when a passcode does not match its hash.
var ErrWrongPasscode = errors.New("wrong passcode")

// HashPasscode hashes a passcode with bcrypt.
func HashPasscode(passcode string) (string, error) {
	if len(passcode) < MinPasscodeLength {
		return "", fmt.Errorf("passcode must be at least %d characters", MinPasscodeLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(passcode), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing passcode: %w", err)
	}
	return string(hash), nil
}

// CheckPasscode compares a passcode with its hash.
func CheckPasscode(hash, passcode string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(passcode))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrWrongPasscode
	}
	if err != nil {
		return fmt.Errorf("checking passcode: %w", err)
	}
	return nil
}

// GeneratePasscode creates a random passcode of the given length.
func GeneratePasscode(length int) (string, error) {
	const charset = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	result := make([]byte, length)
	for i := range result {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		result[i] = charset[n.Int64()]
	}
	return string(result), nil
}
