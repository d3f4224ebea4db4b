package security

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
)

// Alphabet without look-alike characters, so recovery codes survive being
// read over the phone or copied by hand.
const recoveryCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

var (
	errNegativeLength = errors.New("length must be non-negative")
	errEmptyAlphabet  = errors.New("alphabet must not be empty")
)

// RandomString returns a cryptographically secure, unbiased string of the requested length.
func RandomString(length int, alphabet string) (string, error) {
	if length < 0 {
		return "", errNegativeLength
	}
	if length == 0 {
		return "", nil
	}
	if len(alphabet) == 0 {
		return "", errEmptyAlphabet
	}

	limit := big.NewInt(int64(len(alphabet)))
	value := make([]byte, length)
	for index := range value {
		position, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		value[index] = alphabet[position.Int64()]
	}

	return string(value), nil
}

// NewRecoveryCode mints a code like "XXXX-XXXX-XXXX".
func NewRecoveryCode() (string, error) {
	groups := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		group, err := RandomString(4, recoveryCodeAlphabet)
		if err != nil {
			return "", err
		}
		groups = append(groups, group)
	}
	return strings.Join(groups, "-"), nil
}

// NormalizeRecoveryCode uppercases a user-typed code and strips separators so
// comparison is forgiving about formatting.
func NormalizeRecoveryCode(raw string) string {
	cleaned := strings.ToUpper(strings.TrimSpace(raw))
	cleaned = strings.ReplaceAll(cleaned, "-", "")
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	return cleaned
}
