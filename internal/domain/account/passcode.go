package account

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	DefaultPasscodeIterations = 100_000
	MinPasscodeLength         = 4

	passcodeSaltLength = 16
	passcodeKeyLength  = 32
)

// HashPasscode returns "iterations.salt.hash" with base64 salt and hash.
func HashPasscode(passcode string, iterations int) (string, error) {
	if iterations <= 0 {
		iterations = DefaultPasscodeIterations
	}

	salt := make([]byte, passcodeSaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("passcode salt: %w", err)
	}

	key := pbkdf2.Key([]byte(passcode), salt, iterations, passcodeKeyLength, sha256.New)

	return strconv.Itoa(iterations) + "." +
		base64.StdEncoding.EncodeToString(salt) + "." +
		base64.StdEncoding.EncodeToString(key), nil
}

// VerifyPasscode reports whether passcode matches the encoded hash. The
// derived key is compared in constant time.
func VerifyPasscode(passcode, encoded string) bool {
	parts := strings.Split(encoded, ".")
	if len(parts) != 3 {
		return false
	}

	iterations, err := strconv.Atoi(parts[0])
	if err != nil || iterations <= 0 {
		return false
	}

	salt, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil || len(salt) == 0 {
		return false
	}
	expected, err := base64.StdEncoding.DecodeString(parts[2])
	if err != nil || len(expected) == 0 {
		return false
	}

	actual := pbkdf2.Key([]byte(passcode), salt, iterations, len(expected), sha256.New)
	return subtle.ConstantTimeCompare(actual, expected) == 1
}
