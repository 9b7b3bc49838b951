package service

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	passhashPrefix     = "pbkdf2_sha256"
	passhashIterations = 120000
	passhashSaltBytes  = 16
	passhashKeyBytes   = 32
)

// HashPassphrase derives a salted PBKDF2-SHA256 hash encoded as
// "pbkdf2_sha256$<iterations>$<salt>$<hash>" with base64url fields.
func HashPassphrase(passphrase string) (string, error) {
	salt := make([]byte, passhashSaltBytes)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate passphrase salt: %w", err)
	}
	hash := pbkdf2.Key([]byte(passphrase), salt, passhashIterations, passhashKeyBytes, sha256.New)
	return fmt.Sprintf("%s$%d$%s$%s",
		passhashPrefix,
		passhashIterations,
		base64.RawURLEncoding.EncodeToString(salt),
		base64.RawURLEncoding.EncodeToString(hash),
	), nil
}

// VerifyPassphrase checks a passphrase against a stored hash. Hashes that do
// not carry the PBKDF2 prefix are treated as plain SHA-256 hex digests, the
// scheme groups used before the PBKDF2 migration.
func VerifyPassphrase(passphrase, storedHash string) bool {
	parts := strings.Split(storedHash, "$")
	if len(parts) == 4 && parts[0] == passhashPrefix {
		iterations, err := strconv.Atoi(parts[1])
		if err != nil || iterations <= 0 {
			return false
		}
		salt, err := decodeBase64URL(parts[2])
		if err != nil {
			return false
		}
		expected, err := decodeBase64URL(parts[3])
		if err != nil {
			return false
		}
		derived := pbkdf2.Key([]byte(passphrase), salt, iterations, len(expected), sha256.New)
		return subtle.ConstantTimeCompare(derived, expected) == 1
	}

	legacy := sha256.Sum256([]byte(passphrase))
	return subtle.ConstantTimeCompare([]byte(hex.EncodeToString(legacy[:])), []byte(storedHash)) == 1
}

func decodeBase64URL(value string) ([]byte, error) {
	if decoded, err := base64.RawURLEncoding.DecodeString(value); err == nil {
		return decoded, nil
	}
	return base64.URLEncoding.DecodeString(value)
}
