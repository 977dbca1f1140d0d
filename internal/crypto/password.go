package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters used for every stored password.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	saltLength   = 16
)

// GenerateSalt returns a fresh random salt, base64-encoded for storage.
func GenerateSalt() (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	return base64.RawStdEncoding.EncodeToString(salt), nil
}

// HashPassword derives an argon2id hash of password under the given salt.
// The salt must be the base64 form produced by GenerateSalt.
func HashPassword(password, salt string) (string, error) {
	rawSalt, err := base64.RawStdEncoding.DecodeString(salt)
	if err != nil {
		return "", err
	}
	hash := argon2.IDKey([]byte(password), rawSalt, argonTime, argonMemory, argonThreads, argonKeyLen)
	return base64.RawStdEncoding.EncodeToString(hash), nil
}

// VerifyPassword recomputes the hash of password under salt and compares it
// to storedHash in constant time. A malformed or empty hash or salt yields
// false, the same as a wrong password; callers must not be able to tell a
// corrupted record from a failed match.
func VerifyPassword(password, storedHash, salt string) bool {
	if storedHash == "" || salt == "" {
		return false
	}
	rawSalt, err := base64.RawStdEncoding.DecodeString(salt)
	if err != nil {
		return false
	}
	rawStored, err := base64.RawStdEncoding.DecodeString(storedHash)
	if err != nil {
		return false
	}
	if len(rawStored) != argonKeyLen {
		return false
	}
	computed := argon2.IDKey([]byte(password), rawSalt, argonTime, argonMemory, argonThreads, argonKeyLen)
	return subtle.ConstantTimeCompare(computed, rawStored) == 1
}
