package utils

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha512"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

// Password hashing parameters. Changing any of them invalidates every
// stored credential, so they are fixed constants rather than configuration.
const (
	// saltBytes is the length of a freshly generated password salt.
	saltBytes = 16

	// hashIterations is the PBKDF2 iteration count. Deliberately high:
	// hashing happens only on login and rotation, never on the hot path.
	hashIterations = 10000

	// hashBytes is the length of the derived key.
	hashBytes = 64

	// tokenBytes is the length of a raw session token before hex encoding.
	tokenBytes = 32
)

// GenerateSalt returns a fresh cryptographically random password salt,
// hex encoded. Every call produces a new value; salts are never reused
// across users or across password rotations.
func GenerateSalt() (string, error) {
	salt := make([]byte, saltBytes)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("error generating salt: %w", err)
	}

	return hex.EncodeToString(salt), nil
}

// HashPassword derives a PBKDF2-SHA512 digest of password using the given
// hex-encoded salt and returns it hex encoded.
//
// The derivation is deterministic for a given (password, salt) pair, which
// is what makes VerifyPassword possible; the randomness lives entirely in
// the salt.
func HashPassword(password, salt string) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), hashIterations, hashBytes, sha512.New)
	return hex.EncodeToString(key)
}

// VerifyPassword recomputes the digest of password with the stored salt and
// compares it against the stored hash in constant time.
func VerifyPassword(password, salt, storedHash string) bool {
	return hmac.Equal([]byte(HashPassword(password, salt)), []byte(storedHash))
}

// GenerateToken returns a fresh opaque session token: 32 cryptographically
// random bytes, hex encoded. The token carries no structure and no claims;
// it is meaningful only as a key into the session manager's table.
func GenerateToken() (string, error) {
	token := make([]byte, tokenBytes)
	if _, err := rand.Read(token); err != nil {
		return "", fmt.Errorf("error generating session token: %w", err)
	}

	return hex.EncodeToString(token), nil
}
