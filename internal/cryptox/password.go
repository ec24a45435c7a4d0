// Package cryptox implements password digests for the credential store.
//
// Two schemes exist. SchemeSHA256 is a single unsalted SHA-256 pass rendered
// as 64 hex characters; it matches the historical users document and is only
// fit for demos. SchemeArgon2ID derives a key with argon2id from the password
// and a random per-user salt. The scheme of a stored record is implied by
// whether it carries a salt, so both can coexist in one collection.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"github.com/dmitrijs2005/recipekeeper/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	SchemeSHA256   = "sha256"
	SchemeArgon2ID = "argon2id"
)

const saltSize = 16

// HashSHA256 returns the hex SHA-256 digest of password.
func HashSHA256(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// HashArgon2ID returns the hex argon2id key derived from password and salt.
func HashArgon2ID(password string, salt []byte) string {
	key := argon2.IDKey([]byte(password), salt, 1, 64*1024, 4, 32)
	return hex.EncodeToString(key)
}

// NewPasswordHash digests password with scheme. For argon2id a fresh salt is
// generated and returned hex-encoded; for sha256 the salt is empty.
func NewPasswordHash(scheme, password string) (hash, salt string, err error) {
	switch scheme {
	case SchemeSHA256, "":
		return HashSHA256(password), "", nil
	case SchemeArgon2ID:
		s := common.GenerateRandByteArray(saltSize)
		return HashArgon2ID(password, s), hex.EncodeToString(s), nil
	}
	return "", "", fmt.Errorf("unknown password scheme %q", scheme)
}

// VerifyPassword recomputes the digest of password with the scheme implied by
// salt and compares it to hash in constant time. A malformed salt never
// verifies.
func VerifyPassword(password, hash, salt string) bool {
	var candidate string
	if salt == "" {
		candidate = HashSHA256(password)
	} else {
		s, err := hex.DecodeString(salt)
		if err != nil {
			return false
		}
		candidate = HashArgon2ID(password, s)
	}
	return subtle.ConstantTimeCompare([]byte(hash), []byte(candidate)) == 1
}
