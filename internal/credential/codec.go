// Package credential implements the one-way password codec: it turns a
// plaintext secret into a storable encoded hash and verifies a candidate
// secret against a stored hash. The codec keeps no state; all functions
// are safe for concurrent use.
//
// Stored hashes use the encoded form
//
//	pbkdf2_sha256$<iterations>$<salt>$<base64 key>
//
// so the work factor can be raised later without invalidating existing
// records. Hashes produced for an empty secret start with "!" and can
// never verify.
package credential

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"

	"github.com/dmitrijs2005/userdir/internal/common"
)

const (
	algorithm = "pbkdf2_sha256"

	// DefaultIterations is the PBKDF2 work factor for newly created hashes.
	DefaultIterations = 870000

	saltSize = 16
	keySize  = 32

	// unusablePrefix marks a hash that no plaintext can ever match.
	unusablePrefix = "!"
)

// errMalformedHash is internal: Verify absorbs it and answers false, so a
// corrupted record degrades to a failed login instead of an error path.
var errMalformedHash = errors.New("malformed credential hash")

// Hash derives a salted one-way hash from the given secret.
//
// An empty secret yields an unusable hash: a random marker that satisfies
// the "hash is always set" invariant while guaranteeing Verify can never
// succeed against it. The error return covers only RNG failure.
func Hash(secret string) (string, error) {
	if secret == "" {
		marker, err := common.MakeRandHexString(20)
		if err != nil {
			return "", err
		}
		return unusablePrefix + marker, nil
	}

	salt, err := common.MakeRandHexString(saltSize)
	if err != nil {
		return "", err
	}

	key := pbkdf2.Key([]byte(secret), []byte(salt), DefaultIterations, keySize, sha256.New)
	return fmt.Sprintf("%s$%d$%s$%s",
		algorithm, DefaultIterations, salt, base64.StdEncoding.EncodeToString(key)), nil
}

// Verify reports whether secret matches the stored encoded hash.
//
// The comparison is constant-time. Malformed or unusable stored hashes
// return false rather than an error.
func Verify(secret, encoded string) bool {
	iterations, salt, key, err := decode(encoded)
	if err != nil {
		return false
	}
	candidate := pbkdf2.Key([]byte(secret), salt, iterations, len(key), sha256.New)
	return subtle.ConstantTimeCompare(candidate, key) == 1
}

// IsUsable reports whether the stored hash could ever verify. Unusable
// hashes mark principals created without a password.
func IsUsable(encoded string) bool {
	return encoded != "" && !strings.HasPrefix(encoded, unusablePrefix)
}

// decode splits an encoded hash into its iteration count, salt, and raw
// key bytes.
func decode(encoded string) (int, []byte, []byte, error) {
	if !IsUsable(encoded) {
		return 0, nil, nil, errMalformedHash
	}

	parts := strings.SplitN(encoded, "$", 4)
	if len(parts) != 4 || parts[0] != algorithm {
		return 0, nil, nil, errMalformedHash
	}

	iterations, err := strconv.Atoi(parts[1])
	if err != nil || iterations <= 0 {
		return 0, nil, nil, errMalformedHash
	}
	if parts[2] == "" {
		return 0, nil, nil, errMalformedHash
	}

	key, err := base64.StdEncoding.DecodeString(parts[3])
	if err != nil || len(key) == 0 {
		return 0, nil, nil, errMalformedHash
	}

	return iterations, []byte(parts[2]), key, nil
}
