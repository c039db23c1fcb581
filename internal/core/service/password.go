package service

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// LegacySalt is the shared suffix used by digests created before bcrypt was
// introduced.
const LegacySalt = "salt"

// PasswordHasher turns plaintext passwords into stored digests and checks
// candidates against them.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
	// NeedsRehash reports whether digest should be replaced by a fresh Hash.
	NeedsRehash(digest string) bool
}

// LegacyHasher reproduces the historical digest: hex(sha256(plaintext+salt)).
// It is deterministic and only kept to verify existing rows.
type LegacyHasher struct {
	Salt string
}

func (h LegacyHasher) Hash(plaintext string) (string, error) {
	sum := sha256.Sum256([]byte(plaintext + h.Salt))
	return hex.EncodeToString(sum[:]), nil
}

func (h LegacyHasher) Verify(plaintext, digest string) bool {
	want, _ := h.Hash(plaintext)
	return subtle.ConstantTimeCompare([]byte(want), []byte(strings.ToLower(digest))) == 1
}

func (h LegacyHasher) NeedsRehash(string) bool { return true }

// BcryptHasher produces salted bcrypt digests.
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) cost() int {
	if h.Cost == 0 {
		return bcrypt.DefaultCost
	}
	return h.Cost
}

func (h BcryptHasher) Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost())
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (h BcryptHasher) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}

func (h BcryptHasher) NeedsRehash(digest string) bool {
	cost, err := bcrypt.Cost([]byte(digest))
	return err != nil || cost < h.cost()
}

// CompositeHasher writes bcrypt digests and still accepts legacy ones, so
// accounts are upgraded on their next successful login.
type CompositeHasher struct {
	Primary BcryptHasher
	Legacy  LegacyHasher
}

// NewCompositeHasher returns the default hasher used by the service.
func NewCompositeHasher() CompositeHasher {
	return CompositeHasher{
		Primary: BcryptHasher{Cost: bcrypt.DefaultCost},
		Legacy:  LegacyHasher{Salt: LegacySalt},
	}
}

func (h CompositeHasher) Hash(plaintext string) (string, error) {
	return h.Primary.Hash(plaintext)
}

func (h CompositeHasher) Verify(plaintext, digest string) bool {
	if isBcryptDigest(digest) {
		return h.Primary.Verify(plaintext, digest)
	}
	return h.Legacy.Verify(plaintext, digest)
}

func (h CompositeHasher) NeedsRehash(digest string) bool {
	if !isBcryptDigest(digest) {
		return true
	}
	return h.Primary.NeedsRehash(digest)
}

func isBcryptDigest(digest string) bool {
	return strings.HasPrefix(digest, "$2a$") || strings.HasPrefix(digest, "$2b$") || strings.HasPrefix(digest, "$2y$")
}
