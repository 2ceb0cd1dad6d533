// Package cryptox implements salted password hashing for user credentials.
//
// Digests are argon2id(password, salt) encoded with base64. Salts are 32
// random bytes, also base64 encoded, so both parts of a credential are plain
// strings that can be stored as-is.
package cryptox

import (
	"crypto/subtle"
	"encoding/base64"

	"github.com/dmitrijs2005/gopherflow/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	saltLength  = 32
	keyLength   = 32
	timeCost    = 1
	memoryKiB   = 64 * 1024
	parallelism = 4
)

// Hasher derives and verifies password digests. The zero value uses the
// default argon2id parameters.
type Hasher struct {
	time    uint32
	memory  uint32
	threads uint8
}

// NewHasher returns a Hasher with the production parameters.
func NewHasher() *Hasher {
	return &Hasher{time: timeCost, memory: memoryKiB, threads: parallelism}
}

// NewHasherWithParams returns a Hasher with explicit argon2id costs; memory
// is in KiB. Zero values fall back to the defaults.
func NewHasherWithParams(iterations, memory uint32, threads uint8) *Hasher {
	return &Hasher{time: iterations, memory: memory, threads: threads}
}

// GenerateSalt returns a fresh random salt.
func (h *Hasher) GenerateSalt() string {
	return base64.StdEncoding.EncodeToString(common.GenerateRandByteArray(saltLength))
}

// Hash returns the digest of password under salt. The same pair always
// yields the same digest.
func (h *Hasher) Hash(password, salt string) string {
	pw := []byte(password)
	defer common.WipeByteArray(pw)

	key := argon2.IDKey(pw, []byte(salt), h.timeCost(), h.memoryCost(), h.threadCount(), keyLength)
	return base64.StdEncoding.EncodeToString(key)
}

// Verify reports whether password hashed with salt equals expected.
// The comparison runs in constant time.
func (h *Hasher) Verify(password, salt, expected string) bool {
	computed := h.Hash(password, salt)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(expected)) == 1
}

func (h *Hasher) timeCost() uint32 {
	if h.time == 0 {
		return timeCost
	}
	return h.time
}

func (h *Hasher) memoryCost() uint32 {
	if h.memory == 0 {
		return memoryKiB
	}
	return h.memory
}

func (h *Hasher) threadCount() uint8 {
	if h.threads == 0 {
		return parallelism
	}
	return h.threads
}
