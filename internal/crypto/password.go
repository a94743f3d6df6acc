// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"

	"github.com/MKhiriev/go-seed-api/internal/config"
)

const argon2Version = argon2.Version

// Ceilings on the cost parameters a stored hash may ask Verify to spend.
const (
	maxVerifyMemoryKiB   = 1 << 20 // 1 GiB
	maxVerifyIterations  = 64
	maxVerifyParallelism = 64
)

// Argon2idParams are the cost parameters of a single Argon2id derivation.
type Argon2idParams struct {
	MemoryKiB   uint32
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultArgon2idParams returns the parameters used when the configuration
// leaves them unset.
func DefaultArgon2idParams() Argon2idParams {
	return Argon2idParams{
		MemoryKiB:   config.DefaultArgon2MemoryKiB,
		Iterations:  config.DefaultArgon2Iterations,
		Parallelism: config.DefaultArgon2Parallelism,
		SaltLength:  config.DefaultArgon2SaltLength,
		KeyLength:   config.DefaultArgon2KeyLength,
	}
}

// argon2idHasher is the private implementation of [PasswordHasher].
type argon2idHasher struct {
	params Argon2idParams
}

// NewPasswordHasher constructs a [PasswordHasher] from cfg. Zero fields fall
// back to [DefaultArgon2idParams].
func NewPasswordHasher(cfg config.Argon2) (PasswordHasher, error) {
	params := DefaultArgon2idParams()
	if cfg.MemoryKiB != 0 {
		params.MemoryKiB = cfg.MemoryKiB
	}
	if cfg.Iterations != 0 {
		params.Iterations = cfg.Iterations
	}
	if cfg.Parallelism != 0 {
		params.Parallelism = cfg.Parallelism
	}
	if cfg.SaltLength != 0 {
		params.SaltLength = cfg.SaltLength
	}
	if cfg.KeyLength != 0 {
		params.KeyLength = cfg.KeyLength
	}

	if params.SaltLength < 8 || params.SaltLength > 64 || params.KeyLength < 16 || params.KeyLength > 128 {
		return nil, fmt.Errorf("%w: salt length must be 8..64 and key length 16..128", ErrInvalidParams)
	}

	return &argon2idHasher{params: params}, nil
}

func (h *argon2idHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}

	salt := make([]byte, h.params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("salt: %w", err)
	}

	key := argon2.IDKey(
		[]byte(password),
		salt,
		h.params.Iterations,
		h.params.MemoryKiB,
		h.params.Parallelism,
		h.params.KeyLength,
	)

	b64 := base64.RawStdEncoding
	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2Version,
		h.params.MemoryKiB,
		h.params.Iterations,
		h.params.Parallelism,
		b64.EncodeToString(salt),
		b64.EncodeToString(key),
	), nil
}

func (h *argon2idHasher) Verify(password, encodedHash string) bool {
	params, salt, expected, err := decodeHash(encodedHash)
	if err != nil {
		return false
	}

	// attacker-controlled hash strings must not dictate resource usage
	if !withinReasonableBounds(params, h.params) {
		return false
	}

	key := argon2.IDKey(
		[]byte(password),
		salt,
		params.Iterations,
		params.MemoryKiB,
		params.Parallelism,
		params.KeyLength,
	)

	return subtle.ConstantTimeCompare(key, expected) == 1
}

// withinReasonableBounds rejects hashes whose cost exceeds the fixed
// ceilings or the configured cost, whichever is larger. Hashes made with
// older, stronger settings keep verifying after the settings are lowered.
func withinReasonableBounds(got, configured Argon2idParams) bool {
	if got.MemoryKiB > max(maxVerifyMemoryKiB, configured.MemoryKiB) {
		return false
	}
	if got.Iterations > max(maxVerifyIterations, configured.Iterations) {
		return false
	}
	if uint32(got.Parallelism) > max(maxVerifyParallelism, uint32(configured.Parallelism)) {
		return false
	}
	if got.SaltLength < 8 || got.SaltLength > 64 {
		return false
	}
	if got.KeyLength < 16 || got.KeyLength > 128 {
		return false
	}
	return true
}

// decodeHash parses $argon2id$v=19$m=65536,t=3,p=2$<salt>$<key>.
func decodeHash(encoded string) (Argon2idParams, []byte, []byte, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return Argon2idParams{}, nil, nil, ErrInvalidHash
	}

	if parts[2] != fmt.Sprintf("v=%d", argon2Version) {
		return Argon2idParams{}, nil, nil, ErrInvalidHash
	}

	var mem, it, par uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &mem, &it, &par); err != nil {
		return Argon2idParams{}, nil, nil, ErrInvalidHash
	}
	if mem == 0 || it == 0 || par == 0 || par > 255 {
		return Argon2idParams{}, nil, nil, ErrInvalidHash
	}

	b64 := base64.RawStdEncoding
	salt, err := b64.DecodeString(parts[4])
	if err != nil {
		return Argon2idParams{}, nil, nil, ErrInvalidHash
	}
	key, err := b64.DecodeString(parts[5])
	if err != nil {
		return Argon2idParams{}, nil, nil, ErrInvalidHash
	}

	params := Argon2idParams{
		MemoryKiB:   mem,
		Iterations:  it,
		Parallelism: uint8(par),
		SaltLength:  uint32(len(salt)),
		KeyLength:   uint32(len(key)),
	}

	return params, salt, key, nil
}
