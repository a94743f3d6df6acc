package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// PasswordHasher turns plaintext passwords into one-way hashes and checks
// candidates against them. It knows nothing about users or storage.
type PasswordHasher interface {
	// Hash derives an Argon2id key from password with a fresh random salt
	// and returns it in PHC string format:
	//
	//	$argon2id$v=19$m=<mem>,t=<iter>,p=<par>$<salt_b64>$<key_b64>
	//
	// Two calls with the same input produce different strings.
	Hash(password string) (string, error)

	// Verify reports whether password matches the encoded hash. It never
	// fails: a malformed or oversized hash simply does not match.
	Verify(password, encodedHash string) bool
}
