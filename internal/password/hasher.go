// Package password provides one-way hashing and verification of account
// passwords behind a small interface, keeping the use cases free of
// cryptographic detail.
package password

// Hasher hashes plaintext passwords and verifies them against stored digests.
type Hasher interface {
	// Hash generates a salted digest from a plaintext password.
	Hash(plaintext string) (string, error)

	// Check reports whether plaintext matches the digest. A wrong password is
	// a false result, never an error; a malformed digest is also false.
	Check(plaintext, digest string) bool
}
