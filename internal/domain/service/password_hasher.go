// Package service declares the domain's ports to stateless helpers: password
// hashing, session tokens, the breed catalog and QR codes.
package service

// PasswordHasher turns signup passwords into stored hashes and checks login and
// profile-edit confirmations against them.
type PasswordHasher interface {
	Hash(password string) (string, error)

	// Check reports whether password matches hash. Malformed hashes never match.
	Check(password, hash string) bool
}
