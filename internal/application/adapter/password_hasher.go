// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

// PasswordHasher hashes and checks account passwords.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Matches(hash, plain string) bool
}
